package wire

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version10"
	"github.com/rcastelli/fbwire/internal/wire/proto/version11"
	"github.com/rcastelli/fbwire/internal/wire/proto/version12"
	"github.com/rcastelli/fbwire/internal/wire/proto/version13"
)

// defaultProtocols is the full candidate set this client supports, built
// once at process start and read-only afterwards.
var defaultProtocols = proto.NewCollection(
	version10.Descriptor{},
	version11.Descriptor{},
	version12.Descriptor{},
	version13.Descriptor{},
)

// DefaultProtocols returns the process-wide descriptor collection.
func DefaultProtocols() *proto.Collection {
	return defaultProtocols
}
