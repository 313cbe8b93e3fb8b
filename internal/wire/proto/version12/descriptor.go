// Package version12 implements the protocol generation 12 overrides:
// out-of-band operation cancellation, layered on the v11 behavior.
package version12

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version11"
)

// Descriptor describes protocol version 12.
type Descriptor struct {
	version11.Descriptor
}

func (Descriptor) Version() int32 { return proto.ProtocolVersion12 }
func (Descriptor) Weight() int    { return 6 }

func (Descriptor) NewDatabase(c *proto.Conn) proto.Database {
	return NewDatabase(c)
}
