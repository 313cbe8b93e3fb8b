// Package version13 implements the protocol generation 13 overrides:
// plugin-based authentication rounds during connect, the transport
// encryption switch, and the op_ping liveness check, layered on v12.
//
// The authentication and crypt exchanges themselves run at connection
// level before a database object exists; this package contributes the
// descriptor that advertises the generation and the handler surface that
// becomes available once it is accepted.
package version13

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version12"
)

// Descriptor describes protocol version 13.
type Descriptor struct {
	version12.Descriptor
}

func (Descriptor) Version() int32 { return proto.ProtocolVersion13 }
func (Descriptor) Weight() int    { return 8 }

func (Descriptor) NewDatabase(c *proto.Conn) proto.Database {
	return NewDatabase(c)
}
