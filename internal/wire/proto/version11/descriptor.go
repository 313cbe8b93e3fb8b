// Package version11 implements the protocol generation 11 overrides:
// lazy-send statement allocation and close, layered on the v10 base.
package version11

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version10"
)

// Descriptor describes protocol version 11. Everything not overridden here
// behaves exactly as version 10.
type Descriptor struct {
	version10.Descriptor
}

func (Descriptor) Version() int32     { return proto.ProtocolVersion11 }
func (Descriptor) MaximumType() int32 { return proto.PTypeLazySend }
func (Descriptor) Weight() int        { return 4 }

func (Descriptor) NewDatabase(c *proto.Conn) proto.Database {
	return NewDatabase(c)
}

func (Descriptor) NewStatement(db proto.Database) proto.Statement {
	return NewStatement(db)
}
