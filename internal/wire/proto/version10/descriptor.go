// Package version10 implements the protocol generation 10 session handlers:
// the base behavior every later generation layers its overrides on.
package version10

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
)

// Descriptor describes protocol version 10.
type Descriptor struct{}

func (Descriptor) Version() int32      { return proto.ProtocolVersion10 }
func (Descriptor) Architecture() int32 { return proto.ArchGeneric }
func (Descriptor) MinimumType() int32  { return proto.PTypeRPC }
func (Descriptor) MaximumType() int32  { return proto.PTypeBatchSend }
func (Descriptor) Weight() int         { return 2 }

func (Descriptor) NewDatabase(c *proto.Conn) proto.Database {
	return NewDatabase(c)
}

func (Descriptor) NewService(c *proto.Conn) proto.Service {
	return NewService(c)
}

func (Descriptor) NewStatement(db proto.Database) proto.Statement {
	return NewStatement(db)
}
