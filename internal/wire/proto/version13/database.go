package version13

import (
	"time"

	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version12"
)

// Database is the generation 13 database session handler: v12 behavior plus
// the op_ping liveness probe.
type Database struct {
	*version12.Database
}

// NewDatabase builds a v13 database handler over an accepted connection.
func NewDatabase(c *proto.Conn) *Database {
	return &Database{Database: version12.NewDatabase(c)}
}

// Ping sends op_ping and waits for the server's response. A healthy server
// answers with an empty op_response; a dead or wedged one surfaces as a
// transport error.
func (d *Database) Ping() error {
	c := d.Conn()
	start := time.Now()
	if err := c.W.WriteInt32(proto.OpPing); err != nil {
		return &proto.TransportError{Op: "op_ping", Err: err}
	}
	if err := c.W.Flush(); err != nil {
		return &proto.TransportError{Op: "op_ping", Err: err}
	}
	_, err := c.ReadResponse("op_ping")
	d.Observe("op_ping", start, err)
	return err
}
