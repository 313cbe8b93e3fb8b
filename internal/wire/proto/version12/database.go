package version12

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version11"
)

// Database is the generation 12 database session handler: v11 behavior plus
// out-of-band cancellation.
type Database struct {
	*version11.Database
}

// NewDatabase builds a v12 database handler over an accepted connection.
func NewDatabase(c *proto.Conn) *Database {
	return &Database{Database: version11.NewDatabase(c)}
}

// Cancel sends op_cancel on the direct path, bypassing the output buffer so
// the request overtakes any batched traffic. The server answers through the
// operation being cancelled, not with its own response packet.
func (d *Database) Cancel() error {
	packet := []byte{
		0, 0, 0, proto.OpCancel,
		0, 0, 0, proto.CancelRaise,
	}
	if err := d.Conn().W.WriteDirect(packet); err != nil {
		return &proto.TransportError{Op: "op_cancel", Err: err}
	}
	return nil
}
