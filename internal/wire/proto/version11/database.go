package version11

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version10"
)

// Database is the generation 11 database session handler. The database
// operations themselves are unchanged from v10; the generation's lazy-send
// behavior lives in the statement handler and the connection's deferred
// response queue.
type Database struct {
	*version10.Database
}

// NewDatabase builds a v11 database handler over an accepted connection.
func NewDatabase(c *proto.Conn) *Database {
	return &Database{Database: version10.NewDatabase(c)}
}
