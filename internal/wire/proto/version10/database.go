package version10

import (
	"time"

	"github.com/rcastelli/fbwire/internal/logger"
	"github.com/rcastelli/fbwire/internal/wire/pbuf"
	"github.com/rcastelli/fbwire/internal/wire/proto"
)

// Database is the generation 10 database session handler. Later generations
// embed it and override only the operations their generation changed.
type Database struct {
	c      *proto.Conn
	handle int32
}

// NewDatabase builds a v10 database handler over an accepted connection.
func NewDatabase(c *proto.Conn) *Database {
	return &Database{c: c}
}

// Conn exposes the underlying stream state.
func (d *Database) Conn() *proto.Conn { return d.c }

// Base returns the shared v10 base; embedding propagates it so statement
// constructors can reach the base through any generation's database type.
func (d *Database) Base() *Database { return d }

// Handle returns the attachment object handle.
func (d *Database) Handle() int32 { return d.handle }

// SetHandle records the attachment handle; used by overrides that complete
// an attach themselves.
func (d *Database) SetHandle(h int32) { d.handle = h }

// Attach sends op_attach with the database parameter buffer in the typed
// frame convention and records the attachment handle.
func (d *Database) Attach(path string, dpb *pbuf.Buffer) error {
	return d.attachOrCreate(proto.OpAttach, "op_attach", path, dpb)
}

// Create sends op_create; on success the connection is attached to the
// newly created database.
func (d *Database) Create(path string, dpb *pbuf.Buffer) error {
	return d.attachOrCreate(proto.OpCreate, "op_create", path, dpb)
}

func (d *Database) attachOrCreate(op int32, opName, path string, dpb *pbuf.Buffer) error {
	w := d.c.W
	if err := w.WriteInt32(op); err != nil {
		return &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.WriteInt32(0); err != nil { // object id, unused on attach
		return &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.WriteString(path, d.c.Enc); err != nil {
		return err
	}
	if err := w.WriteTyped(dpb.Type(), dpb); err != nil {
		return &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: opName, Err: err}
	}
	resp, err := d.ReadResponse(opName)
	if err != nil {
		return err
	}
	d.handle = resp.Handle
	logger.Debug("database attached",
		"op", opName,
		"handle", d.handle)
	return nil
}

// Detach sends op_detach and releases the attachment handle.
func (d *Database) Detach() error {
	if err := d.sendHandleOp(proto.OpDetach, "op_detach", d.handle); err != nil {
		return err
	}
	d.handle = 0
	return nil
}

// Drop sends op_drop_database, deleting the attached database.
func (d *Database) Drop() error {
	if err := d.sendHandleOp(proto.OpDropDatabase, "op_drop_database", d.handle); err != nil {
		return err
	}
	d.handle = 0
	return nil
}

// Info sends op_info_database and returns the raw info reply.
func (d *Database) Info(items []byte, maxLength int32) ([]byte, error) {
	return d.infoRequest(proto.OpInfoDatabase, "op_info_database", d.handle, items, maxLength)
}

// BeginTransaction sends op_transaction with the transaction parameter
// buffer and wraps the returned handle.
func (d *Database) BeginTransaction(tpb *pbuf.Buffer) (proto.Transaction, error) {
	start := time.Now()
	w := d.c.W
	if err := w.WriteInt32(proto.OpTransaction); err != nil {
		return nil, &proto.TransportError{Op: "op_transaction", Err: err}
	}
	if err := w.WriteInt32(d.handle); err != nil {
		return nil, &proto.TransportError{Op: "op_transaction", Err: err}
	}
	if err := w.WriteTyped(tpb.Type(), tpb); err != nil {
		return nil, &proto.TransportError{Op: "op_transaction", Err: err}
	}
	if err := w.Flush(); err != nil {
		return nil, &proto.TransportError{Op: "op_transaction", Err: err}
	}
	resp, err := d.ReadResponse("op_transaction")
	d.Observe("op_transaction", start, err)
	if err != nil {
		return nil, err
	}
	return &Transaction{db: d, handle: resp.Handle}, nil
}

// Cancel is not part of generation 10; generation 12 overrides it.
func (d *Database) Cancel() error {
	return proto.ErrNotSupported
}

// Ping is not part of generation 10; generation 13 overrides it.
func (d *Database) Ping() error {
	return proto.ErrNotSupported
}

// ReadResponse reads the next generic response for this session. Responses
// owed for deferred operations (lazy-send generations) drain first.
func (d *Database) ReadResponse(opName string) (*proto.Response, error) {
	return d.c.ReadResponse(opName)
}

// sendHandleOp writes an [op][handle] packet and consumes its response.
func (d *Database) sendHandleOp(op int32, opName string, handle int32) error {
	start := time.Now()
	w := d.c.W
	if err := w.WriteInt32(op); err != nil {
		return &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.WriteInt32(handle); err != nil {
		return &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: opName, Err: err}
	}
	_, err := d.ReadResponse(opName)
	d.Observe(opName, start, err)
	return err
}

// infoRequest implements the shared [op][handle][incarnation][items][max]
// info request shape.
func (d *Database) infoRequest(op int32, opName string, handle int32, items []byte, maxLength int32) ([]byte, error) {
	start := time.Now()
	w := d.c.W
	if err := w.WriteInt32(op); err != nil {
		return nil, &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.WriteInt32(handle); err != nil {
		return nil, &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.WriteInt32(0); err != nil { // incarnation
		return nil, &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.WriteBuffer(items); err != nil {
		return nil, &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.WriteInt32(maxLength); err != nil {
		return nil, &proto.TransportError{Op: opName, Err: err}
	}
	if err := w.Flush(); err != nil {
		return nil, &proto.TransportError{Op: opName, Err: err}
	}
	resp, err := d.ReadResponse(opName)
	d.Observe(opName, start, err)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Observe feeds the optional operation metrics.
func (d *Database) Observe(opName string, start time.Time, err error) {
	if d.c.Metrics == nil {
		return
	}
	errClass := ""
	if err != nil {
		errClass = "error"
	}
	d.c.Metrics.RecordOperation(opName, time.Since(start), errClass)
}
