package version10

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
)

// invalidHandle marks a statement whose allocation response has not been
// consumed yet (lazy-send generations allocate without waiting).
const invalidHandle = 0xFFFF

// Statement is the generation 10 statement handler. Allocation, prepare and
// free are all synchronous round trips in this generation.
type Statement struct {
	db     *Database
	handle int32
}

// NewStatement builds a v10 statement handler on a database session. Later
// generations hand in their own database types, which expose the shared base
// through Base.
func NewStatement(db proto.Database) *Statement {
	base, ok := db.(*Database)
	if !ok {
		base = db.(interface{ Base() *Database }).Base()
	}
	return &Statement{db: base, handle: invalidHandle}
}

// Handle returns the statement object handle.
func (s *Statement) Handle() int32 { return s.handle }

// Allocate sends op_allocate_statement and records the statement handle
// from the response.
func (s *Statement) Allocate() error {
	if err := s.SendAllocate(); err != nil {
		return err
	}
	if err := s.db.c.W.Flush(); err != nil {
		return &proto.TransportError{Op: "op_allocate_statement", Err: err}
	}
	resp, err := s.db.ReadResponse("op_allocate_statement")
	if err != nil {
		return err
	}
	s.handle = resp.Handle
	return nil
}

// SendAllocate writes the allocate packet without reading the response;
// shared with the deferred variant of later generations.
func (s *Statement) SendAllocate() error {
	w := s.db.c.W
	if err := w.WriteInt32(proto.OpAllocateStmt); err != nil {
		return &proto.TransportError{Op: "op_allocate_statement", Err: err}
	}
	if err := w.WriteInt32(s.db.handle); err != nil {
		return &proto.TransportError{Op: "op_allocate_statement", Err: err}
	}
	return nil
}

// SetHandle records the statement handle; used by deferred allocation.
func (s *Statement) SetHandle(h int32) { s.handle = h }

// DB returns the owning database handler.
func (s *Statement) DB() *Database { return s.db }

// Prepare sends op_prepare_statement together with an info request for the
// describe items and returns the raw info reply.
func (s *Statement) Prepare(tr proto.Transaction, sql string, dialect int32, infoItems []byte) ([]byte, error) {
	if err := s.sendPrepare(tr, sql, dialect, infoItems); err != nil {
		return nil, err
	}
	if err := s.db.c.W.Flush(); err != nil {
		return nil, &proto.TransportError{Op: "op_prepare_statement", Err: err}
	}
	resp, err := s.db.ReadResponse("op_prepare_statement")
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// sendPrepare writes the prepare packet without flushing or reading.
func (s *Statement) sendPrepare(tr proto.Transaction, sql string, dialect int32, infoItems []byte) error {
	c := s.db.c
	w := c.W
	if err := w.WriteInt32(proto.OpPrepareStmt); err != nil {
		return &proto.TransportError{Op: "op_prepare_statement", Err: err}
	}
	if err := w.WriteInt32(tr.Handle()); err != nil {
		return &proto.TransportError{Op: "op_prepare_statement", Err: err}
	}
	if err := w.WriteInt32(s.handle); err != nil {
		return &proto.TransportError{Op: "op_prepare_statement", Err: err}
	}
	if err := w.WriteInt32(dialect); err != nil {
		return &proto.TransportError{Op: "op_prepare_statement", Err: err}
	}
	if err := w.WriteString(sql, c.Enc); err != nil {
		return err
	}
	if err := w.WriteBuffer(infoItems); err != nil {
		return &proto.TransportError{Op: "op_prepare_statement", Err: err}
	}
	if err := w.WriteInt32(int32(len(infoItems)) + 1024); err != nil {
		return &proto.TransportError{Op: "op_prepare_statement", Err: err}
	}
	return nil
}

// Execute sends op_execute with the caller-supplied parameter BLR and
// message blob. The message travels raw after the descriptor counts; its
// layout is the SQL layer's business.
func (s *Statement) Execute(tr proto.Transaction, blr, message []byte) error {
	w := s.db.c.W
	if err := w.WriteInt32(proto.OpExecute); err != nil {
		return &proto.TransportError{Op: "op_execute", Err: err}
	}
	if err := w.WriteInt32(s.handle); err != nil {
		return &proto.TransportError{Op: "op_execute", Err: err}
	}
	if err := w.WriteInt32(tr.Handle()); err != nil {
		return &proto.TransportError{Op: "op_execute", Err: err}
	}
	if err := w.WriteBuffer(blr); err != nil {
		return &proto.TransportError{Op: "op_execute", Err: err}
	}
	if err := w.WriteInt32(0); err != nil { // message number
		return &proto.TransportError{Op: "op_execute", Err: err}
	}
	count := int32(0)
	if len(message) > 0 {
		count = 1
	}
	if err := w.WriteInt32(count); err != nil {
		return &proto.TransportError{Op: "op_execute", Err: err}
	}
	if len(message) > 0 {
		if _, err := w.Write(message); err != nil {
			return &proto.TransportError{Op: "op_execute", Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: "op_execute", Err: err}
	}
	_, err := s.db.ReadResponse("op_execute")
	return err
}

// Fetch requests up to maxRows rows and reads the fetch-response sequence.
// Each row is the raw message blob of messageLength bytes; more reports
// whether the cursor has rows left.
func (s *Statement) Fetch(blr []byte, messageLength, maxRows int32) ([][]byte, bool, error) {
	c := s.db.c
	w := c.W
	if err := w.WriteInt32(proto.OpFetch); err != nil {
		return nil, false, &proto.TransportError{Op: "op_fetch", Err: err}
	}
	if err := w.WriteInt32(s.handle); err != nil {
		return nil, false, &proto.TransportError{Op: "op_fetch", Err: err}
	}
	if err := w.WriteBuffer(blr); err != nil {
		return nil, false, &proto.TransportError{Op: "op_fetch", Err: err}
	}
	if err := w.WriteInt32(0); err != nil { // message number
		return nil, false, &proto.TransportError{Op: "op_fetch", Err: err}
	}
	if err := w.WriteInt32(maxRows); err != nil {
		return nil, false, &proto.TransportError{Op: "op_fetch", Err: err}
	}
	if err := w.Flush(); err != nil {
		return nil, false, &proto.TransportError{Op: "op_fetch", Err: err}
	}

	if err := c.DrainDeferred(); err != nil {
		return nil, false, err
	}

	var rows [][]byte
	for {
		op, err := c.ReadOperation()
		if err != nil {
			return rows, false, err
		}
		switch op {
		case proto.OpFetchResponse:
			status, err := c.R.ReadInt32()
			if err != nil {
				return rows, false, &proto.TransportError{Op: "op_fetch", Err: err}
			}
			count, err := c.R.ReadInt32()
			if err != nil {
				return rows, false, &proto.TransportError{Op: "op_fetch", Err: err}
			}
			if count == 0 {
				return rows, proto.FetchStatus(status) != proto.FetchNoMore, nil
			}
			for i := int32(0); i < count; i++ {
				row := make([]byte, messageLength)
				if err := c.R.ReadRaw(row); err != nil {
					return rows, false, &proto.TransportError{Op: "op_fetch", Err: err}
				}
				rows = append(rows, row)
			}
		case proto.OpResponse:
			// An error reply takes the generic response shape.
			if _, err := proto.ResponseBody(c, "op_fetch"); err != nil {
				return rows, false, err
			}
			return rows, false, &proto.MalformedResponseError{
				Op:     "op_fetch",
				Detail: "op_response without status vector in fetch sequence",
			}
		default:
			return rows, false, &proto.MalformedResponseError{
				Op:     "op_fetch",
				Detail: "unexpected " + proto.OpName(op) + " in fetch sequence",
			}
		}
	}
}

// Free sends op_free_statement and consumes its response.
func (s *Statement) Free(mode int32) error {
	if err := s.SendFree(mode); err != nil {
		return err
	}
	if err := s.db.c.W.Flush(); err != nil {
		return &proto.TransportError{Op: "op_free_statement", Err: err}
	}
	_, err := s.db.ReadResponse("op_free_statement")
	if err == nil && mode == proto.DSQLDrop {
		s.handle = invalidHandle
	}
	return err
}

// SendFree writes the free packet without flushing or reading.
func (s *Statement) SendFree(mode int32) error {
	w := s.db.c.W
	if err := w.WriteInt32(proto.OpFreeStmt); err != nil {
		return &proto.TransportError{Op: "op_free_statement", Err: err}
	}
	if err := w.WriteInt32(s.handle); err != nil {
		return &proto.TransportError{Op: "op_free_statement", Err: err}
	}
	if err := w.WriteInt32(mode); err != nil {
		return &proto.TransportError{Op: "op_free_statement", Err: err}
	}
	return nil
}
