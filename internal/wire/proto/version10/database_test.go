package version10

import (
	"bytes"
	"testing"

	"github.com/rcastelli/fbwire/internal/wire/encoding"
	"github.com/rcastelli/fbwire/internal/wire/pbuf"
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/xdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTransport pairs a scripted server reply with a capture of what the
// client sent.
type scriptedTransport struct {
	reply *bytes.Reader
	Sent  bytes.Buffer
}

func newScriptedTransport(reply []byte) *scriptedTransport {
	return &scriptedTransport{reply: bytes.NewReader(reply)}
}

func (s *scriptedTransport) Read(p []byte) (int, error)  { return s.reply.Read(p) }
func (s *scriptedTransport) Write(p []byte) (int, error) { return s.Sent.Write(p) }
func (s *scriptedTransport) Close() error                { return nil }

func script(t *testing.T, fn func(w *xdr.Writer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := xdr.NewWriter(&buf)
	fn(w)
	require.NoError(t, w.Flush())
	return buf.Bytes()
}

// scriptResponse appends one healthy op_response packet.
func scriptResponse(t *testing.T, w *xdr.Writer, handle int32, data []byte) {
	t.Helper()
	require.NoError(t, w.WriteInt32(proto.OpResponse))
	require.NoError(t, w.WriteInt32(handle))
	require.NoError(t, w.WriteInt64(0))
	require.NoError(t, w.WriteBuffer(data))
	require.NoError(t, w.WriteInt32(1)) // isc_arg_gds
	require.NoError(t, w.WriteInt32(0))
	require.NoError(t, w.WriteInt32(0)) // isc_arg_end
}

func newTestDatabase(t *testing.T, reply []byte) (*Database, *scriptedTransport) {
	t.Helper()
	tr := newScriptedTransport(reply)
	return NewDatabase(proto.NewConn(tr, encoding.UTF8(), nil)), tr
}

// sentInt32 decodes the big-endian int32 at byte offset off of the sent
// stream.
func sentInt32(t *testing.T, sent []byte, off int) int32 {
	t.Helper()
	require.GreaterOrEqual(t, len(sent), off+4)
	return int32(sent[off])<<24 | int32(sent[off+1])<<16 | int32(sent[off+2])<<8 | int32(sent[off+3])
}

func TestDatabaseAttach(t *testing.T) {
	t.Run("RecordsHandleFromResponse", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			scriptResponse(t, w, 41, nil)
		})
		db, tr := newTestDatabase(t, reply)

		dpb := pbuf.NewDatabase(encoding.UTF8())
		require.NoError(t, dpb.AddString(pbuf.DPBUserName, "SYSDBA"))
		require.NoError(t, db.Attach("employee.fdb", dpb))
		assert.Equal(t, int32(41), db.Handle())

		sent := tr.Sent.Bytes()
		assert.Equal(t, int32(proto.OpAttach), sentInt32(t, sent, 0))
		assert.Equal(t, int32(0), sentInt32(t, sent, 4)) // object id
		assert.Equal(t, int32(12), sentInt32(t, sent, 8))
		assert.Equal(t, []byte("employee.fdb"), sent[12:24])
		// dpb travels as a typed frame tagged with its version byte
		assert.Equal(t, int32(pbuf.DPBVersion1), int32(sent[28]))
	})

	t.Run("StatusVectorErrorLeavesHandleUnset", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			require.NoError(t, w.WriteInt32(proto.OpResponse))
			require.NoError(t, w.WriteInt32(0))
			require.NoError(t, w.WriteInt64(0))
			require.NoError(t, w.WriteBuffer(nil))
			require.NoError(t, w.WriteInt32(1))
			require.NoError(t, w.WriteInt32(335544472)) // login failed
			require.NoError(t, w.WriteInt32(0))
		})
		db, _ := newTestDatabase(t, reply)

		dpb := pbuf.NewDatabase(encoding.UTF8())
		err := db.Attach("employee.fdb", dpb)
		assert.ErrorIs(t, err, proto.ErrAuthenticationFailed)
		assert.Zero(t, db.Handle())
	})
}

func TestDatabaseDetach(t *testing.T) {
	reply := script(t, func(w *xdr.Writer) {
		scriptResponse(t, w, 41, nil)
		scriptResponse(t, w, 0, nil)
	})
	db, tr := newTestDatabase(t, reply)

	require.NoError(t, db.Attach("employee.fdb", pbuf.NewDatabase(encoding.UTF8())))
	require.NoError(t, db.Detach())
	assert.Zero(t, db.Handle())

	// The detach packet is [op][handle].
	sent := tr.Sent.Bytes()
	off := len(sent) - 8
	assert.Equal(t, int32(proto.OpDetach), sentInt32(t, sent, off))
	assert.Equal(t, int32(41), sentInt32(t, sent, off+4))
}

func TestDatabaseInfo(t *testing.T) {
	infoReply := []byte{proto.InfoPageSize, 4, 0, 0, 0x40, 0, 0, proto.InfoEnd}
	reply := script(t, func(w *xdr.Writer) {
		scriptResponse(t, w, 0, infoReply)
	})
	db, tr := newTestDatabase(t, reply)

	raw, err := db.Info([]byte{proto.InfoPageSize, proto.InfoEnd}, 1024)
	require.NoError(t, err)
	assert.Equal(t, infoReply, raw)

	sent := tr.Sent.Bytes()
	assert.Equal(t, int32(proto.OpInfoDatabase), sentInt32(t, sent, 0))
	assert.Equal(t, int32(0), sentInt32(t, sent, 4)) // handle
	assert.Equal(t, int32(0), sentInt32(t, sent, 8)) // incarnation
	assert.Equal(t, int32(2), sentInt32(t, sent, 12))
	assert.Equal(t, byte(proto.InfoPageSize), sent[16])
}

func TestDatabaseTransaction(t *testing.T) {
	t.Run("BeginCommit", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			scriptResponse(t, w, 7, nil) // transaction handle
			scriptResponse(t, w, 0, nil) // commit
		})
		db, tr := newTestDatabase(t, reply)

		tpb := pbuf.NewTransaction()
		tpb.AddTag(pbuf.TPBConcurrency)
		tpb.AddTag(pbuf.TPBWait)

		tx, err := db.BeginTransaction(tpb)
		require.NoError(t, err)
		assert.Equal(t, int32(7), tx.Handle())

		require.NoError(t, tx.Commit())

		sent := tr.Sent.Bytes()
		assert.Equal(t, int32(proto.OpTransaction), sentInt32(t, sent, 0))
		off := len(sent) - 8
		assert.Equal(t, int32(proto.OpCommit), sentInt32(t, sent, off))
		assert.Equal(t, int32(7), sentInt32(t, sent, off+4))
	})

	t.Run("Rollback", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			scriptResponse(t, w, 9, nil)
			scriptResponse(t, w, 0, nil)
		})
		db, tr := newTestDatabase(t, reply)

		tx, err := db.BeginTransaction(pbuf.NewTransaction())
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		sent := tr.Sent.Bytes()
		off := len(sent) - 8
		assert.Equal(t, int32(proto.OpRollback), sentInt32(t, sent, off))
	})
}

func TestGeneration10Unsupported(t *testing.T) {
	db, _ := newTestDatabase(t, nil)
	assert.ErrorIs(t, db.Cancel(), proto.ErrNotSupported)
	assert.ErrorIs(t, db.Ping(), proto.ErrNotSupported)
}

func TestDescriptor(t *testing.T) {
	d := Descriptor{}
	assert.Equal(t, int32(proto.ProtocolVersion10), d.Version())
	assert.Equal(t, int32(proto.ArchGeneric), d.Architecture())
	assert.Equal(t, int32(proto.PTypeRPC), d.MinimumType())
	assert.Equal(t, int32(proto.PTypeBatchSend), d.MaximumType())
	assert.Equal(t, 2, d.Weight())
}
