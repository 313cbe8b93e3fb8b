package proto

import (
	"testing"

	"github.com/rcastelli/fbwire/internal/wire/xdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAccept(t *testing.T) {
	t.Run("PlainAcceptStopsAfterType", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			require.NoError(t, w.WriteInt32(ProtocolVersion12))
			require.NoError(t, w.WriteInt32(ArchGeneric))
			require.NoError(t, w.WriteInt32(PTypeBatchSend))
		})
		c, _ := newTestConn(t, reply)

		a, err := ReadAccept(c, OpAccept)
		require.NoError(t, err)
		assert.Equal(t, int32(OpAccept), a.Op)
		assert.Equal(t, int32(ProtocolVersion12), a.Version)
		assert.Equal(t, int32(ArchGeneric), a.Arch)
		assert.Equal(t, int32(PTypeBatchSend), a.Type)
		assert.Nil(t, a.Data)
		assert.Empty(t, a.PluginName)
	})

	t.Run("AcceptDataCarriesAuthState", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			require.NoError(t, w.WriteInt32(ProtocolVersion13))
			require.NoError(t, w.WriteInt32(ArchGeneric))
			require.NoError(t, w.WriteInt32(PTypeLazySend))
			require.NoError(t, w.WriteBuffer([]byte{0x01, 0x02}))
			require.NoError(t, w.WriteString("Srp256", nil))
			require.NoError(t, w.WriteInt32(1))
			require.NoError(t, w.WriteBuffer([]byte{0x03}))
		})
		c, _ := newTestConn(t, reply)

		a, err := ReadAccept(c, OpAcceptData)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, a.Data)
		assert.Equal(t, "Srp256", a.PluginName)
		assert.True(t, a.Authenticated)
		assert.Equal(t, []byte{0x03}, a.Keys)
	})

	t.Run("CondAcceptUnauthenticated", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			require.NoError(t, w.WriteInt32(ProtocolVersion13))
			require.NoError(t, w.WriteInt32(ArchGeneric))
			require.NoError(t, w.WriteInt32(PTypeLazySend))
			require.NoError(t, w.WriteBuffer([]byte{0xaa}))
			require.NoError(t, w.WriteString("Srp", nil))
			require.NoError(t, w.WriteInt32(0))
			require.NoError(t, w.WriteBuffer(nil))
		})
		c, _ := newTestConn(t, reply)

		a, err := ReadAccept(c, OpCondAccept)
		require.NoError(t, err)
		assert.False(t, a.Authenticated)
		assert.Equal(t, "Srp", a.PluginName)
	})

	t.Run("TruncatedAcceptFails", func(t *testing.T) {
		reply := script(t, func(w *xdr.Writer) {
			require.NoError(t, w.WriteInt32(ProtocolVersion13))
		})
		c, _ := newTestConn(t, reply)

		_, err := ReadAccept(c, OpAcceptData)
		assert.Error(t, err)
	})
}

func TestReadContAuth(t *testing.T) {
	reply := script(t, func(w *xdr.Writer) {
		require.NoError(t, w.WriteBuffer([]byte{0x10, 0x20}))
		require.NoError(t, w.WriteString("Srp", nil))
		require.NoError(t, w.WriteString("Srp256,Srp", nil))
		require.NoError(t, w.WriteBuffer(nil))
	})
	c, _ := newTestConn(t, reply)

	ca, err := ReadContAuth(c)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x20}, ca.Data)
	assert.Equal(t, "Srp", ca.PluginName)
	assert.Equal(t, "Srp256,Srp", ca.PluginList)
	assert.Empty(t, ca.Keys)
}

func TestGeneration(t *testing.T) {
	assert.Equal(t, int32(10), Generation(ProtocolVersion10))
	assert.Equal(t, int32(11), Generation(ProtocolVersion11))
	assert.Equal(t, int32(12), Generation(ProtocolVersion12))
	assert.Equal(t, int32(13), Generation(ProtocolVersion13))
}

func TestOpName(t *testing.T) {
	assert.Equal(t, "op_connect", OpName(OpConnect))
	assert.Equal(t, "op_crypt", OpName(OpCrypt))
	assert.Equal(t, "op_12345", OpName(12345))
}

// TestOperationCodeValues pins the codes this core emits to the server's
// numbering. The info operations sit in the 40s, well apart from the
// statement block; 72 and 75 are reserved for op_response_piggyback and
// op_exec_immediate2, which clients never send.
func TestOperationCodeValues(t *testing.T) {
	codes := map[string][2]int32{
		"op_connect":            {OpConnect, 1},
		"op_attach":             {OpAttach, 19},
		"op_transaction":        {OpTransaction, 29},
		"op_info_database":      {OpInfoDatabase, 40},
		"op_info_transaction":   {OpInfoTransaction, 42},
		"op_allocate_statement": {OpAllocateStmt, 62},
		"op_info_sql":           {OpInfoSQL, 70},
		"op_dummy":              {OpDummy, 71},
		"op_service_attach":     {OpServiceAttach, 82},
		"op_cont_auth":          {OpContAuth, 92},
		"op_cond_accept":        {OpCondAccept, 98},
	}
	for name, pair := range codes {
		assert.Equal(t, pair[1], pair[0], name)
	}
}
