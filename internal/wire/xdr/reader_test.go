package xdr

import (
	"bytes"
	"crypto/rc4"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderPrimitives(t *testing.T) {
	t.Run("Int32BigEndian", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))
		v, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(0x01020304), v)
	})

	t.Run("Int32Negative", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
		v, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(-1), v)
	})

	t.Run("Int64BigEndian", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
		v, err := r.ReadInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(0x0102030405060708), v)
	})

	t.Run("ShortStreamFails", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
		_, err := r.ReadInt32()
		assert.Error(t, err)
	})
}

func TestReadBuffer(t *testing.T) {
	t.Run("SkipsAlignmentPadding", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{
			0, 0, 0, 1, 0xaa, 0, 0, 0, // one byte plus three padding
			0, 0, 0, 2, 0xbb, 0xcc, 0, 0, // two bytes plus two padding
		}))
		b1, err := r.ReadBuffer()
		require.NoError(t, err)
		assert.Equal(t, []byte{0xaa}, b1)

		b2, err := r.ReadBuffer()
		require.NoError(t, err)
		assert.Equal(t, []byte{0xbb, 0xcc}, b2)
	})

	t.Run("ZeroLengthYieldsEmptyNonNil", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0, 0, 0, 0}))
		b, err := r.ReadBuffer()
		require.NoError(t, err)
		assert.NotNil(t, b)
		assert.Empty(t, b)
	})

	t.Run("NegativeLengthIsFrameError", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
		_, err := r.ReadBuffer()
		var fe *FrameError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, int64(-1), fe.Length)
	})

	t.Run("OversizeLengthIsFrameError", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0x7f, 0xff, 0xff, 0xff}))
		_, err := r.ReadBuffer()
		var fe *FrameError
		assert.ErrorAs(t, err, &fe)
	})
}

func TestReadString(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 3, 'S', 'r', 'p', 0}))
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Srp", s)
}

// TestReaderWriterRoundTrip splices a writer straight into a reader and
// checks every frame survives.
func TestReaderWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInt32(42))
	require.NoError(t, w.WriteBuffer([]byte("employee.fdb")))
	require.NoError(t, w.WriteString("Srp256", nil))
	require.NoError(t, w.WriteInt64(-7))
	require.NoError(t, w.Flush())

	r := NewReader(&buf)
	i, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(42), i)

	b, err := r.ReadBuffer()
	require.NoError(t, err)
	assert.Equal(t, []byte("employee.fdb"), b)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Srp256", s)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), i64)
}

func TestReaderInstallCipher(t *testing.T) {
	key := []byte("0123456789abcdef")

	t.Run("CipherAppliesToBytesAfterSplice", func(t *testing.T) {
		var wire bytes.Buffer
		wire.Write([]byte{0, 0, 0, 9})

		r := NewReader(&wire)
		v, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(9), v)

		dec, err := rc4.NewCipher(key)
		require.NoError(t, err)
		require.NoError(t, r.InstallCipher(dec))
		assert.True(t, r.Encrypted())

		// The peer switches and sends its next frame enciphered.
		enc, err := rc4.NewCipher(key)
		require.NoError(t, err)
		ciphered := make([]byte, 4)
		enc.XORKeyStream(ciphered, []byte{0, 0, 0, 7})
		wire.Write(ciphered)

		v, err = r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(7), v)
	})

	t.Run("BufferedPlaintextSurvivesSplice", func(t *testing.T) {
		// Two plaintext frames arrive together; the splice happens between
		// reading them. The second stays readable as plaintext.
		var wire bytes.Buffer
		wire.Write([]byte{0, 0, 0, 1, 0, 0, 0, 2})

		r := NewReader(&wire)
		v, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(1), v)

		dec, err := rc4.NewCipher(key)
		require.NoError(t, err)
		require.NoError(t, r.InstallCipher(dec))

		v, err = r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(2), v)
	})

	t.Run("SecondInstallFails", func(t *testing.T) {
		var wire bytes.Buffer
		r := NewReader(&wire)
		s1, err := rc4.NewCipher(key)
		require.NoError(t, err)
		require.NoError(t, r.InstallCipher(s1))

		s2, err := rc4.NewCipher([]byte("another-key"))
		require.NoError(t, err)
		assert.ErrorIs(t, r.InstallCipher(s2), ErrAlreadyEncrypted)

		// The rejected install must leave the first cipher in place: a
		// frame enciphered once under the original key still reads back.
		enc, err := rc4.NewCipher(key)
		require.NoError(t, err)
		ciphered := make([]byte, 4)
		enc.XORKeyStream(ciphered, []byte{0, 0, 0, 5})
		wire.Write(ciphered)

		v, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(5), v)
	})
}
