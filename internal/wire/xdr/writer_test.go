package xdr

import (
	"bytes"
	"crypto/rc4"
	"io"
	"testing"

	rasky "github.com/rasky/go-xdr/xdr2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writerOutput(t *testing.T, fn func(w *Writer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	fn(w)
	require.NoError(t, w.Flush())
	return buf.Bytes()
}

func TestWriterPrimitives(t *testing.T) {
	t.Run("Int32IsBigEndian", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteInt32(0x01020304))
		})
		assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, out)
	})

	t.Run("Int32Negative", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteInt32(-1))
		})
		assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, out)
	})

	t.Run("Int64IsBigEndian", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteInt64(0x0102030405060708))
		})
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, out)
	})

	t.Run("SingleByteIsUnframed", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteByte(0x7f))
		})
		assert.Equal(t, []byte{0x7f}, out)
	})
}

func TestWriteBuffer(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			name: "NilWritesBareZeroLength",
			in:   nil,
			want: []byte{0, 0, 0, 0},
		},
		{
			name: "EmptyWritesBareZeroLength",
			in:   []byte{},
			want: []byte{0, 0, 0, 0},
		},
		{
			name: "AlignedNeedsNoPadding",
			in:   []byte{1, 2, 3, 4},
			want: []byte{0, 0, 0, 4, 1, 2, 3, 4},
		},
		{
			name: "OneBytePadsToThree",
			in:   []byte{0xaa},
			want: []byte{0, 0, 0, 1, 0xaa, 0, 0, 0},
		},
		{
			name: "ThreeBytesPadsToOne",
			in:   []byte{1, 2, 3},
			want: []byte{0, 0, 0, 3, 1, 2, 3, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := writerOutput(t, func(w *Writer) {
				require.NoError(t, w.WriteBuffer(tt.in))
			})
			assert.Equal(t, tt.want, out)
		})
	}
}

// TestWriteBufferMatchesReferenceCodec cross-checks buffer framing against an
// independent XDR implementation.
func TestWriteBufferMatchesReferenceCodec(t *testing.T) {
	payloads := [][]byte{
		{0x42},
		{1, 2, 3, 4, 5},
		bytes.Repeat([]byte{0xab}, 64),
	}
	for _, p := range payloads {
		var ref bytes.Buffer
		_, err := rasky.Marshal(&ref, p)
		require.NoError(t, err)

		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteBuffer(p))
		})
		assert.Equal(t, ref.Bytes(), out, "payload length %d", len(p))
	}
}

func TestWriteString(t *testing.T) {
	t.Run("ASCIIWithoutEncoder", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteString("Srp", nil))
		})
		assert.Equal(t, []byte{0, 0, 0, 3, 'S', 'r', 'p', 0}, out)
	})

	t.Run("NonASCIIWithoutEncoderFails", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		err := w.WriteString("café", nil)
		assert.ErrorIs(t, err, ErrUnencodableText)
	})
}

type fixedStreamable []byte

func (s fixedStreamable) Len() int { return len(s) }

func (s fixedStreamable) WriteTo(w *Writer) error {
	_, err := w.Write(s)
	return err
}

func TestWriteTyped(t *testing.T) {
	t.Run("LengthIncludesTagByte", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteTyped(1, fixedStreamable{0xaa, 0xbb, 0xcc}))
		})
		// total length 4 = tag + 3 payload bytes, already aligned
		assert.Equal(t, []byte{0, 0, 0, 4, 1, 0xaa, 0xbb, 0xcc}, out)
	})

	t.Run("AlignmentCoversTagInclusiveLength", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteTyped(2, fixedStreamable{0xaa}))
		})
		// total length 2, so two padding bytes follow
		assert.Equal(t, []byte{0, 0, 0, 2, 2, 0xaa, 0, 0}, out)
	})

	t.Run("NilItemWritesBareTag", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteTyped(3, nil))
		})
		assert.Equal(t, []byte{0, 0, 0, 1, 3, 0, 0, 0}, out)
	})
}

func TestWriteAlignment(t *testing.T) {
	for length, want := range map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3, 8: 0} {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteAlignment(length))
		})
		assert.Len(t, out, want, "length %d", length)
		assert.Equal(t, bytes.Repeat([]byte{0}, want), out)
	}
}

func TestWritePadding(t *testing.T) {
	t.Run("SpacePadding", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteSpacePadding(5))
		})
		assert.Equal(t, bytes.Repeat([]byte{SpaceByte}, 5), out)
	})

	t.Run("ZeroPadding", func(t *testing.T) {
		out := writerOutput(t, func(w *Writer) {
			require.NoError(t, w.WriteZeroPadding(7))
		})
		assert.Equal(t, make([]byte, 7), out)
	})
}

func TestWriteDirectFlushesQueuedBytesFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteInt32(1))
	assert.Zero(t, buf.Len(), "buffered write must not reach the transport yet")

	require.NoError(t, w.WriteDirect([]byte{0xfe, 0xff}))
	assert.Equal(t, []byte{0, 0, 0, 1, 0xfe, 0xff}, buf.Bytes())
}

func TestWriterInstallCipher(t *testing.T) {
	t.Run("QueuedBytesStayPlaintext", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		require.NoError(t, w.WriteInt32(0x01020304))

		stream, err := rc4.NewCipher([]byte("0123456789abcdef"))
		require.NoError(t, err)
		require.NoError(t, w.InstallCipher(stream))

		// The pre-switch bytes hit the wire unciphered.
		assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())

		require.NoError(t, w.WriteInt32(0x05060708))
		require.NoError(t, w.Flush())

		got := buf.Bytes()[4:]
		verify, err := rc4.NewCipher([]byte("0123456789abcdef"))
		require.NoError(t, err)
		plain := make([]byte, len(got))
		verify.XORKeyStream(plain, got)
		assert.Equal(t, []byte{5, 6, 7, 8}, plain)
	})

	t.Run("SecondInstallFails", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		s1, err := rc4.NewCipher([]byte("key-one"))
		require.NoError(t, err)
		require.NoError(t, w.InstallCipher(s1))
		assert.True(t, w.Encrypted())

		s2, err := rc4.NewCipher([]byte("key-two"))
		require.NoError(t, err)
		assert.ErrorIs(t, w.InstallCipher(s2), ErrAlreadyEncrypted)

		// The rejected install must leave the first cipher in place: bytes
		// written afterwards decode under key one alone.
		require.NoError(t, w.WriteInt32(0x0a0b0c0d))
		require.NoError(t, w.Flush())
		verify, err := rc4.NewCipher([]byte("key-one"))
		require.NoError(t, err)
		plain := make([]byte, buf.Len())
		verify.XORKeyStream(plain, buf.Bytes())
		assert.Equal(t, []byte{0x0a, 0x0b, 0x0c, 0x0d}, plain)
	})
}

func BenchmarkWriteBuffer(b *testing.B) {
	payload := bytes.Repeat([]byte{0x5a}, 1024)
	w := NewWriter(io.Discard)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.WriteBuffer(payload)
	}
	_ = w.Flush()
}
