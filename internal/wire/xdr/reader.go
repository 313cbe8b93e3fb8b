package xdr

import (
	"bufio"
	"bytes"
	"crypto/cipher"
	"io"
)

// ============================================================================
// Input side - wire format -> Go values
// ============================================================================

// MaxBufferLength caps the length field of a variable-length buffer read off
// the wire. A reply claiming more than this is treated as malformed rather
// than allocated.
const MaxBufferLength = 16 * 1024 * 1024

// Reader decodes primitive wire values from an underlying byte stream.
//
// Like the Writer it owns a transform chain (raw transport, optional cipher,
// read buffer). Not safe for concurrent use.
type Reader struct {
	raw       io.Reader
	direct    io.Reader
	in        *bufio.Reader
	encrypted bool
	scratch   [8]byte
}

// NewReader returns a buffered Reader over in.
func NewReader(in io.Reader) *Reader {
	r := &Reader{raw: in, direct: in}
	r.in = bufio.NewReaderSize(r.direct, bufSize)
	return r
}

// ReadInt32 reads a big-endian 32-bit integer, exactly 4 bytes.
func (r *Reader) ReadInt32() (int32, error) {
	b := r.scratch[:4]
	if _, err := io.ReadFull(r.in, b); err != nil {
		return 0, err
	}
	return int32(b[0])<<24 | int32(b[1])<<16 | int32(b[2])<<8 | int32(b[3]), nil
}

// ReadInt64 reads a big-endian 64-bit integer, exactly 8 bytes.
func (r *Reader) ReadInt64() (int64, error) {
	b := r.scratch[:8]
	if _, err := io.ReadFull(r.in, b); err != nil {
		return 0, err
	}
	return int64(b[0])<<56 | int64(b[1])<<48 | int64(b[2])<<40 | int64(b[3])<<32 |
		int64(b[4])<<24 | int64(b[5])<<16 | int64(b[6])<<8 | int64(b[7]), nil
}

// ReadBuffer reads a length-prefixed buffer and skips its alignment padding.
// A zero length yields an empty, non-nil slice. Lengths outside
// [0, MaxBufferLength] fail with a FrameError.
func (r *Reader) ReadBuffer() ([]byte, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > MaxBufferLength {
		return nil, &FrameError{Field: "buffer", Length: int64(n)}
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r.in, data); err != nil {
		return nil, err
	}
	if err := r.SkipPadding(int(n)); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadString reads a length-prefixed buffer as raw text bytes. Interpreting
// them under the connection character set is the caller's concern.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBuffer()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadRaw fills p entirely with unframed bytes.
func (r *Reader) ReadRaw(p []byte) error {
	_, err := io.ReadFull(r.in, p)
	return err
}

// ReadByte reads a single raw byte.
func (r *Reader) ReadByte() (byte, error) {
	return r.in.ReadByte()
}

// SkipPadding consumes the 0-3 alignment bytes that follow a field of the
// given length.
func (r *Reader) SkipPadding(length int) error {
	pad := (4 - length) & 3
	if pad == 0 {
		return nil
	}
	_, err := io.ReadFull(r.in, r.scratch[:pad])
	return err
}

// InstallCipher splices stream into the inbound transform chain, exactly
// once per connection.
//
// Bytes already buffered at the moment of the splice were received before
// the peer switched and stay readable as plaintext; the cipher applies to
// everything after them. A second call fails with ErrAlreadyEncrypted and
// leaves the first cipher intact.
func (r *Reader) InstallCipher(stream cipher.Stream) error {
	if r.encrypted {
		return ErrAlreadyEncrypted
	}
	leftover := make([]byte, r.in.Buffered())
	if len(leftover) > 0 {
		if _, err := io.ReadFull(r.in, leftover); err != nil {
			return err
		}
	}
	r.direct = cipher.StreamReader{S: stream, R: r.raw}
	r.encrypted = true
	if len(leftover) > 0 {
		r.in = bufio.NewReaderSize(io.MultiReader(bytes.NewReader(leftover), r.direct), bufSize)
	} else {
		r.in = bufio.NewReaderSize(r.direct, bufSize)
	}
	return nil
}

// Encrypted reports whether a cipher has been installed.
func (r *Reader) Encrypted() bool {
	return r.encrypted
}

// Close closes the underlying stream when it is closeable.
func (r *Reader) Close() error {
	if c, ok := r.raw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
