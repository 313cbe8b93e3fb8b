package xdr

import (
	"bufio"
	"crypto/cipher"
	"errors"
	"io"
	"unicode/utf8"
)

// ============================================================================
// Output side - Go values -> wire format
// ============================================================================

const (
	// bufSize is the size of the output buffer when buffering is enabled.
	bufSize = 32 * 1024

	// SpaceByte is the padding byte used for fixed-width text fields.
	SpaceByte = 0x20

	// NullByte is the padding byte used for alignment.
	NullByte = 0x00
)

// zeroPad and spacePad back the common 0-3 byte padding writes without
// allocating.
var (
	zeroPad  = [3]byte{}
	spacePad = [3]byte{SpaceByte, SpaceByte, SpaceByte}
)

// ErrUnencodableText is returned when text is written without an encoder and
// the text is not pure 7-bit ASCII. Writing without an encoder is a legacy
// path; new callers should always supply one.
var ErrUnencodableText = errors.New("xdr: text is not 7-bit safe and no encoder was supplied")

// Encoder converts a string to its byte representation under a specific
// connection character set. Implementations must be deterministic and
// side-effect free. See the encoding package for the standard ones.
type Encoder interface {
	Encode(s string) ([]byte, error)
}

// Streamable is implemented by values that can write themselves through a
// Writer, such as serialized parameter buffers. Len must return the exact
// number of bytes WriteTo will produce; WriteTyped depends on it for the
// length prefix and alignment computation.
type Streamable interface {
	Len() int
	WriteTo(w *Writer) error
}

// Writer frames primitive wire values onto an underlying byte stream.
//
// The Writer owns a transform chain: raw transport at the bottom, an optional
// cipher installed mid-handshake by InstallCipher, and an optional buffer on
// top. Ordinary writes go through the buffer; WriteDirect bypasses it for
// handshake bytes that must reach the peer immediately.
//
// Not safe for concurrent use.
type Writer struct {
	// raw is the transport as handed to the constructor. It never changes.
	raw io.Writer

	// direct is the unbuffered target: raw, or the cipher wrapper around raw
	// once a cipher is installed.
	direct io.Writer

	// out is the target of ordinary writes: a buffer over direct when
	// buffering is enabled, direct itself otherwise.
	out io.Writer

	buf       *bufio.Writer // nil when unbuffered
	encrypted bool
	scratch   [8]byte
}

// NewWriter returns a buffered Writer over out.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{raw: out, direct: out}
	w.buf = bufio.NewWriterSize(out, bufSize)
	w.out = w.buf
	return w
}

// NewUnbufferedWriter returns a Writer that writes through to out on every
// operation. Used for auxiliary channels that carry single packets.
func NewUnbufferedWriter(out io.Writer) *Writer {
	return &Writer{raw: out, direct: out, out: out}
}

// WriteInt32 writes v as a big-endian 32-bit integer, exactly 4 bytes.
func (w *Writer) WriteInt32(v int32) error {
	b := w.scratch[:4]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
	_, err := w.out.Write(b)
	return err
}

// WriteInt64 writes v as a big-endian 64-bit integer, exactly 8 bytes.
func (w *Writer) WriteInt64(v int64) error {
	b := w.scratch[:8]
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
	_, err := w.out.Write(b)
	return err
}

// WriteByte writes a single raw byte.
func (w *Writer) WriteByte(b byte) error {
	w.scratch[0] = b
	_, err := w.out.Write(w.scratch[:1])
	return err
}

// Write writes raw bytes with no framing, satisfying io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

// WriteBuffer writes buffer in XDR format: a 4-byte length, the bytes, and
// zero padding to a 4-byte boundary.
//
// A nil buffer is "absent": only a zero length is written. An empty non-nil
// buffer produces the same wire bytes, but the nil form lets callers express
// "no value" without allocating.
func (w *Writer) WriteBuffer(buffer []byte) error {
	if buffer == nil {
		return w.WriteInt32(0)
	}
	n := len(buffer)
	if err := w.WriteInt32(int32(n)); err != nil {
		return err
	}
	if _, err := w.out.Write(buffer); err != nil {
		return err
	}
	return w.WriteAlignment(n)
}

// WriteString encodes s through enc and writes the result as a buffer.
//
// When enc is nil, s must be pure 7-bit ASCII and is written byte for byte;
// anything else fails with ErrUnencodableText. The nil-encoder path exists
// for protocol-internal identifiers (plugin names, key types) that are ASCII
// by definition.
func (w *Writer) WriteString(s string, enc Encoder) error {
	if enc == nil {
		if !isASCII(s) {
			return ErrUnencodableText
		}
		return w.WriteBuffer([]byte(s))
	}
	b, err := enc.Encode(s)
	if err != nil {
		return err
	}
	return w.WriteBuffer(b)
}

// WriteTyped writes a typed item: a 4-byte total length (item length + 1 for
// the tag byte), the tag byte, the item's own serialization, and alignment
// padding computed over the tag-inclusive total length.
//
// A nil item writes total length 1 and the bare tag byte. This is the framing
// used for parameter buffers on attach and transaction requests.
func (w *Writer) WriteTyped(tag int, item Streamable) error {
	size := 1
	if item != nil {
		size = item.Len() + 1
	}
	if err := w.WriteInt32(int32(size)); err != nil {
		return err
	}
	if err := w.WriteByte(byte(tag)); err != nil {
		return err
	}
	if item != nil {
		if err := item.WriteTo(w); err != nil {
			return err
		}
	}
	return w.WriteAlignment(size)
}

// WriteAlignment writes the zero padding that aligns a field of the given
// length to a 4-byte boundary: (4 - length) & 3 bytes, so 0-3 bytes and none
// when length is already a multiple of 4.
func (w *Writer) WriteAlignment(length int) error {
	_, err := w.out.Write(zeroPad[:(4-length)&3])
	return err
}

// WriteZeroPadding writes length zero bytes.
func (w *Writer) WriteZeroPadding(length int) error {
	return w.WritePadding(length, NullByte)
}

// WriteSpacePadding writes length space (0x20) bytes. Space padding fills
// fixed-width text fields; it is not interchangeable with the zero padding
// used for alignment.
func (w *Writer) WriteSpacePadding(length int) error {
	return w.WritePadding(length, SpaceByte)
}

// WritePadding writes length bytes of padByte. Prefer the specific
// WriteZeroPadding and WriteSpacePadding.
func (w *Writer) WritePadding(length int, padByte byte) error {
	if length <= 3 {
		var src []byte
		switch padByte {
		case NullByte:
			src = zeroPad[:]
		case SpaceByte:
			src = spacePad[:]
		}
		if src != nil {
			_, err := w.out.Write(src[:length])
			return err
		}
	}
	pad := make([]byte, length)
	if padByte != 0 {
		for i := range pad {
			pad[i] = padByte
		}
	}
	_, err := w.out.Write(pad)
	return err
}

// WriteDirect writes data to the current direct target, bypassing the output
// buffer, and pushes it onto the wire immediately. Any bytes queued in the
// buffer are flushed first so the on-wire order matches the call order.
//
// Handshake bytes that the peer must observe before further buffered traffic
// go through here. After a cipher is installed the direct target is the
// ciphered wrapper, never the original raw transport.
func (w *Writer) WriteDirect(data []byte) error {
	if w.buf != nil {
		if err := w.buf.Flush(); err != nil {
			return err
		}
	}
	if _, err := w.direct.Write(data); err != nil {
		return err
	}
	return flush(w.direct)
}

// InstallCipher splices stream into the outbound transform chain, exactly
// once per connection: the direct target becomes a ciphered wrapper of the
// raw transport, and buffering is re-established on top of it.
//
// Bytes still queued in the buffer at the moment of the splice were produced
// before the switch and are flushed to the wire in plaintext first; nothing
// is lost or reordered. A second call fails with ErrAlreadyEncrypted and
// leaves the first cipher intact.
func (w *Writer) InstallCipher(stream cipher.Stream) error {
	if w.encrypted {
		return ErrAlreadyEncrypted
	}
	if w.buf != nil {
		if err := w.buf.Flush(); err != nil {
			return err
		}
	}
	w.direct = cipher.StreamWriter{S: stream, W: w.raw}
	w.encrypted = true
	if w.buf != nil {
		w.buf = bufio.NewWriterSize(w.direct, bufSize)
		w.out = w.buf
	} else {
		w.out = w.direct
	}
	return nil
}

// Encrypted reports whether a cipher has been installed.
func (w *Writer) Encrypted() bool {
	return w.encrypted
}

// Flush pushes all buffered bytes to the underlying stream.
func (w *Writer) Flush() error {
	if w.buf != nil {
		if err := w.buf.Flush(); err != nil {
			return err
		}
	}
	return flush(w.direct)
}

// Close flushes buffered bytes and closes the underlying stream when it is
// closeable.
func (w *Writer) Close() error {
	flushErr := w.Flush()
	if c, ok := w.raw.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return flushErr
}

// flush invokes Flush on targets that support it (e.g. cipher wrappers over
// flushable transports); plain writers need no flushing.
func flush(out io.Writer) error {
	type flusher interface{ Flush() error }
	if f, ok := out.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// isASCII reports whether s contains only 7-bit code points.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
