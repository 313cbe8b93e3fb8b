// Package pbuf models the tagged parameter buffers that describe attach,
// service and transaction requests: an ordered sequence of (tag, value)
// items behind a buffer-kind-specific version byte.
//
// Items are appended by request-construction code and serialized exactly
// once through the wire codec; tag legality is a property of the buffer kind
// and is enforced by the request builders, not here.
package pbuf

import (
	"fmt"

	"github.com/rcastelli/fbwire/internal/wire/xdr"
)

// Kind distinguishes the parameter buffer families. The kind fixes the
// version byte written ahead of the items and selects which tag table the
// item tags are read against; it does not change the wire framing.
type Kind int

const (
	KindDatabase Kind = iota
	KindService
	KindTransaction
)

func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindService:
		return "service"
	case KindTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}

// versionByte returns the version byte for the kind.
func (k Kind) versionByte() int {
	switch k {
	case KindDatabase:
		return DPBVersion1
	case KindService:
		return SPBVersion
	case KindTransaction:
		return TPBVersion3
	default:
		return 0
	}
}

// maxValueLength is the largest value a single item can carry: item values
// are framed with a one-byte length.
const maxValueLength = 255

// item is one tag/value pair. Values are captured fully encoded at append
// time and never mutated afterwards; a nil value slice marks a tag-only
// item, which writes the bare tag byte.
type item struct {
	tag   int
	value []byte
}

// wireLen returns the number of bytes the item occupies inside the buffer.
func (it item) wireLen() int {
	if it.value == nil {
		return 1
	}
	return 2 + len(it.value)
}

// Buffer is an ordered parameter buffer of one kind. The zero value is not
// usable; construct through NewDatabase, NewService or NewTransaction.
//
// Buffer implements the codec's Streamable contract over its items (the
// version byte is supplied as the typed-frame tag, so the serialized form is
// [version byte][item, item, ...] with no buffer-level padding).
type Buffer struct {
	kind  Kind
	enc   xdr.Encoder
	items []item
}

// NewDatabase returns an empty database attach parameter buffer. Text items
// are encoded through enc.
func NewDatabase(enc xdr.Encoder) *Buffer {
	return &Buffer{kind: KindDatabase, enc: enc}
}

// NewService returns an empty service attach parameter buffer.
func NewService(enc xdr.Encoder) *Buffer {
	return &Buffer{kind: KindService, enc: enc}
}

// NewTransaction returns an empty transaction parameter buffer. Transaction
// buffers carry no text, so no encoder is needed.
func NewTransaction() *Buffer {
	return &Buffer{kind: KindTransaction}
}

// Kind returns the buffer kind.
func (b *Buffer) Kind() Kind { return b.kind }

// Type returns the version byte written ahead of the items, which is also
// the tag of the typed frame the buffer serializes into.
func (b *Buffer) Type() int { return b.kind.versionByte() }

// AddTag appends a tag-only item.
func (b *Buffer) AddTag(tag int) {
	b.items = append(b.items, item{tag: tag})
}

// AddByte appends a single-byte item.
func (b *Buffer) AddByte(tag int, v byte) {
	b.items = append(b.items, item{tag: tag, value: []byte{v}})
}

// AddInt16 appends a 16-bit integer item. Numeric parameter values travel
// little-endian inside the buffer (historic VAX order), unlike the
// big-endian framing around it.
func (b *Buffer) AddInt16(tag int, v int16) {
	b.items = append(b.items, item{tag: tag, value: []byte{
		byte(v), byte(v >> 8),
	}})
}

// AddInt32 appends a 32-bit integer item, little-endian.
func (b *Buffer) AddInt32(tag int, v int32) {
	b.items = append(b.items, item{tag: tag, value: []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
	}})
}

// AddInt64 appends a 64-bit integer item, little-endian.
func (b *Buffer) AddInt64(tag int, v int64) {
	b.items = append(b.items, item{tag: tag, value: []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	}})
}

// AddString appends a text item, encoded through the buffer's encoder at
// append time. Fails when the buffer has no encoder, the text cannot be
// encoded, or the encoded form exceeds the one-byte length limit.
func (b *Buffer) AddString(tag int, s string) error {
	if b.enc == nil {
		return fmt.Errorf("pbuf: %s buffer has no text encoder", b.kind)
	}
	v, err := b.enc.Encode(s)
	if err != nil {
		return err
	}
	return b.AddBytes(tag, v)
}

// AddBytes appends a raw byte item. The value is copied; the caller keeps
// ownership of v.
func (b *Buffer) AddBytes(tag int, v []byte) error {
	if len(v) > maxValueLength {
		return fmt.Errorf("pbuf: value for tag %d is %d bytes, limit %d", tag, len(v), maxValueLength)
	}
	val := make([]byte, len(v))
	copy(val, v)
	b.items = append(b.items, item{tag: tag, value: val})
	return nil
}

// Has reports whether any item with the tag is present.
func (b *Buffer) Has(tag int) bool {
	for _, it := range b.items {
		if it.tag == tag {
			return true
		}
	}
	return false
}

// Len returns the serialized length of the items, excluding the version
// byte. Part of the Streamable contract.
func (b *Buffer) Len() int {
	n := 0
	for _, it := range b.items {
		n += it.wireLen()
	}
	return n
}

// WriteTo writes the items (tag, one-byte length, value bytes; bare tag for
// tag-only items) through the codec. Part of the Streamable contract; the
// version byte is emitted by the typed frame around it.
func (b *Buffer) WriteTo(w *xdr.Writer) error {
	for _, it := range b.items {
		if err := w.WriteByte(byte(it.tag)); err != nil {
			return err
		}
		if it.value == nil {
			continue
		}
		if err := w.WriteByte(byte(len(it.value))); err != nil {
			return err
		}
		if _, err := w.Write(it.value); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the full serialized buffer including the leading version
// byte, for requests that carry the buffer as a plain length-prefixed blob
// rather than a typed frame.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, 1+b.Len())
	out = append(out, byte(b.Type()))
	for _, it := range b.items {
		out = append(out, byte(it.tag))
		if it.value != nil {
			out = append(out, byte(len(it.value)))
			out = append(out, it.value...)
		}
	}
	return out
}
