// Package xdr implements the XDR-style framing used by the Firebird wire
// protocol: big-endian integers and length-prefixed variable data aligned to
// 4-byte boundaries, as in RFC 4506, plus the protocol's own extensions
// (typed parameter items with tag-inclusive alignment, space-padded fixed
// text fields, and a one-shot mid-stream cipher splice).
//
// Key characteristics of the format:
//   - Big-endian byte order for all multi-byte integers
//   - Variable-length data is preceded by a 4-byte length
//   - Variable-length data is zero-padded to a 4-byte boundary
//   - Typed items are framed as [total length][tag byte][item bytes] with
//     alignment computed over the tag-inclusive total length
//
// The Writer and Reader own the per-connection transform chain
// (raw transport <-> optional cipher <-> optional buffering) and are not safe
// for concurrent use; one connection is driven by one goroutine at a time.
package xdr
