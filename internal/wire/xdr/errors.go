package xdr

import (
	"errors"
	"fmt"
)

// ErrAlreadyEncrypted is returned by InstallCipher when a cipher has already
// been installed in that direction. The first installation stays intact.
var ErrAlreadyEncrypted = errors.New("xdr: stream already encrypted")

// FrameError reports a length field that violates the framing contract,
// for example a buffer length that is negative or beyond the frame limit.
// It signals a malformed peer reply; the connection must be discarded.
type FrameError struct {
	// Field names the frame element whose length was rejected.
	Field string

	// Length is the offending value as read off the wire.
	Length int64
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("xdr: malformed frame: %s length %d out of range", e.Field, e.Length)
}
