package proto

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCompatibleVersion is returned when the server accepted none of the
// advertised protocol versions, or accepted one this client never offered.
// The condition is fatal for the connection attempt; retrying with a
// different candidate set is the caller's decision.
var ErrNoCompatibleVersion = errors.New("proto: no compatible protocol version")

// ErrAuthenticationFailed is wrapped by authentication rejections, both
// explicit op_reject replies during the handshake and login-failure status
// vectors on attach.
var ErrAuthenticationFailed = errors.New("proto: authentication failed")

// ErrConnectionClosed is returned by operations on a connection that has
// reached its terminal state.
var ErrConnectionClosed = errors.New("proto: connection closed")

// MalformedResponseError reports a server reply that violates the framing
// contract: an unexpected operation code, a truncated packet, or a length
// field outside the legal range.
type MalformedResponseError struct {
	// Op is the operation context in which the violation was detected.
	Op string

	// Detail describes the violation.
	Detail string

	// Err is the underlying framing error, if any.
	Err error
}

func (e *MalformedResponseError) Error() string {
	var b strings.Builder
	b.WriteString("proto: malformed response")
	if e.Op != "" {
		fmt.Fprintf(&b, " during %s", e.Op)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// TransportError wraps an I/O failure from the underlying byte stream. After
// a TransportError the codec's buffering state is undefined and the
// connection must be discarded.
type TransportError struct {
	// Op is the operation being performed when the transport failed.
	Op string

	// Err is the transport's own error.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("proto: transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// GDSError is a decoded server status vector. Vectors chain a primary error
// code with string and numeric arguments; Error renders the chain in wire
// order.
type GDSError struct {
	// Code is the primary GDS error code.
	Code int32

	// Args are the string arguments accompanying the code, in vector order.
	Args []string

	// SQLState is the SQLSTATE value, when the server sent one.
	SQLState string

	// Next chains a follow-up error from the same vector.
	Next *GDSError
}

func (e *GDSError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gds error %d", e.Code)
	for _, a := range e.Args {
		fmt.Fprintf(&b, ": %s", a)
	}
	if e.SQLState != "" {
		fmt.Fprintf(&b, " (sqlstate %s)", e.SQLState)
	}
	if e.Next != nil {
		fmt.Fprintf(&b, "; %v", e.Next)
	}
	return b.String()
}

// Unwrap surfaces the taxonomy sentinel for well-known codes so callers can
// use errors.Is without matching on numeric codes.
func (e *GDSError) Unwrap() error {
	switch e.Code {
	case gdsLoginFailed, gdsConnectReject:
		return ErrAuthenticationFailed
	}
	return nil
}
