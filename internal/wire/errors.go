package wire

import (
	"fmt"

	"github.com/rcastelli/fbwire/internal/wire/proto"
)

// Re-exported protocol sentinels, so callers depend on one package.
var (
	ErrNoCompatibleVersion  = proto.ErrNoCompatibleVersion
	ErrAuthenticationFailed = proto.ErrAuthenticationFailed
)

// AuthDataTooLongError reports a plugin payload that cannot be carried in
// the connect identification blob.
type AuthDataTooLongError struct {
	Length int
}

func (e *AuthDataTooLongError) Error() string {
	return fmt.Sprintf("wire: auth payload of %d bytes exceeds identification blob capacity", e.Length)
}

// UnknownPluginError reports a plugin name with no registered implementation,
// either from the caller's preference list or from the server's reply.
type UnknownPluginError struct {
	Kind string // "auth" or "wirecrypt"
	Name string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("wire: no %s plugin registered as %q", e.Kind, e.Name)
}

func (e *UnknownPluginError) Unwrap() error {
	if e.Kind == "auth" {
		return ErrAuthenticationFailed
	}
	return nil
}

// CryptRequiredError reports that the caller demanded transport encryption
// but the handshake could not establish it.
type CryptRequiredError struct {
	Reason string
}

func (e *CryptRequiredError) Error() string {
	return "wire: transport encryption required but " + e.Reason
}

// StateError reports a Connection method called in the wrong lifecycle
// state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("wire: %s called on %s connection", e.Op, e.State)
}
