package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation
// and querying.
const (
	// ========================================================================
	// Protocol & Handshake
	// ========================================================================
	KeyGeneration  = "generation"   // Accepted protocol generation: 10, 11, 12, 13
	KeyArch        = "arch"         // Accepted architecture identifier
	KeyPType       = "ptype"        // Accepted packet type
	KeyOperation   = "operation"    // Wire operation name: op_attach, op_execute, etc.
	KeyAuthPlugin  = "auth_plugin"  // Authentication plugin: Srp, Srp256, Legacy_Auth
	KeyCryptPlugin = "crypt_plugin" // Transport cipher plugin: Arc4, ChaCha
	KeyRounds      = "rounds"       // Authentication round count

	// ========================================================================
	// Attachment & Session
	// ========================================================================
	KeyDatabase    = "database"    // Database path or service name
	KeyUser        = "user"        // Login user name
	KeyRole        = "role"        // SQL role requested at attach
	KeyCharset     = "charset"     // Connection character set
	KeyHandle      = "handle"      // Server object handle
	KeyTransaction = "transaction" // Transaction handle
	KeyStatement   = "statement"   // Statement handle

	// ========================================================================
	// Server Identification
	// ========================================================================
	KeyHost = "host" // Server host
	KeyPort = "port" // Server port

	// ========================================================================
	// I/O
	// ========================================================================
	KeyBytesRead    = "bytes_read"    // Bytes consumed from the transport
	KeyBytesWritten = "bytes_written" // Bytes written to the transport
	KeyRows         = "rows"          // Rows delivered by a fetch
	KeyMore         = "more"          // Cursor has more rows

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Server status-vector error code
	KeySQLState   = "sqlstate"    // SQLSTATE from the status vector
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// ----------------------------------------------------------------------------
// Protocol & Handshake
// ----------------------------------------------------------------------------

// Generation returns a slog.Attr for the accepted protocol generation
func Generation(g int32) slog.Attr {
	return slog.Int(KeyGeneration, int(g))
}

// Operation returns a slog.Attr for a wire operation name
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// AuthPlugin returns a slog.Attr for the authentication plugin name
func AuthPlugin(name string) slog.Attr {
	return slog.String(KeyAuthPlugin, name)
}

// CryptPlugin returns a slog.Attr for the transport cipher plugin name
func CryptPlugin(name string) slog.Attr {
	return slog.String(KeyCryptPlugin, name)
}

// ----------------------------------------------------------------------------
// Attachment & Session
// ----------------------------------------------------------------------------

// Database returns a slog.Attr for the database path or service name
func Database(path string) slog.Attr {
	return slog.String(KeyDatabase, path)
}

// User returns a slog.Attr for the login user name
func User(name string) slog.Attr {
	return slog.String(KeyUser, name)
}

// Charset returns a slog.Attr for the connection character set
func Charset(name string) slog.Attr {
	return slog.String(KeyCharset, name)
}

// Handle returns a slog.Attr for a server object handle
func Handle(h int32) slog.Attr {
	return slog.Int(KeyHandle, int(h))
}

// Transaction returns a slog.Attr for a transaction handle
func Transaction(h int32) slog.Attr {
	return slog.Int(KeyTransaction, int(h))
}

// Statement returns a slog.Attr for a statement handle
func Statement(h int32) slog.Attr {
	return slog.Int(KeyStatement, int(h))
}

// ----------------------------------------------------------------------------
// Server Identification
// ----------------------------------------------------------------------------

// Host returns a slog.Attr for the server host
func Host(h string) slog.Attr {
	return slog.String(KeyHost, h)
}

// Port returns a slog.Attr for the server port
func Port(p int) slog.Attr {
	return slog.Int(KeyPort, p)
}

// ----------------------------------------------------------------------------
// I/O
// ----------------------------------------------------------------------------

// BytesRead returns a slog.Attr for bytes consumed from the transport
func BytesRead(n int) slog.Attr {
	return slog.Int(KeyBytesRead, n)
}

// BytesWritten returns a slog.Attr for bytes written to the transport
func BytesWritten(n int) slog.Attr {
	return slog.Int(KeyBytesWritten, n)
}

// Rows returns a slog.Attr for the row count of a fetch
func Rows(n int) slog.Attr {
	return slog.Int(KeyRows, n)
}

// ----------------------------------------------------------------------------
// Operation Metadata
// ----------------------------------------------------------------------------

// DurationMs returns a slog.Attr for operation duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
// Handles nil errors gracefully by returning an empty attr
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a server status-vector error code
func ErrorCode(code int32) slog.Attr {
	return slog.Int(KeyErrorCode, int(code))
}

// SQLState returns a slog.Attr for the SQLSTATE of a status vector
func SQLState(s string) slog.Attr {
	return slog.String(KeySQLState, s)
}

// ----------------------------------------------------------------------------
// Composite helpers
// ----------------------------------------------------------------------------

// Endpoint returns a slog.Attr with host:port formatted as a single field
func Endpoint(host string, port int) slog.Attr {
	return slog.String(KeyHost, fmt.Sprintf("%s:%d", host, port))
}
