package proto

import (
	"errors"

	"github.com/rcastelli/fbwire/internal/wire/pbuf"
)

// ErrNotSupported is returned by operations the negotiated protocol
// generation does not provide (e.g. op_ping before version 13).
var ErrNotSupported = errors.New("proto: operation not supported by negotiated protocol version")

// Statement free modes (op_free_statement).
const (
	DSQLClose = 1
	DSQLDrop  = 2
)

// Database is the version-specific database session handler. The handler
// for generation N accepts every operation generation N-1 accepts unless a
// message was explicitly superseded; newer generations add operations that
// older ones answer with ErrNotSupported.
//
// Handlers perform wire I/O only; SQL semantics, row mapping and pooling
// live above this layer.
type Database interface {
	// Attach sends op_attach with the serialized database parameter buffer
	// and records the attachment handle from the response.
	Attach(path string, dpb *pbuf.Buffer) error

	// Create sends op_create, attaching to a freshly created database.
	Create(path string, dpb *pbuf.Buffer) error

	// Detach sends op_detach and releases the attachment.
	Detach() error

	// Drop sends op_drop_database, deleting the attached database.
	Drop() error

	// Info sends op_info_database for the requested info items and returns
	// the raw info reply buffer.
	Info(items []byte, maxLength int32) ([]byte, error)

	// BeginTransaction sends op_transaction with the transaction parameter
	// buffer in the typed-frame convention.
	BeginTransaction(tpb *pbuf.Buffer) (Transaction, error)

	// Cancel aborts a running operation out of band (generation 12+).
	Cancel() error

	// Ping checks connection liveness (generation 13+).
	Ping() error

	// Handle returns the attachment object handle.
	Handle() int32

	// Conn exposes the underlying stream state, for statement and service
	// handlers layered on the same connection.
	Conn() *Conn
}

// Transaction is a started wire transaction.
type Transaction interface {
	// Handle returns the transaction object handle.
	Handle() int32

	Commit() error
	Rollback() error

	// CommitRetaining commits keeping the transaction context alive.
	CommitRetaining() error

	// RollbackRetaining rolls back keeping the transaction context alive.
	RollbackRetaining() error

	// Info sends op_info_transaction and returns the raw info buffer.
	Info(items []byte, maxLength int32) ([]byte, error)
}

// Statement is a wire statement handler. Message formats (BLR and message
// blobs) are produced and interpreted by the SQL layer; this layer moves
// them byte-exactly.
type Statement interface {
	// Allocate sends op_allocate_statement (deferred on generations that
	// batch it with the next prepare).
	Allocate() error

	// Prepare sends op_prepare_statement and returns the raw describe info
	// reply requested alongside it.
	Prepare(tr Transaction, sql string, dialect int32, infoItems []byte) ([]byte, error)

	// Execute sends op_execute with the caller-supplied parameter BLR and
	// message blob (both may be nil for parameterless statements).
	Execute(tr Transaction, blr, message []byte) error

	// Fetch requests up to maxRows rows; each returned row is the raw
	// message blob of messageLength bytes. more is false once the cursor
	// reports exhaustion.
	Fetch(blr []byte, messageLength, maxRows int32) (rows [][]byte, more bool, err error)

	// Free sends op_free_statement with DSQLClose or DSQLDrop.
	Free(mode int32) error

	// Handle returns the statement object handle.
	Handle() int32
}

// Service is the service-manager session handler.
type Service interface {
	// Attach sends op_service_attach with the service parameter buffer.
	Attach(name string, spb *pbuf.Buffer) error

	// Detach sends op_service_detach.
	Detach() error

	// Start sends op_service_start with the action request blob, assembled
	// by the service layer (action buffers carry no version byte).
	Start(request []byte) error

	// Query sends op_service_info and returns the raw reply buffer.
	Query(sendItems, requestItems []byte, maxLength int32) ([]byte, error)

	// Handle returns the service object handle.
	Handle() int32
}
