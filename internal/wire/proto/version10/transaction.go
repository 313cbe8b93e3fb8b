package version10

import (
	"github.com/rcastelli/fbwire/internal/wire/proto"
)

// Transaction is a started generation 10 wire transaction.
type Transaction struct {
	db     *Database
	handle int32
}

// Handle returns the transaction object handle.
func (t *Transaction) Handle() int32 { return t.handle }

// Commit sends op_commit, ending the transaction.
func (t *Transaction) Commit() error {
	return t.db.sendHandleOp(proto.OpCommit, "op_commit", t.handle)
}

// Rollback sends op_rollback, ending the transaction.
func (t *Transaction) Rollback() error {
	return t.db.sendHandleOp(proto.OpRollback, "op_rollback", t.handle)
}

// CommitRetaining commits while keeping the transaction context alive for
// further work under the same handle.
func (t *Transaction) CommitRetaining() error {
	return t.db.sendHandleOp(proto.OpCommitRetaining, "op_commit_retaining", t.handle)
}

// RollbackRetaining rolls back while keeping the transaction context alive.
func (t *Transaction) RollbackRetaining() error {
	return t.db.sendHandleOp(proto.OpRollbackRetain, "op_rollback_retaining", t.handle)
}

// Info sends op_info_transaction and returns the raw info reply.
func (t *Transaction) Info(items []byte, maxLength int32) ([]byte, error) {
	return t.db.infoRequest(proto.OpInfoTransaction, "op_info_transaction", t.handle, items, maxLength)
}
