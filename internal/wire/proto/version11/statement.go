package version11

import (
	"github.com/rcastelli/fbwire/internal/logger"
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/proto/version10"
)

// Statement overrides the v10 statement handler with generation 11 lazy
// send: allocation and close are written without waiting for their
// responses, which drain - in send order - before the next synchronous
// response is read. Until the allocation response arrives the statement
// travels under the reserved invalid handle, which the server resolves to
// the just-allocated statement.
type Statement struct {
	*version10.Statement

	// deferredErr holds the first error delivered to a deferred response,
	// surfaced on the next synchronous operation.
	deferredErr error
}

// NewStatement builds a v11 statement handler on a database session.
func NewStatement(db proto.Database) *Statement {
	return &Statement{Statement: version10.NewStatement(db)}
}

// Allocate sends op_allocate_statement without reading the response. The
// handle is recorded when the deferred response drains.
func (s *Statement) Allocate() error {
	if err := s.SendAllocate(); err != nil {
		return err
	}
	s.DB().Conn().EnqueueDeferred("op_allocate_statement", func(resp *proto.Response, err error) {
		if err != nil {
			s.recordDeferredErr(err)
			return
		}
		s.SetHandle(resp.Handle)
	})
	return nil
}

// Prepare first surfaces any error a deferred packet produced, then runs
// the v10 prepare (the deferred responses drain ahead of the prepare
// response, so a pending allocation resolves before its handle is needed).
func (s *Statement) Prepare(tr proto.Transaction, sql string, dialect int32, infoItems []byte) ([]byte, error) {
	if err := s.takeDeferredErr(); err != nil {
		return nil, err
	}
	return s.Statement.Prepare(tr, sql, dialect, infoItems)
}

// Execute surfaces deferred errors before running the v10 execute.
func (s *Statement) Execute(tr proto.Transaction, blr, message []byte) error {
	if err := s.takeDeferredErr(); err != nil {
		return err
	}
	return s.Statement.Execute(tr, blr, message)
}

// Free defers the close variant; dropping a statement stays synchronous.
func (s *Statement) Free(mode int32) error {
	if err := s.takeDeferredErr(); err != nil {
		return err
	}
	if mode != proto.DSQLClose {
		return s.Statement.Free(mode)
	}
	if err := s.SendFree(mode); err != nil {
		return err
	}
	s.DB().Conn().EnqueueDeferred("op_free_statement", func(_ *proto.Response, err error) {
		if err != nil {
			s.recordDeferredErr(err)
		}
	})
	return nil
}

func (s *Statement) recordDeferredErr(err error) {
	logger.Warn("deferred statement operation failed",
		"handle", s.Handle(),
		"error", err)
	if s.deferredErr == nil {
		s.deferredErr = err
	}
}

func (s *Statement) takeDeferredErr() error {
	err := s.deferredErr
	s.deferredErr = nil
	return err
}
