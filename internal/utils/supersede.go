package utils

import (
	"context"
	"errors"
	"sync"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
)

// SupersedeGroup tracks one in-flight operation per key. Starting a new
// operation for a key cancels the previous one with apperrors.ErrSuperseded
// as the context cause.
type SupersedeGroup struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]inflightOp
}

type inflightOp struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

// NewSupersedeGroup returns an empty group.
func NewSupersedeGroup() *SupersedeGroup {
	return &SupersedeGroup{inflight: make(map[string]inflightOp)}
}

// Begin registers a new operation for key and returns its context. done must
// be called when the operation finishes.
func (g *SupersedeGroup) Begin(parent context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)

	g.mu.Lock()
	g.seq++
	seq := g.seq
	if prev, ok := g.inflight[key]; ok {
		prev.cancel(apperrors.ErrSuperseded)
	}
	g.inflight[key] = inflightOp{seq: seq, cancel: cancel}
	g.mu.Unlock()

	done := func() {
		g.mu.Lock()
		if cur, ok := g.inflight[key]; ok && cur.seq == seq {
			delete(g.inflight, key)
		}
		g.mu.Unlock()
		cancel(context.Canceled)
	}
	return ctx, done
}

// Superseded reports whether ctx was cancelled by a newer operation.
func Superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), apperrors.ErrSuperseded)
}
