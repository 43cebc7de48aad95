package state

import (
	"sync"

	"github.com/google/uuid"
)

type taskKind string

const (
	taskSession  taskKind = "session"
	taskCatalog  taskKind = "catalog"
	taskLoad     taskKind = "load"
	taskCheckout taskKind = "checkout"
)

type taskToken = uuid.UUID

// taskRegistry tracks the current request token per task kind. A network
// response is applied only if its token is still current when it arrives.
type taskRegistry struct {
	mu      sync.Mutex
	current map[taskKind]taskToken
}

// begin issues a fresh token, superseding every request of the same kind.
func (r *taskRegistry) begin(kind taskKind) taskToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotate(kind)
}

// join returns the current token so concurrent requests of one kind can all land.
func (r *taskRegistry) join(kind taskKind) taskToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tok, ok := r.current[kind]; ok {
		return tok
	}
	return r.rotate(kind)
}

// invalidate discards whatever is in flight for kind.
func (r *taskRegistry) invalidate(kind taskKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.current[kind]; ok {
		r.rotate(kind)
	}
}

func (r *taskRegistry) valid(kind taskKind, tok taskToken) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current[kind] == tok
}

func (r *taskRegistry) rotate(kind taskKind) taskToken {
	if r.current == nil {
		r.current = make(map[taskKind]taskToken)
	}
	tok := uuid.New()
	r.current[kind] = tok
	return tok
}
