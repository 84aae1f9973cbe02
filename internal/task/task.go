// Package task runs fetches as cancellable tasks owned by a Group. Tasks
// are keyed by kind: starting a task cancels the running task of the same
// kind, and closing the group cancels everything. A result is only worth
// applying when its task is still the latest of its kind.
package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Handle identifies one started task.
type Handle struct {
	Kind string
	Seq  uint64
	// ID correlates log lines for the task.
	ID  string
	Ctx context.Context
}

type entry struct {
	seq    uint64
	cancel context.CancelFunc
}

// Group owns a set of keyed tasks. The zero value is not usable; use
// NewGroup.
type Group struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	seq     uint64
	latest  map[string]uint64
	running map[string]entry
}

// NewGroup returns a group whose tasks all end when parent does.
func NewGroup(parent context.Context) *Group {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Group{
		ctx:     ctx,
		cancel:  cancel,
		latest:  make(map[string]uint64),
		running: make(map[string]entry),
	}
}

// Start begins a task of the given kind, cancelling the previous one.
// After Close, the returned context is already cancelled.
func (g *Group) Start(kind string) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.running[kind]; ok {
		prev.cancel()
		delete(g.running, kind)
	}
	g.seq++
	ctx, cancel := context.WithCancel(g.ctx)
	g.latest[kind] = g.seq
	g.running[kind] = entry{seq: g.seq, cancel: cancel}
	return Handle{Kind: kind, Seq: g.seq, ID: uuid.NewString(), Ctx: ctx}
}

// Cancel stops the running task of kind, if any. Its result is no longer
// current.
func (g *Group) Cancel(kind string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.running[kind]; ok {
		e.cancel()
		delete(g.running, kind)
	}
	delete(g.latest, kind)
}

// Done releases the task's context. It is safe to call more than once.
func (g *Group) Done(h Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.running[h.Kind]; ok && e.seq == h.Seq {
		e.cancel()
		delete(g.running, h.Kind)
	}
}

// Current reports whether h is the latest task of its kind and the group
// is still open.
func (g *Group) Current(h Handle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ctx.Err() != nil {
		return false
	}
	seq, ok := g.latest[h.Kind]
	return ok && seq == h.Seq
}

// Running reports whether a task of kind has started and not finished.
func (g *Group) Running(kind string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.running[kind]
	return ok
}

// Close cancels every task. Later results are never current.
func (g *Group) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancel()
	for kind, e := range g.running {
		e.cancel()
		delete(g.running, kind)
	}
}
