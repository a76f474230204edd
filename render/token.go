package render

import "sync/atomic"

// Token is the cancellation handle of one page render. The caller keeps
// one token per outstanding render; once cancelled, in-flight line
// iterations for that render stop producing side effects at the next
// line boundary.
//
// Cancellation is cooperative, not preemptive: a line already being
// positioned finishes, and the check before the next line halts the rest.
// Cancelling is not an error; the render resolves with a partial result.
//
// Token is safe for concurrent use.
type Token struct {
	cancelled atomic.Bool
	bound     atomic.Bool
}

// NewToken creates an uncancelled token.
func NewToken() *Token {
	return &Token{}
}

// Cancel requests cancellation. Idempotent.
func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}

// acquire binds the token to one scheduler. A token drives at most one
// render; binding twice fails.
func (t *Token) acquire() bool {
	return !t.bound.Swap(true)
}
