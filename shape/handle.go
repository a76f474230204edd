package shape

import (
	"sync/atomic"

	"github.com/qurankit/mushaf"
)

// LineHandle owns one shaped line and the shaping buffers behind it.
// Ownership is explicit: the shaper allocates, the consumer must call
// Release after it has read the glyphs. The glyph slice is recycled on
// release, so a Line must not be used after Release returns.
//
// Release is idempotent; releasing twice is safe and the second call is a
// no-op. Accessing the line after release returns ErrLineReleased instead
// of corrupt data.
type LineHandle struct {
	line     *Line
	release  func(*Line)
	released atomic.Bool
}

// newLineHandle wraps a shaped line. release may be nil for lines with no
// recyclable backing (test fixtures).
func newLineHandle(line *Line, release func(*Line)) *LineHandle {
	return &LineHandle{line: line, release: release}
}

// NewStaticHandle wraps a caller-built line with no backing buffers to
// recycle. Intended for Shaper fakes in tests and for pre-shaped data.
func NewStaticHandle(line *Line) *LineHandle {
	return newLineHandle(line, nil)
}

// Line returns the shaped line, or an error if the handle was released.
func (h *LineHandle) Line() (*Line, error) {
	if h.released.Load() {
		return nil, mushaf.ErrLineReleased
	}
	return h.line, nil
}

// Release returns the line's shaping buffers to the engine. The line and
// its glyph slice are invalid after Release. Safe to call more than once.
func (h *LineHandle) Release() {
	if h.released.Swap(true) {
		return
	}
	if h.release != nil {
		h.release(h.line)
	}
	h.line = nil
}

// Released reports whether the handle has been released.
func (h *LineHandle) Released() bool {
	return h.released.Load()
}
