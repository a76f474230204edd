package mushaf

import (
	"errors"
	"fmt"
)

// Sentinel errors for the mushaf pipeline.
var (
	// ErrShaperUnavailable is returned when the shaping engine failed to
	// initialize or has been torn down. No page renders are attempted
	// until the layout is re-registered.
	ErrShaperUnavailable = errors.New("mushaf: shaping engine unavailable")

	// ErrLayoutNotRegistered is returned when a render call names a layout
	// the registry does not hold.
	ErrLayoutNotRegistered = errors.New("mushaf: layout not registered")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("mushaf: empty font data")

	// ErrLineReleased is returned when a shaped line is accessed after
	// its handle was released.
	ErrLineReleased = errors.New("mushaf: shaped line used after release")
)

// PageIndexError reports a page index outside [0, PageCount).
// The scheduler performs no partial render when returning it.
type PageIndexError struct {
	Page  int
	Count int
}

func (e *PageIndexError) Error() string {
	return fmt.Sprintf("mushaf: page index %d out of range [0, %d)", e.Page, e.Count)
}

// LineIndexError reports a line index outside the page's line slots.
type LineIndexError struct {
	Page  int
	Line  int
	Count int
}

func (e *LineIndexError) Error() string {
	return fmt.Sprintf("mushaf: line index %d out of range [0, %d) on page %d", e.Line, e.Count, e.Page)
}
