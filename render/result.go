package render

import (
	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/highlight"
	"github.com/qurankit/mushaf/shape"
	"github.com/qurankit/mushaf/verse"
)

// Draw is one positioned glyph in device pixels, ready for the host
// renderer.
type Draw struct {
	GID     shape.GlyphID
	Cluster int
	Word    int

	// X, Y is the glyph draw position in device pixels. X decreases as
	// reading order advances.
	X, Y float64

	// Color is the glyph's resolved tajweed ink, zero for the default ink.
	Color mushaf.RGBA
}

// Rule is a horizontal sajda rule in device pixels, drawn below the
// baseline between X1 (left) and X2 (right).
type Rule struct {
	X1, X2, Y float64
}

// LineDraw is one rendered line: positioned glyph draws, any sajda rules,
// and the line's metrics.
type LineDraw struct {
	Index int
	Type  mushaf.LineType

	// Baseline is the line's baseline y in device pixels.
	Baseline float64

	// Scale is the uniform display scale applied to a centered line
	// (1.0 for body lines).
	Scale float64

	Glyphs []Draw
	Rules  []Rule

	// Text is the line's plain source text (accessibility surface).
	Text string
}

// PageResult is the outcome of one page render: per-line draws plus the
// page's word-element index for hit testing and highlighting. Each page's
// result is independent; there is no shared mutable state across pages.
type PageResult struct {
	Layout mushaf.Layout
	Page   int

	Lines []LineDraw

	// Words maps every word on the page to its device-space bounding
	// rect (the word-element index).
	Words map[verse.WordPosition]mushaf.DeviceRect

	// Highlights is the page's composed per-word highlight colors,
	// populated by ApplyHighlights.
	Highlights map[verse.WordPosition]mushaf.RGBA

	cancelled bool
}

// Cancelled reports whether the render was cancelled before completing.
// A cancelled result is a successful partial result, not a failure.
func (r *PageResult) Cancelled() bool { return r.cancelled }

// WordAt returns the word whose element rect contains the device point.
func (r *PageResult) WordAt(p mushaf.DevicePoint) (verse.WordPosition, bool) {
	for pos, rect := range r.Words {
		if rect.Contains(p) {
			return pos, true
		}
	}
	return verse.WordPosition{}, false
}

// ApplyHighlights composes the groups into the result's per-word highlight
// colors. Later groups win on overlap; words outside the result's page are
// dropped silently.
func ApplyHighlights(res *PageResult, mapping *verse.Mapping, groups []highlight.Group) {
	res.Highlights = highlight.Compose(mapping, groups, res.Page)
}
