// Package shape wraps the glyph-shaping engine behind the narrow contract
// the rest of the pipeline consumes: shape one line, get back glyph records
// with advances, offsets, cluster ids, elongation allowances, and marker
// flags. The engine itself (HarfBuzz via go-text/typesetting) is opaque to
// callers.
package shape

import (
	"golang.org/x/image/math/fixed"

	"github.com/qurankit/mushaf"
)

// GlyphID identifies a glyph within the layout's font.
type GlyphID uint32

// Glyph is one shaped glyph record. Glyphs are immutable once produced for
// a given (page, line, fontScale) tuple; the justification engine reads
// them and produces positioned copies, never mutating the originals.
//
// All geometry is in the shaping engine's 26.6 fixed-point space.
type Glyph struct {
	// GID is the glyph index within the font.
	GID GlyphID

	// Cluster is the rune index in the line's source text of the cluster
	// this glyph belongs to. Glyphs sharing a cluster form one ligature
	// group and are never split by justification.
	Cluster int

	// Word is the zero-based index of the source word within the line.
	Word int

	// XAdvance and YAdvance are the pen advances after this glyph.
	XAdvance, YAdvance fixed.Int26_6

	// XOffset and YOffset are fine positioning adjustments applied on top
	// of the pen position.
	XOffset, YOffset fixed.Int26_6

	// MaxElong is the maximum extra advance justification may apply at
	// this glyph. Zero means the glyph is rigid. At most one glyph per
	// cluster carries a non-zero allowance (the cluster's designated
	// stretch point).
	MaxElong fixed.Int26_6

	// Class is the glyph's tajweed recitation-class tag, or "" if none.
	Class string

	// VerseEnd marks an end-of-ayah sign glyph.
	VerseEnd bool

	// BeginSajda and EndSajda delimit a prostration span on the line.
	BeginSajda bool
	EndSajda   bool
}

// Line is one shaped line: the ordered glyph sequence plus the line's
// declared metrics. Lines are created per render and discarded when the
// page is re-rendered or unmounted.
type Line struct {
	// Type classifies the line slot (body, surah header, basmala).
	Type mushaf.LineType

	// Glyphs is the shaped glyph sequence in reading order.
	Glyphs []Glyph

	// StartX is the line's declared start-x offset from the right edge of
	// the text column.
	StartX fixed.Int26_6

	// Scale is the line's font-size multiplier relative to body text.
	Scale float64

	// Ascent and Descent are the font's vertical metrics at the shaped
	// size, for baseline placement.
	Ascent, Descent fixed.Int26_6

	// Text is the line's plain source text (accessibility surface).
	Text string

	// WordCount is the number of source words on the line.
	WordCount int
}

// NaturalWidth returns the unstretched total advance of the line.
func (l *Line) NaturalWidth() fixed.Int26_6 {
	var w fixed.Int26_6
	for i := range l.Glyphs {
		w += l.Glyphs[i].XAdvance
	}
	return w
}

// SurahEntry is one row of the surah outline (table of contents):
// a surah's display name and the zero-based page its header appears on.
type SurahEntry struct {
	Number    int
	Name      string
	StartPage int
}

// Flags select which per-glyph annotations a shape call carries through.
type Flags uint8

const (
	// FlagTajweed carries tajweed class tags onto glyphs.
	FlagTajweed Flags = 1 << iota
	// FlagMarkers carries sajda and verse-boundary flags onto glyphs.
	FlagMarkers
)

// DefaultFlags enables all annotations.
const DefaultFlags = FlagTajweed | FlagMarkers

// LineRequest identifies one line to shape.
type LineRequest struct {
	Page      int
	Line      int
	FontScale float64
	// Justify requests elongation allowances on the shaped glyphs. When
	// false every glyph is rigid (MaxElong zero).
	Justify bool
	Flags   Flags
}

// Shaper is the glyph-shaping collaborator contract. Implementations must
// be safe for concurrent use across distinct lines.
type Shaper interface {
	// ShapeLine shapes one line and returns a handle owning the result.
	// The caller must call Release on the handle after consuming it.
	ShapeLine(req LineRequest) (*LineHandle, error)

	// Outline returns the surah table of contents for navigation.
	Outline() ([]SurahEntry, error)

	// Close tears down the shaper and releases font resources.
	Close() error
}
