// Package tajweed resolves recitation-rule class tags to display colors.
//
// The colored-mushaf convention marks glyphs subject to a recitation rule
// with one of eight color classes. A glyph carries at most one class tag;
// resolution is a single map lookup against a palette, with caller
// overrides shallow-merged over the defaults per class key.
package tajweed

import (
	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/shape"
)

// Class is a tajweed recitation-rule color class. Values are the wire
// strings carried by the text annotation data.
type Class string

// The eight classes of the default configuration.
const (
	// ClassRed1 through ClassRed4 mark madd (prolongation) grades, from
	// the two-beat natural madd up to the six-beat necessary madd.
	ClassRed1 Class = "red1"
	ClassRed2 Class = "red2"
	ClassRed3 Class = "red3"
	ClassRed4 Class = "red4"
	// ClassGreen marks ghunnah (nasalization).
	ClassGreen Class = "green"
	// ClassLGreen marks ikhfa (concealment).
	ClassLGreen Class = "lgreen"
	// ClassBlue marks qalqalah (echoing).
	ClassBlue Class = "blue"
	// ClassGray marks silent (unpronounced) letters.
	ClassGray Class = "gray"
)

// Palette maps classes to display colors.
type Palette map[Class]mushaf.RGBA

// DefaultPalette returns the default eight-class palette.
func DefaultPalette() Palette {
	return Palette{
		ClassRed1:   mushaf.Hex("#F6A1A1"),
		ClassRed2:   mushaf.Hex("#F05050"),
		ClassRed3:   mushaf.Hex("#E02020"),
		ClassRed4:   mushaf.Hex("#900000"),
		ClassGreen:  mushaf.Hex("#2E7D32"),
		ClassLGreen: mushaf.Hex("#7CB342"),
		ClassBlue:   mushaf.Hex("#1565C0"),
		ClassGray:   mushaf.Hex("#9E9E9E"),
	}
}

// Merge returns a copy of p with overrides shallow-merged per class key.
// An override for one class never affects another; neither input map is
// modified.
func (p Palette) Merge(overrides Palette) Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Resolver resolves glyph class tags against a palette. The zero value is
// a disabled resolver.
//
// Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	enabled bool
	palette Palette
}

// NewResolver builds a resolver over the default palette merged with the
// given overrides (nil for defaults only).
func NewResolver(overrides Palette, enabled bool) *Resolver {
	return &Resolver{
		enabled: enabled,
		palette: DefaultPalette().Merge(overrides),
	}
}

// Enabled reports whether tajweed display is on.
func (r *Resolver) Enabled() bool { return r.enabled }

// Resolve returns the display color for the glyph's class tag.
//
// When tajweed display is disabled the resolver short-circuits before any
// per-glyph palette work: one branch, regardless of palette size. A false
// result means the glyph renders in the default ink color.
func (r *Resolver) Resolve(g shape.Glyph) (mushaf.RGBA, bool) {
	if !r.enabled {
		return mushaf.RGBA{}, false
	}
	if g.Class == "" {
		return mushaf.RGBA{}, false
	}
	c, ok := r.palette[Class(g.Class)]
	return c, ok
}
