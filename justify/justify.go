// Package justify fills mushaf lines to their target width. Body lines are
// justified by distributing tatweel elongation across glyph clusters that
// declare an allowance; surah-header and basmala lines are centered with a
// uniform, capped scale instead.
//
// All geometry stays in the shaping engine's 26.6 fixed-point space; the
// viewport mapper converts to device pixels afterwards.
package justify

import (
	"golang.org/x/image/math/fixed"

	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/shape"
)

// MaxDisplayScale caps the uniform scale of centered lines relative to
// body text, so a short surah header never visually overpowers the
// surrounding lines.
const MaxDisplayScale = 1.15

// PositionedGlyph is a glyph with its resolved draw position in shaping
// space. X decreases as reading order advances (right-to-left layout).
type PositionedGlyph struct {
	Glyph shape.Glyph

	// X, Y is the glyph's draw position.
	X, Y fixed.Int26_6

	// Elong is the elongation applied at this glyph. The glyph's effective
	// advance is Glyph.XAdvance + Elong.
	Elong fixed.Int26_6
}

// Advance returns the glyph's effective advance including elongation.
func (p PositionedGlyph) Advance() fixed.Int26_6 {
	return p.Glyph.XAdvance + p.Elong
}

// Justify stretches one shaped line to the target width.
//
// The deficit between the line's natural width and target is distributed
// across clusters with a non-zero elongation allowance, proportionally to
// each cluster's allowance and capped so no cluster exceeds it. If every
// cluster saturates, the residual deficit is left as trailing whitespace.
// If the natural width already exceeds target, no compression is applied:
// the line overflows rather than corrupting glyph shapes.
//
// Glyphs must be in pen placement order (right to left). The returned
// positions start at the right edge (x = target - startX) and decrease.
func Justify(glyphs []shape.Glyph, target, startX fixed.Int26_6) []PositionedGlyph {
	natural := naturalWidth(glyphs)
	deficit := target - startX - natural

	var elongs []fixed.Int26_6
	switch {
	case deficit > 0:
		elongs = distribute(glyphs, deficit)
	case deficit < 0:
		mushaf.Logger().Debug("line overflows target width, not compressed",
			"natural", natural.String(), "target", (target - startX).String())
	}

	return place(glyphs, target-startX, elongs)
}

// Center positions a surah-header or basmala line centered in the text
// column. The line is scaled uniformly, never stretched: scale is the
// declared line scale capped at MaxDisplayScale, reduced further if the
// scaled line would not fit the column.
//
// It returns the positioned glyphs and the applied scale.
func Center(glyphs []shape.Glyph, target fixed.Int26_6, declaredScale float64) ([]PositionedGlyph, float64) {
	scale := declaredScale
	if scale <= 0 {
		scale = 1.0
	}
	if scale > MaxDisplayScale {
		scale = MaxDisplayScale
	}

	natural := naturalWidth(glyphs)
	if natural > 0 {
		if fit := mushaf.FixedToFloat(target) / mushaf.FixedToFloat(natural); fit < scale {
			scale = fit
		}
	}

	width := scaleFixed(natural, scale)
	// Right edge of the centered block.
	pen := (target + width) / 2

	out := make([]PositionedGlyph, len(glyphs))
	for i := range glyphs {
		g := glyphs[i]
		adv := scaleFixed(g.XAdvance, scale)
		pen -= adv
		out[i] = PositionedGlyph{
			Glyph: g,
			X:     pen + scaleFixed(g.XOffset, scale),
			Y:     scaleFixed(g.YOffset, scale),
		}
	}
	return out, scale
}

// scaleFixed scales a fixed-point length by a float factor.
func scaleFixed(v fixed.Int26_6, s float64) fixed.Int26_6 {
	return fixed.Int26_6(float64(v) * s)
}

// naturalWidth sums the unstretched advances.
func naturalWidth(glyphs []shape.Glyph) fixed.Int26_6 {
	var w fixed.Int26_6
	for i := range glyphs {
		w += glyphs[i].XAdvance
	}
	return w
}

// distribute splits the deficit across stretchable glyphs proportionally
// to their allowance. Because each share is allowance*deficit/total, a
// deficit not exceeding the total capacity can never overshoot any single
// cluster's cap; a larger deficit saturates every cluster and leaves the
// rest unfilled.
//
// Integer division rounds shares down; the remainder is folded into the
// widest-allowance glyph so the sum lands exactly on the deficit whenever
// capacity allows.
func distribute(glyphs []shape.Glyph, deficit fixed.Int26_6) []fixed.Int26_6 {
	var total fixed.Int26_6
	widest := -1
	for i := range glyphs {
		if glyphs[i].MaxElong > 0 {
			total += glyphs[i].MaxElong
			if widest < 0 || glyphs[i].MaxElong > glyphs[widest].MaxElong {
				widest = i
			}
		}
	}
	if total == 0 {
		return nil
	}

	elongs := make([]fixed.Int26_6, len(glyphs))
	if deficit >= total {
		// Every stretch point saturates; the residual stays as trailing
		// whitespace.
		for i := range glyphs {
			elongs[i] = glyphs[i].MaxElong
		}
		return elongs
	}

	var given fixed.Int26_6
	for i := range glyphs {
		if glyphs[i].MaxElong == 0 {
			continue
		}
		share := fixed.Int26_6(int64(deficit) * int64(glyphs[i].MaxElong) / int64(total))
		elongs[i] = share
		given += share
	}

	// Fold rounding remainder into the widest joint, within its cap.
	if rem := deficit - given; rem > 0 && widest >= 0 {
		if room := glyphs[widest].MaxElong - elongs[widest]; rem > room {
			rem = room
		}
		elongs[widest] += rem
	}
	return elongs
}

// place walks glyphs in pen placement order, starting the pen at the right
// edge and decreasing it by each effective advance.
func place(glyphs []shape.Glyph, right fixed.Int26_6, elongs []fixed.Int26_6) []PositionedGlyph {
	out := make([]PositionedGlyph, len(glyphs))
	pen := right
	for i := range glyphs {
		g := glyphs[i]
		var e fixed.Int26_6
		if elongs != nil {
			e = elongs[i]
		}
		pen -= g.XAdvance + e
		out[i] = PositionedGlyph{
			Glyph: g,
			X:     pen + g.XOffset,
			Y:     g.YOffset,
			Elong: e,
		}
	}
	return out
}
