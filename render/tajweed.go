package render

import (
	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/tajweed"
)

// LineColors maps glyph indices of one line (in draw order) to their
// tajweed ink colors. Glyphs rendering in the default ink are absent.
type LineColors map[int]mushaf.RGBA

// ApplyTajweed resolves the tajweed coloring of one page without a full
// render: one color map per line slot, indexed like the corresponding
// LineDraw.Glyphs. Shaped lines come from the registry's cache, so calling
// this after a page render reshapes nothing.
//
// A nil or disabled resolver yields empty maps.
func ApplyTajweed(reg *Registry, layout mushaf.Layout, page int, vp mushaf.Viewport, opts Options, resolver *tajweed.Resolver) ([]LineColors, error) {
	lc, err := reg.context(layout)
	if err != nil {
		return nil, err
	}
	if !layout.ValidPage(page) {
		return nil, &mushaf.PageIndexError{Page: page, Count: layout.PageCount()}
	}

	lines, err := lc.ts.Lines(layout, page)
	if err != nil {
		return nil, err
	}
	lineCount := layout.LineCount(page)
	if len(lines) < lineCount {
		lineCount = len(lines)
	}

	fontScale := vp.ClampedFontScale()
	out := make([]LineColors, lineCount)
	for line := 0; line < lineCount; line++ {
		out[line] = LineColors{}
		if resolver == nil || !resolver.Enabled() {
			continue
		}

		key := LineKey{
			Page:          page,
			Line:          line,
			FontScaleBits: scaleBits(fontScale),
			Justify:       opts.Justify,
			Flags:         opts.Flags,
		}
		ln, err := lc.shapedLine(layout, key, fontScale)
		if err != nil {
			return nil, err
		}
		for i := range ln.Glyphs {
			if c, ok := resolver.Resolve(ln.Glyphs[i]); ok {
				out[line][i] = c
			}
		}
	}
	return out, nil
}
