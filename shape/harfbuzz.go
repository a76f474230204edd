package shape

import (
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/qurankit/mushaf"
)

// DefaultEmSize is the body-text font size in shaping-space units at font
// scale 1.0. Line leading constants in the root package assume this size.
const DefaultEmSize = 48.0

// HarfBuzz shapes mushaf lines through go-text/typesetting's HarfBuzz
// implementation.
//
// HarfBuzz is safe for concurrent use. The parsed font.Font is read-only;
// lightweight font.Face instances are created per ShapeLine call (font.Face
// is NOT safe for concurrent use). HarfbuzzShaper instances are pooled via
// sync.Pool since they also are not concurrent-safe. Shaped lines are
// pooled too: LineHandle.Release returns a line's glyph backing for reuse,
// which is why consumers must not touch a line after releasing it.
type HarfBuzz struct {
	layout mushaf.Layout
	source *FontSource
	ts     mushaf.TextService

	// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper has
	// internal mutable state (buffer) and is NOT safe for concurrent use,
	// but reusing across sequential calls is efficient.
	shaperPool sync.Pool

	// linePool recycles Line allocations across the per-line
	// allocate/release cycle of a page render.
	linePool sync.Pool

	outlineOnce sync.Once
	outline     []SurahEntry
	outlineErr  error
}

// Compile-time check that HarfBuzz implements Shaper.
var _ Shaper = (*HarfBuzz)(nil)

// NewHarfBuzz creates a shaper for one layout over one font source and
// text service.
func NewHarfBuzz(layout mushaf.Layout, source *FontSource, ts mushaf.TextService) *HarfBuzz {
	return &HarfBuzz{
		layout: layout,
		source: source,
		ts:     ts,
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		linePool: sync.Pool{
			New: func() any {
				return &Line{Glyphs: make([]Glyph, 0, 64)}
			},
		},
	}
}

// ShapeLine implements Shaper. It shapes one line of the layout's text and
// returns a handle the caller must release after consuming.
func (h *HarfBuzz) ShapeLine(req LineRequest) (*LineHandle, error) {
	fnt := h.source.Font()
	if fnt == nil {
		return nil, mushaf.ErrShaperUnavailable
	}
	if !h.layout.ValidPage(req.Page) {
		return nil, &mushaf.PageIndexError{Page: req.Page, Count: h.layout.PageCount()}
	}

	lines, err := h.ts.Lines(h.layout, req.Page)
	if err != nil {
		return nil, err
	}
	if req.Line < 0 || req.Line >= len(lines) {
		return nil, &mushaf.LineIndexError{Page: req.Page, Line: req.Line, Count: len(lines)}
	}
	src := lines[req.Line]

	fs := req.FontScale
	if fs == 0 {
		fs = 1.0
	}
	size := DefaultEmSize * fs

	ln := h.linePool.Get().(*Line)
	*ln = Line{
		Type:      src.Type,
		Glyphs:    ln.Glyphs[:0],
		StartX:    mushaf.FloatToFixed(src.Indent * size),
		Scale:     lineScale(src),
		Text:      joinWords(src.Words),
		WordCount: len(src.Words),
	}

	runes, wordOf, wordStart := flattenWords(src.Words)
	if len(runes) == 0 {
		return newLineHandle(ln, h.releaseLine), nil
	}

	// font.Face is cheap to create and must not be shared across
	// goroutines; each ShapeLine call gets its own.
	face := font.NewFace(fnt)

	for _, seg := range segmentLine(runes) {
		input := shaping.Input{
			Text:      runes,
			RunStart:  seg.Start,
			RunEnd:    seg.End,
			Direction: seg.Dir,
			Face:      face,
			Size:      mushaf.FloatToFixed(size),
			Script:    detectScript(runes[seg.Start:seg.End]),
			Language:  language.NewLanguage("ar"),
		}

		hb := h.shaperPool.Get().(*shaping.HarfbuzzShaper)
		out := hb.Shape(input)
		h.shaperPool.Put(hb)

		if out.LineBounds.Ascent > ln.Ascent {
			ln.Ascent = out.LineBounds.Ascent
		}
		if d := -out.LineBounds.Descent; d > ln.Descent {
			ln.Descent = d
		}

		h.appendRun(ln, out.Glyphs, runes, wordOf, wordStart, src.Words, req)
	}

	if req.Flags&FlagMarkers != 0 {
		flagSajda(ln, src.Words)
	}
	return newLineHandle(ln, h.releaseLine), nil
}

// appendRun converts one shaped run into Glyph records appended to the
// line. HarfBuzz emits glyphs in visual left-to-right order; the run is
// reversed so the line's glyph sequence follows the right-to-left pen
// placement order the justifier walks.
func (h *HarfBuzz) appendRun(ln *Line, glyphs []shaping.Glyph, runes []rune, wordOf []int, wordStart []int, words []mushaf.Word, req LineRequest) {
	// A ligature cluster gets one stretch point, on its first glyph in
	// placement order. Glyphs of one cluster are adjacent in the output.
	prevElongCluster := -1
	for i := len(glyphs) - 1; i >= 0; i-- {
		g := glyphs[i]
		cluster := g.TextIndex()
		if cluster < 0 || cluster >= len(runes) {
			cluster = 0
		}
		word := wordOf[cluster]

		rec := Glyph{
			GID:      GlyphID(g.GlyphID),
			Cluster:  cluster,
			Word:     word,
			XAdvance: g.Advance,
			XOffset:  g.XOffset,
			YOffset:  g.YOffset,
		}

		if req.Justify && cluster != prevElongCluster {
			rec.MaxElong = elongAllowance(runes, cluster, rec.XAdvance)
			if rec.MaxElong > 0 {
				prevElongCluster = cluster
			}
		}
		if req.Flags&FlagTajweed != 0 && word >= 0 {
			rec.Class = classAt(words[word], cluster-wordStart[word])
		}
		if req.Flags&FlagMarkers != 0 {
			rec.VerseEnd = runes[cluster] == verseEndSign ||
				(word >= 0 && words[word].VerseEnd && cluster == lastRuneOf(wordStart, word, len(runes), words))
		}

		ln.Glyphs = append(ln.Glyphs, rec)
	}
}

// verseEndSign is the Arabic end-of-ayah character.
const verseEndSign = '۝'

// Outline returns the surah table of contents, built once by scanning
// every page for surah-header lines.
func (h *HarfBuzz) Outline() ([]SurahEntry, error) {
	h.outlineOnce.Do(func() {
		for page := 0; page < h.layout.PageCount(); page++ {
			lines, err := h.ts.Lines(h.layout, page)
			if err != nil {
				h.outlineErr = err
				return
			}
			for _, ln := range lines {
				if ln.Type != mushaf.LineSurahHeader {
					continue
				}
				h.outline = append(h.outline, SurahEntry{
					Number:    len(h.outline) + 1,
					Name:      joinWords(ln.Words),
					StartPage: page,
				})
			}
		}
	})
	return h.outline, h.outlineErr
}

// Close releases the font source. In-flight handles stay valid; new
// ShapeLine calls fail with ErrShaperUnavailable.
func (h *HarfBuzz) Close() error {
	return h.source.Close()
}

// releaseLine returns a line's backing storage to the pool.
func (h *HarfBuzz) releaseLine(ln *Line) {
	ln.Glyphs = ln.Glyphs[:0]
	ln.Text = ""
	h.linePool.Put(ln)
}

// lineScale returns the line's declared font-size multiplier, defaulting
// to 1.0.
func lineScale(src mushaf.LineSource) float64 {
	if src.Scale == 0 {
		return 1.0
	}
	return src.Scale
}

// joinWords joins word texts with single spaces.
func joinWords(words []mushaf.Word) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w.Text)
	}
	return b.String()
}

// flattenWords builds the line's rune sequence plus two lookup tables:
// wordOf maps each rune offset to its word index (separator spaces belong
// to the preceding word), and wordStart holds each word's first rune
// offset.
func flattenWords(words []mushaf.Word) (runes []rune, wordOf []int, wordStart []int) {
	wordStart = make([]int, len(words))
	for i, w := range words {
		if i > 0 {
			runes = append(runes, ' ')
			wordOf = append(wordOf, i-1)
		}
		wordStart[i] = len(runes)
		for _, r := range w.Text {
			runes = append(runes, r)
			wordOf = append(wordOf, i)
		}
	}
	return runes, wordOf, wordStart
}

// lastRuneOf returns the rune offset of word's last rune.
func lastRuneOf(wordStart []int, word, total int, words []mushaf.Word) int {
	if word+1 < len(words) {
		return wordStart[word+1] - 2 // exclude the separator space
	}
	return total - 1
}

// classAt returns the tajweed class covering the given word-local rune
// offset, or "".
func classAt(w mushaf.Word, local int) string {
	for _, t := range w.Tags {
		if local >= t.Lo && local < t.Hi {
			return t.Class
		}
	}
	return ""
}

// flagSajda marks the first glyph of a begin-sajda word and the last glyph
// of an end-sajda word. Glyph order is pen placement order, so "first in
// reading order" is the first matching slice element.
func flagSajda(ln *Line, words []mushaf.Word) {
	for w := range words {
		if words[w].BeginSajda {
			for i := range ln.Glyphs {
				if ln.Glyphs[i].Word == w {
					ln.Glyphs[i].BeginSajda = true
					break
				}
			}
		}
		if words[w].EndSajda {
			for i := len(ln.Glyphs) - 1; i >= 0; i-- {
				if ln.Glyphs[i].Word == w {
					ln.Glyphs[i].EndSajda = true
					break
				}
			}
		}
	}
}

// detectScript inspects the runes and returns the script of the first
// non-space character, defaulting to Arabic for all-neutral runs.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Arabic
}
