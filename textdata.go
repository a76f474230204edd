package mushaf

import "strings"

// TagSpan marks a run of runes within a word's source text as carrying a
// tajweed recitation class. Lo and Hi are rune offsets, Lo inclusive and
// Hi exclusive. Class values are the wire strings of the colored-mushaf
// convention ("red1" ... "gray"); see package tajweed.
type TagSpan struct {
	Lo, Hi int
	Class  string
}

// Word is one space-delimited word of mushaf source text, together with
// the embedded markers the verse index and the shaper consume.
type Word struct {
	// Text is the word's source text, including any trailing end-of-ayah
	// marker character.
	Text string

	// VerseEnd marks the word that closes the current verse (it carries
	// the end-of-ayah sign). The verse counter advances after this word.
	VerseEnd bool

	// SurahStart marks the first verse word of a new surah. The chapter
	// counter advances when this word is seen.
	SurahStart bool

	// BeginSajda and EndSajda delimit a prostration span. The renderer
	// draws a horizontal rule under the span when both fall on one line.
	BeginSajda bool
	EndSajda   bool

	// Tags are the word's tajweed class spans, if any.
	Tags []TagSpan
}

// LineSource is the source text and declared metrics of one line slot,
// as provided by the text-data collaborator.
type LineSource struct {
	// Type classifies the line (body, surah header, basmala).
	Type LineType

	// Indent is the line's declared start-x offset from the right edge of
	// the text column, in em units.
	Indent float64

	// Scale is the line's font-size multiplier relative to body text.
	// Zero means 1.0.
	Scale float64

	// Words is the line's word sequence in reading order.
	Words []Word
}

// TextService is the text-data collaborator: per-layout page/line/word
// source text with embedded verse-boundary markers. It is consumed only
// for accessibility text and for building the verse index; remote fetch
// and persistence live behind it and are not this module's concern.
//
// Implementations must be safe for concurrent use and must return
// identical data for identical inputs (the verse index build relies on
// this for idempotence).
type TextService interface {
	// Lines returns the line sources of one page, in top-to-bottom order.
	Lines(layout Layout, page int) ([]LineSource, error)
}

// LineText returns the plain source text of one line, words joined by
// single spaces. It is the accessibility-text surface for screen-reader
// hosts.
func LineText(ts TextService, layout Layout, page, line int) (string, error) {
	lines, err := ts.Lines(layout, page)
	if err != nil {
		return "", err
	}
	if line < 0 || line >= len(lines) {
		return "", &LineIndexError{Page: page, Line: line, Count: len(lines)}
	}
	var b strings.Builder
	for i, w := range lines[line].Words {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w.Text)
	}
	return b.String(), nil
}
