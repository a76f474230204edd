package shape

import (
	"github.com/go-text/typesetting/di"
	"golang.org/x/text/unicode/bidi"
)

// segment is a contiguous run of line text with one resolved direction.
// Start and End are rune offsets into the line's full text, End exclusive.
type segment struct {
	Start, End int
	Dir        di.Direction
}

// segmentLine splits one line of mushaf text into directional runs for
// shaping. The base direction is right-to-left; embedded verse-number
// digits and any left-to-right letters resolve to LTR runs. Neutral
// characters (spaces, marks, punctuation) attach to the base direction.
// Segments are returned in logical (reading) order.
func segmentLine(text []rune) []segment {
	if len(text) == 0 {
		return nil
	}

	var segs []segment
	cur := segment{Start: 0, Dir: dirOf(text[0])}
	for i := 1; i < len(text); i++ {
		d := dirOf(text[i])
		if d == cur.Dir {
			continue
		}
		cur.End = i
		segs = append(segs, cur)
		cur = segment{Start: i, Dir: d}
	}
	cur.End = len(text)
	return append(segs, cur)
}

// dirOf resolves one rune's direction from its bidi class. Strong LTR
// letters and numerals are LTR; everything else, neutrals included, follows
// the RTL base direction of mushaf text.
func dirOf(r rune) di.Direction {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.L, bidi.EN, bidi.AN:
		return di.DirectionLTR
	default:
		return di.DirectionRTL
	}
}
