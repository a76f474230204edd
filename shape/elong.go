package shape

import (
	"unicode"

	"golang.org/x/image/math/fixed"
)

// Elongation policy. A kashida may be inserted only where a letter joins
// to the following letter within the same word; the allowance at such a
// joint is a multiple of the glyph's own advance, capped in absolute terms
// so a single joint never absorbs a grossly disproportionate stretch.
const (
	// elongFactor scales a stretchable glyph's advance into its allowance.
	elongFactor = 2
	// maxElongAbs caps one joint's allowance in shaping-space units.
	maxElongAbs = fixed.Int26_6(96 << 6)
)

// dualJoining holds the Arabic letters that connect to a following letter
// (dual-joining forms). Right-joining letters (alef, dal, thal, ra, zain,
// waw and their variants) never stretch toward the next letter, so they
// are excluded.
var dualJoining = map[rune]bool{
	'ب': true, // beh
	'ت': true, // teh
	'ث': true, // theh
	'ج': true, // jeem
	'ح': true, // hah
	'خ': true, // khah
	'س': true, // seen
	'ش': true, // sheen
	'ص': true, // sad
	'ض': true, // dad
	'ط': true, // tah
	'ظ': true, // zah
	'ع': true, // ain
	'غ': true, // ghain
	'ـ': true, // tatweel itself
	'ف': true, // feh
	'ق': true, // qaf
	'ك': true, // kaf
	'ل': true, // lam
	'م': true, // meem
	'ن': true, // noon
	'ه': true, // heh
	'ي': true, // yeh
	'ئ': true, // yeh with hamza above
	'ى': true, // alef maksura
	'ی': true, // farsi yeh
	'پ': true, // peh
	'چ': true, // tcheh
	'گ': true, // gaf
	'ک': true, // keheh
	'ں': true, // noon ghunna
	'ہ': true, // heh goal
	'ے': true, // yeh barree
}

// isArabicLetter reports whether r is a joinable Arabic letter (combining
// marks excluded; they inherit their base letter's joint).
func isArabicLetter(r rune) bool {
	return unicode.Is(unicode.Arabic, r) && !unicode.Is(unicode.Mn, r)
}

// stretchable reports whether the rune at index i of text is a kashida
// insertion point: a dual-joining letter followed (skipping combining
// marks) by another Arabic letter in the same word.
func stretchable(text []rune, i int) bool {
	if !dualJoining[text[i]] {
		return false
	}
	for j := i + 1; j < len(text); j++ {
		r := text[j]
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		return isArabicLetter(r)
	}
	return false
}

// elongAllowance returns the elongation allowance for a glyph whose
// cluster is the rune at index i, given the glyph's natural advance.
func elongAllowance(text []rune, i int, advance fixed.Int26_6) fixed.Int26_6 {
	if i < 0 || i >= len(text) || !stretchable(text, i) {
		return 0
	}
	allow := advance * elongFactor
	if allow > maxElongAbs {
		allow = maxElongAbs
	}
	if allow < 0 {
		return 0
	}
	return allow
}
