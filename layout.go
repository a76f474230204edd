package mushaf

import "golang.org/x/image/math/fixed"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Layout identifies a mushaf typesetting convention. Layouts differ in
// page count and per-page line breaks; a WordPosition is only meaningful
// relative to one layout.
type Layout int

const (
	// LayoutHafs is the Madani (Hafs) convention: 604 pages.
	LayoutHafs Layout = iota
	// LayoutIndopak is the Indopak convention: 610 pages.
	LayoutIndopak
)

// String returns the string representation of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutHafs:
		return "Hafs"
	case LayoutIndopak:
		return "Indopak"
	default:
		return unknownStr
	}
}

// Fixed layout rules. The first two pages of every mushaf (the opening
// pages of al-Fatiha and the start of al-Baqara) carry fewer, larger lines.
const (
	// OpeningPageLines is the line count of the first two pages.
	OpeningPageLines = 8
	// BodyPageLines is the line count of every other page.
	BodyPageLines = 15
)

// Per-line vertical advances in shaping-space units (26.6 fixed point) at
// font scale 1.0. The opening pages give the first line extra leading so the
// decorated frame clears the page header.
var (
	// LineLeading is the baseline-to-baseline advance of a body line.
	LineLeading = fixed.I(72)
	// OpeningFirstLeading is the advance before the first line of an
	// opening page.
	OpeningFirstLeading = fixed.I(96)
	// BodyFirstLeading is the advance before the first line of a body page.
	BodyFirstLeading = fixed.I(72)
)

// PageCount returns the number of pages in the layout.
func (l Layout) PageCount() int {
	switch l {
	case LayoutIndopak:
		return 610
	default:
		return 604
	}
}

// LineCount returns the number of line slots on the given page.
// The first two pages are opening pages with a reduced line count.
func (l Layout) LineCount(page int) int {
	if page == 0 || page == 1 {
		return OpeningPageLines
	}
	return BodyPageLines
}

// FirstLineLeading returns the vertical advance applied before the first
// line of the given page, in shaping-space units at font scale 1.0.
func (l Layout) FirstLineLeading(page int) fixed.Int26_6 {
	if page == 0 || page == 1 {
		return OpeningFirstLeading
	}
	return BodyFirstLeading
}

// ValidPage reports whether page is a valid zero-based page index.
func (l Layout) ValidPage(page int) bool {
	return page >= 0 && page < l.PageCount()
}

// LineType classifies a line slot on a page.
type LineType int

const (
	// LineBody is a regular verse-text line, justified to the text column.
	LineBody LineType = iota
	// LineSurahHeader is a decorated surah-name line, centered.
	LineSurahHeader
	// LineBasmala is a basmala line, centered.
	LineBasmala
)

// String returns the string representation of the line type.
func (t LineType) String() string {
	switch t {
	case LineBody:
		return "Body"
	case LineSurahHeader:
		return "SurahHeader"
	case LineBasmala:
		return "Basmala"
	default:
		return unknownStr
	}
}

// Centered reports whether the line type uses the centering rule instead
// of full-width justification.
func (t LineType) Centered() bool {
	return t == LineSurahHeader || t == LineBasmala
}
