// Package verse builds and serves the bidirectional mapping between
// (page, line, word) positions and (surah, ayah) verse references for one
// mushaf layout.
//
// The mapping is built once per layout at load time by a single linear
// pass over the text data and is immutable afterwards; lookups in both
// directions are O(1) map access.
package verse

import (
	"fmt"

	"github.com/qurankit/mushaf"
)

// Ref identifies one verse: surah 1-114, ayah >= 1.
type Ref struct {
	Surah int
	Ayah  int
}

// String returns the conventional "surah:ayah" form.
func (r Ref) String() string {
	return fmt.Sprintf("%d:%d", r.Surah, r.Ayah)
}

// Valid reports whether the reference is within range.
func (r Ref) Valid() bool {
	return r.Surah >= 1 && r.Surah <= 114 && r.Ayah >= 1
}

// WordPosition addresses one word on one page: zero-based page, line slot,
// and word index within the line. Positions are stable for a given layout
// and are the addressing unit for highlighting and click mapping.
type WordPosition struct {
	Page int
	Line int
	Word int
}

// String returns the composite "page:line:word" key form.
func (p WordPosition) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Page, p.Line, p.Word)
}

// Mapping holds both directions of the verse <-> word-position relation
// for one layout. Built once, immutable thereafter, safe for concurrent
// reads.
type Mapping struct {
	layout  mushaf.Layout
	byWord  map[WordPosition]Ref
	byVerse map[Ref][]WordPosition
	order   []Ref // verse order of first appearance
}

// Layout returns the layout the mapping was built for.
func (m *Mapping) Layout() mushaf.Layout { return m.layout }

// VerseForWord returns the verse owning the word position, or false if
// the position holds no verse word (header or basmala lines, or positions
// outside the text).
func (m *Mapping) VerseForWord(pos WordPosition) (Ref, bool) {
	ref, ok := m.byWord[pos]
	return ref, ok
}

// WordsForVerse returns the verse's word positions in reading order.
// Words of one verse are contiguous in reading order but may span lines
// and pages. The returned slice is shared and must not be modified.
func (m *Mapping) WordsForVerse(ref Ref) []WordPosition {
	return m.byVerse[ref]
}

// Verses returns all verse references in reading order.
// The returned slice is shared and must not be modified.
func (m *Mapping) Verses() []Ref {
	return m.order
}

// WordCount returns the total number of verse words in the layout.
func (m *Mapping) WordCount() int {
	return len(m.byWord)
}

// Build walks every page, line, and word of the layout's text exactly
// once, assigning each body-line word its verse from the embedded
// markers: a word bearing the end-of-ayah marker closes the current verse,
// and the chapter counter advances when a new surah's first word is seen.
//
// Build is idempotent: identical input yields a structurally identical
// mapping. Surah-header and basmala lines carry no verse words and are
// skipped.
func Build(ts mushaf.TextService, layout mushaf.Layout) (*Mapping, error) {
	m := &Mapping{
		layout:  layout,
		byWord:  make(map[WordPosition]Ref),
		byVerse: make(map[Ref][]WordPosition),
	}

	cur := Ref{Surah: 0, Ayah: 1}
	for page := 0; page < layout.PageCount(); page++ {
		lines, err := ts.Lines(layout, page)
		if err != nil {
			return nil, fmt.Errorf("verse: build %v page %d: %w", layout, page, err)
		}
		for li, line := range lines {
			if line.Type != mushaf.LineBody {
				continue
			}
			for wi, w := range line.Words {
				if w.SurahStart {
					cur = Ref{Surah: cur.Surah + 1, Ayah: 1}
				}
				pos := WordPosition{Page: page, Line: li, Word: wi}
				if _, seen := m.byVerse[cur]; !seen {
					m.order = append(m.order, cur)
				}
				m.byWord[pos] = cur
				m.byVerse[cur] = append(m.byVerse[cur], pos)
				if w.VerseEnd {
					cur.Ayah++
				}
			}
		}
	}

	mushaf.Logger().Info("verse mapping built",
		"layout", layout.String(), "verses", len(m.order), "words", len(m.byWord))
	return m, nil
}
