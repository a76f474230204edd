// Package highlight composes caller-supplied highlight groups into a
// per-word color decision for one page.
//
// A group colors either a set of verses or a set of explicit word
// positions; both variants resolve uniformly through the verse index.
// Overlaps are decided by group order: later groups win.
package highlight

import (
	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/verse"
)

// Group is one highlight request: a color plus either verse references or
// explicit word positions. Groups are ephemeral, recomputed per render,
// and owned by the caller.
type Group struct {
	color  mushaf.RGBA
	verses []verse.Ref
	words  []verse.WordPosition
}

// ByVerse creates a group coloring whole verses.
func ByVerse(color mushaf.RGBA, refs ...verse.Ref) Group {
	return Group{color: color, verses: refs}
}

// ByWords creates a group coloring explicit word positions.
func ByWords(color mushaf.RGBA, positions ...verse.WordPosition) Group {
	return Group{color: color, words: positions}
}

// Color returns the group's color.
func (g Group) Color() mushaf.RGBA { return g.color }

// Compose merges the groups into a per-word color map for one page.
//
// Verse groups expand to word positions through the mapping; positions on
// other pages are dropped silently. Later groups override earlier ones for
// the same word; the result depends only on the order of the groups slice,
// never on map iteration order, since every word within one group receives
// that group's single color.
func Compose(m *verse.Mapping, groups []Group, page int) map[verse.WordPosition]mushaf.RGBA {
	out := make(map[verse.WordPosition]mushaf.RGBA)
	for _, g := range groups {
		for _, ref := range g.verses {
			for _, pos := range m.WordsForVerse(ref) {
				if pos.Page == page {
					out[pos] = g.color
				}
			}
		}
		for _, pos := range g.words {
			if pos.Page == page {
				out[pos] = g.color
			}
		}
	}
	return out
}
