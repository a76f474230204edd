package verse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurankit/mushaf"
)

// fakeText serves hand-built pages; pages without data are empty.
type fakeText struct {
	pages map[int][]mushaf.LineSource
	err   error
}

func (f *fakeText) Lines(_ mushaf.Layout, page int) ([]mushaf.LineSource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[page], nil
}

// word is a fixture shorthand.
func word(text string, surahStart, verseEnd bool) mushaf.Word {
	return mushaf.Word{Text: text, SurahStart: surahStart, VerseEnd: verseEnd}
}

// smallText is a two-page fixture: surah 1 with two verses on page 0
// (verse 1:2 spans a line boundary) and surah 2 starting on page 1.
func smallText() *fakeText {
	return &fakeText{pages: map[int][]mushaf.LineSource{
		0: {
			{Type: mushaf.LineSurahHeader, Words: []mushaf.Word{{Text: "الفاتحة"}}},
			{Type: mushaf.LineBody, Words: []mushaf.Word{
				word("w0", true, false),
				word("w1", false, true), // 1:1
				word("w2", false, false),
			}},
			{Type: mushaf.LineBody, Words: []mushaf.Word{
				word("w3", false, false),
				word("w4", false, true), // 1:2 spans lines 1-2
			}},
		},
		1: {
			{Type: mushaf.LineBody, Words: []mushaf.Word{
				word("w5", true, true), // 2:1
			}},
		},
	}}
}

func TestBuildAssignsVerses(t *testing.T) {
	m, err := Build(smallText(), mushaf.LayoutHafs)
	require.NoError(t, err)

	ref, ok := m.VerseForWord(WordPosition{Page: 0, Line: 1, Word: 0})
	require.True(t, ok)
	assert.Equal(t, Ref{Surah: 1, Ayah: 1}, ref)

	ref, ok = m.VerseForWord(WordPosition{Page: 1, Line: 0, Word: 0})
	require.True(t, ok)
	assert.Equal(t, Ref{Surah: 2, Ayah: 1}, ref)

	// Header lines hold no verse words.
	_, ok = m.VerseForWord(WordPosition{Page: 0, Line: 0, Word: 0})
	assert.False(t, ok)
}

func TestVerseSpanningLines(t *testing.T) {
	m, err := Build(smallText(), mushaf.LayoutHafs)
	require.NoError(t, err)

	words := m.WordsForVerse(Ref{Surah: 1, Ayah: 2})
	require.Equal(t, []WordPosition{
		{Page: 0, Line: 1, Word: 2},
		{Page: 0, Line: 2, Word: 0},
		{Page: 0, Line: 2, Word: 1},
	}, words, "verse words must cross the line boundary in reading order")

	// Every returned position round-trips through VerseForWord.
	for _, pos := range words {
		ref, ok := m.VerseForWord(pos)
		require.True(t, ok)
		assert.Equal(t, Ref{Surah: 1, Ayah: 2}, ref)
	}
}

func TestMappingBijection(t *testing.T) {
	m, err := Build(smallText(), mushaf.LayoutHafs)
	require.NoError(t, err)

	// Concatenating WordsForVerse across all verses in order reproduces
	// the full traversal exactly once per word: no gaps, no duplicates.
	seen := make(map[WordPosition]int)
	total := 0
	for _, ref := range m.Verses() {
		words := m.WordsForVerse(ref)
		assert.NotEmpty(t, words, "verse %v has no words", ref)
		for _, pos := range words {
			seen[pos]++
			total++
		}
	}

	assert.Equal(t, m.WordCount(), total)
	for pos, n := range seen {
		assert.Equal(t, 1, n, "word %v appears %d times", pos, n)
		ref, ok := m.VerseForWord(pos)
		require.True(t, ok)
		assert.Contains(t, m.WordsForVerse(ref), pos)
	}
}

func TestBuildIdempotent(t *testing.T) {
	ts := smallText()

	m1, err := Build(ts, mushaf.LayoutHafs)
	require.NoError(t, err)
	m2, err := Build(ts, mushaf.LayoutHafs)
	require.NoError(t, err)

	assert.Equal(t, m1.Verses(), m2.Verses())
	assert.Equal(t, m1.WordCount(), m2.WordCount())
	for _, ref := range m1.Verses() {
		assert.Equal(t, m1.WordsForVerse(ref), m2.WordsForVerse(ref))
	}
}

// TestAyatAlKursiSpansLines builds surah 2 up to verse 255 and checks the
// line-spanning lookup of Ayat al-Kursi.
func TestAyatAlKursiSpansLines(t *testing.T) {
	pages := map[int][]mushaf.LineSource{}

	// Surah 1, one verse, then surah 2 verses 1..254 packed onto page 0.
	filler := []mushaf.Word{word("f", true, true)}
	for i := 1; i <= 254; i++ {
		filler = append(filler, word("v", false, true))
	}
	// Mark the start of surah 2 on its first verse word.
	filler[1].SurahStart = true
	pages[0] = []mushaf.LineSource{{Type: mushaf.LineBody, Words: filler}}

	// Verse 255 spans two lines of page 1.
	pages[1] = []mushaf.LineSource{
		{Type: mushaf.LineBody, Words: []mushaf.Word{
			word("k0", false, false),
			word("k1", false, false),
		}},
		{Type: mushaf.LineBody, Words: []mushaf.Word{
			word("k2", false, true),
		}},
	}

	m, err := Build(&fakeText{pages: pages}, mushaf.LayoutHafs)
	require.NoError(t, err)

	words := m.WordsForVerse(Ref{Surah: 2, Ayah: 255})
	require.Equal(t, []WordPosition{
		{Page: 1, Line: 0, Word: 0},
		{Page: 1, Line: 0, Word: 1},
		{Page: 1, Line: 1, Word: 0},
	}, words)

	for _, pos := range words {
		ref, ok := m.VerseForWord(pos)
		require.True(t, ok)
		assert.Equal(t, Ref{Surah: 2, Ayah: 255}, ref)
	}
}

func TestBuildPropagatesError(t *testing.T) {
	sentinel := errors.New("fetch failed")
	_, err := Build(&fakeText{err: sentinel}, mushaf.LayoutHafs)
	assert.ErrorIs(t, err, sentinel)
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "2:255", Ref{Surah: 2, Ayah: 255}.String())
	assert.Equal(t, "0:1:2", WordPosition{Page: 0, Line: 1, Word: 2}.String())
}
