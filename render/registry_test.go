package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/highlight"
	"github.com/qurankit/mushaf/shape"
	"github.com/qurankit/mushaf/tajweed"
	"github.com/qurankit/mushaf/verse"
)

func TestRegisterBuildsMapping(t *testing.T) {
	reg, _ := testRegistry(t)

	m, err := reg.Mapping(mushaf.LayoutHafs)
	require.NoError(t, err)

	ref, ok := m.VerseForWord(verse.WordPosition{Page: 0, Line: 0, Word: 0})
	require.True(t, ok)
	assert.Equal(t, verse.Ref{Surah: 1, Ayah: 1}, ref)

	_, err = reg.Mapping(mushaf.LayoutIndopak)
	assert.ErrorIs(t, err, mushaf.ErrLayoutNotRegistered)
}

func TestRegisterNilShaper(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(mushaf.LayoutHafs, nil, &fakeText{})
	assert.ErrorIs(t, err, mushaf.ErrShaperUnavailable)
}

func TestRegisterReplaceClosesPrevious(t *testing.T) {
	reg, first := testRegistry(t)

	second := &fakeShaper{}
	require.NoError(t, reg.Register(mushaf.LayoutHafs, second, &fakeText{}))

	assert.True(t, first.closed, "replaced shaper must be closed")
	assert.False(t, second.closed)
}

func TestClose(t *testing.T) {
	reg, sh := testRegistry(t)

	require.NoError(t, reg.Close())
	assert.True(t, sh.closed)

	_, err := Page(reg, mushaf.LayoutHafs, 0, testViewport(), DefaultOptions(), nil)
	assert.ErrorIs(t, err, mushaf.ErrShaperUnavailable)

	// Close is idempotent.
	assert.NoError(t, reg.Close())
}

func TestShapedLineCacheReuse(t *testing.T) {
	reg, sh := testRegistry(t)
	vp := testViewport()

	_, err := Page(reg, mushaf.LayoutHafs, 0, vp, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, sh.shaped)

	// Same page, same scale: every line comes from the cache.
	_, err = Page(reg, mushaf.LayoutHafs, 0, vp, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, sh.shaped)

	// A different font scale misses the cache.
	vp.FontScale = 2.0
	_, err = Page(reg, mushaf.LayoutHafs, 0, vp, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, sh.shaped)
}

func TestInvalidateLines(t *testing.T) {
	reg, sh := testRegistry(t)
	vp := testViewport()

	_, err := Page(reg, mushaf.LayoutHafs, 0, vp, DefaultOptions(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, sh.shaped)

	reg.InvalidateLines(mushaf.LayoutHafs)

	_, err = Page(reg, mushaf.LayoutHafs, 0, vp, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, sh.shaped, "invalidation must force a reshape")

	// Unknown layouts are ignored.
	reg.InvalidateLines(mushaf.LayoutIndopak)
}

func TestOutlinePassthrough(t *testing.T) {
	reg, sh := testRegistry(t)
	sh.outline = []shape.SurahEntry{{Number: 1, Name: "الفاتحة", StartPage: 0}}

	entries, err := reg.Outline(mushaf.LayoutHafs)
	require.NoError(t, err)
	assert.Equal(t, sh.outline, entries)

	_, err = reg.Outline(mushaf.LayoutIndopak)
	assert.ErrorIs(t, err, mushaf.ErrLayoutNotRegistered)
}

func TestLineText(t *testing.T) {
	reg, _ := testRegistry(t)

	text, err := reg.LineText(mushaf.LayoutHafs, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "a b", text)

	_, err = reg.LineText(mushaf.LayoutHafs, 0, 99)
	var lie *mushaf.LineIndexError
	assert.ErrorAs(t, err, &lie)
}

func TestLoadResourceDedup(t *testing.T) {
	reg := NewRegistry()

	fetches := 0
	fetch := func(context.Context) ([]byte, error) {
		fetches++
		return []byte("font-bytes"), nil
	}

	for i := 0; i < 3; i++ {
		data, err := reg.LoadResource(context.Background(), "https://example.com/font.ttf", fetch)
		require.NoError(t, err)
		assert.Equal(t, []byte("font-bytes"), data)
	}
	assert.Equal(t, 1, fetches)
}

func TestApplyTajweed(t *testing.T) {
	reg, sh := testRegistry(t)

	tagged := bodyGlyph(0)
	tagged.Class = "blue"
	sh.lines[[2]int{0, 1}] = bodyLine(bodyGlyph(0), tagged)

	resolver := tajweed.NewResolver(nil, true)
	colors, err := ApplyTajweed(reg, mushaf.LayoutHafs, 0, testViewport(), DefaultOptions(), resolver)
	require.NoError(t, err)
	require.Len(t, colors, 2)

	assert.Empty(t, colors[0])
	assert.Equal(t, LineColors{1: tajweed.DefaultPalette()[tajweed.ClassBlue]}, colors[1])
}

func TestApplyTajweedDisabled(t *testing.T) {
	reg, sh := testRegistry(t)

	// Nil and disabled resolvers both yield empty maps without shaping.
	for _, resolver := range []*tajweed.Resolver{nil, tajweed.NewResolver(nil, false)} {
		colors, err := ApplyTajweed(reg, mushaf.LayoutHafs, 0, testViewport(), DefaultOptions(), resolver)
		require.NoError(t, err)
		require.Len(t, colors, 2)
		assert.Empty(t, colors[0])
		assert.Empty(t, colors[1])
	}
	assert.Equal(t, 0, sh.shaped)
}

func TestApplyTajweedInvalidPage(t *testing.T) {
	reg, _ := testRegistry(t)

	_, err := ApplyTajweed(reg, mushaf.LayoutHafs, -1, testViewport(), DefaultOptions(), nil)
	var pie *mushaf.PageIndexError
	assert.ErrorAs(t, err, &pie)
}

func TestApplyHighlights(t *testing.T) {
	reg, _ := testRegistry(t)

	res, err := Page(reg, mushaf.LayoutHafs, 0, testViewport(), DefaultOptions(), nil)
	require.NoError(t, err)

	m, err := reg.Mapping(mushaf.LayoutHafs)
	require.NoError(t, err)

	c := mushaf.Hex("#FFEE00")
	ApplyHighlights(res, m, []highlight.Group{
		highlight.ByVerse(c, verse.Ref{Surah: 1, Ayah: 1}),
	})

	assert.Equal(t, map[verse.WordPosition]mushaf.RGBA{
		{Page: 0, Line: 0, Word: 0}: c,
		{Page: 0, Line: 0, Word: 1}: c,
	}, res.Highlights)
}
