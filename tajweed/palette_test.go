package tajweed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/shape"
)

func TestDefaultPaletteComplete(t *testing.T) {
	p := DefaultPalette()
	for _, c := range []Class{
		ClassRed1, ClassRed2, ClassRed3, ClassRed4,
		ClassGreen, ClassLGreen, ClassBlue, ClassGray,
	} {
		col, ok := p[c]
		assert.True(t, ok, "class %q missing", c)
		assert.False(t, col.IsZero(), "class %q has zero color", c)
	}
	assert.Len(t, p, 8)
}

func TestMergeIsolation(t *testing.T) {
	base := DefaultPalette()
	custom := mushaf.Hex("#123456")
	merged := base.Merge(Palette{ClassRed2: custom})

	assert.Equal(t, custom, merged[ClassRed2])
	// Only the overridden key changes; base is untouched.
	assert.Equal(t, base[ClassRed1], merged[ClassRed1])
	assert.Equal(t, base[ClassBlue], merged[ClassBlue])
	assert.NotEqual(t, custom, base[ClassRed2])
}

func TestMergeNilOverrides(t *testing.T) {
	base := DefaultPalette()
	assert.Equal(t, base, base.Merge(nil))
}

func TestResolveKnownClass(t *testing.T) {
	r := NewResolver(nil, true)
	col, ok := r.Resolve(shape.Glyph{Class: "green"})
	assert.True(t, ok)
	assert.Equal(t, DefaultPalette()[ClassGreen], col)
}

func TestResolveUntagged(t *testing.T) {
	r := NewResolver(nil, true)
	_, ok := r.Resolve(shape.Glyph{})
	assert.False(t, ok)
}

func TestResolveUnknownClass(t *testing.T) {
	r := NewResolver(nil, true)
	_, ok := r.Resolve(shape.Glyph{Class: "purple"})
	assert.False(t, ok)
}

func TestDisabledResolverIgnoresOverrides(t *testing.T) {
	// A custom red4 color must not leak through when display is off.
	r := NewResolver(Palette{ClassRed4: mushaf.Hex("#FF00FF")}, false)
	assert.False(t, r.Enabled())
	_, ok := r.Resolve(shape.Glyph{Class: "red4"})
	assert.False(t, ok)
}

func TestZeroValueResolverDisabled(t *testing.T) {
	var r Resolver
	assert.False(t, r.Enabled())
	_, ok := r.Resolve(shape.Glyph{Class: "blue"})
	assert.False(t, ok)
}

func TestResolverOverrideApplied(t *testing.T) {
	custom := mushaf.Hex("#010203")
	r := NewResolver(Palette{ClassGray: custom}, true)

	col, ok := r.Resolve(shape.Glyph{Class: "gray"})
	assert.True(t, ok)
	assert.Equal(t, custom, col)

	// Other classes keep their defaults.
	col, ok = r.Resolve(shape.Glyph{Class: "blue"})
	assert.True(t, ok)
	assert.Equal(t, DefaultPalette()[ClassBlue], col)
}
