package shape

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"

	"github.com/qurankit/mushaf"
)

// FontSource represents a loaded mushaf font file. One FontSource serves
// every line of its layout; it is heavyweight and should be shared.
//
// FontSource is safe for concurrent use: the parsed font.Font is read-only.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection. It must point to the FontSource
	// itself.
	addr *FontSource

	mu     sync.RWMutex
	data   []byte
	parsed *font.Font
	name   string
	closed bool
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is retained; callers must not modify it afterwards.
func NewFontSource(data []byte, name string) (*FontSource, error) {
	if len(data) == 0 {
		return nil, mushaf.ErrEmptyFontData
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("shape: parse font %q: %w", name, err)
	}

	s := &FontSource{
		data:   data,
		parsed: face.Font,
		name:   name,
	}
	s.addr = s
	return s, nil
}

// LoadFontSource reads and parses a font file from disk.
func LoadFontSource(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shape: read font: %w", err)
	}
	return NewFontSource(data, path)
}

// Name returns the source's display name.
func (s *FontSource) Name() string { return s.name }

// Font returns the parsed font, or nil if the source is closed.
// font.Font is read-only and safe for concurrent use; per-shape font.Face
// instances are created from it on demand (font.Face is not).
func (s *FontSource) Font() *font.Font {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	return s.parsed
}

// Close releases the font data. Shaping through a closed source fails with
// ErrShaperUnavailable.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.parsed = nil
	s.data = nil
	return nil
}

// copyCheck panics if the FontSource was copied after creation.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("shape: illegal use of copied FontSource")
	}
}
