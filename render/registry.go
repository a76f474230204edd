package render

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/cache"
	"github.com/qurankit/mushaf/load"
	"github.com/qurankit/mushaf/shape"
	"github.com/qurankit/mushaf/verse"
)

// ErrTokenBusy is returned when a Token already bound to a render is
// passed to a second one.
var ErrTokenBusy = errors.New("render: token already bound to a render")

// LineKey identifies one shaped line in the per-layout cache. Shaped
// glyphs are immutable for a given (page, line, fontScale) tuple, so the
// key carries the scale bits verbatim.
type LineKey struct {
	Page, Line    int
	FontScaleBits uint64
	Justify       bool
	Flags         shape.Flags
}

// lineKeyHasher mixes the key fields FNV-1a style for shard selection.
func lineKeyHasher(k LineKey) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= v & 0xff
			h *= prime64
			v >>= 8
		}
	}
	mix(uint64(k.Page))
	mix(uint64(k.Line))
	mix(k.FontScaleBits)
	var tail uint64 = uint64(k.Flags)
	if k.Justify {
		tail |= 1 << 8
	}
	mix(tail)
	return h
}

// scaleBits canonicalizes a font scale for keying.
func scaleBits(fs float64) uint64 {
	return math.Float64bits(fs)
}

// layoutContext holds everything one registered layout needs to render:
// the shaper, the text service, the built verse mapping, and the
// shaped-line cache.
type layoutContext struct {
	shaper  shape.Shaper
	ts      mushaf.TextService
	mapping *verse.Mapping
	lines   *cache.Sharded[LineKey, *shape.Line]
}

// Registry is the explicit pipeline context, keyed by layout. It replaces
// implicit module-level singletons: created at startup, passed to every
// render call, torn down with Close.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	layouts map[mushaf.Layout]*layoutContext
	closed  bool

	// resources de-duplicates font/text fetches by URL: the first
	// requester wins, later concurrent requesters wait on the same
	// in-flight load.
	resources *load.Group[string, []byte]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		layouts:   make(map[mushaf.Layout]*layoutContext),
		resources: load.NewGroup[string, []byte](),
	}
}

// Register wires a layout: it builds the layout's verse mapping from the
// text service (one linear pass) and installs the shaper and shaped-line
// cache. Registering a layout twice replaces the previous entry and
// closes its shaper.
func (r *Registry) Register(layout mushaf.Layout, shaper shape.Shaper, ts mushaf.TextService) error {
	if shaper == nil {
		return mushaf.ErrShaperUnavailable
	}

	mapping, err := verse.Build(ts, layout)
	if err != nil {
		return err
	}

	lc := &layoutContext{
		shaper:  shaper,
		ts:      ts,
		mapping: mapping,
		lines:   cache.NewSharded[LineKey, *shape.Line](0, lineKeyHasher),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return mushaf.ErrShaperUnavailable
	}
	if prev, ok := r.layouts[layout]; ok {
		_ = prev.shaper.Close()
	}
	r.layouts[layout] = lc

	mushaf.Logger().Info("layout registered", "layout", layout.String())
	return nil
}

// context returns the layout's context or ErrLayoutNotRegistered.
func (r *Registry) context(layout mushaf.Layout) (*layoutContext, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, mushaf.ErrShaperUnavailable
	}
	lc, ok := r.layouts[layout]
	if !ok {
		return nil, mushaf.ErrLayoutNotRegistered
	}
	return lc, nil
}

// Mapping returns the layout's verse index.
func (r *Registry) Mapping(layout mushaf.Layout) (*verse.Mapping, error) {
	lc, err := r.context(layout)
	if err != nil {
		return nil, err
	}
	return lc.mapping, nil
}

// Outline returns the layout's surah table of contents.
func (r *Registry) Outline(layout mushaf.Layout) ([]shape.SurahEntry, error) {
	lc, err := r.context(layout)
	if err != nil {
		return nil, err
	}
	return lc.shaper.Outline()
}

// LineText returns the accessibility text of one line.
func (r *Registry) LineText(layout mushaf.Layout, page, line int) (string, error) {
	lc, err := r.context(layout)
	if err != nil {
		return "", err
	}
	return mushaf.LineText(lc.ts, layout, page, line)
}

// LoadResource fetches a font or text resource by URL, collapsing
// concurrent requests for the same URL into one in-flight load.
func (r *Registry) LoadResource(ctx context.Context, url string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	return r.resources.Load(ctx, url, fetch)
}

// InvalidateLines drops the layout's shaped-line cache, forcing the next
// render to reshape (font swap, annotation reload).
func (r *Registry) InvalidateLines(layout mushaf.Layout) {
	if lc, err := r.context(layout); err == nil {
		lc.lines.Clear()
	}
}

// Close tears the registry down: every layout's shaper is closed and the
// caches dropped. Render calls after Close fail with
// ErrShaperUnavailable.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	var firstErr error
	for layout, lc := range r.layouts {
		if err := lc.shaper.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		lc.lines.Clear()
		delete(r.layouts, layout)
	}
	mushaf.Logger().Info("registry closed")
	return firstErr
}

// shapedLine returns the immutable shaped line for the key, shaping and
// caching a copy on miss. The shaper's handle is released as soon as the
// copy is taken; the cached line is a detached snapshot safe to share.
func (lc *layoutContext) shapedLine(layout mushaf.Layout, key LineKey, fontScale float64) (*shape.Line, error) {
	if ln, ok := lc.lines.Get(key); ok {
		return ln, nil
	}

	handle, err := lc.shaper.ShapeLine(shape.LineRequest{
		Page:      key.Page,
		Line:      key.Line,
		FontScale: fontScale,
		Justify:   key.Justify,
		Flags:     key.Flags,
	})
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	ln, err := handle.Line()
	if err != nil {
		return nil, err
	}

	snapshot := *ln
	snapshot.Glyphs = append([]shape.Glyph(nil), ln.Glyphs...)
	lc.lines.Set(key, &snapshot)
	return &snapshot, nil
}
