package render

import (
	"golang.org/x/image/math/fixed"

	"github.com/qurankit/mushaf"
	"github.com/qurankit/mushaf/justify"
	"github.com/qurankit/mushaf/shape"
	"github.com/qurankit/mushaf/tajweed"
	"github.com/qurankit/mushaf/verse"
)

// State is the scheduler's render state. A page render advances
// Idle -> Rendering -> Done, with Cancelled absorbing from any point.
type State int

const (
	StateIdle State = iota
	StateRendering
	StateDone
	StateCancelled
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRendering:
		return "Rendering"
	case StateDone:
		return "Done"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// YieldFunc is the host's frame hook, called between lines by the Page
// driver. Returning an error aborts the render.
type YieldFunc func() error

// Options configures one page render.
type Options struct {
	// Justify stretches body lines to the text column width. When false,
	// lines are placed at their natural advance from the right edge.
	Justify bool

	// Resolver supplies tajweed ink colors; nil renders everything in the
	// default ink.
	Resolver *tajweed.Resolver

	// Yield is called between lines by Page. Nil renders the whole page
	// in one flow.
	Yield YieldFunc

	// Flags selects the per-glyph annotations carried through shaping.
	Flags shape.Flags
}

// DefaultOptions returns the standard render configuration: justified
// body lines with all annotations.
func DefaultOptions() Options {
	return Options{Justify: true, Flags: shape.DefaultFlags}
}

// sajdaDropEm is the vertical offset of a sajda rule below the baseline,
// in em units.
const sajdaDropEm = 0.25

// Scheduler drives one page's lines through shaping, justification,
// tajweed resolution, and the viewport transform, one line per Step call.
// An external driver (Page, a frame loop, or a test) pumps Step and
// yields between calls; there is no internal concurrency and no shared
// mutable state with other pages' renders.
//
// Scheduler is NOT safe for concurrent use.
type Scheduler struct {
	lc     *layoutContext
	layout mushaf.Layout
	page   int
	vp     mushaf.Viewport
	opts   Options
	tok    *Token

	fontScale float64
	lineCount int

	state   State
	line    int
	cursorY fixed.Int26_6 // baseline cursor, shaping space
	res     *PageResult
}

// NewScheduler validates the request and prepares a render in the Idle
// state. No line is shaped and nothing is emitted until Step; an invalid
// page index fails here, leaving prior content untouched.
func NewScheduler(reg *Registry, layout mushaf.Layout, page int, vp mushaf.Viewport, opts Options, tok *Token) (*Scheduler, error) {
	lc, err := reg.context(layout)
	if err != nil {
		return nil, err
	}
	if !layout.ValidPage(page) {
		return nil, &mushaf.PageIndexError{Page: page, Count: layout.PageCount()}
	}
	if tok == nil {
		tok = NewToken()
	}
	if !tok.acquire() {
		return nil, ErrTokenBusy
	}

	// The layout rule fixes the slot count per page; a text service
	// delivering fewer lines bounds the render rather than failing it.
	lines, err := lc.ts.Lines(layout, page)
	if err != nil {
		return nil, err
	}
	lineCount := layout.LineCount(page)
	if len(lines) < lineCount {
		lineCount = len(lines)
	}

	return &Scheduler{
		lc:        lc,
		layout:    layout,
		page:      page,
		vp:        vp,
		opts:      opts,
		tok:       tok,
		fontScale: vp.ClampedFontScale(),
		lineCount: lineCount,
		state:     StateIdle,
		res: &PageResult{
			Layout: layout,
			Page:   page,
			Words:  make(map[verse.WordPosition]mushaf.DeviceRect),
		},
	}, nil
}

// State returns the current render state.
func (s *Scheduler) State() State { return s.state }

// Line returns the index of the next line to render.
func (s *Scheduler) Line() int { return s.line }

// Result returns the render result accumulated so far. Complete once
// Step has reported done.
func (s *Scheduler) Result() *PageResult { return s.res }

// Step advances the render by one line. It reports done when the page is
// complete, cancelled, or failed. Cancellation is checked before any work:
// a token cancelled before the first Step produces zero draws.
func (s *Scheduler) Step() (done bool, err error) {
	switch s.state {
	case StateDone, StateCancelled:
		return true, nil
	}

	if s.tok.Cancelled() {
		s.state = StateCancelled
		s.res.cancelled = true
		mushaf.Logger().Debug("render cancelled",
			"page", s.page, "line", s.line)
		return true, nil
	}

	s.state = StateRendering
	if s.line >= s.lineCount {
		s.state = StateDone
		return true, nil
	}

	s.cursorY += s.leading(s.line)

	ld, err := s.renderLine(s.line)
	if err != nil {
		s.state = StateDone
		return true, err
	}
	s.res.Lines = append(s.res.Lines, ld)

	s.line++
	if s.line >= s.lineCount {
		s.state = StateDone
		return true, nil
	}
	return false, nil
}

// leading returns the scaled vertical advance before the given line.
// The first line of an opening page gets the larger opening leading.
func (s *Scheduler) leading(line int) fixed.Int26_6 {
	var l fixed.Int26_6
	if line == 0 {
		l = s.layout.FirstLineLeading(s.page)
	} else {
		l = mushaf.LineLeading
	}
	return fixed.Int26_6(float64(l) * s.fontScale)
}

// renderLine shapes (or pulls from cache), justifies, colors, and
// transforms one line into device-space draws.
func (s *Scheduler) renderLine(line int) (LineDraw, error) {
	key := LineKey{
		Page:          s.page,
		Line:          line,
		FontScaleBits: scaleBits(s.fontScale),
		Justify:       s.opts.Justify,
		Flags:         s.opts.Flags,
	}
	ln, err := s.lc.shapedLine(s.layout, key, s.fontScale)
	if err != nil {
		return LineDraw{}, err
	}

	target := s.vp.TargetLineWidth()

	var pos []justify.PositionedGlyph
	lineScale := 1.0
	if ln.Type.Centered() {
		pos, lineScale = justify.Center(ln.Glyphs, target, ln.Scale)
	} else {
		pos = justify.Justify(ln.Glyphs, target, ln.StartX)
	}

	baseline := s.cursorY
	ld := LineDraw{
		Index:    line,
		Type:     ln.Type,
		Baseline: s.vp.ToDevice(fixed.Point26_6{Y: baseline}).Y,
		Scale:    lineScale,
		Text:     ln.Text,
		Glyphs:   make([]Draw, 0, len(pos)),
	}

	ascent := fixed.Int26_6(float64(ln.Ascent) * lineScale)
	descent := fixed.Int26_6(float64(ln.Descent) * lineScale)

	for i := range pos {
		p := &pos[i]
		dp := s.vp.ToDevice(fixed.Point26_6{X: p.X, Y: baseline + p.Y})

		d := Draw{
			GID:     p.Glyph.GID,
			Cluster: p.Glyph.Cluster,
			Word:    p.Glyph.Word,
			X:       dp.X,
			Y:       dp.Y,
		}
		if s.opts.Resolver != nil {
			if c, ok := s.opts.Resolver.Resolve(p.Glyph); ok {
				d.Color = c
			}
		}
		ld.Glyphs = append(ld.Glyphs, d)

		if ln.Type == mushaf.LineBody && p.Glyph.Word >= 0 {
			s.growWordRect(line, p, baseline, ascent, descent)
		}
	}

	s.emitSajda(&ld, pos, target, ln, baseline)
	return ld, nil
}

// growWordRect folds one glyph's extent into its word's element rect.
func (s *Scheduler) growWordRect(line int, p *justify.PositionedGlyph, baseline, ascent, descent fixed.Int26_6) {
	wp := verse.WordPosition{Page: s.page, Line: line, Word: p.Glyph.Word}
	left := s.vp.ToDevice(fixed.Point26_6{X: p.X, Y: baseline - ascent})
	right := s.vp.ToDevice(fixed.Point26_6{X: p.X + p.Advance(), Y: baseline + descent})
	rect := mushaf.DeviceRect{MinX: left.X, MinY: left.Y, MaxX: right.X, MaxY: right.Y}
	s.res.Words[wp] = s.res.Words[wp].Union(rect)
}

// emitSajda draws one horizontal rule between a begin-sajda and an
// end-sajda marker on the same line. A begin marker missing on the end
// marker's line is a markup inconsistency: the line's full start-x is
// substituted and the mismatch logged, never fatal.
func (s *Scheduler) emitSajda(ld *LineDraw, pos []justify.PositionedGlyph, target fixed.Int26_6, ln *shape.Line, baseline fixed.Int26_6) {
	var begin, end *justify.PositionedGlyph
	for i := range pos {
		if pos[i].Glyph.BeginSajda && begin == nil {
			begin = &pos[i]
		}
		if pos[i].Glyph.EndSajda {
			end = &pos[i]
		}
	}
	if end == nil {
		if begin != nil {
			mushaf.Logger().Debug("begin-sajda without end on line",
				"page", s.page, "line", ld.Index)
		}
		return
	}

	var beginX fixed.Int26_6
	if begin != nil {
		beginX = begin.X
	} else {
		beginX = target - ln.StartX
		mushaf.Logger().Warn("sajda markers span lines, substituting line start",
			"page", s.page, "line", ld.Index)
	}

	drop := mushaf.FloatToFixed(shape.DefaultEmSize * sajdaDropEm * s.fontScale)
	a := s.vp.ToDevice(fixed.Point26_6{X: end.X, Y: baseline + drop})
	b := s.vp.ToDevice(fixed.Point26_6{X: beginX, Y: baseline + drop})

	x1, x2 := a.X, b.X
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	ld.Rules = append(ld.Rules, Rule{X1: x1, X2: x2, Y: a.Y})
}

// Page renders one full page, yielding between lines through opts.Yield
// when set. It is the convenience driver over the Scheduler state
// machine.
//
// Cancellation through tok resolves successfully with a partial result
// (Cancelled() true), distinct from a failure.
func Page(reg *Registry, layout mushaf.Layout, page int, vp mushaf.Viewport, opts Options, tok *Token) (*PageResult, error) {
	s, err := NewScheduler(reg, layout, page, vp, opts, tok)
	if err != nil {
		return nil, err
	}
	for {
		done, err := s.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return s.Result(), nil
		}
		if opts.Yield != nil {
			if err := opts.Yield(); err != nil {
				return nil, err
			}
		}
	}
}
