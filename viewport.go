package mushaf

import "golang.org/x/image/math/fixed"

// Font-scale clamping range. Values outside the range are clamped,
// never rejected.
const (
	MinFontScale = 0.5
	MaxFontScale = 3.0
)

// DevicePoint is a point in device pixels.
type DevicePoint struct {
	X, Y float64
}

// DeviceRect is an axis-aligned rectangle in device pixels.
// Min is the top-left corner, Max the bottom-right.
type DeviceRect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r DeviceRect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r DeviceRect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether the rectangle is empty.
func (r DeviceRect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Contains reports whether the point lies inside the rectangle.
func (r DeviceRect) Contains(p DevicePoint) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Union returns the smallest rectangle containing both r and s.
// An empty r is treated as absent.
func (r DeviceRect) Union(s DeviceRect) DeviceRect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	if s.MinX < r.MinX {
		r.MinX = s.MinX
	}
	if s.MinY < r.MinY {
		r.MinY = s.MinY
	}
	if s.MaxX > r.MaxX {
		r.MaxX = s.MaxX
	}
	if s.MaxY > r.MaxY {
		r.MaxY = s.MaxY
	}
	return r
}

// Viewport describes the device-space target of one page render: the text
// column width in device pixels, the device pixel ratio, and the user font
// scale.
//
// A Viewport is a value; the transform it implies is stateless and
// recomputed per render. Nothing is cached across viewport changes.
type Viewport struct {
	// Width is the text column width in device pixels.
	Width float64

	// Scale is the device pixel ratio (shaping-space pixels to device
	// pixels). Zero means 1.0.
	Scale float64

	// FontScale is the user font-size multiplier. It is clamped to
	// [MinFontScale, MaxFontScale] wherever it is consumed.
	FontScale float64
}

// ClampedFontScale returns FontScale clamped to the configured range.
// A zero FontScale means 1.0 (the unset default).
func (v Viewport) ClampedFontScale() float64 {
	fs := v.FontScale
	if fs == 0 {
		fs = 1.0
	}
	if fs < MinFontScale {
		return MinFontScale
	}
	if fs > MaxFontScale {
		return MaxFontScale
	}
	return fs
}

// scale returns the effective device pixel ratio.
func (v Viewport) scale() float64 {
	if v.Scale == 0 {
		return 1.0
	}
	return v.Scale
}

// TargetLineWidth returns the text column width in shaping-space units.
// This is the target width the justification engine fills.
func (v Viewport) TargetLineWidth() fixed.Int26_6 {
	return FloatToFixed(v.Width / v.scale())
}

// ToDevice converts a shaping-space point to device pixels.
func (v Viewport) ToDevice(p fixed.Point26_6) DevicePoint {
	s := v.scale()
	return DevicePoint{
		X: FixedToFloat(p.X) * s,
		Y: FixedToFloat(p.Y) * s,
	}
}

// ToDeviceLength converts a shaping-space length to device pixels.
func (v Viewport) ToDeviceLength(d fixed.Int26_6) float64 {
	return FixedToFloat(d) * v.scale()
}

// FloatToFixed converts a float64 length to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func FloatToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// FixedToFloat converts a fixed.Int26_6 value to float64.
func FixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
