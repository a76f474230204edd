// Package mushaf provides the page typesetting pipeline for Quran mushaf
// layouts.
//
// # Overview
//
// mushaf sits between an external glyph-shaping engine and a host renderer.
// It takes per-line shaping results and produces a justified, tajweed-colored,
// click-mappable page layout through a cancellable, line-by-line render
// scheduler. Pixels are not this module's business: the output of a page
// render is a set of positioned glyph draws in device coordinates, plus a
// word-element index for hit testing and highlighting.
//
// # Architecture
//
// The module is organized into:
//   - Root package: shared primitives (layouts, viewport mapping, colors,
//     the text-data contract, logging)
//   - shape: wrapper over the shaping engine (go-text/typesetting), line
//     handles with explicit release
//   - justify: line justification via tatweel elongation, and the centering
//     rule for surah headers and basmala lines
//   - verse: the bidirectional verse <-> word-position index
//   - tajweed: recitation-rule color resolution
//   - highlight: per-word highlight composition
//   - render: the per-line render scheduler, registry, and cancellation
//     tokens
//   - cache, load: shaped-line caching and de-duplicated resource loading
//
// # Coordinate System
//
// Shaped glyph geometry lives in the shaping engine's 26.6 fixed-point
// space (fixed.Int26_6). Conversion to device pixels happens exactly once,
// in Viewport.ToDevice, during rendering. Layout is right-to-left: x
// decreases as reading order advances.
//
// # Quick Start
//
//	reg := render.NewRegistry()
//	reg.Register(mushaf.LayoutHafs, shaper, textService)
//	defer reg.Close()
//
//	tok := render.NewToken()
//	res, err := render.Page(reg, mushaf.LayoutHafs, 2, viewport, opts, tok)
package mushaf

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
