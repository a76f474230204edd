// Package render drives one page's lines through shaping, justification,
// tajweed coloring, and the viewport transform.
//
// Rendering is cooperative and single-flow: a Scheduler advances one line
// per Step call, and the driver (the Page convenience function, a host
// frame loop, or a test harness) yields between steps. Cancellation is a
// shared Token flag checked before every line; a cancelled render resolves
// successfully with a partial result.
//
// The Registry is the explicit pipeline context: per-layout shaper, text
// service, verse mapping, and shaped-line cache, created at startup and
// torn down with Close. Per-line shaping resources are owned by the
// shaper and released by the scheduler immediately after each line is
// consumed.
package render
