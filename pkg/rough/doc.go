// Package rough turns shape outlines into hand-drawn looking path ops.
//
// A [Generator] renders a square, circle or triangle inside a rectangle and
// returns a [Drawable]: one or more fill sets holding the hatch pattern and a
// stroke set tracing the outline. Both are made of [Op] values (move, line
// and cubic curve) in canvas coordinates; package flatten turns them into
// polylines for a sink.
//
// # Roughness Model
//
// Every outline edge is drawn as one or two bowed cubic curves whose control
// points and end points are jittered. The jitter scales with
// [Options.Roughness] and shrinks for long edges. Ellipses are sampled at a
// step count derived from their perimeter, jittered, and refitted with
// Catmull-Rom style cubics.
//
// Fills are derived from scanline hatching: the outline is intersected with
// parallel lines at [Options.HachureAngle], spaced [Options.HachureGap]
// apart, and each [FillStyle] turns those lines into strokes, dashes, dots
// or zig-zags.
//
// # Determinism
//
// All randomness comes from one PCG source seeded with [Style.Seed] per
// call. Rendering the same shape, bounds, style and options twice yields
// identical ops.
package rough
