// Package curve3 provides primitives and routines for 3D polylines, most
// notably resampling them at uniform arc-length intervals.
//
// # Points, vectors, and polylines
//
// [Point] and [Vec3] are plain value types. A polyline is an ordered slice of
// points, connected by straight segments ([Line]) in slice order. Duplicate
// consecutive points are allowed and contribute no length. Whether a polyline
// is [Open] or [Closed] is described by its [Topology]; closed curves must
// repeat their first point at the end for the closing segment to exist, as
// this package never infers it.
//
// # Resampling
//
// [Resample] produces a new polyline whose points are spaced at a fixed arc
// length along the input, starting at the first input point. [Samples] is the
// same pass as an iterator adapter. [TotalLength] and [SamplingDistance]
// derive the step needed for a desired number of output points, and
// [ResampleCount] combines the three.
//
// Resampling only re-parametrizes a curve by arc length. It doesn't fit
// splines, smooth noise, or change point order.
//
// Because the first point is always emitted and a further point is emitted
// for every full step, a closed curve sampled for n points usually produces
// n+1 points, the last one landing back near the start. [ExpectedCounts]
// reports the counts a caller should accept. Nothing in this package retries
// or trims to reach a count.
//
// All functions are pure and safe for concurrent use on independent inputs.
package curve3
