package curve3

import (
	"iter"
	"math"
	"slices"
	"strconv"

	"github.com/pkg/errors"
)

// roundTo4 rounds f to four decimal places. All comparisons of accumulated
// arc length against the sampling distance happen at this precision, which
// absorbs floating-point drift when a sample falls exactly on a vertex.
//
// Rounding goes through the exact decimal expansion of f, with ties to even,
// so that values such as 2.00005, whose binary value lies just below the tie,
// round down. Scaling by 1e4 first would round them up.
func roundTo4(f float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 4, 64), 64)
	return r
}

// Samples returns an iterator that resamples the polyline through the points
// of seq at uniform arc-length intervals of d.
//
// The first point of seq is always yielded verbatim. Every following point
// lies d further along the polyline than the previous one, interpolated
// linearly between the two input points that bound it. Coincident points
// contribute no length. The pass stops when seq is exhausted, so the
// remainder of the curve shorter than d produces no point; in particular the
// last input point is only yielded if it happens to fall on a stride.
//
// The pass ends early at the first point whose distance from its predecessor
// is not finite.
//
// Samples panics if d is not a positive, finite number. Use [Resample] to get
// an error instead.
func Samples(seq iter.Seq[Point], d float64) iter.Seq[Point] {
	if err := checkSamplingDistance(d); err != nil {
		panic(err)
	}
	step := roundTo4(d)
	return func(yield func(Point) bool) {
		var prev option[Point]
		// Length traveled since the last sample.
		var carry float64
		for cur := range seq {
			if !prev.isSet {
				prev.set(cur)
				if !yield(cur) {
					return
				}
				continue
			}

			p0 := prev.value
			segLen := cur.Distance(p0)
			if math.IsInf(segLen, 0) || math.IsNaN(segLen) {
				return
			}
			if segLen <= 0 {
				continue
			}
			remaining := carry + segLen
			if roundTo4(remaining) >= step {
				dir := cur.Sub(p0).Div(segLen)
				// Distance of the next sample from p0.
				offset := d - carry
				for roundTo4(remaining) >= step {
					if !yield(p0.Translate(dir.Mul(offset))) {
						return
					}
					offset += d
					remaining -= d
				}
			}
			carry = remaining
			prev.set(cur)
		}
	}
}

// Resample resamples the polyline through points at uniform arc-length
// intervals of d and appends the result to dst[:0], returning the updated
// slice. dst must not overlap points. See [Samples] for how samples are
// placed.
//
// Sequences with fewer than two points are copied unchanged. The number of
// points produced is whatever the pass yields; it is not adjusted to any
// desired count. For a curve sampled with [SamplingDistance], see
// [ExpectedCounts] for the counts to expect.
//
// The topology is not used by the pass itself, which operates purely on the
// given sequence, but must be valid. An error wrapping [ErrInvalidArgument] is
// returned, and dst is left untouched, if the topology is unknown, a point has
// an infinite or NaN coordinate, or d is not a positive, finite number at
// four-decimal precision. Distances below 0.00005 round to a stride of zero,
// at which the pass would place samples past the end of a segment, off the
// polyline.
func Resample(dst, points []Point, d float64, topology Topology) ([]Point, error) {
	if !topology.valid() {
		return dst, errors.Wrapf(ErrInvalidArgument, "unknown topology %d", topology)
	}
	if err := checkSamplingDistance(d); err != nil {
		return dst, err
	}
	for i, pt := range points {
		if pt.IsInf() || pt.IsNaN() {
			return dst, errors.Wrapf(ErrInvalidArgument, "point %d is %v", i, pt)
		}
	}
	dst = dst[:0]
	if len(points) < 2 {
		return append(dst, points...), nil
	}
	for pt := range Samples(slices.Values(points), d) {
		dst = append(dst, pt)
	}
	return dst, nil
}

// ResampleCount resamples points so that they are spread over the curve's
// length for n output points, deriving the sampling distance with
// [TotalLength] and [SamplingDistance]. The result is appended to dst[:0].
//
// The caller is responsible for checking the number of points produced
// against [ExpectedCounts].
func ResampleCount(dst, points []Point, n int, topology Topology) ([]Point, error) {
	if !topology.valid() {
		return dst, errors.Wrapf(ErrInvalidArgument, "unknown topology %d", topology)
	}
	if len(points) < 2 {
		return append(dst[:0], points...), nil
	}
	d, err := SamplingDistance(TotalLength(points, topology), n, topology)
	if err != nil {
		return dst, err
	}
	return Resample(dst, points, d, topology)
}
