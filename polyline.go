package curve3

import (
	"iter"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned, possibly wrapped, when an operation is
// called with arguments it cannot work with, such as a non-positive sampling
// distance.
var ErrInvalidArgument = errors.New("invalid argument")

// Topology describes whether a polyline's last point connects back to its
// first.
type Topology uint8

const (
	// Open curves have no segment from the last point back to the first.
	Open Topology = iota
	// Closed curves connect their last point back to their first. The closing
	// segment must be materialized by the caller by repeating the first point
	// at the end of the sequence; it is never inferred.
	Closed
)

func (t Topology) String() string {
	switch t {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "Topology(" + strconv.Itoa(int(t)) + ")"
	}
}

func (t Topology) valid() bool {
	return t == Open || t == Closed
}

// ParseTopology parses "open" or "closed".
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "open":
		return Open, nil
	case "closed":
		return Closed, nil
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown topology %q", s)
	}
}

func (t Topology) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown topology %d", t)
	}
	return []byte(t.String()), nil
}

func (t *Topology) UnmarshalText(b []byte) error {
	v, err := ParseTopology(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Segments returns an iterator over the segments connecting consecutive
// points. Sequences with fewer than two points have no segments.
func Segments(points []Point) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := 1; i < len(points); i++ {
			if !yield(Line{points[i-1], points[i]}) {
				return
			}
		}
	}
}

// TotalLength returns the arc length of the polyline through points, the sum
// of the lengths of its segments. It is 0 for fewer than two points.
//
// Closed curves are not wrapped around: the topology only documents intent,
// and a caller that wants the closing segment counted has to repeat the first
// point at the end.
func TotalLength(points []Point, topology Topology) float64 {
	var sum float64
	for l := range Segments(points) {
		sum += l.Length()
	}
	return sum
}

// SamplingDistance returns the arc-length step that spreads n points over a
// curve of the given length. Open curves place a point at both ends, so the
// length is divided into n−1 steps; closed curves divide it into n steps.
func SamplingDistance(length float64, n int, topology Topology) (float64, error) {
	var steps int
	switch topology {
	case Open:
		steps = n - 1
	case Closed:
		steps = n
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown topology %d", topology)
	}
	if steps < 1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "cannot sample %s curve with %d points", topology, n)
	}
	d := length / float64(steps)
	if err := checkSamplingDistance(d); err != nil {
		return 0, err
	}
	return d, nil
}

// ExpectedCounts returns the numbers of points that resampling a curve for n
// output points may legitimately produce. Closed curves return to their start
// point, which usually yields one extra point.
func ExpectedCounts(n int, topology Topology) []int {
	if topology == Closed {
		return []int{n, n + 1}
	}
	return []int{n}
}

func checkSamplingDistance(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || roundTo4(d) <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "sampling distance %g", d)
	}
	return nil
}
