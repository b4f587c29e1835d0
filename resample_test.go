package curve3

import (
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// arclens returns the arc length along points at which each sample lies,
// failing the test if a sample isn't on the polyline. Samples must be in
// traversal order.
func arclens(t *testing.T, points, samples []Point) []float64 {
	t.Helper()
	segs := slices.Collect(Segments(points))
	var out []float64
	var seg int
	var base float64
	for _, pt := range samples {
		for {
			if seg == len(segs) {
				t.Fatalf("%v doesn't lie on the polyline", pt)
			}
			l := segs[seg]
			if distSq, tt := l.Nearest(pt); distSq < 1e-12 {
				out = append(out, base+tt*l.Length())
				break
			}
			base += l.Length()
			seg++
		}
	}
	return out
}

func mustResample(t *testing.T, points []Point, d float64, topology Topology) []Point {
	t.Helper()
	out, err := Resample(nil, points, d, topology)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestResampleStraightLine(t *testing.T) {
	var points []Point
	for i := range 10 {
		points = append(points, Pt(float64(i), 0, 0))
	}
	got := mustResample(t, points, 3, Open)
	want := []Point{Pt(0, 0, 0), Pt(3, 0, 0), Pt(6, 0, 0), Pt(9, 0, 0)}
	diff(t, want, got, cmpopts.EquateApprox(0, 1e-9))
}

func TestResampleDegenerate(t *testing.T) {
	got := mustResample(t, []Point{Pt(1, 1, 1)}, 0.5, Open)
	diff(t, []Point{Pt(1, 1, 1)}, got)

	got = mustResample(t, nil, 0.5, Closed)
	diff(t, []Point{}, got, cmpopts.EquateEmpty())
}

func TestResampleCoincidentPoints(t *testing.T) {
	points := []Point{Pt(0, 0, 0), Pt(0, 0, 0), Pt(5, 0, 0)}
	got := mustResample(t, points, 5, Open)
	diff(t, []Point{Pt(0, 0, 0), Pt(5, 0, 0)}, got, cmpopts.EquateApprox(0, 1e-9))

	// Coincident points in the middle of a curve don't disturb the spacing.
	points = []Point{Pt(0, 0, 0), Pt(1, 0, 0), Pt(1, 0, 0), Pt(1, 0, 0), Pt(4, 0, 0)}
	got = mustResample(t, points, 2, Open)
	diff(t, []Point{Pt(0, 0, 0), Pt(2, 0, 0), Pt(4, 0, 0)}, got, cmpopts.EquateApprox(0, 1e-9))
}

func TestResampleClosedSquare(t *testing.T) {
	square := []Point{Pt(0, 0, 0), Pt(2, 0, 0), Pt(2, 2, 0), Pt(0, 2, 0), Pt(0, 0, 0)}
	d, err := SamplingDistance(TotalLength(square, Closed), 4, Closed)
	if err != nil {
		t.Fatal(err)
	}
	if d != 2 {
		t.Fatalf("got sampling distance %v, want 2", d)
	}
	got := mustResample(t, square, d, Closed)
	diff(t, square, got, cmpopts.EquateApprox(0, 1e-9))
	if !slices.Contains(ExpectedCounts(4, Closed), len(got)) {
		t.Errorf("%d points aren't an expected count for a closed curve", len(got))
	}
}

func TestResampleInvalidArgument(t *testing.T) {
	points := zigzag(5)
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1), 1e-6, 4e-5} {
		dst := []Point{Pt(7, 7, 7)}
		out, err := Resample(dst, points, d, Open)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("d = %v: got error %v, want ErrInvalidArgument", d, err)
		}
		diff(t, []Point{Pt(7, 7, 7)}, out)
	}

	if _, err := Resample(nil, points, 1, Topology(3)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got error %v, want ErrInvalidArgument", err)
	}
	// Preconditions are checked before the degenerate case.
	if _, err := Resample(nil, []Point{Pt(1, 1, 1)}, 0, Open); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got error %v, want ErrInvalidArgument", err)
	}
}

func TestResampleNonFinitePoints(t *testing.T) {
	for _, bad := range []Point{Pt(math.Inf(1), 0, 0), Pt(0, math.Inf(-1), 0), Pt(0, 0, math.NaN())} {
		points := []Point{Pt(0, 0, 0), Pt(1, 0, 0), bad, Pt(2, 0, 0)}
		dst := []Point{Pt(7, 7, 7)}
		out, err := Resample(dst, points, 0.5, Open)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v: got error %v, want ErrInvalidArgument", bad, err)
		}
		diff(t, []Point{Pt(7, 7, 7)}, out)

		if _, err := ResampleCount(nil, points, 5, Open); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v: got error %v from ResampleCount, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestSamplesStopsAtNonFiniteSegment(t *testing.T) {
	points := []Point{Pt(0, 0, 0), Pt(1, 0, 0), Pt(math.Inf(1), 0, 0), Pt(2, 0, 0)}
	got := slices.Collect(Samples(slices.Values(points), 0.5))
	want := []Point{Pt(0, 0, 0), Pt(0.5, 0, 0), Pt(1, 0, 0)}
	diff(t, want, got, cmpopts.EquateApprox(0, 1e-9))
}

func TestRoundTo4(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1.23456, 1.2346},
		{-1.23456, -1.2346},
		{0.00004, 0},
		// The binary value of 2.00005 lies just below the tie.
		{2.00005, 2},
		// Exact ties round to even.
		{0.03125, 0.0312},
		{0.03135, 0.0314},
		{1e6 + 0.5, 1e6 + 0.5},
	}
	for _, tt := range tests {
		if got := roundTo4(tt.in); got != tt.want {
			t.Errorf("roundTo4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResampleOnPolyline(t *testing.T) {
	points := zigzag(21)
	for _, d := range []float64{0.4, 1, 1.5, 2.2, 3.3333333333333335, 7} {
		got := mustResample(t, points, d, Open)
		if got[0] != points[0] {
			t.Errorf("d = %v: first point is %v, want %v", d, got[0], points[0])
		}
		lens := arclens(t, points, got)
		for i := 1; i < len(lens); i++ {
			if step := lens[i] - lens[i-1]; math.Abs(step-d) > 1e-4 {
				t.Errorf("d = %v: points %d and %d are %v apart", d, i-1, i, step)
			}
		}
		if total := TotalLength(points, Open); lens[len(lens)-1] > total+1e-4 {
			t.Errorf("d = %v: last sample at %v lies beyond the end at %v", d, lens[len(lens)-1], total)
		}
	}
}

func TestResampleIdempotent(t *testing.T) {
	dir := Vec(1, 2, 2).Normalize()
	var points []Point
	for _, s := range []float64{0, 0.7, 1.1, 2.9, 4.0, 5.5, 6.0} {
		points = append(points, Pt(0, 0, 0).Translate(dir.Mul(s)))
	}
	once := mustResample(t, points, 1.5, Open)
	if len(once) != 5 {
		t.Fatalf("got %d points, want 5", len(once))
	}
	twice := mustResample(t, once, 1.5, Open)
	diff(t, once, twice, cmpopts.EquateApprox(0, 1e-9))
}

func TestResampleCount(t *testing.T) {
	points := zigzag(21)
	for _, n := range []int{3, 5, 10, 13, 50, 101} {
		got, err := ResampleCount(nil, points, n, Open)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != n {
			t.Errorf("n = %d: got %d points", n, len(got))
		}
		if d := got[len(got)-1].Distance(points[len(points)-1]); d > 1e-6 {
			t.Errorf("n = %d: last point %v is %g away from the curve's end", n, got[len(got)-1], d)
		}
	}

	// A closed curve returns to its start and yields one extra point.
	const m = 16
	var circle []Point
	for k := range m {
		s, c := math.Sincos(2 * math.Pi * float64(k) / m)
		circle = append(circle, Pt(3*c, 3*s, 1))
	}
	circle = append(circle, circle[0])
	for _, n := range []int{4, 10, 25} {
		got, err := ResampleCount(nil, circle, n, Closed)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != n+1 {
			t.Errorf("n = %d: got %d points, want %d", n, len(got), n+1)
		}
		if !slices.Contains(ExpectedCounts(n, Closed), len(got)) {
			t.Errorf("n = %d: %d points aren't expected", n, len(got))
		}
	}

	if _, err := ResampleCount(nil, []Point{Pt(1, 1, 1), Pt(1, 1, 1)}, 5, Open); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got error %v for a zero-length curve, want ErrInvalidArgument", err)
	}
}

func TestResampleReusesDst(t *testing.T) {
	dst := make([]Point, 3, 16)
	dst[0] = Pt(9, 9, 9)
	got := mustResample(t, []Point{Pt(0, 0, 0), Pt(4, 0, 0)}, 2, Open)
	out, err := Resample(dst, []Point{Pt(0, 0, 0), Pt(4, 0, 0)}, 2, Open)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, got, out)
	if &out[0] != &dst[0] {
		t.Error("Resample didn't reuse the destination's storage")
	}
}

func TestResampleDoesNotModifyInput(t *testing.T) {
	points := zigzag(9)
	orig := slices.Clone(points)
	mustResample(t, points, 0.7, Open)
	diff(t, orig, points)
}

func TestResampleConcurrent(t *testing.T) {
	points := zigzag(41)
	want := mustResample(t, points, 0.9, Open)

	var wg sync.WaitGroup
	results := make([][]Point, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = Resample(nil, points, 0.9, Open)
		}()
	}
	wg.Wait()
	for _, got := range results {
		diff(t, want, got)
	}
}

func TestSamplesStopsEarly(t *testing.T) {
	var got []Point
	for pt := range Samples(slices.Values(zigzag(21)), 1) {
		got = append(got, pt)
		if len(got) == 3 {
			break
		}
	}
	if len(got) != 3 {
		t.Errorf("got %d points, want 3", len(got))
	}
}

func TestSamplesPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("got panic value %v, want ErrInvalidArgument", r)
		}
	}()
	Samples(slices.Values(zigzag(3)), -1)
}
