package curve3

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0, 0).Translate(Vec(-10, 0, 2)), Pt(-10, 0, 2))
	diff(t, Pt(1, 2, 3).Sub(Pt(1, 1, 1)), Vec(0, 1, 2))
	diff(t, Pt(0, 0, 0).Lerp(Pt(2, 4, 6), 0.5), Pt(1, 2, 3))
	diff(t, Pt(0, 0, 0).Midpoint(Pt(2, 4, 6)), Pt(1, 2, 3))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10, 0)
	p2 := Pt(0, 5, 0)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1, 4)
	p4 := Pt(-7, -2, 4)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	if d := Pt(0, 0, 0).Distance(Pt(1, 2, 2)); d != 3 {
		t.Errorf("got distance %v, want 3", d)
	}
	if d := Pt(0, 0, 0).DistanceSquared(Pt(1, 2, 2)); d != 9 {
		t.Errorf("got squared distance %v, want 9", d)
	}
}

func TestPointIsInf(t *testing.T) {
	if Pt(1, 2, 3).IsInf() {
		t.Error("point is infinite but shouldn't be")
	}
	if !Pt(1, 2, math.Inf(-1)).IsInf() {
		t.Error("point is finite but shouldn't be")
	}
	if !Pt(math.NaN(), 0, 0).IsNaN() {
		t.Error("point isn't NaN but should be")
	}
}
