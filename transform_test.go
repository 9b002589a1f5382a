package starship

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Constructors ---

func TestIdentity(t *testing.T) {
	assertMatrix(t, "identity", Identity(), Affine{1, 0, 0, 1, 0, 0})
	x, y := Identity().Apply(3, -4)
	assertNear(t, "x", x, 3)
	assertNear(t, "y", y, -4)
}

func TestTranslateMatrix(t *testing.T) {
	assertMatrix(t, "translate", TranslateMatrix(10, 20), Affine{1, 0, 0, 1, 10, 20})
}

func TestRotateMatrix90(t *testing.T) {
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", RotateMatrix(math.Pi/2, 0, 0), Affine{0, 1, -1, 0, 0, 0})
}

func TestRotateMatrixAboutPointKeepsPivot(t *testing.T) {
	m := RotateMatrix(0.7, 12, -5)
	x, y := m.Apply(12, -5)
	assertNear(t, "pivot x", x, 12)
	assertNear(t, "pivot y", y, -5)

	// (13, -5) is one unit right of the pivot; a quarter turn moves it one unit down.
	q := RotateMatrix(math.Pi/2, 12, -5)
	x, y = q.Apply(13, -5)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, -4)
}

func TestScaleMatrix(t *testing.T) {
	assertMatrix(t, "scale", ScaleMatrix(2, 3), Affine{2, 0, 0, 3, 0, 0})
}

// --- Composition ---

func TestMultiplyAffineOrder(t *testing.T) {
	// parent translates, child scales: child applies first.
	m := multiplyAffine(TranslateMatrix(10, 0), ScaleMatrix(2, 2))
	x, y := m.Apply(1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 2)

	r := TranslateMatrix(10, 0).Concat(ScaleMatrix(2, 2))
	assertMatrix(t, "concat", r, m)
}

func TestTranslateIsInCurrentFrame(t *testing.T) {
	m := Identity()
	m.Rotate(math.Pi/2, 0, 0)
	m.Translate(5, 0)
	// Moving along local +x after a quarter turn goes along world +y.
	assertNear(t, "tx", m[4], 0)
	assertNear(t, "ty", m[5], 5)
}

func TestScaleRejectsNearZero(t *testing.T) {
	m := TranslateMatrix(1, 2)
	before := m
	for _, s := range [][2]float64{{0, 1}, {1, 0}, {1e-10, 1}, {1, -1e-12}} {
		if err := m.Scale(s[0], s[1]); !errors.Is(err, ErrDegenerateScale) {
			t.Errorf("Scale(%v, %v) err = %v, want ErrDegenerateScale", s[0], s[1], err)
		}
	}
	assertMatrix(t, "unchanged", m, before)

	if err := m.Scale(-2, 1e-9); err != nil {
		t.Errorf("Scale(-2, 1e-9) = %v, want nil", err)
	}
}

// --- Inversion ---

func TestInvertRoundTrip(t *testing.T) {
	m := Identity()
	m.Translate(30, -12)
	m.Rotate(0.9, 4, 7)
	if err := m.Scale(1.5, -0.5); err != nil {
		t.Fatal(err)
	}

	inv, err := m.Invert()
	if err != nil {
		t.Fatal(err)
	}
	assertMatrix(t, "m*inv", multiplyAffine(m, inv), Identity())
	assertMatrix(t, "inv*m", multiplyAffine(inv, m), Identity())

	for _, p := range []Vec2{{0, 0}, {1, 2}, {-100, 55.5}} {
		x, y := m.Apply(p.X, p.Y)
		bx, by := inv.Apply(x, y)
		assertNear(t, "round trip x", bx, p.X)
		assertNear(t, "round trip y", by, p.Y)
	}
}

func TestInvertSingular(t *testing.T) {
	m := Affine{1, 2, 2, 4, 5, 6} // det = 0
	if m.Invertible() {
		t.Error("Invertible = true for singular matrix")
	}
	inv, err := m.Invert()
	if !errors.Is(err, ErrSingular) {
		t.Fatalf("err = %v, want ErrSingular", err)
	}
	assertMatrix(t, "fallback", inv, Identity())

	tiny := Affine{1e-7, 0, 0, 1e-7, 0, 0} // det = 1e-14
	if _, err := tiny.Invert(); !errors.Is(err, ErrSingular) {
		t.Errorf("tiny det err = %v, want ErrSingular", err)
	}
}

func TestDeterminant(t *testing.T) {
	assertNear(t, "det", Affine{2, 1, 3, 4, 9, 9}.Determinant(), 5)
	assertNear(t, "rotation det", RotateMatrix(1.234, 3, 3).Determinant(), 1)
}

// --- Points ---

func TestTransformPointsInPlace(t *testing.T) {
	pts := []Vec2{{1, 0}, {0, 1}}
	out := TranslateMatrix(1, 1).Concat(ScaleMatrix(2, 3)).TransformPoints(pts, pts)
	if &out[0] != &pts[0] {
		t.Error("in-place transform reallocated")
	}
	assertNear(t, "p0.x", pts[0].X, 3)
	assertNear(t, "p0.y", pts[0].Y, 1)
	assertNear(t, "p1.x", pts[1].X, 1)
	assertNear(t, "p1.y", pts[1].Y, 4)
}

func TestTransformPointsGrowsDst(t *testing.T) {
	out := Identity().TransformPoints(nil, []Vec2{{1, 2}, {3, 4}, {5, 6}})
	if len(out) != 3 || out[2] != (Vec2{5, 6}) {
		t.Errorf("out = %v", out)
	}
}

func TestEqual(t *testing.T) {
	a := RotateMatrix(0.5, 1, 1)
	b := a
	b[4] += 1e-12
	if !a.Equal(b, epsilon) {
		t.Error("Equal within eps = false")
	}
	b[4] += 1
	if a.Equal(b, epsilon) {
		t.Error("Equal beyond eps = true")
	}
}

func TestGeoMMatchesApply(t *testing.T) {
	m := Identity()
	m.Translate(7, 3)
	m.Rotate(0.3, 0, 0)
	if err := m.Scale(2, 0.5); err != nil {
		t.Fatal(err)
	}
	g := m.GeoM()
	gx, gy := g.Apply(4, -2)
	x, y := m.Apply(4, -2)
	assertNear(t, "x", gx, x)
	assertNear(t, "y", gy, y)
}

func TestLinearScale(t *testing.T) {
	assertNear(t, "uniform", ScaleMatrix(3, 3).linearScale(), 3)
	assertNear(t, "rotated", RotateMatrix(1, 0, 0).Concat(ScaleMatrix(2, 2)).linearScale(), 2)
}
