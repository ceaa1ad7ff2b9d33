package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != V3(-3, 6, -3) {
		t.Errorf("Cross = %v, want (-3, 6, -3)", got)
	}
	if got := a.Mul(b); got != V3(4, 10, 18) {
		t.Errorf("Mul = %v, want (4, 10, 18)", got)
	}
	if got := V3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := V3(0, 0, 0).Normalize(); got != Zero3() {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := Forward().Cross(Up()); got != Right() {
		t.Errorf("Forward x Up = %v, want Right %v", got, Right())
	}
}

func TestVec3Reflect(t *testing.T) {
	in := V3(1, -1, 0).Normalize()
	got := in.Reflect(V3(0, 1, 0))
	want := V3(1, 1, 0).Normalize()
	if !got.ApproxEqual(want, eps) {
		t.Errorf("Reflect = %v, want %v", got, want)
	}
}

func TestVec3Clamp(t *testing.T) {
	got := V3(-0.5, 0.5, 1.5).Clamp(0, 1)
	if got != V3(0, 0.5, 1) {
		t.Errorf("Clamp = %v, want (0, 0.5, 1)", got)
	}
}

func TestPolarRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"forward", V3(0, 1, 0)},
		{"right", V3(1, 0, 0)},
		{"left", V3(-1, 0, 0)},
		{"up", V3(0, 0, 1)},
		{"down", V3(0, 0, -1)},
		{"diagonal", V3(-1, 2, -3).Normalize()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromPolar(1, PolarTheta(tc.v), PolarPhi(tc.v))
			if !got.ApproxEqual(tc.v, eps) {
				t.Errorf("FromPolar(PolarTheta, PolarPhi) = %v, want %v", got, tc.v)
			}
		})
	}
}

func TestPolarAngles(t *testing.T) {
	v := V3(0, 1, 0)
	if got := PolarTheta(v); math.Abs(got-math.Pi/2) > eps {
		t.Errorf("PolarTheta(+Y) = %v, want π/2", got)
	}
	if got := PolarPhi(v); got != 0 {
		t.Errorf("PolarPhi(+Y) = %v, want 0", got)
	}
	if got := PolarPhi(V3(1, 0, 0)); math.Abs(got-math.Pi/2) > eps {
		t.Errorf("PolarPhi(+X) = %v, want π/2", got)
	}
	if got := PolarTheta(Zero3()); got != 0 {
		t.Errorf("PolarTheta(zero) = %v, want 0", got)
	}
}

func TestDegreesRadians(t *testing.T) {
	if got := Degrees(Radians(73)); math.Abs(got-73) > eps {
		t.Errorf("Degrees(Radians(73)) = %v", got)
	}
}

func TestRotateXConvertsYUpToZUp(t *testing.T) {
	m := RotateX(math.Pi / 2)
	got := m.MulVec3Dir(V3(1, 2, 3))
	if !got.ApproxEqual(V3(1, -3, 2), eps) {
		t.Errorf("RotateX(π/2) * (1,2,3) = %v, want (1,-3,2)", got)
	}
}

func TestFromQuaternion(t *testing.T) {
	// 90° around Y: +Z maps to +X.
	s := math.Sqrt(0.5)
	m := FromQuaternion([4]float64{0, s, 0, s})
	got := m.MulVec3Dir(V3(0, 0, 1))
	if !got.ApproxEqual(V3(1, 0, 0), eps) {
		t.Errorf("rotated +Z = %v, want +X", got)
	}

	if FromQuaternion([4]float64{}) != Identity() {
		t.Error("zero quaternion should give identity")
	}
}

func TestTranslateScaleCompose(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(Scale(V3(2, 2, 2)))
	if got := m.MulVec3(V3(1, 1, 1)); got != V3(3, 4, 5) {
		t.Errorf("T*S*(1,1,1) = %v, want (3,4,5)", got)
	}
	if got := m.Translation(); got != V3(1, 2, 3) {
		t.Errorf("Translation = %v", got)
	}
}

func TestOrthographicMapsBoundsToNDC(t *testing.T) {
	m := Orthographic(-5, 5, 0, 10, -1, 1)
	if got := m.MulVec3(V3(-5, 0, 0)); !got.ApproxEqual(V3(-1, -1, 0), eps) {
		t.Errorf("min corner = %v, want (-1,-1,0)", got)
	}
	if got := m.MulVec3(V3(5, 10, 0)); !got.ApproxEqual(V3(1, 1, 0), eps) {
		t.Errorf("max corner = %v, want (1,1,0)", got)
	}
}
