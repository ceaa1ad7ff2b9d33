package tracer

import (
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestPositionableHelpers(t *testing.T) {
	p := Positionable{Position: math3d.V3(1, 1, 1)}
	target := math3d.V3(1, 4, 5)

	if got := p.DirectionTo(target); got != math3d.V3(0, 3, 4) {
		t.Errorf("DirectionTo = %v, want (0, 3, 4)", got)
	}
	if got := p.DistanceTo(target); got != 5 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
	if got := p.OrientationTo(target); !got.ApproxEqual(math3d.V3(0, 0.6, 0.8), tolerance) {
		t.Errorf("OrientationTo = %v, want (0, 0.6, 0.8)", got)
	}

	p.TranslateBy(math3d.V3(1, 0, -1))
	if p.Position != math3d.V3(2, 1, 0) {
		t.Errorf("TranslateBy moved to %v, want (2, 1, 0)", p.Position)
	}
}

func TestOrientableHelpers(t *testing.T) {
	o := Orientable{
		Positionable: Positionable{Position: math3d.Zero3()},
		Orientation:  math3d.V3(0, 1, 0),
	}

	if got := o.ExtendedBy(3); got != math3d.V3(0, 3, 0) {
		t.Errorf("ExtendedBy = %v, want (0, 3, 0)", got)
	}

	o.OrientTo(math3d.V3(0, 0, -2))
	if o.Orientation != math3d.V3(0, 0, -1) {
		t.Errorf("OrientTo = %v, want (0, 0, -1)", o.Orientation)
	}

	o.ExtendBy(2)
	if o.Position != math3d.V3(0, 0, -2) {
		t.Errorf("ExtendBy moved to %v, want (0, 0, -2)", o.Position)
	}
}
