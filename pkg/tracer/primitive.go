package tracer

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Primitive is an intersectable surface. The set of shapes is closed:
// *Sphere and *Plane are the only implementations.
type Primitive interface {
	// Intersect returns the nearest intersection in front of the ray's
	// origin, or nil if the ray misses.
	Intersect(ray *Ray) *Intersection
	// NormalAt returns the unit outward normal at a point on the surface.
	NormalAt(p math3d.Vec3) math3d.Vec3
	// ColorAt returns the local surface color at a point on the surface.
	ColorAt(p math3d.Vec3) math3d.Vec3
	IsMirror() bool
	BaseColor() math3d.Vec3

	sealed()
}

// Surface holds what every primitive shares: a position and orientation,
// a base color and whether it is a perfect mirror.
type Surface struct {
	Orientable
	Color  math3d.Vec3
	Mirror bool
}

// IsMirror reports whether the surface reflects instead of scattering.
func (s *Surface) IsMirror() bool { return s.Mirror }

// BaseColor returns the untextured surface color.
func (s *Surface) BaseColor() math3d.Vec3 { return s.Color }

func (s *Surface) sealed() {}

// Sphere is a sphere around Position.
type Sphere struct {
	Surface
	Radius float64
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3, radius float64, color math3d.Vec3, mirror bool) *Sphere {
	return &Sphere{
		Surface: Surface{
			Orientable: Orientable{Positionable: Positionable{Position: center}},
			Color:      color,
			Mirror:     mirror,
		},
		Radius: radius,
	}
}

// Intersect projects the center onto the ray and solves for the near root.
// The ray origin is assumed to be outside the sphere.
func (s *Sphere) Intersect(ray *Ray) *Intersection {
	centered := s.Position.Sub(ray.Position)
	tca := centered.Dot(ray.Orientation)
	d2 := centered.Sub(ray.Orientation.Scale(tca)).LenSq()
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return nil
	}
	t := tca - math.Sqrt(r2-d2)
	if t < 0 {
		return nil
	}
	return newIntersection(ray.ExtendedBy(t), t, s)
}

// NormalAt returns the unit vector from the center to p.
func (s *Sphere) NormalAt(p math3d.Vec3) math3d.Vec3 {
	return s.OrientationTo(p)
}

// ColorAt returns the uniform sphere color.
func (s *Sphere) ColorAt(math3d.Vec3) math3d.Vec3 {
	return s.Color
}

// Plane is an infinite plane through Position with normal Orientation.
type Plane struct {
	Surface
	Checkerboard bool
}

// parallelEpsilon is the |dir·normal| below which a ray counts as parallel.
const parallelEpsilon = 1e-12

// NewPlane creates a plane through point with the given normal.
func NewPlane(point, normal math3d.Vec3, color math3d.Vec3, mirror, checkerboard bool) *Plane {
	return &Plane{
		Surface: Surface{
			Orientable: Orientable{
				Positionable: Positionable{Position: point},
				Orientation:  normal.Normalize(),
			},
			Color:  color,
			Mirror: mirror,
		},
		Checkerboard: checkerboard,
	}
}

// Intersect solves the plane equation along the ray.
func (p *Plane) Intersect(ray *Ray) *Intersection {
	denom := ray.Orientation.Dot(p.Orientation)
	if math.Abs(denom) < parallelEpsilon {
		return nil
	}
	t := p.Position.Sub(ray.Position).Dot(p.Orientation) / denom
	if t < 0 {
		return nil
	}
	return newIntersection(ray.ExtendedBy(t), t, p)
}

// NormalAt returns the plane normal.
func (p *Plane) NormalAt(math3d.Vec3) math3d.Vec3 {
	return p.Orientation
}

// ColorAt returns the base color, or the checkerboard tile color when the
// plane is textured.
func (p *Plane) ColorAt(q math3d.Vec3) math3d.Vec3 {
	if !p.Checkerboard {
		return p.Color
	}
	return p.Color.Scale(float64(p.tileParity(q)))
}

// tileParity returns 1 for base-colored tiles and 0 for black ones.
//
// The two tile coordinates are the offset's extent in the XZ and YZ planes,
// each divided by the normal's extent in the same plane. This follows the
// plane's tilt only approximately; planes far from a major axis get
// stretched tiles.
func (p *Plane) tileParity(q math3d.Vec3) int {
	d := p.DirectionTo(q)
	n := p.Orientation
	u := tileCoord(math.Hypot(d.X, d.Z), math.Hypot(n.X, n.Z))
	v := tileCoord(math.Hypot(d.Y, d.Z), math.Hypot(n.Y, n.Z))
	return (u + v) & 1
}

func tileCoord(extent, scale float64) int {
	if scale == 0 {
		return 0
	}
	return int(extent / scale)
}
