package tracer

import "github.com/taigrr/prism/pkg/math3d"

// Ray is a half-line from Position along the unit vector Orientation. It is
// used for primary, shadow and secondary rays and holds the nearest
// intersection found so far.
//
// Primary rays are owned by the camera and reused across frames.
type Ray struct {
	Orientable
	Hit *Intersection
}

// NewRay creates a ray. dir must be unit length.
func NewRay(origin, dir math3d.Vec3) *Ray {
	return &Ray{
		Orientable: Orientable{
			Positionable: Positionable{Position: origin},
			Orientation:  dir,
		},
	}
}

// Update moves the ray in place and forgets its intersection.
func (r *Ray) Update(origin, dir math3d.Vec3) {
	r.Position = origin
	r.Orientation = dir
	r.Hit = nil
}

// IsCloser reports whether isect exists and is strictly closer than the
// ray's current intersection.
func (r *Ray) IsCloser(isect *Intersection) bool {
	return isect != nil && (r.Hit == nil || isect.Distance < r.Hit.Distance)
}

// Offer records isect as the ray's intersection if it is closer. Ties keep
// the existing intersection.
func (r *Ray) Offer(isect *Intersection) bool {
	if !r.IsCloser(isect) {
		return false
	}
	r.Hit = isect
	return true
}

// Intersection is a hit of a ray on a primitive.
//
// After shading, a diffuse hit holds one shadow ray per scene light and a
// mirror hit holds its secondary ray; never both.
type Intersection struct {
	Positionable
	Distance  float64
	Primitive Primitive

	// Color is the resolved packed color. It stays 0 (black) until
	// Resolve computes something.
	Color uint32

	ShadowRays []*Ray
	Secondary  *Ray
}

func newIntersection(p math3d.Vec3, distance float64, prim Primitive) *Intersection {
	return &Intersection{
		Positionable: Positionable{Position: p},
		Distance:     distance,
		Primitive:    prim,
	}
}

// SamePrimitive reports whether other hit the same primitive.
func (i *Intersection) SamePrimitive(other *Intersection) bool {
	return other != nil && other.Primitive == i.Primitive
}

// AtDistance reports whether the intersection lies within eps of dist along
// its ray.
func (i *Intersection) AtDistance(dist, eps float64) bool {
	d := i.Distance - dist
	return -eps <= d && d <= eps
}
