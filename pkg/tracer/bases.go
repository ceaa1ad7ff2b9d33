// Package tracer implements Prism's ray-tracing core: primitive geometry,
// nearest-hit scene queries, shading with hard shadows and bounded mirror
// reflection, and the camera that casts one ray per pixel.
package tracer

import "github.com/taigrr/prism/pkg/math3d"

// Positionable is anything with a position in world space.
type Positionable struct {
	Position math3d.Vec3
}

// DirectionTo returns the (unnormalized) vector from the position to p.
func (p Positionable) DirectionTo(q math3d.Vec3) math3d.Vec3 {
	return q.Sub(p.Position)
}

// DistanceTo returns the distance from the position to q.
func (p Positionable) DistanceTo(q math3d.Vec3) float64 {
	return p.DirectionTo(q).Len()
}

// OrientationTo returns the unit vector from the position towards q.
func (p Positionable) OrientationTo(q math3d.Vec3) math3d.Vec3 {
	return p.DirectionTo(q).Normalize()
}

// TranslatedBy returns the position displaced by d.
func (p Positionable) TranslatedBy(d math3d.Vec3) math3d.Vec3 {
	return p.Position.Add(d)
}

// TranslateBy displaces the position by d in place.
func (p *Positionable) TranslateBy(d math3d.Vec3) {
	p.Position = p.TranslatedBy(d)
}

// Orientable is a Positionable with a unit forward orientation.
type Orientable struct {
	Positionable
	Orientation math3d.Vec3
}

// ExtendedBy returns the point at distance along the forward orientation.
func (o Orientable) ExtendedBy(distance float64) math3d.Vec3 {
	return o.TranslatedBy(o.Orientation.Scale(distance))
}

// OrientTo points the forward orientation at p.
func (o *Orientable) OrientTo(p math3d.Vec3) {
	o.Orientation = o.OrientationTo(p)
}

// ExtendBy moves the position forward by distance.
func (o *Orientable) ExtendBy(distance float64) {
	o.Position = o.ExtendedBy(distance)
}
