package tracer

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Shading constants.
const (
	// glossFactor scales the specular highlight of every light.
	glossFactor = 0.1
	// glossExponent keeps highlights broad and soft.
	glossExponent = 2
	// shadowEpsilon is how far a shadow ray's hit may be from the shaded
	// point and still count as reaching it.
	shadowEpsilon = 0.01
)

// Light is an omnidirectional point light.
type Light struct {
	Positionable
	Color math3d.Vec3
}

// NewLight creates a point light.
func NewLight(pos, color math3d.Vec3) *Light {
	return &Light{
		Positionable: Positionable{Position: pos},
		Color:        color,
	}
}

// ShadowRay casts a ray from the light towards isect and intersects it with
// the scene. It returns nil when the light sits exactly on the point and no
// direction exists.
func (l *Light) ShadowRay(scene *Scene, isect *Intersection) *Ray {
	dir := l.OrientationTo(isect.Position)
	if dir == (math3d.Vec3{}) {
		return nil
	}
	ray := NewRay(l.Position, dir)
	scene.Intersect(ray)
	return ray
}

// Illuminates reports whether shadow reached isect unobstructed: its nearest
// hit is the same primitive at the light-to-point distance.
func (l *Light) Illuminates(isect *Intersection, shadow *Ray) bool {
	if shadow == nil || !isect.SamePrimitive(shadow.Hit) {
		return false
	}
	dist := l.DistanceTo(isect.Position)
	if dist < 0 {
		panic("tracer: negative light distance")
	}
	return shadow.Hit.AtDistance(dist, shadowEpsilon)
}

// DiffuseAt returns the light's Lambertian plus gloss contribution at isect,
// attenuated linearly by the shadow ray's hit distance. viewer is the origin
// of the ray that produced isect.
func (l *Light) DiffuseAt(isect *Intersection, shadow *Ray, viewer math3d.Vec3) math3d.Vec3 {
	prim := isect.Primitive
	attenuated := l.Color.Div(shadow.Hit.Distance)

	n := prim.NormalAt(isect.Position).Negate()
	dir := l.OrientationTo(isect.Position)
	diffuse := prim.ColorAt(isect.Position).Scale(math.Max(0, dir.Dot(n)))

	v := isect.OrientationTo(viewer)
	r := dir.Reflect(n).Normalize()
	gloss := Gray(glossFactor).Scale(math.Pow(math.Max(0, v.Dot(r)), glossExponent))

	return attenuated.Mul(diffuse.Add(gloss))
}
