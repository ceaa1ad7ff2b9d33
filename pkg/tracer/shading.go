package tracer

import "github.com/taigrr/prism/pkg/math3d"

// secondaryBias offsets a secondary ray's origin along its direction so it
// does not immediately re-hit the mirror it leaves.
const secondaryBias = 1e-4

// Resolve computes and stores the color of the intersection as seen from
// viewer. Diffuse primitives are shaded against every scene light; mirrors
// spawn a secondary ray while bounces remain. With no bounces left, or when
// the secondary ray escapes, Color keeps its previous value.
//
// Resolve panics if the intersected primitive is not part of scene.
func (i *Intersection) Resolve(scene *Scene, viewer math3d.Vec3, bounces int) {
	if !scene.Contains(i.Primitive) {
		panic("tracer: intersection references a primitive outside the scene")
	}
	if !i.Primitive.IsMirror() {
		i.resolveDiffuse(scene, viewer)
		return
	}
	if bounces > 0 {
		i.resolveReflective(scene, viewer, bounces)
	}
}

func (i *Intersection) resolveDiffuse(scene *Scene, viewer math3d.Vec3) {
	c := scene.AmbientAt(i.Primitive, i.Position)
	i.ShadowRays = make([]*Ray, len(scene.Lights))
	i.Secondary = nil

	for k, light := range scene.Lights {
		shadow := light.ShadowRay(scene, i)
		i.ShadowRays[k] = shadow
		if !light.Illuminates(i, shadow) {
			continue
		}
		c = c.Add(light.DiffuseAt(i, shadow, viewer))
	}

	i.Color = PackRGB(c)
}

func (i *Intersection) resolveReflective(scene *Scene, viewer math3d.Vec3, bounces int) {
	incoming := i.OrientationTo(viewer).Negate()
	n := i.Primitive.NormalAt(i.Position)
	dir := incoming.Reflect(n).Normalize()

	i.ShadowRays = nil
	i.Secondary = NewRay(i.Position.Add(dir.Scale(secondaryBias)), dir)
	scene.Intersect(i.Secondary)

	hit := i.Secondary.Hit
	if hit == nil {
		return
	}
	hit.Resolve(scene, i.Secondary.Position, bounces-1)

	local := i.Primitive.ColorAt(i.Position)
	i.Color = PackRGB(local.Mul(UnpackRGB(hit.Color)))
}

// Depth returns the length of the secondary-ray chain below the intersection.
func (i *Intersection) Depth() int {
	depth := 0
	for r := i.Secondary; r != nil; {
		depth++
		if r.Hit == nil {
			break
		}
		r = r.Hit.Secondary
	}
	return depth
}
