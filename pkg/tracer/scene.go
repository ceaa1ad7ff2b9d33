package tracer

import "github.com/taigrr/prism/pkg/math3d"

// DefaultAmbient is the ambient light intensity applied to every diffuse hit.
const DefaultAmbient = 0.2

// Scene is the fixed set of primitives and lights being traced. It must not
// be mutated while a frame is traced.
type Scene struct {
	Primitives []Primitive
	Lights     []*Light
	Background math3d.Vec3
	Ambient    float64

	owned map[Primitive]struct{}
}

// NewScene creates a scene with the default ambient intensity.
func NewScene(prims []Primitive, lights []*Light, background math3d.Vec3) *Scene {
	s := &Scene{
		Primitives: prims,
		Lights:     lights,
		Background: background,
		Ambient:    DefaultAmbient,
		owned:      make(map[Primitive]struct{}, len(prims)),
	}
	for _, p := range prims {
		s.owned[p] = struct{}{}
	}
	return s
}

// Intersect scans every primitive and leaves the nearest hit on the ray.
func (s *Scene) Intersect(ray *Ray) {
	for _, prim := range s.Primitives {
		ray.Offer(prim.Intersect(ray))
	}
}

// AmbientAt returns the ambient-lit color of prim at p.
func (s *Scene) AmbientAt(prim Primitive, p math3d.Vec3) math3d.Vec3 {
	return prim.ColorAt(p).Scale(s.Ambient)
}

// BackgroundRGB returns the packed background color.
func (s *Scene) BackgroundRGB() uint32 {
	return PackRGB(s.Background)
}

// Contains reports whether prim belongs to the scene.
func (s *Scene) Contains(prim Primitive) bool {
	if s.owned == nil {
		// Built as a literal rather than with NewScene.
		for _, p := range s.Primitives {
			if p == prim {
				return true
			}
		}
		return false
	}
	_, ok := s.owned[prim]
	return ok
}
