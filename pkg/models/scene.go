// Package models builds tracer scenes: the built-in demo scene and scenes
// loaded from glTF/GLB files.
package models

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/tracer"
)

// DefaultProjectionDistance is used when a scene does not set one.
const DefaultProjectionDistance = 0.8

// CameraPose is where a scene wants the camera to start.
type CameraPose struct {
	Position math3d.Vec3
	Forward  math3d.Vec3
	Up       math3d.Vec3
	Distance float64 // projection distance
}

// DefaultPose looks along +Y from just in front of the origin.
func DefaultPose() CameraPose {
	return CameraPose{
		Position: math3d.V3(0, 1, 0),
		Forward:  math3d.Forward(),
		Up:       math3d.Up(),
		Distance: DefaultProjectionDistance,
	}
}

// NewCamera creates a camera at the pose with a width x height ray grid.
func (p CameraPose) NewCamera(width, height int) *tracer.Camera {
	return tracer.NewCamera(p.Position, p.Forward, p.Up, p.Distance, width, height)
}

// Scene is a traceable scene plus its starting camera pose.
type Scene struct {
	*tracer.Scene
	Name   string
	Camera CameraPose
}

// DefaultScene returns the demo scene: a checkered floor, a row of colored
// spheres, three mirror spheres and two white lights.
func DefaultScene() *Scene {
	const r = 0.8

	prims := []tracer.Primitive{
		tracer.NewPlane(math3d.V3(25, 25, -1), math3d.Up(), tracer.White, false, true),

		tracer.NewSphere(math3d.V3(-3, 5, 0), r, tracer.Red, false),
		tracer.NewSphere(math3d.V3(0, 5, 0), r, tracer.Green, false),
		tracer.NewSphere(math3d.V3(3, 5, 0), r, tracer.Blue, false),
		tracer.NewSphere(math3d.V3(-2, 7, 2), r, tracer.Yellow, false),
		tracer.NewSphere(math3d.V3(0, 9, 4), r, tracer.Purple, false),
		tracer.NewSphere(math3d.V3(2, 7, 2), r, tracer.Cyan, false),

		tracer.NewSphere(math3d.V3(0, 7, 1.5), r, tracer.White, true),
		tracer.NewSphere(math3d.V3(-4, 7, 2), r, tracer.Orange, true),
		tracer.NewSphere(math3d.V3(4, 7, 2), r, tracer.Orange, true),
	}
	lights := []*tracer.Light{
		tracer.NewLight(math3d.V3(-1.5, 6, 4), tracer.White),
		tracer.NewLight(math3d.V3(1.5, 6, 4), tracer.White),
	}

	return &Scene{
		Scene:  tracer.NewScene(prims, lights, tracer.Black),
		Name:   "default",
		Camera: DefaultPose(),
	}
}
