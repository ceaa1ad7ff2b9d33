package tracer

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/prism/pkg/math3d"
)

// Camera defaults.
const (
	DefaultMaxBounces    = 25
	DefaultMoveSpeed     = 2.5
	DefaultRotationSpeed = math.Pi / 720
)

// Camera casts one primary ray per pixel through its projection surface and
// keeps the resulting ray grid between frames.
//
// The forward and up vectors are always re-derived from polar angles rather
// than rotated incrementally, so the basis stays orthonormal no matter how
// many small rotations are applied.
type Camera struct {
	Orientable

	Up    math3d.Vec3
	Right math3d.Vec3

	Projection *ProjectionSurface

	MaxBounces    int     // reflection budget per primary ray
	MoveSpeed     float64 // world units per second
	RotationSpeed float64 // radians per rotation unit
	Workers       int     // rows traced concurrently; <= 0 means GOMAXPROCS

	theta, phi     float64 // forward
	upTheta, upPhi float64 // up
	fov            float64 // radians
	distance       float64 // projection distance

	rays       []*Ray // row-major, rows*cols
	rows, cols int
	dirty      bool
}

// NewCamera creates a camera at pos looking along forward. up only picks
// which side of the forward axis is up; the camera does not roll. The
// projection surface is placed at distance and sized width x height pixels.
func NewCamera(pos, forward, up math3d.Vec3, distance float64, width, height int) *Camera {
	forward = forward.Normalize()
	c := &Camera{
		Orientable: Orientable{
			Positionable: Positionable{Position: pos},
			Orientation:  forward,
		},
		MaxBounces:    DefaultMaxBounces,
		MoveSpeed:     DefaultMoveSpeed,
		RotationSpeed: DefaultRotationSpeed,
		theta:         math3d.PolarTheta(forward),
		phi:           math3d.PolarPhi(forward),
		distance:      distance,
		dirty:         true,
	}

	c.upPhi = c.phi
	c.upTheta = c.theta - math.Pi/2
	if math3d.FromPolar(1, c.upTheta, c.upPhi).Dot(up) < 0 {
		c.upTheta = c.theta + math.Pi/2
	}
	c.deriveBasis()

	c.Projection = newProjectionSurface(c, distance, width, height)
	c.fov = c.DistanceToFOV(distance)
	return c
}

func (c *Camera) deriveBasis() {
	c.Orientation = math3d.FromPolar(1, c.theta, c.phi).Normalize()
	c.Up = math3d.FromPolar(1, c.upTheta, c.upPhi).Normalize()
	c.Right = c.Orientation.Cross(c.Up).Normalize()
}

// Dirty reports whether the camera changed since the last ray generation.
func (c *Camera) Dirty() bool {
	return c.dirty
}

// MarkDirty forces the next Tick to retrace the scene.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// TranslateBy moves the camera and its projection surface by d.
func (c *Camera) TranslateBy(d math3d.Vec3) {
	c.Positionable.TranslateBy(d)
	c.Projection.TranslateBy(d)
	c.dirty = true
}

// MoveForward moves along the forward vector for dt seconds.
func (c *Camera) MoveForward(dt float64) {
	c.TranslateBy(c.Orientation.Scale(c.MoveSpeed * dt))
}

// MoveBackward moves against the forward vector for dt seconds.
func (c *Camera) MoveBackward(dt float64) {
	c.TranslateBy(c.Orientation.Scale(-c.MoveSpeed * dt))
}

// MoveRight moves along the right vector for dt seconds.
func (c *Camera) MoveRight(dt float64) {
	c.TranslateBy(c.Right.Scale(c.MoveSpeed * dt))
}

// MoveLeft moves against the right vector for dt seconds.
func (c *Camera) MoveLeft(dt float64) {
	c.TranslateBy(c.Right.Scale(-c.MoveSpeed * dt))
}

// RotateAroundX tilts the camera by changing its polar angle.
func (c *Camera) RotateAroundX(delta float64) {
	c.orient(c.theta+c.RotationSpeed*delta, c.phi)
}

// RotateAroundZ turns the camera by changing its azimuth.
func (c *Camera) RotateAroundZ(delta float64) {
	c.orient(c.theta, c.phi+c.RotationSpeed*delta)
}

// OrientTo points the camera at p.
func (c *Camera) OrientTo(p math3d.Vec3) {
	dir := c.OrientationTo(p)
	if dir == (math3d.Vec3{}) {
		return
	}
	c.orient(math3d.PolarTheta(dir), math3d.PolarPhi(dir))
}

// orient sets the forward angles and moves the up angles by the same
// deltas, then re-derives the basis and the projection surface.
func (c *Camera) orient(theta, phi float64) {
	c.upTheta += theta - c.theta
	c.upPhi += phi - c.phi
	c.theta, c.phi = theta, phi

	c.deriveBasis()
	c.Projection.update(c, c.distance)
	c.dirty = true
}

// FOV returns the horizontal field of view in degrees.
func (c *Camera) FOV() float64 {
	return math3d.Degrees(c.fov)
}

// ProjectionDistance returns the distance from the camera to its
// projection surface.
func (c *Camera) ProjectionDistance() float64 {
	return c.distance
}

// ChangeFOV sets the field of view in degrees. Values outside (0, 180) are
// ignored.
func (c *Camera) ChangeFOV(deg float64) {
	if !(deg > 0 && deg < 180) {
		return
	}
	c.fov = math3d.Radians(deg)
	c.distance = c.FOVToDistance(c.fov)
	c.Projection.update(c, c.distance)
	c.dirty = true
}

// Zoom changes the field of view by delta degrees.
func (c *Camera) Zoom(delta float64) {
	c.ChangeFOV(c.FOV() + delta)
}

// FOVToDistance converts a field of view in radians to the projection
// distance that produces it.
func (c *Camera) FOVToDistance(rad float64) float64 {
	return c.Projection.HalfWidth() / math.Tan(rad/2)
}

// DistanceToFOV converts a projection distance to a field of view in
// radians.
func (c *Camera) DistanceToFOV(dist float64) float64 {
	return 2 * math.Atan(c.Projection.HalfWidth()/dist)
}

// Resize changes the pixel dimensions while keeping the field of view. The
// next Tick regenerates the whole ray grid.
func (c *Camera) Resize(width, height int) {
	if width == c.Projection.Width && height == c.Projection.Height {
		return
	}
	c.Projection.Width = width
	c.Projection.Height = height
	c.distance = c.FOVToDistance(c.fov)
	c.Projection.update(c, c.distance)
	c.dirty = true
}

// Tick retraces the scene if the camera is dirty and reports whether it did.
func (c *Camera) Tick(scene *Scene) bool {
	if !c.dirty {
		return false
	}
	c.RegenerateRays(scene)
	c.dirty = false
	return true
}

// GenerateRays allocates a new ray grid sized to the projection surface and
// traces it.
func (c *Camera) GenerateRays(scene *Scene) {
	c.rows, c.cols = c.Projection.Height, c.Projection.Width
	c.rays = make([]*Ray, c.rows*c.cols)
	c.trace(scene, true)
}

// RegenerateRays updates the existing rays in place and traces them. If the
// projection surface was resized it falls back to GenerateRays.
func (c *Camera) RegenerateRays(scene *Scene) {
	if c.rays == nil || c.rows != c.Projection.Height || c.cols != c.Projection.Width {
		c.GenerateRays(scene)
		return
	}
	c.trace(scene, false)
}

func (c *Camera) trace(scene *Scene, fresh bool) {
	start := c.Projection.StartPoint()

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 {
		for i := range c.rows {
			c.traceRow(scene, start, i, fresh)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range c.rows {
		g.Go(func() error {
			c.traceRow(scene, start, i, fresh)
			return nil
		})
	}
	_ = g.Wait()
}

// traceRow touches only row i of the grid, so rows can run concurrently.
func (c *Camera) traceRow(scene *Scene, start math3d.Vec3, i int, fresh bool) {
	for j := range c.cols {
		p := start.Add(c.Projection.OffsetPoint(i, j))
		dir := c.OrientationTo(p)

		idx := i*c.cols + j
		if fresh {
			c.rays[idx] = NewRay(c.Position, dir)
		} else {
			c.rays[idx].Update(c.Position, dir)
		}

		ray := c.rays[idx]
		scene.Intersect(ray)
		if ray.Hit != nil {
			ray.Hit.Resolve(scene, ray.Position, c.MaxBounces)
		}
	}
}

// GridSize returns the dimensions of the current ray grid.
func (c *Camera) GridSize() (rows, cols int) {
	return c.rows, c.cols
}

// RayAt returns the primary ray of pixel (i, j), or nil outside the grid.
func (c *Camera) RayAt(i, j int) *Ray {
	if i < 0 || i >= c.rows || j < 0 || j >= c.cols {
		return nil
	}
	return c.rays[i*c.cols+j]
}

// Render writes one packed color per pixel into dst in row-major order:
// the resolved color where the primary ray hit, background elsewhere.
// dst must hold at least rows*cols entries.
func (c *Camera) Render(dst []uint32, background uint32) {
	for idx, ray := range c.rays {
		if ray.Hit != nil {
			dst[idx] = ray.Hit.Color
		} else {
			dst[idx] = background
		}
	}
}
