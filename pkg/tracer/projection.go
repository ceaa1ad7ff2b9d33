package tracer

import "github.com/taigrr/prism/pkg/math3d"

// ProjectionSurface is the rectangle the camera shoots its rays through.
// It sits at the projection distance along the camera's forward axis, spans
// two units along the camera's up vector and 2·aspect units along its right
// vector.
type ProjectionSurface struct {
	Orientable

	Width  int // pixels
	Height int // pixels

	Corner    math3d.Vec3 // left-upper corner
	Down      math3d.Vec3 // left-upper to left-lower edge
	RightEdge math3d.Vec3 // left-upper to right-upper edge
}

func newProjectionSurface(cam *Camera, distance float64, width, height int) *ProjectionSurface {
	p := &ProjectionSurface{
		Width:  width,
		Height: height,
	}
	p.update(cam, distance)
	return p
}

// Aspect returns the width to height ratio in pixels.
func (p *ProjectionSurface) Aspect() float64 {
	if p.Height == 0 {
		return 1
	}
	return float64(p.Width) / float64(p.Height)
}

// HalfWidth returns half of the surface's world-space width.
func (p *ProjectionSurface) HalfWidth() float64 {
	return p.Aspect()
}

// update re-derives the plane from the camera's basis.
func (p *ProjectionSurface) update(cam *Camera, distance float64) {
	a := p.Aspect()
	right := cam.Right.Scale(a)

	p.Position = cam.ExtendedBy(distance)
	p.Orientation = cam.Orientation
	p.Corner = p.Position.Add(cam.Up).Sub(right)
	p.RightEdge = p.Position.Add(cam.Up).Add(right).Sub(p.Corner)
	p.Down = p.Position.Sub(cam.Up).Sub(right).Sub(p.Corner)
}

// TranslateBy moves the surface and its corner by d.
func (p *ProjectionSurface) TranslateBy(d math3d.Vec3) {
	p.Positionable.TranslateBy(d)
	p.Corner = p.Corner.Add(d)
}

// StartPoint returns the center of pixel (0, 0).
func (p *ProjectionSurface) StartPoint() math3d.Vec3 {
	return p.Corner.
		Add(p.Down.Div(2 * float64(p.Height))).
		Add(p.RightEdge.Div(2 * float64(p.Width)))
}

// OffsetPoint returns the offset of pixel (i, j) from StartPoint.
func (p *ProjectionSurface) OffsetPoint(i, j int) math3d.Vec3 {
	return p.Down.Scale(float64(i) / float64(p.Height)).
		Add(p.RightEdge.Scale(float64(j) / float64(p.Width)))
}

// PixelPoint returns the world-space center of pixel (i, j).
func (p *ProjectionSurface) PixelPoint(i, j int) math3d.Vec3 {
	return p.StartPoint().Add(p.OffsetPoint(i, j))
}
