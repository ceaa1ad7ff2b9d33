package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/tracer"
)

// Debug view defaults.
const (
	DefaultDebugRays = 8
	missLength       = 150.0  // world units drawn for rays that escape
	farHit           = 1000.0 // hits beyond this are drawn as misses
	markerRadius     = 0.05
)

// Bounds is the world-space XY window shown by the debug view.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultBounds covers the default scene from slightly behind the camera.
var DefaultBounds = Bounds{MinX: -5, MaxX: 5, MinY: 0, MaxY: 10}

// DebugView draws a top-down (XY) schematic of a scene: sphere outlines, the
// camera and its projection surface, lights, and a sample of primary rays
// from the middle row together with their shadow and reflection rays.
type DebugView struct {
	Width, Height int
	Bounds        Bounds
	Rays          int // sampled primary rays

	Background   color.RGBA
	CameraColor  color.RGBA
	SurfaceColor color.RGBA
	MissColor    color.RGBA
	ShadowColor  color.RGBA
	LightColor   color.RGBA

	toNDC math3d.Mat4
}

// NewDebugView creates a debug view rendering width x height pixels.
func NewDebugView(width, height int) *DebugView {
	d := &DebugView{
		Width:        width,
		Height:       height,
		Rays:         DefaultDebugRays,
		Background:   RGB(40, 40, 48),
		CameraColor:  ColorBlack,
		SurfaceColor: ColorWhite,
		MissColor:    ColorWhite,
		ShadowColor:  RGB(255, 220, 0),
		LightColor:   ColorWhite,
	}
	d.SetBounds(DefaultBounds)
	return d
}

// SetBounds changes the world window.
func (d *DebugView) SetBounds(b Bounds) {
	d.Bounds = b
	d.toNDC = math3d.Orthographic(b.MinX, b.MaxX, b.MinY, b.MaxY, -1, 1)
}

// ToPixel maps a world point onto the image, dropping Z.
func (d *DebugView) ToPixel(p math3d.Vec3) (x, y float64) {
	ndc := d.toNDC.MulVec3(math3d.V3(p.X, p.Y, 0))
	x = (ndc.X + 1) / 2 * float64(d.Width)
	y = (1 - ndc.Y) / 2 * float64(d.Height)
	return x, y
}

// scale is pixels per world unit along X.
func (d *DebugView) scale() float64 {
	return float64(d.Width) / (d.Bounds.MaxX - d.Bounds.MinX)
}

// Draw renders the schematic for the camera's current ray grid.
func (d *DebugView) Draw(scene *tracer.Scene, cam *tracer.Camera) image.Image {
	dc := gg.NewContext(d.Width, d.Height)
	dc.SetColor(d.Background)
	dc.Clear()
	dc.SetLineWidth(1)

	for _, prim := range scene.Primitives {
		// Planes are unbounded; only spheres have an outline.
		s, ok := prim.(*tracer.Sphere)
		if !ok {
			continue
		}
		x, y := d.ToPixel(s.Position)
		dc.DrawCircle(x, y, s.Radius*d.scale())
		dc.SetColor(Packed(tracer.PackRGB(s.Color)))
		dc.Stroke()
	}

	for _, ray := range d.sampleRays(cam) {
		d.drawRay(dc, ray, Packed(tracer.PackRGB(math3d.V3(0, 0.6, 1))))
	}

	// Projection surface edge through its top row.
	p := cam.Projection
	d.line(dc, p.Corner, p.Corner.Add(p.RightEdge), d.SurfaceColor)

	d.marker(dc, cam.Position, d.CameraColor)
	for _, l := range scene.Lights {
		d.marker(dc, l.Position, d.LightColor)
	}

	return dc.Image()
}

// DrawInto renders the schematic into fb at fb's size.
func (d *DebugView) DrawInto(fb *Framebuffer, scene *tracer.Scene, cam *tracer.Camera) {
	d.Width, d.Height = fb.Width, fb.Height
	d.SetBounds(d.Bounds)
	fb.CopyImage(d.Draw(scene, cam))
}

// SavePNG renders the schematic and writes it to path.
func (d *DebugView) SavePNG(path string, scene *tracer.Scene, cam *tracer.Camera) error {
	fb := NewFramebuffer(d.Width, d.Height)
	fb.CopyImage(d.Draw(scene, cam))
	return fb.SavePNG(path)
}

// sampleRays picks evenly spaced rays from the middle row of the grid.
func (d *DebugView) sampleRays(cam *tracer.Camera) []*tracer.Ray {
	rows, cols := cam.GridSize()
	if rows == 0 || cols == 0 || d.Rays <= 0 {
		return nil
	}
	step := cols/d.Rays - 1
	if step < 1 {
		step = 1
	}
	var rays []*tracer.Ray
	for j := 0; j < cols; j += step {
		if r := cam.RayAt(rows/2, j); r != nil {
			rays = append(rays, r)
		}
	}
	return rays
}

func (d *DebugView) drawRay(dc *gg.Context, ray *tracer.Ray, c color.RGBA) {
	hit := ray.Hit
	if hit == nil || hit.Distance >= farHit {
		d.line(dc, ray.Position, ray.ExtendedBy(missLength), d.MissColor)
		return
	}
	d.line(dc, ray.Position, hit.Position, c)

	for _, shadow := range hit.ShadowRays {
		if shadow == nil || shadow.Hit == nil {
			continue
		}
		d.line(dc, shadow.Position, shadow.Hit.Position, d.ShadowColor)
	}
	if hit.Secondary != nil {
		d.drawRay(dc, hit.Secondary, Packed(tracer.PackRGB(hit.Primitive.BaseColor())))
	}
}

func (d *DebugView) line(dc *gg.Context, a, b math3d.Vec3, c color.RGBA) {
	x1, y1 := d.ToPixel(a)
	x2, y2 := d.ToPixel(b)
	dc.DrawLine(x1, y1, x2, y2)
	dc.SetColor(c)
	dc.Stroke()
}

func (d *DebugView) marker(dc *gg.Context, p math3d.Vec3, c color.RGBA) {
	x, y := d.ToPixel(p)
	r := markerRadius * d.scale()
	if r < 1.5 {
		r = 1.5
	}
	dc.DrawCircle(x, y, r)
	dc.SetColor(c)
	dc.Fill()
}
