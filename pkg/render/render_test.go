package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/tracer"
)

func TestFramebufferFromPacked(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	if err := fb.FromPacked([]uint32{0xFF0000, 0x00FF00, 0x0000FF, 0x102030}); err != nil {
		t.Fatalf("FromPacked: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, RGB(255, 0, 0)},
		{1, 0, RGB(0, 255, 0)},
		{0, 1, RGB(0, 0, 255)},
		{1, 1, RGB(0x10, 0x20, 0x30)},
	}
	for _, tc := range tests {
		if got := fb.GetPixel(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}

	if err := fb.FromPacked(make([]uint32, 3)); err == nil {
		t.Error("expected an error for a short buffer")
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(-1, 0, ColorWhite)
	fb.SetPixel(4, 4, ColorWhite)
	for i, p := range fb.Pixels {
		if p != (color.RGBA{}) {
			t.Fatalf("pixel %d written by an out-of-range SetPixel", i)
		}
	}
	if got := fb.GetPixel(10, 10); got != (color.RGBA{}) {
		t.Errorf("out-of-range GetPixel = %v, want transparent", got)
	}
}

func TestFramebufferBlit(t *testing.T) {
	dst := NewFramebuffer(4, 2)
	dst.Clear(ColorBlack)
	src := NewFramebuffer(2, 2)
	src.Clear(ColorWhite)

	dst.Blit(src, 3, 0)
	if dst.GetPixel(3, 0) != ColorWhite || dst.GetPixel(3, 1) != ColorWhite {
		t.Error("blit should copy into the last column")
	}
	if dst.GetPixel(2, 0) != ColorBlack {
		t.Error("blit wrote outside its destination")
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPacked(1, 1, 0xABCDEF)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	img := fb.ToImage()
	if got := img.RGBAAt(1, 1); got != RGB(0xAB, 0xCD, 0xEF) {
		t.Errorf("image pixel = %v", got)
	}
}

func TestDebugViewToPixel(t *testing.T) {
	d := NewDebugView(100, 100)

	tests := []struct {
		name   string
		p      math3d.Vec3
		wx, wy float64
	}{
		{"top left", math3d.V3(-5, 10, 3), 0, 0},
		{"bottom right", math3d.V3(5, 0, -3), 100, 100},
		{"center", math3d.V3(0, 5, 0), 50, 50},
		{"camera", math3d.V3(0, 1, 0), 50, 90},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := d.ToPixel(tc.p)
			if abs(x-tc.wx) > 1e-9 || abs(y-tc.wy) > 1e-9 {
				t.Errorf("ToPixel(%v) = (%v, %v), want (%v, %v)", tc.p, x, y, tc.wx, tc.wy)
			}
		})
	}
}

func TestDebugViewDrawsSpheresAndCamera(t *testing.T) {
	s := tracer.NewSphere(math3d.V3(0, 5, 0), 1, tracer.Red, false)
	scene := tracer.NewScene([]tracer.Primitive{s}, nil, tracer.Black)
	cam := tracer.NewCamera(math3d.V3(0, 1, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), 0.8, 16, 8)

	d := NewDebugView(100, 100)
	fb := NewFramebuffer(100, 100)
	d.DrawInto(fb, scene, cam)

	// The outline is 10 pixels from the center, anti-aliased over two pixels.
	edge := max(fb.GetPixel(59, 50).R, fb.GetPixel(60, 50).R)
	if edge <= d.Background.R+50 {
		t.Errorf("sphere outline red channel = %d, background %d", edge, d.Background.R)
	}
	if inside := fb.GetPixel(50, 50); inside != d.Background {
		t.Errorf("sphere interior = %v, want background", inside)
	}
	if c := fb.GetPixel(50, 90); c.R > 20 || c.G > 20 || c.B > 20 {
		t.Errorf("camera marker = %v, want near black", c)
	}
}

func TestDebugViewSamplesMiddleRow(t *testing.T) {
	scene := tracer.NewScene(nil, nil, tracer.Black)
	cam := tracer.NewCamera(math3d.Zero3(), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), 1, 80, 20)

	d := NewDebugView(100, 100)
	if got := d.sampleRays(cam); got != nil {
		t.Errorf("untraced camera sampled %d rays", len(got))
	}

	cam.Tick(scene)
	rays := d.sampleRays(cam)
	// 80 columns / 8 rays - 1 = step 9 -> columns 0, 9, ..., 72
	if len(rays) != 9 {
		t.Fatalf("sampled %d rays, want 9", len(rays))
	}
	if rays[0] != cam.RayAt(10, 0) || rays[1] != cam.RayAt(10, 9) {
		t.Error("rays should come from the middle row at the sampling step")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
