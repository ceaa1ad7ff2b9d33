package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/tracer"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name             string
		cols, rows       int
		debug            bool
		camW, camH, dbgW int
	}{
		{"camera only", 80, 24, false, 80, 48, 0},
		{"split", 80, 24, true, 40, 48, 40},
		{"odd split", 81, 10, true, 41, 20, 40},
		{"one column", 1, 5, true, 1, 10, 0},
		{"degenerate", 0, 0, false, 1, 2, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newLayout(tc.cols, tc.rows, tc.debug)
			w, h := l.cameraSize()
			dw, _ := l.debugSize()
			if w != tc.camW || h != tc.camH || dw != tc.dbgW {
				t.Errorf("camera %dx%d debug %d, want %dx%d debug %d", w, h, dw, tc.camW, tc.camH, tc.dbgW)
			}
		})
	}
}

func TestRotationAxisDecays(t *testing.T) {
	axis := NewRotationAxis(60)
	axis.Velocity = 0.2

	total := 0.0
	for range 600 {
		total += axis.Step()
	}
	if axis.Velocity != 0 {
		t.Errorf("velocity after 10s = %v, want 0", axis.Velocity)
	}
	if total < 0.2 {
		t.Errorf("total rotation %v should include the first frame's full velocity", total)
	}
	if got := axis.Step(); got != 0 {
		t.Errorf("settled axis still rotates by %v", got)
	}
}

func TestCameraMotionApply(t *testing.T) {
	cam := tracer.NewCamera(math3d.Zero3(), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), 1, 8, 4)
	m := NewCameraMotion(60)

	m.Forward = 1
	m.Apply(cam, 1)
	if !cam.Position.ApproxEqual(math3d.V3(0, tracer.DefaultMoveSpeed, 0), 1e-9) {
		t.Errorf("forward moved to %v", cam.Position)
	}
	if m.Forward >= 1 {
		t.Error("held input should decay between frames")
	}

	m.Forward, m.Strafe = -1, 1
	before := cam.Position
	m.Apply(cam, 1)
	moved := cam.Position.Sub(before)
	if moved.Y >= 0 || moved.X <= 0 {
		t.Errorf("backward+right moved by %v", moved)
	}

	m.Reset()
	m.ApplyImpulse(0, 0.1)
	forward := cam.Orientation
	m.Apply(cam, 1)
	if cam.Orientation.ApproxEqual(forward, 1e-9) {
		t.Error("yaw impulse should turn the camera")
	}
	if cam.Orientation.X <= 0 {
		t.Errorf("positive yaw should turn toward +X, got %v", cam.Orientation)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *options)
		wantErr bool
	}{
		{"defaults", func(*options) {}, false},
		{"fov", func(o *options) { o.fov = 90 }, false},
		{"fov too wide", func(o *options) { o.fov = 180 }, true},
		{"negative fov", func(o *options) { o.fov = -10 }, true},
		{"negative bounces", func(o *options) { o.bounces = -1 }, true},
		{"zero fps", func(o *options) { o.fps = 0 }, true},
		{"zero width", func(o *options) { o.width = 0 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := defaultOptions()
			tc.mutate(o)
			if err := o.validate(); (err != nil) != tc.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestOptionsLoadScene(t *testing.T) {
	o := defaultOptions()
	o.bg = "#1e1e28"
	s, err := o.loadScene()
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if got := s.BackgroundRGB(); got != 0x1e1e28 {
		t.Errorf("background = %06x, want 1e1e28", got)
	}

	o.bg = "not a color"
	if _, err := o.loadScene(); err == nil {
		t.Error("expected an error for a bad --bg")
	}

	o.bg = ""
	o.scenePath = filepath.Join(t.TempDir(), "missing.glb")
	if _, err := o.loadScene(); err == nil {
		t.Error("expected an error for a missing scene")
	}
}

func TestOptionsConfigureCamera(t *testing.T) {
	o := defaultOptions()
	o.fov, o.bounces, o.workers = 60, 3, 2
	s, err := o.loadScene()
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	cam := o.newCamera(s, 16, 9)
	if cam.MaxBounces != 3 || cam.Workers != 2 {
		t.Errorf("bounces %d workers %d, want 3 and 2", cam.MaxBounces, cam.Workers)
	}
	if diff := cam.FOV() - 60; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("fov = %v, want 60", cam.FOV())
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	debugOut := filepath.Join(dir, "debug.png")

	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetArgs([]string{
		"render", "--width", "32", "--height", "18", "--workers", "1",
		"-o", out, "--debug-output", debugOut,
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 18 {
		t.Errorf("image is %dx%d, want 32x18", b.Dx(), b.Dy())
	}
	if _, err := os.Stat(debugOut); err != nil {
		t.Errorf("debug output missing: %v", err)
	}
	if !strings.Contains(stdout.String(), "Rendered") {
		t.Errorf("output %q should report the render", stdout.String())
	}
}

func TestRenderCommandRejectsBadFlags(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", "--fov", "200", "-o", filepath.Join(t.TempDir(), "x.png")})
	if err := root.Execute(); err == nil {
		t.Error("expected an error for --fov 200")
	}
}

func TestHUDLines(t *testing.T) {
	cam := tracer.NewCamera(math3d.V3(1, 2, 3), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), 1, 8, 4)
	h := NewHUD("default", 10)

	top, bottom := h.Lines(cam, true)
	if !strings.Contains(top, "FPS") {
		t.Errorf("top line %q should show FPS", top)
	}
	for _, want := range []string{"pos (1.00, 2.00, 3.00)", "bounces 25", "[debug]"} {
		if !strings.Contains(bottom, want) {
			t.Errorf("bottom line %q should contain %q", bottom, want)
		}
	}

	if _, bottom := h.Lines(cam, false); strings.Contains(bottom, "[debug]") {
		t.Error("debug marker shown with the pane closed")
	}
}
