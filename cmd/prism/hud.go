package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/taigrr/prism/pkg/tracer"
)

var (
	hudBase  = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#ffffff"))
	hudFPS   = hudBase.Foreground(lipgloss.Color("#5fff87"))
	hudTitle = hudBase.Bold(true)
	hudInfo  = hudBase.Foreground(lipgloss.Color("#5fd7ff")).Bold(true)
	hudHint  = hudBase.Foreground(lipgloss.Color("#ffd75f")).Faint(true)
)

// HUD renders an overlay with scene info and the camera state
type HUD struct {
	name       string
	primitives int
	fps        float64
	fpsFrames  int
	fpsTime    time.Time
	traceTime  time.Duration
}

// NewHUD creates a new HUD
func NewHUD(name string, primitives int) *HUD {
	return &HUD{
		name:       name,
		primitives: primitives,
		fpsTime:    time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// SetTraceTime records how long the last retrace took.
func (h *HUD) SetTraceTime(d time.Duration) {
	h.traceTime = d
}

// Lines returns the top and bottom HUD rows for the camera state.
func (h *HUD) Lines(cam *tracer.Camera, debug bool) (top, bottom string) {
	p := cam.Position
	top = fmt.Sprintf(" %.0f FPS  trace %s ", h.fps, h.traceTime.Round(100*time.Microsecond))
	bottom = fmt.Sprintf(" pos (%.2f, %.2f, %.2f)  fov %.1f°  bounces %d ",
		p.X, p.Y, p.Z, cam.FOV(), cam.MaxBounces)
	if debug {
		bottom += "[debug] "
	}
	return top, bottom
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, cam *tracer.Camera, show, debug bool) {
	const clearLine = "\x1b[2K"

	// Helper to position cursor
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !show {
		return
	}

	top, bottom := h.Lines(cam, debug)
	fmt.Print(moveTo(1, 1) + hudFPS.Render(top))

	title := fmt.Sprintf(" %s ", h.name)
	titleCol := max((width-len(title))/2, 1)
	fmt.Print(moveTo(1, titleCol) + hudTitle.Render(title))

	count := fmt.Sprintf(" %d prims ", h.primitives)
	fmt.Print(moveTo(1, max(width-len(count), 1)) + hudInfo.Render(count))

	fmt.Print(moveTo(height, 1) + hudBase.Render(bottom))

	hint := " Tab: debug  R: reset "
	fmt.Print(moveTo(height, max(width-len(hint), 1)) + hudHint.Render(hint))
}
