package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/tracer"
)

const (
	lookStep     = 12.0 // rotation units per arrow press
	dragStrength = 4.0  // rotation units per cell dragged
	zoomStep     = 5.0  // degrees per zoom step
)

func newViewCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore a scene interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return runViewer(cmd.Context(), opts)
		},
	}
	opts.bindView(cmd.Flags())
	return cmd
}

// layout splits the terminal into an optional debug pane on the left and the
// camera pane on the right, in framebuffer pixels.
type layout struct {
	cols, rows int // terminal cells
	debugCols  int
}

func newLayout(cols, rows int, debug bool) layout {
	l := layout{cols: max(cols, 1), rows: max(rows, 1)}
	if debug && l.cols > 1 {
		l.debugCols = l.cols / 2
	}
	return l
}

func (l layout) cameraSize() (width, height int) {
	return l.cols - l.debugCols, l.rows * 2
}

func (l layout) debugSize() (width, height int) {
	return l.debugCols, l.rows * 2
}

// viewer is the interactive session state. Events arrive on their own
// goroutine, so everything below mu is guarded by it.
type viewer struct {
	opts  *options
	scene *models.Scene

	mu       sync.Mutex
	layout   layout
	cam      *tracer.Camera
	motion   *CameraMotion
	debug    bool
	showHUD  bool
	redraw   bool
	buf      []uint32
	fb       *render.Framebuffer
	camFB    *render.Framebuffer
	debugFB  *render.Framebuffer
	debugVw  *render.DebugView
	renderer *render.TerminalRenderer
}

func newViewer(opts *options, scene *models.Scene, term *uv.Terminal, cols, rows int) *viewer {
	v := &viewer{
		opts:    opts,
		scene:   scene,
		motion:  NewCameraMotion(opts.fps),
		debug:   opts.debug,
		showHUD: true,
		debugVw: render.NewDebugView(1, 1),
	}
	v.relayout(term, cols, rows)
	return v
}

// relayout sizes the framebuffers and the camera for the terminal. Callers
// hold mu, except during construction.
func (v *viewer) relayout(term *uv.Terminal, cols, rows int) {
	v.layout = newLayout(cols, rows, v.debug)
	v.renderer = render.NewTerminalRenderer(term, v.layout.cols, v.layout.rows)

	fbWidth, fbHeight := v.renderer.FramebufferSize()
	v.fb = render.NewFramebuffer(fbWidth, fbHeight)

	camWidth, camHeight := v.layout.cameraSize()
	v.camFB = render.NewFramebuffer(camWidth, camHeight)
	v.buf = make([]uint32, camWidth*camHeight)
	if v.cam == nil {
		v.cam = v.opts.newCamera(v.scene, camWidth, camHeight)
	} else {
		v.cam.Resize(camWidth, camHeight)
		v.cam.MarkDirty()
	}

	if dw, dh := v.layout.debugSize(); dw > 0 {
		v.debugFB = render.NewFramebuffer(dw, dh)
	} else {
		v.debugFB = nil
	}
	v.redraw = true
}

func (v *viewer) reset() {
	w, h := v.layout.cameraSize()
	v.cam = v.opts.newCamera(v.scene, w, h)
	v.motion.Reset()
	v.redraw = true
}

// frame advances the camera by dt seconds and retraces if it moved. It
// reports how long tracing took, zero when nothing changed.
func (v *viewer) frame(dt float64) time.Duration {
	v.motion.Apply(v.cam, dt)

	start := time.Now()
	if !v.cam.Tick(v.scene.Scene) && !v.redraw {
		return 0
	}
	elapsed := time.Since(start)

	v.cam.Render(v.buf, v.scene.BackgroundRGB())
	// Sizes always match: buf and camFB are allocated together.
	_ = v.camFB.FromPacked(v.buf)
	v.fb.Blit(v.camFB, v.layout.debugCols, 0)

	if v.debugFB != nil {
		v.debugVw.DrawInto(v.debugFB, v.scene.Scene, v.cam)
		v.fb.Blit(v.debugFB, 0, 0)
	}
	v.redraw = false
	return elapsed
}

func (v *viewer) handle(ev uv.Event, term *uv.Terminal, cancel context.CancelFunc, drag *dragState) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		term.Erase()
		term.Resize(ev.Width, ev.Height)
		v.relayout(term, ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			cancel()
		case ev.MatchString("w"):
			v.motion.Forward = 1
		case ev.MatchString("s"):
			v.motion.Forward = -1
		case ev.MatchString("a"):
			v.motion.Strafe = -1
		case ev.MatchString("d"):
			v.motion.Strafe = 1
		case ev.MatchString("up"):
			v.motion.ApplyImpulse(-lookStep, 0)
		case ev.MatchString("down"):
			v.motion.ApplyImpulse(lookStep, 0)
		case ev.MatchString("left"):
			v.motion.ApplyImpulse(0, -lookStep)
		case ev.MatchString("right"):
			v.motion.ApplyImpulse(0, lookStep)
		case ev.MatchString("+", "="):
			v.cam.Zoom(-zoomStep)
		case ev.MatchString("-", "_"):
			v.cam.Zoom(zoomStep)
		case ev.MatchString("r"):
			v.reset()
		case ev.MatchString("tab"):
			v.debug = !v.debug
			v.relayout(term, v.layout.cols, v.layout.rows)
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.KeyReleaseEvent:
		switch {
		case ev.MatchString("w"), ev.MatchString("s"):
			v.motion.Forward = 0
		case ev.MatchString("a"), ev.MatchString("d"):
			v.motion.Strafe = 0
		}

	case uv.MouseClickEvent:
		drag.down = true
		drag.x, drag.y = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		drag.down = false

	case uv.MouseMotionEvent:
		if drag.down {
			dx := ev.X - drag.x
			dy := ev.Y - drag.y
			v.motion.ApplyImpulse(float64(dy)*dragStrength, float64(dx)*dragStrength)
			drag.x, drag.y = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.cam.Zoom(-zoomStep / 2)
		case uv.MouseWheelDown:
			v.cam.Zoom(zoomStep / 2)
		}
	}
}

type dragState struct {
	down bool
	x, y int
}

func runViewer(ctx context.Context, opts *options) error {
	scene, err := opts.loadScene()
	if err != nil {
		return err
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	v := newViewer(opts, scene, term, width, height)
	hud := NewHUD(scene.Name, len(scene.Primitives))

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		var drag dragState
		for ev := range term.Events() {
			v.handle(ev, term, cancel, &drag)
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	// Main loop
	targetDuration := time.Second / time.Duration(opts.fps)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		v.mu.Lock()
		if traced := v.frame(dt); traced > 0 {
			hud.SetTraceTime(traced)
		}
		v.renderer.Render(v.fb)
		err := v.renderer.Flush()
		if err == nil {
			// HUD overlay (always update FPS, render clears lines when HUD off)
			hud.UpdateFPS()
			hud.Render(v.layout.cols, v.layout.rows, v.cam, v.showHUD, v.debug)
		}
		v.mu.Unlock()

		if err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
