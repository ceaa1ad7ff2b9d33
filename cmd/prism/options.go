package main

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/tracer"
)

// options holds every command-line setting. Scene flags are shared, the rest
// belong to one command.
type options struct {
	scenePath string
	fov       float64 // degrees, 0 keeps the scene's projection distance
	bounces   int
	workers   int
	bg        string // hex, empty keeps the scene's background

	// view
	fps   int
	debug bool

	// render
	width       int
	height      int
	output      string
	debugOutput string
}

func defaultOptions() *options {
	return &options{
		bounces: tracer.DefaultMaxBounces,
		fps:     30,
		width:   320,
		height:  180,
		output:  "prism.png",
	}
}

func (o *options) bindScene(fs *pflag.FlagSet) {
	fs.StringVar(&o.scenePath, "scene", o.scenePath, "glTF/GLB scene to trace (default: built-in demo scene)")
	fs.Float64Var(&o.fov, "fov", o.fov, "horizontal field of view in degrees (0 < fov < 180)")
	fs.IntVar(&o.bounces, "bounces", o.bounces, "maximum mirror bounces per ray")
	fs.IntVar(&o.workers, "workers", o.workers, "rows traced in parallel (0 = one per CPU)")
	fs.StringVar(&o.bg, "bg", o.bg, "background color as hex, e.g. #1e1e28")
}

func (o *options) bindView(fs *pflag.FlagSet) {
	fs.IntVar(&o.fps, "fps", o.fps, "target frames per second")
	fs.BoolVar(&o.debug, "debug", o.debug, "start with the top-down debug pane open")
}

func (o *options) bindRender(fs *pflag.FlagSet) {
	fs.IntVar(&o.width, "width", o.width, "image width in pixels")
	fs.IntVar(&o.height, "height", o.height, "image height in pixels")
	fs.StringVarP(&o.output, "output", "o", o.output, "PNG file to write")
	fs.StringVar(&o.debugOutput, "debug-output", o.debugOutput, "also write the top-down debug schematic to this PNG")
}

func (o *options) validate() error {
	if o.fov != 0 && !(o.fov > 0 && o.fov < 180) {
		return fmt.Errorf("--fov must be between 0 and 180 degrees, got %v", o.fov)
	}
	if o.bounces < 0 {
		return fmt.Errorf("--bounces must not be negative, got %d", o.bounces)
	}
	if o.fps <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", o.fps)
	}
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", o.width, o.height)
	}
	return nil
}

// loadScene loads --scene, or the demo scene when unset, and applies --bg.
func (o *options) loadScene() (*models.Scene, error) {
	scene := models.DefaultScene()
	if o.scenePath != "" {
		var err error
		scene, err = models.LoadScene(o.scenePath)
		if err != nil {
			return nil, err
		}
	}

	if o.bg != "" {
		c, err := colorful.Hex(o.bg)
		if err != nil {
			return nil, fmt.Errorf("parse --bg: %w", err)
		}
		scene.Background = math3d.V3(c.R, c.G, c.B)
	}
	return scene, nil
}

// newCamera creates a camera at the scene's pose with the tracing flags
// applied.
func (o *options) newCamera(scene *models.Scene, width, height int) *tracer.Camera {
	cam := scene.Camera.NewCamera(width, height)
	o.configure(cam)
	return cam
}

func (o *options) configure(cam *tracer.Camera) {
	cam.MaxBounces = o.bounces
	cam.Workers = o.workers
	if o.fov != 0 {
		cam.ChangeFOV(o.fov)
	}
}
