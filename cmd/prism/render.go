package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/prism/pkg/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Trace one frame to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return renderImage(cmd, opts)
		},
	}
	opts.bindRender(cmd.Flags())
	return cmd
}

func renderImage(cmd *cobra.Command, opts *options) error {
	scene, err := opts.loadScene()
	if err != nil {
		return err
	}

	cam := opts.newCamera(scene, opts.width, opts.height)

	start := time.Now()
	cam.Tick(scene.Scene)
	elapsed := time.Since(start)

	buf := make([]uint32, opts.width*opts.height)
	cam.Render(buf, scene.BackgroundRGB())

	fb := render.NewFramebuffer(opts.width, opts.height)
	if err := fb.FromPacked(buf); err != nil {
		return err
	}
	if err := fb.SavePNG(opts.output); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	cmd.Printf("Rendered %s: %dx%d, %d primitives, %d lights, fov %.1f° in %s\n",
		opts.output, opts.width, opts.height, len(scene.Primitives), len(scene.Lights),
		cam.FOV(), elapsed.Round(time.Millisecond))

	if opts.debugOutput != "" {
		dv := render.NewDebugView(opts.height, opts.height)
		if err := dv.SavePNG(opts.debugOutput, scene.Scene, cam); err != nil {
			return fmt.Errorf("save debug image: %w", err)
		}
		cmd.Printf("Debug view written to %s\n", opts.debugOutput)
	}
	return nil
}
