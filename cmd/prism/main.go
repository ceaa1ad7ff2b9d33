// prism - Terminal Ray Tracer
// Trace a scene of spheres and planes with shadows and mirror reflections,
// interactively in your terminal or headless to a PNG.
//
// Controls (prism view):
//
//	W/S         - Move forward/backward
//	A/D         - Strafe left/right
//	Arrows      - Look around
//	Mouse drag  - Look around
//	Scroll, +/- - Zoom (field of view)
//	Tab         - Toggle the top-down debug pane
//	?           - Toggle HUD overlay
//	R           - Reset camera
//	Esc         - Quit
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := defaultOptions()

	view := newViewCmd(opts)
	root := &cobra.Command{
		Use:   "prism",
		Short: "Terminal ray tracer",
		Long: "Prism ray-traces spheres and planes with hard shadows and mirror " +
			"reflections, either interactively in the terminal or to a PNG.",
		Args: cobra.NoArgs,
		RunE: view.RunE,
	}
	opts.bindScene(root.PersistentFlags())
	// Bare "prism" runs the viewer, so it takes the viewer's flags too.
	opts.bindView(root.Flags())

	root.AddCommand(view, newRenderCmd(opts))
	return root
}
