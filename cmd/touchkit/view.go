package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/phanxgames/touchkit"
)

func newViewCmd() *cobra.Command {
	var layoutPath string
	var stats bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a layout in an interactive window",
		Long: `View opens the layout in a window sized to its viewport. Tap to focus an
element, drag to move it, and use two fingers (or the corner affordance) to
scale and rotate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), layoutPath, stats)
		},
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "TOML layout file")
	cmd.Flags().BoolVar(&stats, "stats", false, "overlay kit statistics")
	_ = cmd.MarkFlagRequired("layout")
	return cmd
}

func runView(ctx context.Context, layoutPath string, stats bool) error {
	logger := loggerFromContext(ctx)
	layout, err := touchkit.LoadLayoutFile(layoutPath)
	if err != nil {
		return err
	}
	kit := newKit(layout, logger)
	defer kit.Teardown()
	layout.Apply(kit)

	g := touchkit.NewGame(kit)
	g.ShowStats = stats
	g.OnUpdate = func(*touchkit.Kit) error { return ctx.Err() }
	return touchkit.Run("touchkit: "+layoutPath, g)
}
