package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/touchkit"
)

// maxScriptFrames bounds a headless script run.
const maxScriptFrames = 100000

type composeOpts struct {
	layout string
	script string
	out    string
}

func newComposeCmd() *cobra.Command {
	var opts composeOpts
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Apply a layout, replay a gesture script, and export a PNG",
		Long: `Compose loads a TOML layout headlessly, optionally replays a JSON gesture
script frame by frame, and writes the flattened arrangement to a PNG at the
background's source resolution. Script "export" steps are written beside the
output as <out>-<label>.png.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "TOML layout file")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "JSON gesture script")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "out.png", "output PNG path")
	_ = cmd.MarkFlagRequired("layout")
	return cmd
}

func runCompose(ctx context.Context, opts composeOpts) error {
	logger := loggerFromContext(ctx)
	start := time.Now()

	layout, err := touchkit.LoadLayoutFile(opts.layout)
	if err != nil {
		return err
	}
	kit := newKit(layout, logger)
	defer kit.Teardown()

	layout.Apply(kit)
	if err := kit.Settle(ctx); err != nil {
		return err
	}
	logger.Debug("layout applied", "children", kit.Registry().Len())

	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := touchkit.LoadScript(data)
		if err != nil {
			return err
		}
		kit.SetScript(runner)
		frames := 0
		for !runner.Done() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if frames >= maxScriptFrames {
				return fmt.Errorf("script did not finish within %d frames", maxScriptFrames)
			}
			kit.Update()
			frames++
		}
		logger.Debug("script finished", "frames", frames)
		for i, ex := range runner.Exports() {
			if ex.Err != nil {
				return fmt.Errorf("script export %d: %w", i, ex.Err)
			}
			path := exportPath(opts.out, ex.Label, i)
			if err := os.WriteFile(path, ex.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logger.Info("wrote export", "path", path)
		}
	}

	var data []byte
	kit.ExportImage(func(encoded []byte, e error) {
		data, err = encoded, e
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	logger.Infof("Wrote %s (%s)", opts.out, time.Since(start).Round(time.Millisecond))
	return nil
}

func newKit(layout *touchkit.Layout, logger *log.Logger) *touchkit.Kit {
	return touchkit.NewKit(touchkit.Options{
		Viewport: layout.Size(),
		Logger:   logger.WithPrefix("touchkit"),
		OnLoadError: func(id touchkit.ElementID, err error) {
			logger.Error("load failed", "element", id, "err", err)
		},
	})
}

// exportPath derives "<base>-<label>.png" from the output path.
func exportPath(out, label string, i int) string {
	if label == "" {
		label = fmt.Sprintf("%d", i)
	}
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "-" + label + ".png"
}
