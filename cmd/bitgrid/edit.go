package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/bethropolis/bitgrid/internal/app"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/quantize"
)

func newEditCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive grid editor",
		Long: `Open the interactive grid editor.

Left-click toggles a cell and drags that state; right-click erases.
Keys: u/r undo/redo, Delete clear, o output pane, f format, y copy,
n resize, i import image, t theme, q quit. Arrows and the wheel pan
large grids; PgUp/PgDn scroll the output.`,
		Args: cobra.NoArgs,
		RunE: runEdit(opts),
	}
	opts.flags.DefineEditorFlags(cmd.Flags())
	opts.flags.DefineOutputFlags(cmd.Flags())
	cmd.Flags().StringP("image", "i", "", "Image to import into a 128x64 grid")
	return cmd
}

func runEdit(opts *options) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := setup(cmd, opts, true)
		if err != nil {
			return err
		}
		defer closeLog()

		var img image.Image
		if path, _ := cmd.Flags().GetString("image"); path != "" {
			img, err = quantize.Open(path)
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			logger.Infof("Importing %s", path)
		}

		a, err := app.NewApp(app.Options{Config: cfg, Image: img})
		if err != nil {
			return err
		}
		return a.Run()
	}
}
