package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/bitgrid/internal/core"
	"github.com/bethropolis/bitgrid/internal/core/clipboard"
	"github.com/bethropolis/bitgrid/internal/logger"
	"github.com/bethropolis/bitgrid/internal/quantize"
)

type convertOpts struct {
	output string // write here instead of stdout
	copy   bool   // also send the text to the clipboard
}

func newConvertCmd(opts *options) *cobra.Command {
	var co convertOpts

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Quantize an image to 128x64 and print its literals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, opts, false)
			if err != nil {
				return err
			}
			defer closeLog()

			img, err := quantize.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			threshold := cfg.Editor.Threshold
			if cfg.Editor.AutoThreshold {
				threshold = quantize.AutoThreshold(img)
			}

			editor, err := core.NewEditor(quantize.TargetWidth, quantize.TargetHeight, 1)
			if err != nil {
				return err
			}
			if err := editor.Import(img, threshold); err != nil {
				return err
			}
			format := cfg.OutputFormat()
			text := editor.OutputText(format)
			logger.Infof("Converted %s at threshold %.1f: %d cell(s) on", args[0], threshold, editor.Grid().Count())

			if co.output != "" {
				if err := os.WriteFile(co.output, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}

			if co.copy {
				if _, err := clipboard.NewManager(editor, true).YankOutput(format); err != nil {
					return err
				}
			}
			return nil
		},
	}

	opts.flags.DefineOutputFlags(cmd.Flags())
	cmd.Flags().StringVarP(&co.output, "output", "o", "", "Write the literals to this file")
	cmd.Flags().BoolVar(&co.copy, "copy", false, "Also copy the literals to the system clipboard")
	return cmd
}
