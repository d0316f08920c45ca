package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bethropolis/bitgrid/internal/config"
	"github.com/bethropolis/bitgrid/internal/logger"
)

// options is shared by every subcommand; only one runs per process.
type options struct {
	configPath string
	flags      config.Flags
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bitgrid",
		Short: "Draw monochrome bitmaps and export them as C-style literals",
		Long: `bitgrid is a terminal pixel editor for monochrome displays. Draw on a
grid with the mouse, then copy the rows as binary or hex literals.
Images can be imported and quantized to 128x64.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("bitgrid %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (TOML, or YAML by extension)")
	opts.flags.DefineLogFlags(root.PersistentFlags())

	edit := newEditCmd(opts)
	root.AddCommand(edit)
	root.AddCommand(newConvertCmd(opts))
	root.AddCommand(newVersionCmd())

	// Bare "bitgrid" opens the editor.
	root.RunE = edit.RunE
	opts.flags.DefineEditorFlags(root.Flags())
	opts.flags.DefineOutputFlags(root.Flags())
	root.Flags().StringP("image", "i", "", "Image to import into a 128x64 grid")
	return root
}

// setup loads configuration, applies flags that were set on cmd and starts
// logging. interactive routes console logging to a file so it does not
// draw over the editor. The returned func closes the log file.
func setup(cmd *cobra.Command, opts *options, interactive bool) (*config.Config, func(), error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	opts.flags.ApplyOverrides(cfg, cmd.Flags())

	if interactive && cfg.Logger.ToStderr() {
		cfg.Logger.LogFilePath = config.DefaultLogPath()
	}
	out, closeLog, err := logger.Open(cfg.Logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Logger, out)
	cfg.LogWarnings()
	logger.Debugf("Config: %+v", cfg.Editor)

	return cfg, func() {
		if err := closeLog(); err != nil {
			logger.Errorf("closing log: %v", err)
		}
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "bitgrid %s (commit %s, built %s)\n", version, commit, date)
}
