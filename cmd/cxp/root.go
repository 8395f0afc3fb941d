// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/cxp/cmd/cxp/commands"
	"github.com/walteh/cxp/cmd/cxp/opts"
	"github.com/walteh/cxp/pkg/clipboard"
	"github.com/walteh/cxp/pkg/config"
	"github.com/walteh/cxp/pkg/log"
	"github.com/walteh/cxp/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

const usageTemplate = `
USAGE:
{{if .HasAvailableSubCommands}}{{.CommandPath}} command [operand]

    where ` + "`command`" + ` can be:{{range .Commands}}{{if .IsAvailableCommand}}
        {{rpad .Name 8}}{{.Short}}{{end}}{{end}}{{else}}{{.UseLine}}{{end}}{{if .HasAvailableFlags}}

FLAGS:
{{.Flags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile string
	dir        string
	color      string
	lock       bool
	debug      bool
	quiet      bool
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	cmd.PersistentFlags().StringVar(&f.configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/cxp/config.yaml)")
	cmd.PersistentFlags().StringVar(&f.dir, "dir", "", "staging directory (default $XDG_DATA_HOME/cxp)")
	cmd.PersistentFlags().StringVar(&f.color, "color", "", "colorize output: auto, always or never")
	cmd.PersistentFlags().BoolVar(&f.lock, "lock", false, "hold an advisory lock while the command runs")
	cmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, "only print listings and errors")
}

// newRootCmd builds the command tree. ro is filled in before any
// subcommand runs.
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "cxp",
		Short: "Copy, cut and paste files from the terminal",
		Long: `cxp brings the Copy, Cut, and Paste functionalities from your GUI file
manager to your terminal. Stage files with c or x, then paste them anywhere
with p.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return commands.Usagef("no command given")
			}
			return commands.Usagef("unsupported command %q", args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Usagef("no command given")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRootOpts(cmd, flags, ro)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetUsageTemplate(usageTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return commands.Usagef("%s", err.Error())
	})
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewCopyCmd(ro),
		commands.NewCutCmd(ro),
		commands.NewPasteCmd(ro),
		commands.NewListCmd(ro),
		commands.NewTreeCmd(ro),
		commands.NewEmptyCmd(ro),
		newVersionCmd(),
	)

	return rootCmd
}

// setupRootOpts loads config, applies flags, and opens the store
func setupRootOpts(cmd *cobra.Command, f *rootFlags, ro *opts.RootOpts) error {
	ctx := cmd.Context()

	setupLogging(f.debug)

	cfg, err := loadConfig(ctx, f.configFile)
	if err != nil {
		return err
	}

	pf := cmd.Flags()
	if pf.Changed("dir") {
		abs, err := filepath.Abs(f.dir)
		if err != nil {
			return errors.Errorf("resolving --dir: %w", err)
		}
		cfg.DataDir = abs
	}
	if pf.Changed("color") {
		cfg.Color = f.color
	}
	if pf.Changed("lock") {
		cfg.Lock = f.lock
	}
	if pf.Changed("quiet") {
		cfg.Quiet = f.quiet
	}
	if err := cfg.Validate(); err != nil {
		return commands.Usagef("invalid options: %s", err.Error())
	}

	applyColor(cfg.Color)
	ro.Logger.SetQuiet(cfg.Quiet)

	root, err := cfg.StagingDir()
	if err != nil {
		return errors.Errorf("locating staging directory: %w", err)
	}

	store, err := clipboard.Open(ctx, root, clipboard.WithReporter(ro.Logger))
	if err != nil {
		return errors.Errorf("opening staging directory: %w", err)
	}

	lockPath := ""
	if cfg.Lock {
		lockPath = operation.LockPath(store.Root())
	}

	zerolog.Ctx(ctx).Debug().
		Str("config", cfg.Location()).
		Str("root", store.Root()).
		Bool("lock", cfg.Lock).
		Msg("clipboard ready")

	ro.Config = cfg
	ro.Store = store
	ro.Runner = operation.NewRunner(lockPath)
	return nil
}

// loadConfig loads the named config file, or the default one if it exists
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(ctx, path)
	} else {
		cfg, err = config.LoadDefault(ctx)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, errors.Errorf("applying environment: %w", err)
	}
	return cfg, nil
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func applyColor(mode string) {
	switch mode {
	case config.ColorNever:
		color.NoColor = true
		pterm.DisableColor()
	case config.ColorAlways:
		color.NoColor = false
		pterm.EnableColor()
	}
}

// newLogger creates the user logger and the context carrying it
func newLogger(ctx context.Context, ro *opts.RootOpts, stdout, stderr io.Writer) context.Context {
	ro.Logger = log.New(stdout, stderr, zerolog.DebugLevel)
	return log.NewContext(ctx, ro.Logger)
}
