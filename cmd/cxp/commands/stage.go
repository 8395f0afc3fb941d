package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/cxp/cmd/cxp/opts"
	"github.com/walteh/cxp/pkg/operation"
)

// NewCopyCmd creates the copy command
func NewCopyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "c path...",
		Aliases: []string{"copy"},
		Short:   "copy files",
		Long: `Copy stages the given files and directories for pasting.
It will:
1. Empty the buffer, discarding the previous batch
2. Copy every path into the buffer, recursively and in order
3. Leave the original paths untouched`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Runner.Run(cmd.Context(), operation.NewCopyOperation(opts.OperationOptions(), args))
		},
	}

	return cmd
}

// NewCutCmd creates the cut command
func NewCutCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "x path...",
		Aliases: []string{"cut"},
		Short:   "cut files",
		Long: `Cut stages the given files and directories for pasting and removes
them from their original location.
It will:
1. Empty the buffer, discarding the previous batch
2. Move every path into the buffer, in order
3. Keep paths already moved if a later one fails`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Runner.Run(cmd.Context(), operation.NewCutOperation(opts.OperationOptions(), args))
		},
	}

	return cmd
}
