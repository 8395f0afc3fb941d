package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/cxp/cmd/cxp/opts"
	"github.com/walteh/cxp/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewPasteCmd creates the paste command
func NewPasteCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "p",
		Aliases: []string{"paste"},
		Short:   "paste files into $PWD",
		Long: `Paste copies every entry in the buffer into the current directory.
The buffer is left as is, so the same batch can be pasted again.
Existing files are overwritten and existing directories merged.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Errorf("getting working directory: %w", err)
			}
			return opts.Runner.Run(cmd.Context(), operation.NewPasteOperation(opts.OperationOptions(), wd))
		},
	}

	return cmd
}

// NewEmptyCmd creates the empty command
func NewEmptyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "e",
		Aliases: []string{"empty"},
		Short:   "empty file buffer",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Runner.Run(cmd.Context(), operation.NewClearOperation(opts.OperationOptions()))
		},
	}

	return cmd
}
