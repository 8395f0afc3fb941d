package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/cxp/cmd/cxp/opts"
	"github.com/walteh/cxp/pkg/operation"
)

// NewListCmd creates the list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "l [pattern...]",
		Aliases: []string{"ls"},
		Short:   "list files in the buffer",
		Long: `List prints every entry in the buffer, hidden ones included, with its
mode, size and modification time. Directory sizes cover their whole tree.
Optional glob patterns (** supported) restrict the entries shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Runner.Run(cmd.Context(), operation.NewListOperation(opts.OperationOptions(), args))
		},
	}

	return cmd
}

// NewTreeCmd creates the tree command
func NewTreeCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "t [pattern...]",
		Aliases: []string{"tree"},
		Short:   "list files in the buffer in a tree format",
		Long: `Tree prints the buffer as a tree, hidden entries included.
Optional glob patterns restrict which staged entries are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Runner.Run(cmd.Context(), operation.NewTreeOperation(opts.OperationOptions(), args))
		},
	}

	return cmd
}
