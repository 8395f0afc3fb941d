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
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/cxp/cmd/cxp/commands"
	"github.com/walteh/cxp/cmd/cxp/opts"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one cxp invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ro := &opts.RootOpts{}
	ctx = newLogger(ctx, ro, stdout, stderr)

	rootCmd := newRootCmd(ro)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if tok, ok := commandToken(rootCmd, args); ok && !utf8.ValidString(tok) {
		ro.Logger.Error("command is not valid UTF-8")
		fmt.Fprint(stderr, rootCmd.UsageString())
		return 1
	}

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	zerolog.Ctx(ctx).Debug().Msgf("%+v", err)
	ro.Logger.Errorf("Error: %s", err.Error())

	if cmd == nil {
		cmd = rootCmd
	}
	if commands.IsUsage(err) {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

// commandToken returns the command name given on the command line when it
// does not match any subcommand
func commandToken(rootCmd *cobra.Command, args []string) (string, bool) {
	cmd, rest, err := rootCmd.Find(args)
	if err != nil || cmd != rootCmd {
		return "", false
	}
	if err := cmd.ParseFlags(rest); err != nil {
		return "", false
	}
	if cmd.Flags().NArg() == 0 {
		return "", false
	}
	return cmd.Flags().Arg(0), true
}
