// Package cli implements the cobra-based CLI commands for filebundler.
//
// Each subcommand (bundle, create-rsp) is defined in its own file within
// this package. This file defines the root command, the global flags and
// the error-to-exit-code mapping.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/filebundler/internal/model"
)

// verbose enables debug logging on stderr. It is bound to the persistent
// --verbose flag of the root command.
var verbose bool

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does nothing but print help; the work is done
// by the bundle and create-rsp subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filebundler",
		Short: "Bundle code files to a single file",
		Long: `filebundler concatenates the source files of a directory tree into a
single output file, optionally filtered by extension, sorted, annotated
with their source path and stripped of empty lines.

Arguments of the form @file are replaced by the contents of that response
file, so a saved invocation can be replayed with:

  filebundler @bundle.rsp`,

		// Errors are printed by Run with a category prefix.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewBundleCommand())
	rootCmd.AddCommand(NewCreateRspCommand())

	return rootCmd
}

// Execute runs the root command with the process arguments and exits
// with the resulting code. It is the entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, rootCmd, os.Args[1:])
	stop()
	os.Exit(int(code))
}

// Run expands response files in args, executes rootCmd and returns the
// exit code. Errors are printed on the command's standard output as
// "<prefix>: <message>", where the prefix names the error category.
func Run(ctx context.Context, rootCmd *cobra.Command, args []string) model.ExitCode {
	con := newConsole(rootCmd.OutOrStdout())

	expanded, err := ExpandArgs(args)
	if err != nil {
		return con.Error(err)
	}
	rootCmd.SetArgs(NormalizeBoolFlags(expanded))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return con.Error(err)
	}
	return model.ExitSuccess
}

// exitCodeOf returns the exit code carried by err, or ExitGeneralError
// for errors that do not carry one (cobra parse errors, for example).
func exitCodeOf(err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitGeneralError
}
