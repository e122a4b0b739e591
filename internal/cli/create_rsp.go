// Package cli — create_rsp.go implements the "filebundler create-rsp" command.
//
// The command asks for each bundle option on the terminal and saves the
// answers as a single bundle invocation in bundle.rsp, which can later be
// replayed with "filebundler @bundle.rsp".
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/filebundler/internal/rsp"
)

// NewCreateRspCommand creates the "create-rsp" cobra command.
func NewCreateRspCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-rsp",
		Short: "Create a response file for bundling",
		Long: `Prompt for the bundle options and write them to bundle.rsp in the
current directory, overwriting any existing file.

Boolean answers are true only when exactly "true" is entered.

Replay the saved invocation with:
  filebundler @bundle.rsp`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateRsp(cmd)
		},
	}
}

func runCreateRsp(cmd *cobra.Command) error {
	answers, err := rsp.Ask(rsp.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	path, err := rsp.Write(".", answers)
	if err != nil {
		return err
	}
	slog.Debug("response file written", slog.String("path", path), slog.String("line", rsp.FormatLine(answers)))

	newConsole(cmd.OutOrStdout()).Success("Response file '%s' created successfully.", rsp.FileName)
	return nil
}
