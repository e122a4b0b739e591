// Package cli — bundle.go implements the "filebundler bundle" command.
//
// The bundle command concatenates the files of a directory tree into one
// output file. Options may come from flags or from a YAML/JSONC config
// file given with --config; flags set explicitly on the command line win.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mmr-tortoise/filebundler/internal/bundle"
	"github.com/mmr-tortoise/filebundler/internal/config"
	"github.com/mmr-tortoise/filebundler/internal/model"
)

// bundleFlags holds the flag values for the bundle command.
type bundleFlags struct {
	language         string
	output           string
	sort             string
	note             bool
	removeEmptyLines bool
	author           string
	root             string
	excludeMatch     string
	configPath       string
}

// NewBundleCommand creates the "bundle" cobra command.
func NewBundleCommand() *cobra.Command {
	flags := &bundleFlags{}

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Bundle code files to a single file",
		Long: `Bundle the files below the root directory into a single output file.

Files under the bin, debug and obj directories are never bundled.

Examples:
  filebundler bundle --output all.txt
  filebundler bundle -l ".go .md" -o bundle.txt --sort extension --note
  filebundler bundle -o bundle.txt --remove-empty-lines --author "Jane"
  filebundler bundle --config bundle.yaml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.language, "language", "l", model.LanguageAll,
		`Language of code files to bundle: "all" or a space-separated extension list such as ".go .md"`)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file name (required)")
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", model.SortFilename.String(),
		"Sort files by: filename, extension")
	cmd.Flags().BoolVarP(&flags.note, "note", "n", false, "Write the source path of each file as a comment")
	cmd.Flags().BoolVarP(&flags.removeEmptyLines, "remove-empty-lines", "r", false, "Remove empty lines")
	cmd.Flags().StringVarP(&flags.author, "author", "a", "", "Author name written on the first line")
	cmd.Flags().StringVar(&flags.root, "root", ".", "Directory to bundle")
	cmd.Flags().StringVar(&flags.excludeMatch, "exclude-match", model.ExcludePrefix.String(),
		"How bin/debug/obj are matched: prefix (any path starting with the name), segment (directory name only)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML or JSONC file with default option values")

	return cmd
}

// runBundle builds the request from flags and config, runs the pipeline
// and prints the confirmation line.
func runBundle(cmd *cobra.Command, flags *bundleFlags) error {
	// Step 1: Build the request from flag values.
	exclude, err := model.ParseExcludeMode(flags.excludeMatch)
	if err != nil {
		return err
	}
	req := model.BundleRequest{
		Root:             flags.root,
		Language:         flags.language,
		Output:           flags.output,
		Sort:             flags.sort,
		Note:             flags.note,
		RemoveEmptyLines: flags.removeEmptyLines,
		Author:           flags.author,
		Exclude:          exclude,
	}

	// Step 2: Overlay config file values onto flags left at their defaults.
	if flags.configPath != "" {
		file, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}

		explicit := make(map[string]bool)
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicit[f.Name] = true
		})
		if err := file.Apply(&req, explicit); err != nil {
			return err
		}
		slog.Debug("loaded config file", slog.String("path", flags.configPath))
	}

	// Step 3: Run the pipeline.
	if _, err := bundle.Bundle(cmd.Context(), req); err != nil {
		return err
	}

	newConsole(cmd.OutOrStdout()).Success("File was created")
	return nil
}
