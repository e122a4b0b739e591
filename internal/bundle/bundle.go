package bundle

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/mmr-tortoise/filebundler/internal/fsutil"
	"github.com/mmr-tortoise/filebundler/internal/model"
)

// Result summarises a completed bundle.
type Result struct {
	// Output is the absolute path of the written bundle.
	Output string

	// Files lists the bundled files relative to the root, in write order.
	Files []string

	// Bytes is the total number of bytes written, author line included.
	Bytes int64
}

// Bundle validates req, selects the files under req.Root and writes them
// into req.Output.
//
// All returned errors are *model.CLIError values whose code identifies the
// category: ExitConfigurationError for invalid options, ExitIOError for
// filesystem failures and ExitGeneralError for anything else.
func Bundle(ctx context.Context, req model.BundleRequest) (*Result, error) {
	// Step 1: Validate options before touching the filesystem.
	sortMode, err := req.Validate()
	if err != nil {
		return nil, err
	}
	exclude := req.Exclude
	if exclude == "" {
		exclude = model.ExcludePrefix
	}

	// Step 2: Resolve the root and output paths.
	root, err := resolveRoot(req.Root)
	if err != nil {
		return nil, err
	}
	output, err := filepath.Abs(req.Output)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to resolve output path %s", req.Output), err)
	}

	// Step 3: Select and order the candidate files. The output and its lock
	// are skipped so a bundle placed inside the root never bundles itself.
	skip := map[string]bool{
		output:                  true,
		fsutil.LockPath(output): true,
	}
	files, err := Collect(ctx, root, exclude, skip)
	if err != nil {
		return nil, err
	}
	files = FilterByExtension(files, req.Extensions())
	SortFiles(files, sortMode)

	slog.Debug("selected files",
		slog.String("root", root),
		slog.Int("count", len(files)),
		slog.String("sort", sortMode.String()),
		slog.String("exclude", exclude.String()),
	)

	// Step 4: Write the bundle while holding the output lock.
	result := &Result{Output: output}
	err = fsutil.WithLock(output, func() error {
		return writeBundle(ctx, root, files, req, result)
	})
	if err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			return nil, cliErr
		}
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to lock %s", output), err)
	}

	slog.Debug("bundle written",
		slog.String("output", output),
		slog.Int("files", len(result.Files)),
		slog.String("size", humanize.Bytes(uint64(result.Bytes))), //nolint:gosec // Byte counts are non-negative.
	)

	return result, nil
}

// resolveRoot returns the absolute root directory, defaulting to the
// current working directory.
func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", model.WrapCLIError(model.ExitIOError, "failed to get working directory", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to resolve root %s", root), err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to access root %s", abs), err)
	}
	if !info.IsDir() {
		return "", model.NewCLIError(model.ExitIOError,
			fmt.Sprintf("root %s is not a directory", abs))
	}

	return abs, nil
}

// writeBundle creates the output file and streams every transformed file
// into it. The file is closed on every path; a failed close is reported
// as an i/o error when nothing else failed first.
func writeBundle(ctx context.Context, root string, files []string, req model.BundleRequest, result *Result) (err error) {
	f, err := os.Create(result.Output)
	if err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to create output file %s", result.Output), err)
	}
	w := bufio.NewWriter(f)
	defer func() {
		// On failure the output is left behind holding every file bundled
		// before the error.
		if err != nil {
			_ = w.Flush()
		}
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = model.WrapCLIError(model.ExitIOError,
				fmt.Sprintf("failed to close output file %s", result.Output), closeErr)
		}
	}()

	write := func(s string) error {
		n, werr := w.WriteString(s)
		result.Bytes += int64(n)
		if werr != nil {
			return model.WrapCLIError(model.ExitIOError,
				fmt.Sprintf("failed to write output file %s", result.Output), werr)
		}
		return nil
	}

	if req.Author != "" {
		if err := write("Author: " + req.Author + "\n"); err != nil {
			return err
		}
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "bundle cancelled", err)
		}

		rel, err := filepath.Rel(root, file)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to compute relative path of %s", file), err)
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return model.WrapCLIError(model.ExitIOError,
				fmt.Sprintf("failed to read %s", rel), err)
		}

		slog.Debug("bundling file", slog.String("path", rel), slog.Int("size", len(data)))

		if err := write(Transform(string(data), rel, req.Note, req.RemoveEmptyLines)); err != nil {
			return err
		}
		result.Files = append(result.Files, rel)
	}

	if err := w.Flush(); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to write output file %s", result.Output), err)
	}
	return nil
}
