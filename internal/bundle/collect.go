package bundle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmr-tortoise/filebundler/internal/model"
)

// Collect walks root recursively and returns the absolute paths of all
// files that are not excluded. Paths are returned in lexical walk order.
//
// root must be an absolute, cleaned path. Paths listed in skip (absolute)
// are never returned; the bundler uses this to keep its own output file
// and lock file out of the candidate list.
func Collect(ctx context.Context, root string, mode model.ExcludeMode, skip map[string]bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		if isExcluded(root, path, d.IsDir(), mode) {
			// Every descendant of an excluded directory shares its prefix,
			// so the whole subtree can be skipped.
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || skip[path] {
			return nil
		}

		if isCandidateFile(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, model.WrapCLIError(model.ExitGeneralError, "bundle cancelled", err)
		}
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to list files under %s", root), err)
	}

	return files, nil
}

// isCandidateFile reports whether a walked entry is a regular file,
// following a symlink one level. A dangling symlink stays a candidate;
// reading it later reports the i/o error.
func isCandidateFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return info.Mode().IsRegular()
}

// isExcluded reports whether path falls under one of model.ExcludedDirs.
//
// In prefix mode the comparison is a case-insensitive string prefix check
// against <root>/<dir>, so <root>/binaries and <root>/bin.txt match too.
// In segment mode only a top-level directory named exactly like an excluded
// dir (ignoring case) matches.
func isExcluded(root, path string, isDir bool, mode model.ExcludeMode) bool {
	if mode == model.ExcludeSegment {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false
		}
		segments := strings.Split(rel, string(filepath.Separator))
		if len(segments) == 1 && !isDir {
			return false
		}
		for _, dir := range model.ExcludedDirs {
			if strings.EqualFold(segments[0], dir) {
				return true
			}
		}
		return false
	}

	lowerPath := strings.ToLower(path)
	for _, dir := range model.ExcludedDirs {
		if strings.HasPrefix(lowerPath, strings.ToLower(filepath.Join(root, dir))) {
			return true
		}
	}
	return false
}

// FilterByExtension keeps the files whose extension equals one of exts,
// ignoring case. The extension includes its leading dot, as returned by
// filepath.Ext. A nil exts slice keeps every file.
func FilterByExtension(files []string, exts []string) []string {
	if exts == nil {
		return files
	}

	filtered := make([]string, 0, len(files))
	for _, file := range files {
		ext := filepath.Ext(file)
		for _, want := range exts {
			if strings.EqualFold(ext, want) {
				filtered = append(filtered, file)
				break
			}
		}
	}
	return filtered
}

// SortFiles orders files in place, ascending by full path or by extension.
// The sort is stable, so files with equal keys keep their walk order.
func SortFiles(files []string, mode model.SortMode) {
	key := func(path string) string { return path }
	if mode == model.SortExtension {
		key = filepath.Ext
	}

	sort.SliceStable(files, func(i, j int) bool {
		return key(files[i]) < key(files[j])
	})
}
