// Package bundle implements the file bundling pipeline.
//
// A bundle is produced in four steps:
//   - Collect walks the root directory and drops the build directories
//     (bin, debug, obj) and the bundle's own output file.
//   - FilterByExtension keeps files matching the language filter.
//   - SortFiles orders the candidates by full path or by extension.
//   - Bundle writes an optional author line followed by each file's
//     content, transformed by Transform (source note, empty-line removal).
//
// Files are concatenated without separators. The pipeline is sequential
// and holds exactly one open file handle (the output) at a time.
package bundle
