package bundle

import "strings"

// NotePrefix starts the source note line injected before a file's content.
const NotePrefix = "// From: "

// Transform applies the per-file options to content, in order:
// the source note is prepended first, then empty lines are removed from
// the annotated text.
//
// relPath is the file path relative to the bundle root, used in the note.
func Transform(content, relPath string, note, removeEmptyLines bool) string {
	if note {
		content = NotePrefix + relPath + "\n" + content
	}
	if removeEmptyLines {
		content = RemoveEmptyLines(content)
	}
	return content
}

// RemoveEmptyLines splits s on "\n", drops every zero-length line and
// joins the rest with "\n". A line consisting only of the carriage return
// of a CRLF ending counts as zero-length.
func RemoveEmptyLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line == "" || line == "\r" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
