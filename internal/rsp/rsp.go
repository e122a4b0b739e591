// Package rsp collects bundle options through line-oriented prompts and
// writes them as a response file that replays a bundle invocation.
package rsp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/filebundler/internal/model"
)

// FileName is the fixed name of the response file, created in the
// working directory.
const FileName = "bundle.rsp"

// Prompt texts, in the order they are asked.
const (
	PromptLanguage         = "Enter language (all for all languages)"
	PromptOutput           = "Enter output file path"
	PromptSort             = "Sort files (filename/extension)"
	PromptNote             = "Add notes to bundled file (true/false)"
	PromptRemoveEmptyLines = "Remove empty lines (true/false)"
	PromptAuthor           = "Enter author name"
)

// Prompter asks questions on an output stream and reads one line of
// answer per question from an input stream.
type Prompter struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewPrompter creates a Prompter reading answers from in and writing
// prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{out: out, scanner: bufio.NewScanner(in)}
}

// String prints "<prompt>: " and returns the next input line without its
// line ending. End of input yields an empty answer.
func (p *Prompter) String(prompt string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
		return "", err
	}
	// bufio.Scanner strips both "\n" and "\r\n" line endings.
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	return "", p.scanner.Err()
}

// Bool prompts like String and reports whether the answer is exactly the
// literal "true". Any other answer, "True" included, is false.
func (p *Prompter) Bool(prompt string) (bool, error) {
	answer, err := p.String(prompt)
	if err != nil {
		return false, err
	}
	return answer == "true", nil
}

// Ask runs the six prompts in order and returns the collected answers.
// Answers are not validated.
func Ask(p *Prompter) (*model.ResponseAnswers, error) {
	var (
		answers model.ResponseAnswers
		err     error
	)

	if answers.Language, err = p.String(PromptLanguage); err != nil {
		return nil, wrapPromptError(err)
	}
	if answers.Output, err = p.String(PromptOutput); err != nil {
		return nil, wrapPromptError(err)
	}
	if answers.Sort, err = p.String(PromptSort); err != nil {
		return nil, wrapPromptError(err)
	}
	if answers.Note, err = p.Bool(PromptNote); err != nil {
		return nil, wrapPromptError(err)
	}
	if answers.RemoveEmptyLines, err = p.Bool(PromptRemoveEmptyLines); err != nil {
		return nil, wrapPromptError(err)
	}
	if answers.Author, err = p.String(PromptAuthor); err != nil {
		return nil, wrapPromptError(err)
	}

	return &answers, nil
}

func wrapPromptError(err error) error {
	return model.WrapCLIError(model.ExitIOError, "failed to read user input", err)
}

// FormatLine renders answers as a single bundle invocation. Booleans are
// written as True or False; the bundle command accepts both spellings.
func FormatLine(a *model.ResponseAnswers) string {
	return fmt.Sprintf(`bundle --language "%s" --output "%s" --sort "%s" --note %s --remove-empty-lines %s --author "%s"`,
		a.Language, a.Output, a.Sort, formatBool(a.Note), formatBool(a.RemoveEmptyLines), a.Author)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Write creates or overwrites FileName in dir with the invocation line
// for answers and returns the path written.
func Write(dir string, a *model.ResponseAnswers) (string, error) {
	path := filepath.Join(dir, FileName)

	if err := os.WriteFile(path, []byte(FormatLine(a)+"\n"), 0o644); err != nil {
		return "", model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to write response file %s", path), err)
	}

	return path, nil
}
