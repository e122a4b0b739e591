package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/mmr-tortoise/filebundler/internal/model"
)

// ExpandArgs replaces every argument of the form @path with the tokens of
// the response file at path.
//
// Each non-blank line of the file is split with shell quoting rules; lines
// starting with '#' are comments. Expansion is not recursive. A bare "@"
// and arguments after "--" are left untouched.
func ExpandArgs(args []string) ([]string, error) {
	expanded := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			expanded = append(expanded, args[i:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '@' {
			expanded = append(expanded, arg)
			continue
		}

		tokens, err := readResponseFile(arg[1:])
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, tokens...)
	}
	return expanded, nil
}

// readResponseFile returns the shell-split tokens of a response file.
func readResponseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read response file %s", path), err)
	}

	var tokens []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words, err := shellwords.Parse(line)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitConfigurationError,
				fmt.Sprintf("invalid response file %s line %d", path, lineNo), err)
		}
		tokens = append(tokens, words...)
	}
	if err := scanner.Err(); err != nil {
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read response file %s", path), err)
	}

	return tokens, nil
}

// boolFlags lists the boolean flags of the bundle command that may be
// followed by a separate value, as written by create-rsp ("--note True").
var boolFlags = map[string]bool{
	"--note":               true,
	"-n":                   true,
	"--remove-empty-lines": true,
	"-r":                   true,
}

// NormalizeBoolFlags joins a boolean flag with a following boolean
// literal ("--note True" becomes "--note=True"). pflag treats a bare
// boolean flag as true and would otherwise see the literal as a
// positional argument.
func NormalizeBoolFlags(args []string) []string {
	normalized := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			normalized = append(normalized, args[i:]...)
			break
		}
		if boolFlags[arg] && i+1 < len(args) {
			if _, err := strconv.ParseBool(args[i+1]); err == nil {
				normalized = append(normalized, arg+"="+args[i+1])
				i++
				continue
			}
		}
		normalized = append(normalized, arg)
	}
	return normalized
}
