// Package config loads default bundle options from a YAML or JSONC file.
//
// The file format is chosen by extension: .yaml and .yml are parsed with
// gopkg.in/yaml.v3; .json and .jsonc have comments and trailing commas
// stripped with github.com/tidwall/jsonc before encoding/json parses them.
//
// Every field is optional. A nil pointer means "not set in the file", so
// the CLI layer can tell an explicit false apart from an absent key.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/filebundler/internal/model"
)

// File holds the bundle defaults read from a config file.
type File struct {
	Language         *string `json:"language,omitempty"         yaml:"language,omitempty"`
	Output           *string `json:"output,omitempty"           yaml:"output,omitempty"`
	Sort             *string `json:"sort,omitempty"             yaml:"sort,omitempty"`
	Note             *bool   `json:"note,omitempty"             yaml:"note,omitempty"`
	RemoveEmptyLines *bool   `json:"removeEmptyLines,omitempty" yaml:"removeEmptyLines,omitempty"`
	Author           *string `json:"author,omitempty"           yaml:"author,omitempty"`
	Root             *string `json:"root,omitempty"             yaml:"root,omitempty"`
	ExcludeMatch     *string `json:"excludeMatch,omitempty"     yaml:"excludeMatch,omitempty"`
}

// Load reads and parses the config file at path.
//
// Relative output and root values are resolved against the directory of
// the config file, so a config checked into a project works from any
// working directory.
//
// All errors carry ExitConfigurationError.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.WrapCLIError(model.ExitConfigurationError,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitConfigurationError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigurationError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigurationError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitConfigurationError,
			fmt.Sprintf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", ext))
	}

	base := filepath.Dir(path)
	f.Output = resolveAgainst(base, f.Output)
	f.Root = resolveAgainst(base, f.Root)

	return &f, nil
}

// resolveAgainst joins a relative, non-empty path onto base.
func resolveAgainst(base string, p *string) *string {
	if p == nil || *p == "" || filepath.IsAbs(*p) {
		return p
	}
	joined := filepath.Join(base, *p)
	return &joined
}

// Apply copies every value set in f onto req, except for the options
// whose names appear in explicit. The names are the long flag names of
// the bundle command.
func (f *File) Apply(req *model.BundleRequest, explicit map[string]bool) error {
	setString := func(name string, src *string, dst *string) {
		if src != nil && !explicit[name] {
			*dst = *src
		}
	}
	setBool := func(name string, src *bool, dst *bool) {
		if src != nil && !explicit[name] {
			*dst = *src
		}
	}

	setString("language", f.Language, &req.Language)
	setString("output", f.Output, &req.Output)
	setString("sort", f.Sort, &req.Sort)
	setBool("note", f.Note, &req.Note)
	setBool("remove-empty-lines", f.RemoveEmptyLines, &req.RemoveEmptyLines)
	setString("author", f.Author, &req.Author)
	setString("root", f.Root, &req.Root)

	if f.ExcludeMatch != nil && !explicit["exclude-match"] {
		mode, err := model.ParseExcludeMode(*f.ExcludeMatch)
		if err != nil {
			return err
		}
		req.Exclude = mode
	}

	return nil
}
