package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/filebundler/internal/model"
)

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	rspPath := filepath.Join(dir, "bundle.rsp")
	require.NoError(t, os.WriteFile(rspPath, []byte(
		"# saved invocation\n"+
			`bundle --language ".go .md" --output "my bundle.txt"`+"\n"+
			"\n"+
			`  --note True --author "Jane Doe"`+"\n"), 0o644))

	got, err := ExpandArgs([]string{"-v", "@" + rspPath, "--sort", "extension"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-v",
		"bundle", "--language", ".go .md", "--output", "my bundle.txt",
		"--note", "True", "--author", "Jane Doe",
		"--sort", "extension",
	}, got)
}

func TestExpandArgs_Untouched(t *testing.T) {
	args := []string{"bundle", "@", "--", "@not-a-file"}
	got, err := ExpandArgs(args)
	require.NoError(t, err)
	assert.Equal(t, args, got)
}

func TestExpandArgs_EmptyArgs(t *testing.T) {
	got, err := ExpandArgs(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExpandArgs_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := ExpandArgs([]string{"@" + filepath.Join(dir, "missing.rsp")})
		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitIOError, cliErr.Code)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		path := filepath.Join(dir, "bad.rsp")
		require.NoError(t, os.WriteFile(path, []byte(`bundle --author "Jane`), 0o644))

		_, err := ExpandArgs([]string{"@" + path})
		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitConfigurationError, cliErr.Code)
	})
}

func TestNormalizeBoolFlags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "separated literals joined",
			in:   []string{"bundle", "--note", "True", "--remove-empty-lines", "False"},
			want: []string{"bundle", "--note=True", "--remove-empty-lines=False"},
		},
		{
			name: "shorthands joined",
			in:   []string{"-n", "true", "-r", "0"},
			want: []string{"-n=true", "-r=0"},
		},
		{
			name: "bare flag followed by another flag",
			in:   []string{"--note", "--output", "x"},
			want: []string{"--note", "--output", "x"},
		},
		{
			name: "trailing bare flag",
			in:   []string{"--output", "x", "-r"},
			want: []string{"--output", "x", "-r"},
		},
		{
			name: "non-bool flag value untouched",
			in:   []string{"--author", "true"},
			want: []string{"--author", "true"},
		},
		{
			name: "stops at double dash",
			in:   []string{"--", "--note", "true"},
			want: []string{"--", "--note", "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBoolFlags(tt.in))
		})
	}
}
