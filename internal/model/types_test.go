package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSortMode verifies string-to-mode conversion, including case
// normalization and error cases.
func TestParseSortMode(t *testing.T) {
	tests := []struct {
		input    string
		expected SortMode
		hasError bool
	}{
		{"filename", SortFilename, false},
		{"extension", SortExtension, false},
		{"FILENAME", SortFilename, false}, // case insensitive
		{"Extension", SortExtension, false},
		{"size", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseSortMode(tt.input)
			if tt.hasError {
				require.Error(t, err)
				var cliErr *CLIError
				require.True(t, errors.As(err, &cliErr))
				assert.Equal(t, ExitConfigurationError, cliErr.Code)
				assert.Equal(t, "sort must be filename or extension", cliErr.Message)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestParseExcludeMode verifies the exclusion mode parser.
func TestParseExcludeMode(t *testing.T) {
	mode, err := ParseExcludeMode("Segment")
	require.NoError(t, err)
	assert.Equal(t, ExcludeSegment, mode)

	mode, err = ParseExcludeMode("prefix")
	require.NoError(t, err)
	assert.Equal(t, ExcludePrefix, mode)

	_, err = ParseExcludeMode("glob")
	assert.Error(t, err)
}

// TestBundleRequest_Validate checks the validation order and messages.
func TestBundleRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     BundleRequest
		want    SortMode
		wantMsg string
	}{
		{
			name: "valid filename sort",
			req:  BundleRequest{Language: "all", Output: "out.txt", Sort: "filename"},
			want: SortFilename,
		},
		{
			name: "upper case extension sort",
			req:  BundleRequest{Language: ".go", Output: "out.txt", Sort: "EXTENSION"},
			want: SortExtension,
		},
		{
			name:    "empty language",
			req:     BundleRequest{Output: "out.txt", Sort: "filename"},
			wantMsg: "must be value in language",
		},
		{
			name:    "empty output",
			req:     BundleRequest{Language: "all", Sort: "filename"},
			wantMsg: "must be value in output",
		},
		{
			name:    "language checked before output",
			req:     BundleRequest{Sort: "filename"},
			wantMsg: "must be value in language",
		},
		{
			name:    "bad sort",
			req:     BundleRequest{Language: "all", Output: "out.txt", Sort: "size"},
			wantMsg: "sort must be filename or extension",
		},
		{
			name:    "bad exclude mode",
			req:     BundleRequest{Language: "all", Output: "out.txt", Sort: "filename", Exclude: "glob"},
			wantMsg: `exclude-match must be prefix or segment, got "glob"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := tt.req.Validate()
			if tt.wantMsg != "" {
				require.Error(t, err)
				var cliErr *CLIError
				require.True(t, errors.As(err, &cliErr))
				assert.Equal(t, ExitConfigurationError, cliErr.Code)
				assert.Equal(t, tt.wantMsg, cliErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

// TestBundleRequest_Extensions verifies the language filter split.
func TestBundleRequest_Extensions(t *testing.T) {
	assert.Nil(t, (&BundleRequest{Language: "all"}).Extensions())
	assert.Equal(t, []string{".cs", ".go"}, (&BundleRequest{Language: ".cs  .go"}).Extensions())
	// Only the exact lower-case literal disables filtering.
	assert.Equal(t, []string{"ALL"}, (&BundleRequest{Language: "ALL"}).Extensions())
}

// TestExitCode_Prefix verifies the console prefix per error category.
func TestExitCode_Prefix(t *testing.T) {
	assert.Equal(t, "boolean error", ExitConfigurationError.Prefix())
	assert.Equal(t, "i/o error", ExitIOError.Prefix())
	assert.Equal(t, "error", ExitGeneralError.Prefix())
}

// TestCLIError verifies error formatting and unwrapping.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ExitConfigurationError, "must be value in output")
		assert.Equal(t, "must be value in output", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		underlying := errors.New("permission denied")
		err := WrapCLIError(ExitIOError, "cannot read a.txt", underlying)
		assert.Equal(t, "cannot read a.txt: permission denied", err.Error())
		assert.True(t, errors.Is(err, underlying))
	})
}
