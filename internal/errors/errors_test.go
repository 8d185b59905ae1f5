package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	assert.Equal(t, "Argument Error", Argument.String())
	assert.Equal(t, "Configuration Error", Configuration.String())
	assert.Equal(t, "Repository Error", Repository.String())
	assert.Equal(t, "Runtime Error", Runtime.String())
	assert.Equal(t, "Error", ErrorCategory(99).String())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("refs unreadable")
	wrapped := Wrap(cause, Repository, "check repository permissions")

	require.NotNil(t, wrapped)
	assert.Equal(t, Repository, wrapped.Category)
	assert.Equal(t, "refs unreadable", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "context"))
}

func TestWrapWithMessage(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := WrapWithMessage(cause, Runtime, "creating tag")

	assert.Equal(t, "creating tag: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewArgumentError("bad flag")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
}

func TestFormatErrorPlain(t *testing.T) {
	err := &CLIError{
		Category:    Configuration,
		Message:     "remote must not be empty",
		Usage:       "relver release [flags]",
		Remediation: []string{"set 'remote' in .relver/config.yml", "or export RELVER_REMOTE"},
	}

	out := FormatErrorPlain(err)
	assert.Contains(t, out, "Error [Configuration Error]: remote must not be empty")
	assert.Contains(t, out, "Usage: relver release [flags]")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "  • set 'remote' in .relver/config.yml")
	assert.NotContains(t, out, "\x1b[")
}

func TestFormatError_Nil(t *testing.T) {
	assert.Empty(t, FormatError(nil))
	assert.Empty(t, FormatErrorPlain(nil))
}
