package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarikhrnjica/cstar/internal/compiler"
)

func runValidateCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestValidate_ValidDefinitions(t *testing.T) {
	buf, err := runValidateCommand(t, "text", "testdata/definitions")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Definitions are valid.")
}

func TestValidate_ValidDefinitionsJSON(t *testing.T) {
	buf, err := runValidateCommand(t, "json", "testdata/definitions")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Empty(t, resp.Data.Errors)
}

func TestValidate_BrokenDefinitions(t *testing.T) {
	buf, err := runValidateCommand(t, "json", "testdata/invalid")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 2)

	codes := make(map[string]bool)
	for _, e := range resp.Data.Errors {
		codes[e.Code] = true
	}
	assert.True(t, codes[compiler.ErrNotHermitian])
	assert.True(t, codes[compiler.ErrUnknownMember])
}

func TestValidate_MissingDirectory(t *testing.T) {
	buf, err := runValidateCommand(t, "text", "testdata/absent")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), compiler.ErrCodeNotFound)
}
