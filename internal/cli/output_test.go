package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	plain := NewExitError(ExitFailure, "scenarios failed")
	assert.Equal(t, "scenarios failed", plain.Error())
	assert.Equal(t, ExitFailure, GetExitCode(plain))

	inner := errors.New("no such file")
	wrapped := WrapExitError(ExitCommandError, "opening evaluation log", inner)
	assert.Equal(t, "opening evaluation log: no such file", wrapped.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, inner)

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))

	indirect := fmt.Errorf("outer: %w", plain)
	assert.Equal(t, ExitFailure, GetExitCode(indirect))
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]string{"verdict": "proper"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_SuccessText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(EvalResult{
		Observable: "Z", Eigenvalue: "1", Context: "ZBasis",
		Verdict: "proper", Size: "1", Seq: 1,
	}))
	assert.Equal(t, "Z(1) in ZBasis: proper (size 1)\n", buf.String())
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error("LOAD_NOT_FOUND", "definitions directory not found", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "LOAD_NOT_FOUND", resp.Error.Code)
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag}
	quiet.VerboseLog("hidden")
	assert.Empty(t, diag.String())

	verbose := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: true}
	verbose.VerboseLog("read %d record(s)", 3)
	assert.Equal(t, "read 3 record(s)\n", diag.String())
	assert.Empty(t, out.String(), "diagnostics must not corrupt JSON output")
}

func TestRootCommand_RejectsUnknownFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "validate", "testdata/definitions"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}
