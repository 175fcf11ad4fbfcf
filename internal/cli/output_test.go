package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/liz/internal/engine"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error("CONFIG", "invalid config", []string{"interval_ms"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFIG", resp.Error.Code)
	assert.Equal(t, "invalid config", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error("CONFIG", "invalid config", "hidden"))
	assert.Contains(t, buf.String(), "Error [CONFIG]: invalid config")
	assert.NotContains(t, buf.String(), "Details:")

	buf.Reset()
	formatter.Verbose = true
	require.NoError(t, formatter.Error("CONFIG", "invalid config", "shown"))
	assert.Contains(t, buf.String(), "Details: shown")
}

func TestOutputFormatter_ResponseJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	resp := engine.Response{Code: engine.OK, Results: []string{`{"id":"x","sc":"<b>copy</b>"}`}}
	require.NoError(t, formatter.Response(resp))

	assert.Contains(t, buf.String(), "<b>copy</b>")
	var decoded engine.Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, resp, decoded)
}

func TestOutputFormatter_ResponseText(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Response(engine.Response{Code: engine.FAIL, Results: []string{"i/o error", "/tmp/x"}}))
	assert.Contains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "  i/o error\n")
	assert.Contains(t, buf.String(), "  /tmp/x\n")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Loaded %s", "rhythm.toml")

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Contains(t, errOut.String(), "Loaded rhythm.toml")
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeFor(engine.OK))
	assert.Equal(t, ExitFailure, ExitCodeFor(engine.FAIL))
	assert.Equal(t, ExitCommandError, ExitCodeFor(engine.BUG))

	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestExitError_Wrap(t *testing.T) {
	base := errors.New("disk full")
	err := WrapExitError(ExitFailure, "failed to write", base)
	assert.Equal(t, "failed to write: disk full", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestResponseError(t *testing.T) {
	assert.NoError(t, responseError("list", engine.Response{Code: engine.OK, Results: []string{}}))

	err := responseError("detail", engine.Response{Code: engine.BUG, Results: []string{"UNKNOWN_ID: no shortcut"}})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "detail answered BUG")
	assert.Contains(t, err.Error(), "UNKNOWN_ID")

	err = responseError("import", engine.Response{Code: engine.FAIL, Results: []string{}})
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
