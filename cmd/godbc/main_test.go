package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	powertrain = "../../testdata/networks/powertrain.dbc"
	body       = "../../testdata/networks/body.dbc"
	brakes     = "../../testdata/networks/chassis/brakes.dbc"
	broken     = "../../testdata/broken.dbc"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     int
		stdout   []string
		stderr   string
		noStdout bool
	}{
		{
			name:   "complete",
			args:   []string{"parse", powertrain},
			code:   exitOK,
			stdout: []string{`version "1.0", 3 nodes, 2 messages, 4 signals, 5 comments, 3 attributes`},
		},
		{
			name:   "incomplete",
			args:   []string{"parse", brakes},
			code:   exitWarning,
			stdout: []string{"1 messages, 2 signals", "incomplete at line 10, col 1", "cause: "},
		},
		{
			name:     "syntax error",
			args:     []string{"parse", broken},
			code:     exitError,
			stderr:   "error: ",
			noStdout: true,
		},
		{
			name:   "worst exit code wins",
			args:   []string{"parse", body, brakes, powertrain},
			code:   exitWarning,
			stdout: []string{"body 2.3", "powertrain.dbc"},
		},
		{
			name:   "missing file",
			args:   []string{"parse", "testdata/missing.dbc"},
			code:   exitError,
			stderr: "missing.dbc",
		},
		{
			name:   "no arguments",
			args:   []string{"parse"},
			code:   exitError,
			stderr: "requires at least 1 arg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			require.Equal(t, tt.code, code, "stderr: %s", stderr)
			for _, want := range tt.stdout {
				require.Contains(t, stdout, want)
			}
			if tt.stderr != "" {
				require.Contains(t, stderr, tt.stderr)
			}
			if tt.noStdout {
				require.Empty(t, stdout)
			}
		})
	}
}

func TestDumpJSON(t *testing.T) {
	code, stdout, stderr := runCLI(t, "dump", powertrain)
	require.Equal(t, exitOK, code, stderr)

	var out DumpOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, "1.0", out.Version)
	require.Equal(t, []string{"ECU1", "ECU2", "Dash"}, out.Nodes)
	require.Equal(t, []uint64{500, 250}, out.BitTiming)
	require.Len(t, out.Messages, 2)
	require.Equal(t, "Engine", out.Messages[0].Name)
	require.Equal(t, []string{"Dash", "ECU2"}, out.Messages[0].Signals[0].Receivers)
	require.True(t, out.Messages[1].Extended)
	require.Equal(t, "M", out.Messages[1].Signals[0].Multiplex)
	require.Equal(t, "m1", out.Messages[1].Signals[1].Multiplex)
	require.NotNil(t, out.SignalGroups)
	require.Equal(t, "Powertrain", out.SignalGroups.Name)
	require.Equal(t, "DUMMY_NODE_VECTOR3", out.EnvironmentVariables[0].AccessType)
}

func TestDumpCompactAndYAML(t *testing.T) {
	code, compact, _ := runCLI(t, "dump", "--compact", body)
	require.Equal(t, exitOK, code)
	require.Equal(t, 1, bytes.Count([]byte(compact), []byte("\n")))

	code, stdout, stderr := runCLI(t, "dump", "--format", "yaml", body)
	require.Equal(t, exitOK, code, stderr)
	var out DumpOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	require.Equal(t, "body 2.3", out.Version)
	require.Len(t, out.Messages, 1)
	require.Equal(t, "Doors", out.Messages[0].Name)
	require.Len(t, out.ValueDescriptions[0].Pairs, 2)

	code, _, stderr = runCLI(t, "dump", "--format", "xml", body)
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, `unknown format "xml"`)
}

func TestDumpIncompleteWarns(t *testing.T) {
	code, stdout, stderr := runCLI(t, "dump", brakes)
	require.Equal(t, exitOK, code)
	require.Contains(t, stderr, "warning: ")
	require.Contains(t, stdout, `"Wheels"`)
}

func TestMessagesCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "messages", powertrain)
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "Engine")
	require.Contains(t, stdout, "Gearbox")
	require.Contains(t, stdout, "engine frame")

	code, stdout, _ = runCLI(t, "messages", "--match", "Eng*", powertrain)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "Engine")
	require.NotContains(t, stdout, "Gearbox")

	code, _, stderr = runCLI(t, "messages", "--match", "[", powertrain)
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "invalid pattern")
}

func TestSignalsCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "signals", "--message", "Engine", powertrain)
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "Speed")
	require.Contains(t, stdout, "Temp")
	require.NotContains(t, stdout, "Gear ")

	code, stdout, _ = runCLI(t, "signals", "--message", "2147484160", "-m", "G*", powertrain)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "Gear")
	require.NotContains(t, stdout, "Mode")

	code, _, stderr = runCLI(t, "signals", "--message", "Nope", powertrain)
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, `message "Nope" not found`)
}

func TestLintCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "lint", body)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "no issues found")

	code, stdout, _ = runCLI(t, "lint", powertrain)
	require.Equal(t, exitError, code)
	require.Contains(t, stdout, "powertrain.dbc:39:")
	require.Contains(t, stdout, "error [unknown-message] unknown message 512")
	require.Contains(t, stdout, "1 issue(s), 1 error")

	code, _, _ = runCLI(t, "lint", "--ignore", "unknown-*", powertrain)
	require.Equal(t, exitOK, code)

	code, stdout, _ = runCLI(t, "lint", "--strict", "--ignore", "unknown-message", powertrain)
	require.Equal(t, exitWarning, code)
	require.Contains(t, stdout, "[unknown-symbol]")
}

func TestLintJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "lint", "--format", "json", powertrain, body)
	require.Equal(t, exitError, code)

	var result lintResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Equal(t, 1, result.Summary.Total)
	require.Equal(t, 2, result.Summary.Files)
	require.Equal(t, "unknown-message", result.Diagnostics[0].Code)
	require.Equal(t, powertrain, result.Diagnostics[0].File)
}

func TestLintFlagsFromEnvironment(t *testing.T) {
	t.Setenv("GODBC_LINT_IGNORE", "unknown-message")
	code, stdout, _ := runCLI(t, "lint", powertrain)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "no issues found")
}

func TestGlobalFlagFromEnvironment(t *testing.T) {
	t.Setenv("GODBC_VERBOSE", "1")
	code, _, stderr := runCLI(t, "parse", body)
	require.Equal(t, exitOK, code)
	require.Contains(t, stderr, "level=DEBUG")
}

func TestDiffCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "diff", body, body)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "documents are identical")

	code, stdout, _ = runCLI(t, "diff", powertrain, body)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "--- "+powertrain)
	require.Contains(t, stdout, `-  "version": "1.0",`)
	require.Contains(t, stdout, `+  "version": "body 2.3",`)

	code, _, _ = runCLI(t, "diff", "--exit-code", powertrain, body)
	require.Equal(t, exitError, code)
}

func TestExportCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "networks.db")
	code, stdout, stderr := runCLI(t, "export", "--db", db, powertrain, body)
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "exported powertrain as document 1")
	require.Contains(t, stdout, "exported body as document 2")

	code, _, stderr = runCLI(t, "export", powertrain)
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "no database specified")
}

func TestVersionAndUnknownCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, "godbc ")

	code, _, stderr := runCLI(t, "frobnicate")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "unknown command")
}

func TestDocumentName(t *testing.T) {
	require.Equal(t, "powertrain", documentName("a/b/powertrain.dbc"))
	require.Equal(t, "net", documentName("net"))
}
