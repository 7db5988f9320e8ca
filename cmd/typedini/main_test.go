package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../testdata/valid.ini"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestDump_JSON(t *testing.T) {
	out, err := run(t, "dump", fixture, "--format", "json", "--section", "Export")
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Contains(t, doc, "Export")
	assert.NotContains(t, doc, "Paths")
	assert.Equal(t, true, doc["Export"]["enabled"])
	assert.Equal(t, float64(-42), doc["Export"]["threshold"])
	assert.Equal(t, "{not valid", doc["Export"]["broken"])
}

func TestDump_TextWithSources(t *testing.T) {
	out, err := run(t, "dump", fixture, "--sources", "--section", "Paths")
	require.NoError(t, err)

	assert.Contains(t, out, `Paths:root: "C:\\data\\exports" (source: file:valid.ini, kind: string)`)
	assert.Contains(t, out, `Paths:owner: "paths-team"`)
}

func TestDump_FormatFromEnvironment(t *testing.T) {
	t.Setenv("TYPEDINI_FORMAT", "yaml")

	out, err := run(t, "dump", fixture, "--section", "Paths")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Paths:\n"), out)
}

func TestDump_Out(t *testing.T) {
	target := filepath.Join(t.TempDir(), "dump.toml")

	out, err := run(t, "dump", fixture, "--format", "toml", "--section", "Paths", "--out", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Paths]")
	assert.Contains(t, string(data), "paths-team")
}

func TestDump_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing file",
			args: []string{"dump", "does_not_exist.ini"},
			want: "not found",
		},
		{
			name: "missing section",
			args: []string{"dump", fixture, "--section", "NoSuchSection"},
			want: "NoSuchSection",
		},
		{
			name: "bad format",
			args: []string{"dump", fixture, "--format", "xml"},
			want: "unsupported dump format",
		},
		{
			name: "bad encoding",
			args: []string{"dump", fixture, "--encoding", "no-such-charset"},
			want: "encoding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "integer",
			args: []string{"get", fixture, "Export", "threshold"},
			want: "-42\n",
		},
		{
			name: "structure",
			args: []string{"get", fixture, "Export", "sheets"},
			want: "[\"Jan\",\"Feb\"]\n",
		},
		{
			name: "missing key with default",
			args: []string{"get", fixture, "Export", "missing_key", "--default", "42"},
			want: "\"42\"\n",
		},
		{
			name: "missing key without default",
			args: []string{"get", fixture, "NoSuchSection", "x"},
			want: "null\n",
		},
		{
			name: "explicit encoding",
			args: []string{"get", fixture, "Export", "enabled", "--encoding", "windows-1252"},
			want: "true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGet_MissingFile(t *testing.T) {
	_, err := run(t, "get", "does_not_exist.ini", "Export", "enabled")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist.ini")
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"get", fixture, "Export", "enabled", "--log-level", "loud"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRootCmd_PrintsErrorsWithoutUsage(t *testing.T) {
	cmd := newRootCmd()
	assert.False(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)

	var stderr bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"get", "does_not_exist.ini", "Export", "enabled", "--log-level", "error"})

	require.Error(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "Error: ")
	assert.NotContains(t, stderr.String(), "Usage:")
}
