package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"geiger.workspace.toml": "root = \"demo 1.0.0\"\n[[package]]\nid = \"demo 1.0.0\"\nname = \"demo\"\nversion = \"1.0.0\"\npath = \".\"\n",
		"src/lib.rs":            "pub unsafe fn raw() {}\n\n#[cfg(test)]\nmod tests {\n    #[test]\n    fn t() { unsafe { super::raw() } }\n}\n",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return filepath.Join(root, "geiger.workspace.toml")
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand("1.2.3")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "geiger v1.2.3\n", out)
}

func TestScanCommand(t *testing.T) {
	manifest := writeWorkspace(t)

	out, stderr, err := execute(t, "scan", manifest, "--format", "ascii", "--no-color", "--no-legend")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "1/1        0/0"), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "!  demo 1.0.0"), lines[0])
	assert.NotContains(t, out, "Metric output format")
	assert.NotContains(t, stderr, "WARNING")
}

func TestScanCommand_IncludeTestsAndLegend(t *testing.T) {
	manifest := writeWorkspace(t)

	out, _, err := execute(t, "scan", manifest, "--format", "ascii", "--no-color", "--include-tests")
	require.NoError(t, err)
	assert.Contains(t, out, "Metric output format: x/y")
	assert.Contains(t, out, "1/1        1/1")
}

func TestScanCommand_Metrics(t *testing.T) {
	manifest := writeWorkspace(t)

	_, stderr, err := execute(t, "scan", manifest, "--no-color", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, "geiger_files_scanned_total")
}

func TestScanCommand_Errors(t *testing.T) {
	manifest := writeWorkspace(t)

	_, _, err := execute(t, "scan", manifest, "--format", "yaml")
	assert.Error(t, err)

	_, _, err = execute(t, "scan", manifest, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, _, err = execute(t, "scan", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestScanCommand_ConfigFile(t *testing.T) {
	manifest := writeWorkspace(t)
	cfgPath := filepath.Join(t.TempDir(), "geiger.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("manifest = \""+filepath.ToSlash(manifest)+"\"\n[output]\nformat = \"github-markdown\"\nlegend = false\n"), 0o644))

	out, _, err := execute(t, "scan", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, ":radioactive: demo 1.0.0")
}
