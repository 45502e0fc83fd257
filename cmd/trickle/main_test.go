package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" flag makes cli.Parse report a clean exit.
	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidWorkflow(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		task "print" "a" {
			arguments {
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600))

	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-log-level", "error", filePath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading workflow")
}

func TestRun_ResolvesWorkflow(t *testing.T) {
	t.Parallel()

	workflow := `
param "who" {
  default = "world"
}

task "print" "greet" {
  arguments {
    value = param.who
  }
}
`
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "main.hcl"), []byte(workflow), 0600))

	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-log-level", "error", "-param", "who=gopher", tempDir})

	require.NoError(t, err)
	assert.Equal(t, "\"gopher\"\n", out.String())
}
