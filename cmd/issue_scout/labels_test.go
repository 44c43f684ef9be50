package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels_ListsBuiltinMappings(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "labels", "--data-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Builtin Mappings")
	assert.Contains(t, string(output), "rust-lang/rust")
}

func TestLabelAddAndShow(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()

	add := exec.Command(binaryPath, "label-add", "acme/tool", "advanced", "needs-expert", "--data-dir", dataDir)
	output, err := add.CombinedOutput()
	require.NoError(t, err, string(output))

	show := exec.Command(binaryPath, "label-show", "acme/tool", "--data-dir", dataDir)
	output, err = show.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "needs-expert")
}

func TestLabelAdd_InvalidLevel(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "label-add", "acme/tool", "expert", "some-label", "--data-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid skill level")
}

func TestLabelDelete_BuiltinOnlyRepo(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "label-delete", "rust-lang/rust", "--data-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "label-import")
}
