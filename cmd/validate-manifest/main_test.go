package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../pkg/game/manifest/testdata/game_manifest.json"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_ValidManifest(t *testing.T) {
	var out, errOut bytes.Buffer
	status := run([]string{fixture}, &out, &errOut)

	assert.Equal(t, 0, status, errOut.String())
	assert.Contains(t, color.ClearCode(out.String()), "ok:")
}

func TestRun_UnknownFieldRejectedUnlessLenient(t *testing.T) {
	path := writeFile(t, "m.json", `{"rooms":[{"id":"kitchen","sceneName":"Kitchen","colour":"red"}]}`)

	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{path}, &out, &out))
	assert.Contains(t, color.ClearCode(out.String()), "error:")

	out.Reset()
	assert.Equal(t, 0, run([]string{"-lenient", path}, &out, &out), out.String())
}

func TestRun_ValidationProblemsListed(t *testing.T) {
	path := writeFile(t, "m.yaml", "rooms:\n  - id: kitchen\n    sceneName: Kitchen\n  - id: kitchen\n    sceneName: Kitchen\n")

	var out bytes.Buffer
	status := run([]string{path}, &out, &out)

	assert.Equal(t, 1, status)
	assert.Contains(t, color.ClearCode(out.String()), "kitchen")
}

func TestRun_WarningsFatalWithWerror(t *testing.T) {
	path := writeFile(t, "m.json", `{"rooms":[{"id":"kitchen","sceneName":"Kitchen","items":[{"id":"note","dialogueId":"nowhere"}]}]}`)

	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{path}, &out, &out), out.String())
	assert.Contains(t, color.ClearCode(out.String()), "warning:")

	out.Reset()
	assert.Equal(t, 1, run([]string{"-werror", path}, &out, &out))
}

func TestRun_MissingFileAndUsage(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "nope.json")}, &out, &out))
	assert.Equal(t, 2, run(nil, &out, &out))
}
