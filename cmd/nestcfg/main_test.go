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

const sampleConfig = `a=1
[e]
ea=1
[[d]]
da=3.0
db={3,4,5}
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.conf")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))
	return path
}

func TestRunCheck(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"check", path}, &stdout, &stderr)
	assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "ok (2 sections, 4 keys)")
}

func TestRunCheckBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.conf")
	require.NoError(t, os.WriteFile(path, []byte("[a]\n[a]\n"), 0644))
	var stdout, stderr bytes.Buffer

	code := run([]string{"check", path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "line 2")
	assert.Contains(t, stderr.String(), "duplicate section")
}

func TestRunExportRoundTrip(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"export", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	want := "a=1\n\n[e]\nea=1\n\n[[d]]\nda=3.0\ndb={3,4,5}\n"
	assert.Equal(t, want, stdout.String())
}

func TestRunJSON(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"json", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	var m map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &m))
	assert.Equal(t, "1", m["a"])
	e := m["e"].(map[string]any)
	d := e["d"].(map[string]any)
	assert.Equal(t, "3.0", d["da"])
}

func TestRunYAML(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"yaml", path}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "ea:")
	assert.Contains(t, stdout.String(), "da:")
}

func TestRunGet(t *testing.T) {
	path := writeSample(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"get", path, "e.d.da"}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Equal(t, "3.0\n", stdout.String())

	stdout.Reset()
	code = run([]string{"get", "-as", "float64", path, "e.d.da"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Equal(t, "3\n", stdout.String())

	stdout.Reset()
	code = run([]string{"get", "-as", "int-slice", path, "e.d.db"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Equal(t, "[3 4 5]\n", stdout.String())
}

func TestRunGetMissing(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"get", path, "e.nope"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "key not found")
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"frobnicate"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown command")
}

func TestRunNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "usage:")
}

func TestRunMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.conf")
	var stdout, stderr bytes.Buffer
	code := run([]string{"check", missing}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), missing)
}

func TestCastValueUnknownType(t *testing.T) {
	_, err := castValue("complex128", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cast type")
}

func TestResolveValueErrors(t *testing.T) {
	path := writeSample(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"get", path, "nosuch.key"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(stderr.String(), "section not found"),
		"stderr: %s", stderr.String())
}
