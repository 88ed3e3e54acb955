package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, GetKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}

func TestMinMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.125, Min(0.25, 0.125))
	assert.Equal(0.25, Max(0.25, 0.125))
	assert.Equal(3, Max(3, 3))
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{uint64(60), 60, true},
		{int(-3), -3, true},
		{float32(0.5), 0.5, true},
		{1.25, 1.25, true},
		{"60", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := Number(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}

func TestGatherAllScorePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.json", "notes.txt", filepath.Join("sub", "c.yml")} {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
		assert.NoError(t, os.WriteFile(path, []byte("x: y"), 0666))
	}

	assert := assert.New(t)
	paths, err := GatherAllScorePaths(dir, 0)
	assert.NoError(err)
	assert.Equal([]string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "sub", "c.yml"),
	}, paths)

	paths, err = GatherAllScorePaths(dir, 1)
	assert.NoError(err)
	assert.Len(paths, 1)

	_, err = GatherAllScorePaths(filepath.Join(dir, "missing"), 0)
	assert.Error(err)
}

func TestRecreateOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	assert.NoError(t, os.MkdirAll(dir, 0777))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "old.yaml"), nil, 0666))

	assert.NoError(t, RecreateOutputDir(dir))
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOutput(t *testing.T) {
	v := struct {
		Name  string  `json:"name" yaml:"name"`
		Start float64 `json:"start" yaml:"start"`
	}{"kick", 0.5}

	assert := assert.New(t)
	var buf bytes.Buffer
	assert.NoError(Output(&buf, v, FormatYAML))
	assert.Equal("name: kick\nstart: 0.5\n", buf.String())

	buf.Reset()
	assert.NoError(Output(&buf, v, FormatJSON))
	assert.JSONEq(`{"name": "kick", "start": 0.5}`, buf.String())

	assert.Error(Output(&buf, v, Format("toml")))
}
