package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/tabscore/engine"
	"github.com/jsphweid/tabscore/midi"
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/score"
	"github.com/stretchr/testify/assert"
)

const doc = `
r: "1+2+"
nLibrary: {k: 36, s: 38}
drums: k.s.
`

func TestCompileScore(t *testing.T) {
	s, err := CompileScore([]byte(doc), score.Config{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"drums"}, s.Tracks.Names())
	assert.InDelta(0.5, s.Duration, 1e-9)

	_, err = CompileScore([]byte("r: '1+'\nnLibrary: {k: 36}\ndrums: kz"), score.Config{})
	assert.ErrorIs(err, model.ErrMissingLibraryEntry)
}

func TestExport(t *testing.T) {
	s, err := CompileScore([]byte(doc), score.Config{})
	assert := assert.New(t)
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(Export(&buf, s, "midi", nil))
	parsed, err := midi.Read(&buf)
	assert.NoError(err)
	// tempo track plus drums
	assert.Len(parsed.Tracks, 2)

	buf.Reset()
	assert.NoError(Export(&buf, s, "engine", nil))
	batch, err := engine.Decode(buf.Bytes())
	assert.NoError(err)
	assert.Equal(engine.AddrTrackSelect, batch.Messages[0].Address)

	buf.Reset()
	assert.NoError(Export(&buf, s, "edit", nil))
	assert.Contains(buf.String(), `<TRACK name="drums"`)

	assert.Error(Export(&buf, s, "wav", nil))
}

func TestLoadReportScoreFromMidi(t *testing.T) {
	s, err := CompileScore([]byte(doc), score.Config{})
	assert := assert.New(t)
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(Export(&buf, s, "midi", nil))
	path := filepath.Join(t.TempDir(), "drums.mid")
	assert.NoError(os.WriteFile(path, buf.Bytes(), 0666))

	loaded, err := loadReportScore(path)
	assert.NoError(err)
	assert.Equal([]string{"drums"}, loaded.Tracks.Names())
	assert.InDelta(0.375, loaded.Duration, 1e-9)
	assert.Len(loaded.Tracks.Get("drums").Clips[0].Notes, 2)
}
