//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/tabscore/cmd"
	"github.com/jsphweid/tabscore/model"
	"github.com/stretchr/testify/assert"
)

const scoreDoc = `
r: "1234"
nLibrary:
  a: 60
  b: [62, 65]
lead: a.b.
bass:
  - a---
  - r: "12"
    clips: [b.]
`

func do(method, path string, body io.Reader) *http.Response {
	req := httptest.NewRequest(method, path, body)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func createInputReqBody(input string) io.Reader {
	data, err := json.Marshal(model.InputRequestBody{Input: input})
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestCompileE2E(t *testing.T) {
	resp := do(http.MethodPost, "/compile", strings.NewReader(scoreDoc))
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res model.CompileResponse
	err := json.Unmarshal(respBody, &res)
	if err != nil {
		panic(err.Error())
	}

	assert.NotEmpty(res.ID)
	assert.Equal(1.5, res.Score.Duration)
	assert.Equal([]string{"lead", "bass"}, res.Score.Tracks.Names())

	lead := res.Score.Tracks.Get("lead")
	assert.Len(lead.Clips, 1)
	assert.Equal([]model.NoteEvent{
		{Value: model.NoteValue(60), Start: 0, Length: 0.25},
		{Value: model.NoteValue(62), Start: 0.5, Length: 0.25},
		{Value: model.NoteValue(65), Start: 0.5, Length: 0.25},
	}, lead.Clips[0].Notes)

	bass := res.Score.Tracks.Get("bass")
	assert.Len(bass.Clips, 2)
	assert.Equal(0.0, bass.Clips[0].StartTime)
	assert.Equal(1.0, bass.Clips[0].Duration)
	assert.Equal(model.NoteEvent{Value: model.NoteValue(60), Start: 0, Length: 1}, bass.Clips[0].Notes[0])
	assert.Equal(1.0, bass.Clips[1].StartTime)
	assert.Equal(0.5, bass.Clips[1].Duration)
}

func TestCompileErrorE2E(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		kind string
	}{
		{"unknown rhythm character", "r: '1x'\nnLibrary: {a: 1}\nt: a.", "MalformedRhythm"},
		{"missing symbol", "r: '12'\nnLibrary: {a: 1}\nt: az", "MissingLibraryEntry"},
		{"reserved key", "r: '12'\nnLibrary: {a: 1}\nstartTime: 1\nt: a.", "ReservedKeyConflict"},
		{"no rhythm", "nLibrary: {a: 1}\nt: a.", "MissingContext"},
		{"bad node", "r: '12'\nnLibrary: {a: 1}\nt: 3", "MalformedScore"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(http.MethodPost, "/compile", strings.NewReader(tc.doc))
			var res model.ErrorResponse
			err := json.NewDecoder(resp.Body).Decode(&res)

			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(400, resp.StatusCode)
			assert.Equal(tc.kind, res.Kind)
			assert.NotEmpty(res.Error)
		})
	}
}

func TestRhythmE2E(t *testing.T) {
	resp := do(http.MethodPost, "/rhythm", createInputReqBody("1+2+"))

	var res model.Rhythm
	err := json.NewDecoder(resp.Body).Decode(&res)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(200, resp.StatusCode)
	assert.InDeltaSlice([]float64{0.125, 0.25, 0.375, 0.5}, res.Totals, 1e-9)
}

func TestPatternE2E(t *testing.T) {
	resp := do(http.MethodPost, "/pattern", createInputReqBody("a-1-bb..."))

	var res model.PatternResponse
	err := json.NewDecoder(resp.Body).Decode(&res)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(200, resp.StatusCode)
	assert.Equal([]model.SymbolRun{
		{Symbol: "a", Count: 2},
		{Symbol: "1", Count: 2},
		{Symbol: "b", Count: 1},
		{Symbol: "b", Count: 1},
		{Symbol: ".", Count: 3},
	}, res.Runs)

	resp = do(http.MethodPost, "/pattern", createInputReqBody("-xyz"))
	var errRes model.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errRes)
	assert.Equal(400, resp.StatusCode)
	assert.Equal("MalformedPattern", errRes.Kind)
}

func TestHealthE2E(t *testing.T) {
	resp := do(http.MethodGet, "/health", nil)
	assert.Equal(t, 200, resp.StatusCode)
}
