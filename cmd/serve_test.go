package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/tabscore/model"
	"github.com/stretchr/testify/assert"
)

func TestRequestBodyLimit(t *testing.T) {
	big := `{"input": "` + strings.Repeat("1", maxBodyBytes) + `"}`
	for _, path := range []string{"/compile", "/rhythm", "/pattern"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(big))
			w := httptest.NewRecorder()
			NewRouter().ServeHTTP(w, req)

			var res model.ErrorResponse
			err := json.NewDecoder(w.Result().Body).Decode(&res)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(http.StatusBadRequest, w.Code)
			assert.NotEmpty(res.Error)
		})
	}
}

func TestHandleRhythm(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/rhythm", strings.NewReader(`{"input": "1234"}`))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)

	var res model.Rhythm
	err := json.NewDecoder(w.Result().Body).Decode(&res)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal([]float64{0.25, 0.5, 0.75, 1}, res.Totals)
}
