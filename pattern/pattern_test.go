package pattern

import (
	"testing"

	"github.com/jsphweid/tabscore/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func runs(pairs ...any) []model.SymbolRun {
	var res []model.SymbolRun
	for i := 0; i < len(pairs); i += 2 {
		res = append(res, model.SymbolRun{Symbol: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return res
}

func TestCompile(t *testing.T) {
	cases := []struct {
		pattern string
		want    []model.SymbolRun
	}{
		{"a-1-bb...", runs("a", 2, "1", 2, "b", 1, "b", 1, ".", 3)},
		{"0.1.", runs("0", 1, ".", 1, "1", 1, ".", 1)},
		{"0-......1-....22", runs("0", 2, ".", 6, "1", 2, ".", 4, "2", 1, "2", 1)},
		{"..k", runs(".", 2, "k", 1)},
		{"k . s ", runs("k", 1, ".", 1, "s", 1, ".", 1)},
		{"r---k-  .   k-  ", runs("r", 4, "k", 2, ".", 6, "k", 2, ".", 2)},
		{"", nil},
	}

	for _, c := range cases {
		t.Run(c.pattern, func(t *testing.T) {
			got, err := Compile(c.pattern)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(c.want, got)

			total := 0
			for _, r := range got {
				total += r.Count
			}
			assert.Equal(len([]rune(c.pattern)), total)
		})
	}
}

func TestCompileBeginsOnContinuation(t *testing.T) {
	_, err := Compile("-xyz")
	assert := assert.New(t)
	assert.True(errors.Is(err, model.ErrMalformedPattern))
	assert.Contains(err.Error(), "begins on continuation")
}

func TestCompileContinuationAfterRest(t *testing.T) {
	for _, p := range []string{"a.-", ".-", "a -"} {
		_, err := Compile(p)
		assert := assert.New(t)
		assert.True(errors.Is(err, model.ErrMalformedPattern), p)
		assert.Contains(err.Error(), "continuation after rest")
	}
}

func TestCompileUnicodeSymbols(t *testing.T) {
	got, err := Compile("é-ü")
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(runs("é", 2, "ü", 1), got)
}
