package pattern

import (
	"strings"

	"github.com/jsphweid/tabscore/model"
)

const (
	Rest         = '.'
	Continuation = '-'
)

// Compile converts a pattern into symbol runs. Every new symbol starts a run
// and each following '-' extends it; consecutive rests share one run.
//
//	pattern: "a-1-bb..."
//	runs:    [a 2] [1 2] [b 1] [b 1] [. 3]
//
// The counts always add up to the pattern length.
func Compile(pattern string) ([]model.SymbolRun, error) {
	chars := []rune(strings.ReplaceAll(pattern, " ", string(Rest)))
	if len(chars) == 0 {
		return nil, nil
	}
	if chars[0] == Continuation {
		return nil, model.NewError(model.MalformedPattern, pattern, "begins on continuation")
	}

	var res []model.SymbolRun
	onSymbol := false
	for _, c := range chars {
		switch c {
		case Continuation:
			if !onSymbol {
				return nil, model.NewError(model.MalformedPattern, pattern, "continuation after rest")
			}
			res[len(res)-1].Count++
		case Rest:
			if onSymbol || len(res) == 0 {
				res = append(res, model.SymbolRun{Symbol: model.RestSymbol, Count: 1})
			} else {
				res[len(res)-1].Count++
			}
			onSymbol = false
		default:
			res = append(res, model.SymbolRun{Symbol: string(c), Count: 1})
			onSymbol = true
		}
	}
	return res, nil
}
