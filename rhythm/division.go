package rhythm

import (
	"unicode/utf8"

	"github.com/jsphweid/tabscore/model"
)

const (
	Whole        = 1.0
	Half         = 1.0 / 2
	Quarter      = 1.0 / 4
	Eighth       = 1.0 / 8
	Sixteenth    = 1.0 / 16
	ThirtySecond = 1.0 / 32
)

func isEmpty(c rune) bool {
	return c == ' ' || c == '.'
}

// division reports the fraction of a whole note implied by c, and whether c
// is a rhythm character at all.
func division(c rune) (float64, bool) {
	switch {
	case isEmpty(c):
		return 0, true
	case c >= '0' && c <= '9':
		return Quarter, true
	case c == '+':
		return Eighth, true
	case c == 'a' || c == 'e':
		return Sixteenth, true
	case c == 't':
		return ThirtySecond, true
	case c == 'w':
		return Whole, true
	case c == 'h':
		return Half, true
	}
	return 0, false
}

// Division returns the duration implied by a single rhythm character.
func Division(char string) (float64, error) {
	if utf8.RuneCountInString(char) != 1 {
		return 0, model.NewError(model.MalformedRhythm, char, "division must be a string of length 1")
	}
	c, _ := utf8.DecodeRuneInString(char)
	amount, ok := division(c)
	if !ok {
		return 0, model.NewError(model.MalformedRhythm, char, "no division for %q character", c)
	}
	return amount, nil
}
