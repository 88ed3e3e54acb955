package rhythm

import (
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/util"
)

// Advances converts each rhythm character to a duration. A subdivision
// shorter than a half note narrows to the next non-empty character's
// division, so "1+2+" reads as four eighths. Empty characters (' ' and '.')
// advance by zero and are later tied into the preceding segment.
func Advances(rhythm string) ([]float64, error) {
	chars := []rune(rhythm)
	divs := make([]float64, len(chars))
	for i, c := range chars {
		amount, ok := division(c)
		if !ok {
			return nil, model.NewError(model.MalformedRhythm, rhythm, "no division for %q character", c)
		}
		divs[i] = amount
	}

	res := make([]float64, len(chars))
	for i, amount := range divs {
		if amount > 0 && amount < Half {
			for j := i + 1; j < len(chars); j++ {
				if !isEmpty(chars[j]) {
					amount = util.Min(amount, divs[j])
					break
				}
			}
		}
		res[i] = amount
	}
	return res, nil
}

// Segments groups advances into runs that start on a nonzero value and
// absorb the zeros that follow it.
//
//	in  - [1,0,0,0,2,0]
//	out - [[1,0,0,0], [2,0]]
//
// Zeros before the first nonzero value belong to no segment.
func Segments(advances []float64) [][]float64 {
	var starts []int
	for i, v := range advances {
		if v != 0 {
			starts = append(starts, i)
		}
	}

	segments := make([][]float64, 0, len(starts))
	for i, start := range starts {
		end := len(advances)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		segments = append(segments, advances[start:end])
	}
	return segments
}

// SegmentStarts returns the elapsed time at the beginning of each segment.
// It sums raw advances, before they are spread across tied slots, which
// accumulates less floating point error.
func SegmentStarts(advances []float64) []float64 {
	var res []float64
	var acc float64
	for _, v := range advances {
		if v == 0 {
			continue
		}
		res = append(res, acc)
		acc += v
	}
	return res
}

// Compile turns a rhythm string into cumulative times and per-character
// durations, one of each per character.
func Compile(rhythm string) (model.Rhythm, error) {
	advances, err := Advances(rhythm)
	if err != nil {
		return model.Rhythm{}, err
	}
	segments := Segments(advances)
	starts := SegmentStarts(advances)

	res := model.Rhythm{
		Totals: make([]float64, 0, len(advances)),
		Deltas: make([]float64, 0, len(advances)),
	}

	// leading empty slots take no time
	lead := len(advances)
	for i, v := range advances {
		if v != 0 {
			lead = i
			break
		}
	}
	for i := 0; i < lead; i++ {
		res.Totals = append(res.Totals, 0)
		res.Deltas = append(res.Deltas, 0)
	}

	for j, segment := range segments {
		total := segment[0]
		n := float64(len(segment))
		for k := range segment {
			res.Totals = append(res.Totals, float64(k+1)*total/n+starts[j])
			res.Deltas = append(res.Deltas, total/n)
		}
	}
	return res, nil
}

// Elapsed is the running sum of the advances, without spreading segments
// across their tied slots.
func Elapsed(rhythm string) ([]float64, error) {
	advances, err := Advances(rhythm)
	if err != nil {
		return nil, err
	}
	res := make([]float64, len(advances))
	var acc float64
	for i, v := range advances {
		acc += v
		res[i] = acc
	}
	return res, nil
}

// Duration is the total length of a rhythm in whole notes.
func Duration(rhythm string) (float64, error) {
	r, err := Compile(rhythm)
	if err != nil {
		return 0, err
	}
	return r.Duration(), nil
}
