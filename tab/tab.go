package tab

import (
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/pattern"
	"github.com/jsphweid/tabscore/rhythm"
	"github.com/jsphweid/tabscore/util"
)

type options struct {
	velocity        []rune
	velocityLibrary model.SymbolTable
	hasVelocity     bool
}

type Option func(*options)

// WithVelocity reads a velocity pattern alongside the note pattern. The
// symbol at each note's first position is looked up in vLibrary.
func WithVelocity(vPattern string, vLibrary model.SymbolTable) Option {
	return func(o *options) {
		if vPattern == "" {
			return
		}
		o.velocity = []rune(vPattern)
		o.velocityLibrary = vLibrary
		o.hasVelocity = true
	}
}

// Compile converts a rhythm, a pattern and a symbol table into note events.
//
// To create 'c' and 'd' quarter notes on beats 1 and 3:
//
//	rhythm  = "1234"
//	pattern = "0.1."
//	library = {"0": c4, "1": d4}
func Compile(r, p string, library model.SymbolTable, opts ...Option) ([]model.NoteEvent, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	compiled, err := rhythm.Compile(r)
	if err != nil {
		return nil, err
	}
	runs, err := pattern.Compile(p)
	if err != nil {
		return nil, err
	}

	totals := compiled.Totals
	pos := 0
	var res []model.NoteEvent
	for _, run := range runs {
		if run.IsRest() {
			pos += run.Count
			continue
		}

		values, ok := library[run.Symbol]
		if !ok {
			return nil, model.NewError(model.MissingLibraryEntry, p, "library has no note or chord for %q", run.Symbol)
		}
		if pos+run.Count > len(totals) {
			return nil, model.NewError(model.IndexOutOfRange, p,
				"pattern needs %d rhythm positions, rhythm %q has %d", pos+run.Count, r, len(totals))
		}

		dynamics, err := o.dynamicsAt(pos)
		if err != nil {
			return nil, err
		}

		start := 0.0
		if pos > 0 {
			start = totals[pos-1]
		}
		end := totals[pos+run.Count-1]
		for _, v := range values {
			res = append(res, model.NoteEvent{
				Value:    v,
				Start:    start,
				Length:   end - start,
				Dynamics: dynamics,
			})
		}
		pos += run.Count
	}
	return res, nil
}

func (o *options) dynamicsAt(pos int) (*model.Dynamics, error) {
	if !o.hasVelocity || pos >= len(o.velocity) {
		return nil, nil
	}
	c := o.velocity[pos]
	if c == ' ' || c == pattern.Rest || c == pattern.Continuation {
		return nil, nil
	}
	values, ok := o.velocityLibrary[string(c)]
	if !ok || len(values) == 0 {
		return nil, model.NewError(model.MissingLibraryEntry, string(o.velocity), "velocity library has no entry for %q", c)
	}
	return ToDynamics(values[0]), nil
}

// ToDynamics interprets a velocity library value. A number is a MIDI
// velocity; a technique may carry v, dbfs and intensity fields.
func ToDynamics(v model.Value) *model.Dynamics {
	d := &model.Dynamics{}
	switch v.Kind {
	case model.KindNote:
		d.Velocity = v.Note
	case model.KindTechnique:
		if n, ok := util.Number(v.Technique["v"]); ok {
			d.Velocity = int(n)
		}
		if n, ok := util.Number(v.Technique["dbfs"]); ok {
			d.DBFS = &n
		}
		if n, ok := util.Number(v.Technique["intensity"]); ok {
			d.Intensity = &n
		}
	}
	return d
}
