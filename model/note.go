package model

// ValueKind tags what a symbol table value refers to.
type ValueKind int

const (
	// KindNote is a MIDI note number.
	KindNote ValueKind = iota + 1
	// KindPitch is a pitch name such as "c4". Resolving it is left to the consumer.
	KindPitch
	// KindTechnique is an opaque event, e.g. {type: file, path: kick.wav}.
	KindTechnique
)

// Value is one element of a symbol table entry.
type Value struct {
	Kind      ValueKind      `json:"kind" yaml:"kind" msgpack:"kind"`
	Note      int            `json:"n,omitempty" yaml:"n,omitempty" msgpack:"n,omitempty"`
	Pitch     string         `json:"p,omitempty" yaml:"p,omitempty" msgpack:"p,omitempty"`
	Technique map[string]any `json:"e,omitempty" yaml:"e,omitempty" msgpack:"e,omitempty"`
}

func NoteValue(n int) Value     { return Value{Kind: KindNote, Note: n} }
func PitchValue(p string) Value { return Value{Kind: KindPitch, Pitch: p} }
func TechniqueValue(e map[string]any) Value {
	return Value{Kind: KindTechnique, Technique: e}
}

// TechniqueType returns the "type" field of a technique value, if any.
func (v Value) TechniqueType() string {
	if v.Kind != KindTechnique {
		return ""
	}
	s, _ := v.Technique["type"].(string)
	return s
}

// SymbolTable maps a single character to one value, or to several (a chord).
type SymbolTable = map[string][]Value

// Dynamics is a performance marking taken from a velocity table.
type Dynamics struct {
	Velocity  int      `json:"v,omitempty" yaml:"v,omitempty" msgpack:"v,omitempty"`
	DBFS      *float64 `json:"dbfs,omitempty" yaml:"dbfs,omitempty" msgpack:"dbfs,omitempty"`
	Intensity *float64 `json:"intensity,omitempty" yaml:"intensity,omitempty" msgpack:"intensity,omitempty"`
}

// NoteEvent is a timed event inside a clip. Start is relative to the clip;
// Start and Length are in whole notes.
type NoteEvent struct {
	Value    Value     `json:"value" yaml:"value" msgpack:"value"`
	Start    float64   `json:"s" yaml:"s" msgpack:"s"`
	Length   float64   `json:"l" yaml:"l" msgpack:"l"`
	Dynamics *Dynamics `json:"d,omitempty" yaml:"d,omitempty" msgpack:"d,omitempty"`
}

// End is Start + Length.
func (n NoteEvent) End() float64 {
	return n.Start + n.Length
}

// SymbolRun is a pattern symbol and the number of slots it occupies.
type SymbolRun struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Count  int    `json:"count" yaml:"count"`
}

// RestSymbol is the symbol used for rest runs.
const RestSymbol = "."

func (r SymbolRun) IsRest() bool {
	return r.Symbol == RestSymbol
}

// Rhythm is a compiled rhythm string: the cumulative time at the end of each
// character, and each character's duration.
type Rhythm struct {
	Totals []float64 `json:"totals" yaml:"totals"`
	Deltas []float64 `json:"deltas" yaml:"deltas"`
}

// Duration is the rhythm's total length in whole notes.
func (r Rhythm) Duration() float64 {
	if len(r.Totals) == 0 {
		return 0
	}
	return r.Totals[len(r.Totals)-1]
}

// PitchResolver maps pitch names to MIDI note numbers. Pitch spelling is
// owned by the caller; this module never interprets names itself.
type PitchResolver interface {
	Resolve(pitch string) (int, bool)
}

// PitchMap is a PitchResolver backed by a fixed table.
type PitchMap map[string]int

func (m PitchMap) Resolve(pitch string) (int, bool) {
	n, ok := m[pitch]
	return n, ok
}

// NoteNumber returns the MIDI note number of v, resolving pitch names
// through r when it is not nil.
func NoteNumber(v Value, r PitchResolver) (int, bool) {
	switch v.Kind {
	case KindNote:
		return v.Note, true
	case KindPitch:
		if r == nil {
			return 0, false
		}
		return r.Resolve(v.Pitch)
	}
	return 0, false
}
