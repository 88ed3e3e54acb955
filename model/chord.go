package model

// Chord is a group of notes sharing a start time within a clip.
type Chord struct {
	// absolute, in whole notes
	Offset float64
	Notes  []uint8
}

type TrackSummary struct {
	Name     string   `json:"name" yaml:"name"`
	NumClips int      `json:"numClips" yaml:"numClips"`
	NumNotes int      `json:"numNotes" yaml:"numNotes"`
	Start    float64  `json:"start" yaml:"start"`
	End      float64  `json:"end" yaml:"end"`
	Chords   []string `json:"chords" yaml:"chords"`
}
