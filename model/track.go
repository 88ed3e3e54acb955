package model

// Clip is a timed container of events on one track. StartTime and Duration
// are in whole notes.
type Clip struct {
	Notes     []NoteEvent `json:"notes" yaml:"notes" msgpack:"notes"`
	StartTime float64     `json:"startTime" yaml:"startTime" msgpack:"startTime"`
	Duration  float64     `json:"duration" yaml:"duration" msgpack:"duration"`
}

// End is StartTime + Duration.
func (c Clip) End() float64 {
	return c.StartTime + c.Duration
}

type Track struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Clips []Clip `json:"clips" yaml:"clips" msgpack:"clips"`
}

// Tracks is the compiled track map. Order is the order in which tracks first
// received a clip, which follows document order of the score.
type Tracks []*Track

// Get returns the named track, or nil.
func (ts Tracks) Get(name string) *Track {
	for _, t := range ts {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (ts Tracks) Names() []string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Name)
	}
	return names
}

// Region records where one node of a score tree landed. Sequences hold one
// region per child in order, parallel nodes one per entry, and clips none.
type Region struct {
	Kind      string   `json:"kind" yaml:"kind" msgpack:"kind"`
	Track     string   `json:"track,omitempty" yaml:"track,omitempty" msgpack:"track,omitempty"`
	StartTime float64  `json:"startTime" yaml:"startTime" msgpack:"startTime"`
	Duration  float64  `json:"duration" yaml:"duration" msgpack:"duration"`
	Regions   []Region `json:"regions,omitempty" yaml:"regions,omitempty" msgpack:"regions,omitempty"`
}

// End is StartTime + Duration.
func (r Region) End() float64 {
	return r.StartTime + r.Duration
}

// Score is the result of compiling a score tree.
type Score struct {
	StartTime float64 `json:"startTime" yaml:"startTime" msgpack:"startTime"`
	Duration  float64 `json:"duration" yaml:"duration" msgpack:"duration"`
	Tracks    Tracks  `json:"tracks" yaml:"tracks" msgpack:"tracks"`
	// Arrangement mirrors the score tree with the time span of every node.
	Arrangement Region `json:"arrangement" yaml:"arrangement" msgpack:"arrangement"`
}
