package score

import "github.com/jsphweid/tabscore/model"

// Accumulator collects clips per track while a score compiles. It only
// grows, and one must never be shared between concurrent compiles. The zero
// value is ready to use.
type Accumulator struct {
	tracks model.Tracks
	index  map[string]*model.Track
}

func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]*model.Track)}
}

// Append adds clip to the named track, creating the track on first use.
func (a *Accumulator) Append(track string, clip model.Clip) {
	if a.index == nil {
		a.index = make(map[string]*model.Track)
	}
	t, ok := a.index[track]
	if !ok {
		t = &model.Track{Name: track}
		a.index[track] = t
		a.tracks = append(a.tracks, t)
	}
	t.Clips = append(t.Clips, clip)
}

func (a *Accumulator) Tracks() model.Tracks {
	return a.tracks
}
