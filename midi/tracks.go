package midi

import (
	"fmt"

	"github.com/jsphweid/tabscore/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Tracks converts the notes of an SMF back into tracks holding one clip
// each, timed in whole notes. Tracks without notes are left out.
func Tracks(s *smf.SMF) (model.Tracks, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric time formats are supported")
	}
	perWhole := float64(ticks.Resolution()) * 4

	var res model.Tracks
	for i, tr := range s.Tracks {
		name := fmt.Sprintf("track %d", i)
		var notes []model.NoteEvent
		// indexes into notes still waiting for their note-off, per key
		pending := make(map[uint8][]int)
		var abs uint64
		for _, ev := range tr {
			abs += uint64(ev.Delta)
			at := float64(abs) / perWhole

			var text string
			var ch, key, vel uint8
			msg := gomidi.Message(ev.Message)
			switch {
			case ev.Message.GetMetaTrackName(&text):
				name = text
			case msg.GetNoteStart(&ch, &key, &vel):
				pending[key] = append(pending[key], len(notes))
				notes = append(notes, model.NoteEvent{
					Value:    model.NoteValue(int(key)),
					Start:    at,
					Dynamics: &model.Dynamics{Velocity: int(vel)},
				})
			case msg.GetNoteEnd(&ch, &key):
				for _, idx := range pending[key] {
					notes[idx].Length = at - notes[idx].Start
				}
				delete(pending, key)
			}
		}
		if len(notes) == 0 {
			continue
		}

		var end float64
		for _, n := range notes {
			if n.End() > end {
				end = n.End()
			}
		}
		res = append(res, &model.Track{
			Name:  name,
			Clips: []model.Clip{{Notes: notes, Duration: end}},
		})
	}
	return res, nil
}

// ReadTracks reads a MIDI file into tracks.
func ReadTracks(path string) (model.Tracks, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return Tracks(s)
}
