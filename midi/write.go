package midi

import (
	"io"
	"log/slog"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/tabscore/constants"
	"github.com/jsphweid/tabscore/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	BPM             float64
	TicksPerQuarter uint16
	Channel         uint8
	// Resolver turns pitch names into note numbers. Without one, pitch
	// names are skipped.
	Resolver model.PitchResolver
}

func (o Options) withDefaults() Options {
	if o.BPM <= 0 {
		o.BPM = constants.GetBPM()
	}
	if o.TicksPerQuarter == 0 {
		o.TicksPerQuarter = uint16(constants.GetTicksPerQuarter())
	}
	return o
}

type noteEvent struct {
	tick uint64
	off  bool
	key  uint8
	vel  uint8
}

// toTicks converts whole notes to ticks; a whole note is four quarters.
func toTicks(wholeNotes float64, ticksPerQuarter uint16) uint64 {
	return uint64(math.Round(wholeNotes * 4 * float64(ticksPerQuarter)))
}

func velocity(n model.NoteEvent) uint8 {
	v := constants.DefaultVelocity
	if n.Dynamics != nil && n.Dynamics.Velocity > 0 {
		v = n.Dynamics.Velocity
	}
	if v > 127 {
		v = 127
	}
	return uint8(v)
}

// Build creates a format 1 SMF: a tempo track followed by one named track
// per compiled track. Only note and pitch values become MIDI notes.
func Build(tracks model.Tracks, opts Options) (*smf.SMF, error) {
	opts = opts.withDefaults()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.TicksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(opts.BPM))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return nil, errors.Wrap(err, "could not add tempo track")
	}

	for _, track := range tracks {
		var events []noteEvent
		for _, clip := range track.Clips {
			for _, n := range clip.Notes {
				if n.Value.Kind == model.KindTechnique {
					continue
				}
				num, ok := model.NoteNumber(n.Value, opts.Resolver)
				if !ok || num < 0 || num > 127 {
					slog.Warn("skipping note without a midi number", "track", track.Name, "pitch", n.Value.Pitch, "note", n.Value.Note)
					continue
				}
				start := toTicks(clip.StartTime+n.Start, opts.TicksPerQuarter)
				end := toTicks(clip.StartTime+n.End(), opts.TicksPerQuarter)
				events = append(events,
					noteEvent{tick: start, key: uint8(num), vel: velocity(n)},
					noteEvent{tick: end, off: true, key: uint8(num)},
				)
			}
		}

		// prioritize smaller ticks, then note off
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].tick != events[j].tick {
				return events[i].tick < events[j].tick
			}
			return events[i].off && !events[j].off
		})

		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(track.Name))
		// overlapping notes on one key share a single note-off, sent when
		// the last of them ends
		sounding := make(map[uint8]int)
		var last uint64
		for _, e := range events {
			if e.off {
				sounding[e.key]--
				if sounding[e.key] > 0 {
					continue
				}
			} else {
				sounding[e.key]++
			}
			delta := uint32(e.tick - last)
			last = e.tick
			if e.off {
				tr.Add(delta, gomidi.NoteOff(opts.Channel, e.key))
			} else {
				tr.Add(delta, gomidi.NoteOn(opts.Channel, e.key, e.vel))
			}
		}
		tr.Close(0)
		if err := s.Add(tr); err != nil {
			return nil, errors.Wrapf(err, "could not add track %q", track.Name)
		}
	}
	return s, nil
}

func WriteTracks(w io.Writer, tracks model.Tracks, opts Options) error {
	s, err := Build(tracks, opts)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return errors.Wrap(err, "could not write midi")
}

func WriteMidiFile(path string, tracks model.Tracks, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create midi file")
	}
	defer f.Close()
	return WriteTracks(f, tracks, opts)
}
