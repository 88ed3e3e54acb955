// Package engine turns compiled tracks into the ordered message batch a
// playback engine consumes. Delivering the batch is up to the caller.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jsphweid/tabscore/model"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	AddrTrackSelect = "/audiotrack/select"
	AddrClipCreate  = "/midiclip/create"
	AddrNoteInsert  = "/midiclip/insert/note"
	AddrInsertWav   = "/audiotrack/insert/wav"
	AddrClipLength  = "/clip/length"
	AddrClipGain    = "/audioclip/gain"
	AddrLoop        = "/transport/loop"
)

// Message is one engine command. Times are in whole notes.
type Message struct {
	Address string `msgpack:"address" json:"address"`
	Args    []any  `msgpack:"args" json:"args"`
}

type Batch struct {
	ID       string    `msgpack:"id" json:"id"`
	Messages []Message `msgpack:"messages" json:"messages"`
}

type Options struct {
	// ID identifies the batch; a random one is used when empty.
	ID       string
	Resolver model.PitchResolver
	// LoopDuration > 0 appends a transport loop over [0, LoopDuration).
	LoopDuration float64
}

// MidiVelocityToDbfs maps a MIDI velocity onto [min, max] dBFS.
func MidiVelocityToDbfs(v int, min, max float64) float64 {
	db := float64(v)/127*(max-min) + min
	if db < min {
		return min
	}
	if db > max {
		return max
	}
	return db
}

// Build creates messages in track order then clip order. Clip names
// ("clip0", "s1", ...) come from one counter, so they depend on that order.
func Build(tracks model.Tracks, opts Options) Batch {
	b := Batch{ID: opts.ID}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	i := 0

	for _, track := range tracks {
		if len(track.Clips) == 0 {
			slog.Debug("skipping track, because it has no clips", "track", track.Name)
			continue
		}
		b.add(AddrTrackSelect, track.Name)

		for _, clip := range track.Clips {
			var notes []Message
			for _, n := range clip.Notes {
				if n.Value.Kind == model.KindTechnique {
					continue
				}
				num, ok := model.NoteNumber(n.Value, opts.Resolver)
				if !ok {
					slog.Warn("skipping note without a midi number", "track", track.Name, "pitch", n.Value.Pitch)
					continue
				}
				args := []any{num, n.Start, n.Length}
				if v := velocity(n); v > 0 {
					args = append(args, v)
				}
				notes = append(notes, Message{Address: AddrNoteInsert, Args: args})
			}
			if len(notes) > 0 {
				b.add(AddrClipCreate, fmt.Sprintf("clip%d", i), clip.StartTime, clip.Duration)
				i++
				b.Messages = append(b.Messages, notes...)
			}

			for _, n := range clip.Notes {
				if n.Value.TechniqueType() != "file" {
					continue
				}
				path, _ := n.Value.Technique["path"].(string)
				if path == "" {
					slog.Warn("skipping file event without a path", "track", track.Name)
					continue
				}
				b.add(AddrInsertWav, fmt.Sprintf("s%d", i), clip.StartTime+n.Start, path)
				i++
				b.add(AddrClipLength, n.Length)
				if gain, ok := sampleGain(n); ok {
					b.add(AddrClipGain, gain)
				}
			}
		}
	}

	if opts.LoopDuration > 0 {
		b.add(AddrLoop, 0.0, opts.LoopDuration)
	}
	return b
}

func (b *Batch) add(address string, args ...any) {
	b.Messages = append(b.Messages, Message{Address: address, Args: args})
}

func velocity(n model.NoteEvent) int {
	if n.Dynamics != nil {
		return n.Dynamics.Velocity
	}
	return 0
}

// sampleGain prefers an explicit dBFS and falls back to the velocity.
func sampleGain(n model.NoteEvent) (float64, bool) {
	if n.Dynamics == nil {
		return 0, false
	}
	if n.Dynamics.DBFS != nil {
		return *n.Dynamics.DBFS, true
	}
	if n.Dynamics.Velocity > 0 {
		return MidiVelocityToDbfs(n.Dynamics.Velocity, -10, 10), true
	}
	return 0, false
}

func Encode(b Batch) ([]byte, error) {
	return msgpack.Marshal(b)
}

func Decode(data []byte) (Batch, error) {
	var b Batch
	err := msgpack.Unmarshal(data, &b)
	return b, err
}
