package chord

import (
	"fmt"
	"math"
	"sort"

	"github.com/jsphweid/tabscore/model"
)

func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// GetChords groups the notes of a track that start together. Offsets are
// absolute, in whole notes. Values that do not resolve to a MIDI note are
// ignored.
func GetChords(track *model.Track, resolver model.PitchResolver) []model.Chord {
	offsetToChord := make(map[float64]*model.Chord)
	var offsets []float64

	for _, clip := range track.Clips {
		for _, n := range clip.Notes {
			num, ok := model.NoteNumber(n.Value, resolver)
			if !ok || num < 0 || num > 127 {
				continue
			}
			// NOTE: rounding keeps float noise from splitting a chord
			offset := math.Round((clip.StartTime+n.Start)*1e9) / 1e9
			c, ok := offsetToChord[offset]
			if !ok {
				c = &model.Chord{Offset: offset}
				offsetToChord[offset] = c
				offsets = append(offsets, offset)
			}
			c.Notes = append(c.Notes, uint8(num))
		}
	}

	sort.Float64s(offsets)
	chords := make([]model.Chord, 0, len(offsets))
	for _, offset := range offsets {
		chords = append(chords, *offsetToChord[offset])
	}
	return chords
}

// Summarize reports clip and note counts, the time span, and the distinct
// chords (two or more notes) of every track.
func Summarize(tracks model.Tracks, resolver model.PitchResolver) []model.TrackSummary {
	res := make([]model.TrackSummary, 0, len(tracks))
	for _, track := range tracks {
		s := model.TrackSummary{Name: track.Name, NumClips: len(track.Clips)}
		for i, clip := range track.Clips {
			s.NumNotes += len(clip.Notes)
			if i == 0 || clip.StartTime < s.Start {
				s.Start = clip.StartTime
			}
			if clip.End() > s.End {
				s.End = clip.End()
			}
		}

		seen := make(map[string]bool)
		for _, c := range GetChords(track, resolver) {
			if len(c.Notes) < 2 {
				continue
			}
			key := CreateChordKey(c.Notes)
			if !seen[key] {
				seen[key] = true
				s.Chords = append(s.Chords, key)
			}
		}
		res = append(res, s)
	}
	return res
}
