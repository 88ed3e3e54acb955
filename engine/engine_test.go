package engine

import (
	"testing"

	"github.com/jsphweid/tabscore/model"
	"github.com/stretchr/testify/assert"
)

func testTracks() model.Tracks {
	dbfs := -6.0
	return model.Tracks{
		{Name: "drums", Clips: []model.Clip{{StartTime: 0, Duration: 1, Notes: []model.NoteEvent{
			{Value: model.NoteValue(36), Start: 0, Length: 0.25, Dynamics: &model.Dynamics{Velocity: 100}},
			{Value: model.TechniqueValue(map[string]any{"type": "file", "path": "media/kick.wav"}), Start: 0.5, Length: 0.25,
				Dynamics: &model.Dynamics{DBFS: &dbfs}},
			{Value: model.PitchValue("c4"), Start: 0.75, Length: 0.25},
		}}}},
		{Name: "empty"},
		{Name: "vox", Clips: []model.Clip{{StartTime: 1, Duration: 1, Notes: []model.NoteEvent{
			{Value: model.TechniqueValue(map[string]any{"type": "file", "path": "media/vox.wav"}), Start: 0, Length: 1,
				Dynamics: &model.Dynamics{Velocity: 127}},
			{Value: model.TechniqueValue(map[string]any{"type": "file"}), Start: 0, Length: 1},
		}}}},
	}
}

func TestBuild(t *testing.T) {
	b := Build(testTracks(), Options{ID: "batch-1", LoopDuration: 2})

	assert := assert.New(t)
	assert.Equal("batch-1", b.ID)
	assert.Equal([]Message{
		{AddrTrackSelect, []any{"drums"}},
		{AddrClipCreate, []any{"clip0", 0.0, 1.0}},
		{AddrNoteInsert, []any{36, 0.0, 0.25, 100}},
		{AddrInsertWav, []any{"s1", 0.5, "media/kick.wav"}},
		{AddrClipLength, []any{0.25}},
		{AddrClipGain, []any{-6.0}},
		{AddrTrackSelect, []any{"vox"}},
		{AddrInsertWav, []any{"s2", 1.0, "media/vox.wav"}},
		{AddrClipLength, []any{1.0}},
		{AddrClipGain, []any{10.0}},
		{AddrLoop, []any{0.0, 2.0}},
	}, b.Messages)
}

func TestBuildResolvesPitches(t *testing.T) {
	b := Build(testTracks()[:1], Options{Resolver: model.PitchMap{"c4": 60}})

	assert := assert.New(t)
	assert.NotEmpty(b.ID)
	assert.Equal(Message{AddrNoteInsert, []any{60, 0.75, 0.25}}, b.Messages[3])
}

func TestMidiVelocityToDbfs(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(-60.0, MidiVelocityToDbfs(0, -60, 6))
	assert.Equal(6.0, MidiVelocityToDbfs(127, -60, 6))
	assert.InDelta(0.0, MidiVelocityToDbfs(127/2, -10, 10), 0.1)
	assert.Equal(10.0, MidiVelocityToDbfs(200, -10, 10))
}

func TestEncodeDecode(t *testing.T) {
	b := Build(testTracks(), Options{ID: "batch-2"})
	data, err := Encode(b)
	assert := assert.New(t)
	assert.NoError(err)

	decoded, err := Decode(data)
	assert.NoError(err)
	assert.Equal("batch-2", decoded.ID)
	assert.Len(decoded.Messages, len(b.Messages))
	for i, m := range decoded.Messages {
		assert.Equal(b.Messages[i].Address, m.Address)
	}
	assert.Equal("drums", decoded.Messages[0].Args[0])
}
