// Package edit writes compiled tracks as an XML edit document, with
// positions in beats (quarter notes) as DAWs expect.
package edit

import (
	"io"
	"strconv"

	"github.com/jsphweid/tabscore/constants"
	"github.com/jsphweid/tabscore/model"
	xml "github.com/subchen/go-xmldom"
)

type Options struct {
	BPM      float64
	Resolver model.PitchResolver
}

func beats(wholeNotes float64) string {
	return strconv.FormatFloat(wholeNotes*4, 'f', -1, 64)
}

func Build(tracks model.Tracks, opts Options) *xml.Document {
	if opts.BPM <= 0 {
		opts.BPM = constants.GetBPM()
	}

	doc := xml.NewDocument("EDIT")
	doc.Root.SetAttributeValue("app", "tabscore")
	doc.Root.CreateNode("TEMPOSEQUENCE").CreateNode("TEMPO").
		SetAttributeValue("startBeat", "0").
		SetAttributeValue("bpm", strconv.FormatFloat(opts.BPM, 'f', -1, 64))

	for _, track := range tracks {
		tn := doc.Root.CreateNode("TRACK").SetAttributeValue("name", track.Name)
		for i, clip := range track.Clips {
			cn := tn.CreateNode("CLIP").
				SetAttributeValue("name", track.Name+" "+strconv.Itoa(i)).
				SetAttributeValue("start", beats(clip.StartTime)).
				SetAttributeValue("length", beats(clip.Duration))

			for _, n := range clip.Notes {
				switch {
				case n.Value.TechniqueType() == "file":
					path, _ := n.Value.Technique["path"].(string)
					cn.CreateNode("SAMPLE").
						SetAttributeValue("path", path).
						SetAttributeValue("s", beats(n.Start)).
						SetAttributeValue("l", beats(n.Length))
				case n.Value.Kind == model.KindTechnique:
					// automation and other techniques have no edit element
				default:
					num, ok := model.NoteNumber(n.Value, opts.Resolver)
					if !ok {
						continue
					}
					nn := cn.CreateNode("NOTE").
						SetAttributeValue("p", strconv.Itoa(num)).
						SetAttributeValue("s", beats(n.Start)).
						SetAttributeValue("l", beats(n.Length))
					if n.Dynamics != nil && n.Dynamics.Velocity > 0 {
						nn.SetAttributeValue("v", strconv.Itoa(n.Dynamics.Velocity))
					}
				}
			}
		}
	}
	return doc
}

func Write(w io.Writer, tracks model.Tracks, opts Options) error {
	_, err := io.WriteString(w, Build(tracks, opts).XMLPretty())
	return err
}
