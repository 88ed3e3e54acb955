package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/tabscore/chord"
	"github.com/jsphweid/tabscore/midi"
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/util"
	"github.com/spf13/cobra"
)

var reportFormat string

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "report format (text|yaml|json)")
	addScoreFlags(reportCmd)
	addPitchesFlag(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Summarizes a compiled score",
	Long: `Compiles a score and reports clip and note counts, time spans and chords
per track. A MIDI file (.mid), such as one written by export, is read back
and reported the same way.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadReportScore(args[0])
		if err != nil {
			return err
		}
		resolver, err := loadPitches()
		if err != nil {
			return err
		}
		summaries := chord.Summarize(s.Tracks, resolver)
		if reportFormat != "text" {
			return util.Output(os.Stdout, summaries, util.Format(reportFormat))
		}
		fmt.Println(renderReport(s, summaries))
		return nil
	},
}

func isMidiPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mid" || ext == ".midi"
}

func loadReportScore(path string) (*model.Score, error) {
	if !isMidiPath(path) {
		return loadScore(path)
	}
	tracks, err := midi.ReadTracks(path)
	if err != nil {
		return nil, err
	}
	s := &model.Score{Tracks: tracks}
	for _, t := range tracks {
		for _, c := range t.Clips {
			s.Duration = util.Max(s.Duration, c.End())
		}
	}
	return s, nil
}

var (
	accent      = lipgloss.Color("#00ff9f")
	dim         = lipgloss.Color("#6e7681")
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle  = lipgloss.NewStyle().Foreground(dim).Width(10)
	trackStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func renderReport(s *model.Score, summaries []model.TrackSummary) string {
	header := headerStyle.Render(fmt.Sprintf("%d tracks, %v whole notes", len(summaries), s.Duration))
	blocks := []string{header}
	for _, sum := range summaries {
		blocks = append(blocks, renderTrack(sum))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderTrack(sum model.TrackSummary) string {
	row := func(label string, value any) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), fmt.Sprint(value))
	}
	chords := "-"
	if len(sum.Chords) > 0 {
		chords = strings.Join(sum.Chords, " ")
	}
	return trackStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(sum.Name),
		row("clips", sum.NumClips),
		row("notes", sum.NumNotes),
		row("span", fmt.Sprintf("%v - %v", sum.Start, sum.End)),
		row("chords", chords),
	))
}
