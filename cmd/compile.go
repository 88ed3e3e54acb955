package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/tabscore/constants"
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/score"
	"github.com/jsphweid/tabscore/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// flags shared by every command that compiles a score file
var (
	rhythmFlag  string
	trackFlag   string
	maxDepth    int
	pitchesFlag string
)

var (
	outFlag    string
	formatFlag string
	maxNum     int
)

func addScoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rhythmFlag, "rhythm", "", "rhythm used where the score sets none")
	cmd.Flags().StringVar(&trackFlag, "track", "", "track for leaves outside any named track")
	cmd.Flags().IntVar(&maxDepth, "max-depth", constants.GetMaxDepth(), "maximum score nesting depth")
}

func addPitchesFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pitchesFlag, "pitches", "", "YAML or JSON file mapping pitch names to MIDI note numbers")
}

func init() {
	compileCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file, or output directory when compiling a directory")
	compileCmd.Flags().StringVar(&formatFlag, "format", string(util.FormatYAML), "output format (yaml|json)")
	compileCmd.Flags().IntVar(&maxNum, "max", 0, "compile at most this many files from a directory")
	addScoreFlags(compileCmd)
	rootCmd.AddCommand(compileCmd)
}

var compileCmd = &cobra.Command{
	Use:   "compile <file|dir>",
	Short: "Compiles a score document",
	Long: `Compiles a score document into tracks of clips and prints it, or
compiles every score below a directory into the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			return compileDir(args[0])
		}
		s, err := loadScore(args[0])
		if err != nil {
			return err
		}
		return util.OutputFile(outFlag, s, util.Format(formatFlag))
	},
}

func scoreConfig() score.Config {
	return score.Config{Rhythm: rhythmFlag, Track: trackFlag, MaxDepth: maxDepth}
}

// CompileScore parses a YAML or JSON score document and compiles it.
func CompileScore(data []byte, cfg score.Config) (*model.Score, error) {
	node, err := score.Parse(data, cfg.MaxDepth)
	if err != nil {
		return nil, err
	}
	return score.Compile(node, cfg)
}

func loadScore(path string) (*model.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read score %s", path)
	}
	s, err := CompileScore(data, scoreConfig())
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	slog.Debug("compiled score", "path", path, "tracks", len(s.Tracks), "duration", s.Duration)
	return s, nil
}

func loadPitches() (model.PitchResolver, error) {
	if pitchesFlag == "" {
		return nil, nil
	}
	data, err := os.ReadFile(pitchesFlag)
	if err != nil {
		return nil, errors.Wrap(err, "could not read pitch map")
	}
	var m model.PitchMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "could not decode pitch map")
	}
	return m, nil
}

func compileDir(dir string) error {
	outDir := outFlag
	if outDir == "" {
		outDir = constants.GetOutDir()
	}
	paths, err := util.GatherAllScorePaths(dir, maxNum)
	if err != nil {
		return err
	}
	if err := util.RecreateOutputDir(outDir); err != nil {
		return err
	}

	for _, path := range paths {
		s, err := loadScore(path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + formatFlag
		if err := util.OutputFile(filepath.Join(outDir, name), s, util.Format(formatFlag)); err != nil {
			return err
		}
	}
	slog.Info("compiled scores", "num", len(paths), "out", outDir)
	return nil
}
