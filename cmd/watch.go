package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/tabscore/util"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
	watchDelay    time.Duration
)

func init() {
	watchCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file; stdout when empty")
	watchCmd.Flags().StringVar(&formatFlag, "format", string(util.FormatYAML), "output format (yaml|json)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 250*time.Millisecond, "how often to check the file")
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 300*time.Millisecond, "quiet period before recompiling")
	addScoreFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Recompiles a score whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], func() {
			s, err := loadScore(args[0])
			if err != nil {
				slog.Error("compile failed", "error", err)
				return
			}
			if err := util.OutputFile(outFlag, s, util.Format(formatFlag)); err != nil {
				slog.Error("could not write output", "error", err)
				return
			}
			slog.Info("recompiled", "path", args[0], "tracks", len(s.Tracks))
		})
	},
}

// watch calls onChange once at start and then, debounced, after every
// modification of path until ctx is done.
func watch(ctx context.Context, path string, onChange func()) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	last := info.ModTime()
	onChange()

	debounced := debounce.New(watchDelay)
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				slog.Warn("could not stat score", "path", path, "error", err)
				continue
			}
			if info.ModTime().After(last) {
				last = info.ModTime()
				slog.Debug("score changed", "path", path)
				debounced(onChange)
			}
		}
	}
}
