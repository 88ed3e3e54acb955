package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/pattern"
	"github.com/jsphweid/tabscore/rhythm"
	"github.com/jsphweid/tabscore/score"
	"github.com/jsphweid/tabscore/tab"
	"github.com/jsphweid/tabscore/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	velocityFlag        string
	velocityLibraryFlag string
)

func init() {
	for _, c := range []*cobra.Command{rhythmCmd, patternCmd, tabCmd} {
		c.Flags().StringVar(&formatFlag, "format", string(util.FormatYAML), "output format (yaml|json)")
		rootCmd.AddCommand(c)
	}
	tabCmd.Flags().StringVar(&velocityFlag, "velocity", "", "velocity pattern")
	tabCmd.Flags().StringVar(&velocityLibraryFlag, "velocity-library", "", "velocity symbol table (YAML or JSON)")
}

var rhythmCmd = &cobra.Command{
	Use:   "rhythm <rhythm>",
	Short: "Compiles a rhythm string",
	Long:  `Prints the cumulative end times and durations of each rhythm slot, in whole notes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rhythm.Compile(args[0])
		if err != nil {
			return err
		}
		return util.Output(os.Stdout, r, util.Format(formatFlag))
	},
}

var patternCmd = &cobra.Command{
	Use:   "pattern <pattern>",
	Short: "Compiles a note pattern",
	Long:  `Prints the symbol runs of a note pattern. Rests are reported as '.'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := pattern.Compile(args[0])
		if err != nil {
			return err
		}
		return util.Output(os.Stdout, runs, util.Format(formatFlag))
	},
}

var tabCmd = &cobra.Command{
	Use:   "tab <rhythm> <pattern> <library>",
	Short: "Compiles a pattern against a rhythm",
	Long: `Compiles a note pattern against a rhythm and symbol table, printing the
note events. The library is given inline as YAML or JSON, for example
'{0: 60, 1: [62, 65]}'.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := parseSymbolTable(args[2], "library")
		if err != nil {
			return err
		}
		var opts []tab.Option
		if velocityFlag != "" {
			vlib, err := parseSymbolTable(velocityLibraryFlag, "velocity-library")
			if err != nil {
				return err
			}
			opts = append(opts, tab.WithVelocity(velocityFlag, vlib))
		}
		events, err := tab.Compile(args[0], args[1], lib, opts...)
		if err != nil {
			return err
		}
		return util.Output(os.Stdout, events, util.Format(formatFlag))
	},
}

func parseSymbolTable(src string, name string) (model.SymbolTable, error) {
	if src == "" {
		return nil, nil
	}
	var v any
	if err := yaml.UnmarshalWithOptions([]byte(src), &v, yaml.UseOrderedMap()); err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", name)
	}
	return score.SymbolTable(v, name)
}
