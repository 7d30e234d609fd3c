// Command robotrate prices a robot shift document.
//
//	robotrate calculate shift.json        prints {"value":N}
//	robotrate calculate --breakdown < shift.yaml
//	robotrate validate shift.json
//
// Documents are read from the named file or from stdin.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/warp/shift-rates/factory"
	"github.com/warp/shift-rates/logging"
	"github.com/warp/shift-rates/robot"
)

var (
	logger zerolog.Logger

	flagBreakdown bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "robotrate",
	Short:         "Price robot shifts against weekday and weekend rate bands",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env := "production"
		if flagVerbose {
			env = "development"
		}
		logger = logging.SetupWithWriter(env, cmd.ErrOrStderr())
	},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [file]",
	Short: "Print the amount owed for a shift document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(cmd, args)
		if err != nil {
			return err
		}
		return calculate(data, cmd.OutOrStdout(), cmd.ErrOrStderr(), flagBreakdown)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that a shift document parses and its bands partition the week",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(cmd, args)
		if err != nil {
			return err
		}
		return validate(data, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging on stderr")
	calculateCmd.Flags().BoolVar(&flagBreakdown, "breakdown", false, "print the segment table on stderr")
	rootCmd.AddCommand(calculateCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func readDocument(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// calculate writes {"value":N} to out, and the breakdown table to errOut when asked.
func calculate(data []byte, out, errOut io.Writer, breakdown bool) error {
	schedule, err := factory.NewScheduleFactory().Parse(data)
	if err != nil {
		return err
	}
	logger.Debug().Str("shift", schedule.Shift.String()).Msg("parsed shift document")

	var quote *robot.Quote
	if breakdown {
		quote, err = robot.Calculate(schedule)
	} else {
		quote, err = robot.Total(schedule)
	}
	if err != nil {
		return err
	}

	value, err := quote.Value()
	if err != nil {
		return err
	}
	logger.Debug().Int64("value", value).Int64("rest_minutes", quote.RestMinutes()).Msg("priced shift")

	if breakdown {
		renderBreakdown(errOut, quote, schedule)
	}

	b, err := json.Marshal(map[string]int64{"value": value})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func validate(data []byte, out io.Writer) error {
	schedule, err := factory.NewScheduleFactory().Parse(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "ok: %s, %d minutes\n", schedule.Shift, int64(schedule.Shift.Duration().Minutes()))
	return err
}
