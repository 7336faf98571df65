package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/splice/internal/compose"
	"github.com/roach88/splice/internal/config"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Shell  string
	Draft  string
	Legacy string
	Config string
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Passed bool                  `json:"passed"`
	Checks []compose.MarkerCheck `json:"checks"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Locate every configured marker without composing",
		Long: `Report the line numbers of every configured marker in the source documents.

Useful before a compose run, and after the legacy document changed, to see
whether the fixed line range and the markers still point where they should.
Markers found more than once are reported; the first occurrence is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Shell, "shell", "", "shell document")
	cmd.Flags().StringVar(&opts.Draft, "draft", "", "draft layout document")
	cmd.Flags().StringVar(&opts.Legacy, "legacy", "", "legacy backup document")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml, .yml or .cue)")
	_ = cmd.MarkFlagRequired("shell")
	_ = cmd.MarkFlagRequired("draft")
	_ = cmd.MarkFlagRequired("legacy")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return outputComposeError(formatter, ErrCodeConfig, err.Error(), ExitCommandError, nil)
	}

	checks, err := compose.Check(cfg, compose.Sources{Shell: opts.Shell, Draft: opts.Draft, Legacy: opts.Legacy})
	if err != nil {
		return outputStepError(formatter, err)
	}

	result := CheckResult{Passed: compose.Passed(checks), Checks: checks}
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputCheckText(formatter, result)
	}

	if !result.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: marker check failed", ErrCodeCheckFailed))
	}
	return nil
}

func outputCheckText(formatter *OutputFormatter, result CheckResult) {
	w := formatter.Writer
	for _, c := range result.Checks {
		ok := c.Status == compose.CheckOK || c.Status == compose.CheckDuplicate
		where := "not found"
		switch {
		case c.Field == "legacyRange" && len(c.Lines) == 2:
			where = fmt.Sprintf("%s:%d-%d", filepath.Base(c.Source), c.Lines[0], c.Lines[1])
			if !ok {
				where += " (outside document)"
			}
		case len(c.Lines) > 0:
			where = fmt.Sprintf("%s:%d", filepath.Base(c.Source), c.Lines[0])
			if len(c.Lines) > 1 {
				where += fmt.Sprintf(" (also at %v)", c.Lines[1:])
			}
			if c.Status == compose.CheckMissing {
				where += " (none after the start marker)"
			}
		}
		fmt.Fprintf(w, "%s %-12s %q %s\n", formatter.Mark(ok), c.Field, c.Marker, where)
	}

	fmt.Fprintln(w)
	if result.Passed {
		fmt.Fprintf(w, "%s All markers found\n", formatter.Mark(true))
	} else {
		fmt.Fprintf(w, "%s Marker check failed\n", formatter.Mark(false))
	}
}
