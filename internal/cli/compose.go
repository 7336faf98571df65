package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/splice/internal/compose"
	"github.com/roach88/splice/internal/config"
	"github.com/roach88/splice/internal/lines"
)

// ComposeOptions holds flags for the compose command.
type ComposeOptions struct {
	*RootOptions
	Shell  string
	Draft  string
	Legacy string
	Output string
	Config string
	DryRun bool
	Diff   bool

	// RunIDs overrides the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs compose.RunIDGenerator
}

// ComposeSummary is the JSON payload of a compose run.
type ComposeSummary struct {
	*compose.Result
	Diff *compose.DiffStats `json:"diff,omitempty"`
}

// NewComposeCommand creates the compose command.
func NewComposeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComposeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose the output page from shell, draft and legacy documents",
		Long: `Compose the output page.

The draft content and the legacy data fragment are merged, the legacy script
is filtered, and both are spliced into the shell after its anchor tag. The
output is written only when every step succeeded.

Example:
  splice compose --shell RFIX/index_new.html \
      --draft drafts/prototype-layout.html \
      --legacy RFIX/index.html.backup \
      --output RFIX/index.html
  splice compose ... --output RFIX/index.html --dry-run --diff`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Shell, "shell", "", "shell document (head and opening body tag)")
	cmd.Flags().StringVar(&opts.Draft, "draft", "", "draft layout document")
	cmd.Flags().StringVar(&opts.Legacy, "legacy", "", "legacy backup document")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml, .yml or .cue)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "compose without writing the output")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "with --dry-run, show a line diff against the existing output")
	_ = cmd.MarkFlagRequired("shell")
	_ = cmd.MarkFlagRequired("draft")
	_ = cmd.MarkFlagRequired("legacy")

	return cmd
}

func runCompose(opts *ComposeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Output == "" && !opts.DryRun {
		return outputComposeError(formatter, ErrCodeUsage, "--output is required unless --dry-run is set", ExitCommandError, nil)
	}
	if opts.Diff && (!opts.DryRun || opts.Output == "") {
		return outputComposeError(formatter, ErrCodeUsage, "--diff needs --dry-run and --output", ExitCommandError, nil)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return outputComposeError(formatter, ErrCodeConfig, err.Error(), ExitCommandError, nil)
	}
	if opts.Config != "" {
		formatter.VerboseLog("Loaded config %s", opts.Config)
	}

	composerOpts := []compose.Option{compose.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr()))}
	if opts.RunIDs != nil {
		composerOpts = append(composerOpts, compose.WithRunIDGenerator(opts.RunIDs))
	}
	composer := compose.New(cfg, composerOpts...)

	src := compose.Sources{Shell: opts.Shell, Draft: opts.Draft, Legacy: opts.Legacy}
	var res *compose.Result
	if opts.DryRun {
		res, err = composer.Compose(src)
	} else {
		res, err = composer.Run(src, opts.Output)
	}
	if err != nil {
		return outputStepError(formatter, err)
	}

	summary := ComposeSummary{Result: res}
	var diff []compose.DiffLine
	if opts.Diff {
		before, err := readExisting(opts.Output)
		if err != nil {
			return outputComposeError(formatter, ErrCodeIO, err.Error(), ExitCommandError, nil)
		}
		diff = compose.LineDiff(before, string(res.Output))
		stats := compose.Stats(diff)
		summary.Diff = &stats
	}

	return outputComposeSuccess(formatter, summary, diff)
}

// readExisting returns the current output content, or "" if it does not exist.
func readExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading existing output: %w", err)
	}
	return string(data), nil
}

// outputComposeSuccess prints one milestone line per step, then the summary.
func outputComposeSuccess(formatter *OutputFormatter, summary ComposeSummary, diff []compose.DiffLine) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	w := formatter.Writer
	for _, s := range summary.Steps {
		if s.Step == compose.StepWriteOutput {
			continue
		}
		fmt.Fprintf(w, "%s %s: %d line(s), %d byte(s)%s\n",
			formatter.Mark(true), s.Step, s.Lines, s.Bytes, sourceSuffix(s.Source))
	}
	for _, r := range summary.Rules {
		formatter.VerboseLog("  %s: %d -> %d line(s)", r.Rule, r.LinesIn, r.LinesOut)
	}

	if summary.Diff != nil {
		fmt.Fprintln(w)
		renderDiff(w, diff)
		fmt.Fprintf(w, "%d insertion(s), %d deletion(s)\n", summary.Diff.Inserted, summary.Diff.Deleted)
	}

	fmt.Fprintln(w)
	if summary.Written {
		fmt.Fprintf(w, "%s Composed %s: %d line(s), %d byte(s)\n",
			formatter.Mark(true), summary.OutputPath, summary.Lines, summary.Bytes)
	} else {
		fmt.Fprintf(w, "%s Composed (dry run, nothing written): %d line(s), %d byte(s)\n",
			formatter.Mark(true), summary.Lines, summary.Bytes)
	}
	fmt.Fprintf(w, "  blake3 %s\n", summary.Digest)
	return nil
}

// outputStepError prints the single diagnostic line of a failed run.
func outputStepError(formatter *OutputFormatter, err error) error {
	code := lines.CodeOf(err)
	exit := ExitFailure
	if code == lines.ErrCodeIOFailure {
		exit = ExitCommandError
	}

	var details interface{}
	var se *compose.StepError
	if errors.As(err, &se) {
		details = map[string]string{"step": se.Step, "source": se.Source, "kind": string(code)}
	}
	return outputComposeError(formatter, MapErrorCode(code), err.Error(), exit, details)
}

func outputComposeError(formatter *OutputFormatter, code, message string, exit int, details interface{}) error {
	_ = formatter.Error(code, message, details)
	return WrapExitError(exit, fmt.Sprintf("%s: %s", code, message), nil)
}

func sourceSuffix(source string) string {
	if source == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", filepath.Base(source))
}
