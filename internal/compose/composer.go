package compose

import (
	"encoding/hex"
	"io"
	"log/slog"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/roach88/splice/internal/config"
	"github.com/roach88/splice/internal/filter"
	"github.com/roach88/splice/internal/lines"
)

// Sources are the paths of the three input documents.
type Sources struct {
	Shell  string
	Draft  string
	Legacy string
}

// StepReport records the size of what one step produced.
type StepReport struct {
	Step   string `json:"step"`
	Source string `json:"source,omitempty"`
	Lines  int    `json:"lines"`
	Bytes  int    `json:"bytes"`
}

// Result describes a successful composition.
type Result struct {
	RunID string `json:"run_id"`

	// Output is the composed document.
	Output []byte `json:"-"`

	Lines  int    `json:"lines"`
	Bytes  int    `json:"bytes"`
	Digest string `json:"digest"` // blake3-256, hex

	Steps []StepReport    `json:"steps"`
	Rules []filter.Report `json:"rules"`

	// OutputPath and Written are set by Run.
	OutputPath string `json:"output_path,omitempty"`
	Written    bool   `json:"written"`
}

// Composer assembles output documents according to a Config.
type Composer struct {
	cfg    *config.Config
	filter filter.Filter
	logger *slog.Logger
	runIDs RunIDGenerator
}

// Option customizes a Composer.
type Option func(*Composer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// WithFilter replaces the script filter built from the config.
func WithFilter(f filter.Filter) Option {
	return func(c *Composer) { c.filter = f }
}

// WithRunIDGenerator overrides the UUIDv7 run id generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(c *Composer) { c.runIDs = g }
}

// New creates a Composer. cfg is expected to be validated.
func New(cfg *config.Config, opts ...Option) *Composer {
	c := &Composer{
		cfg:    cfg,
		filter: ScriptFilter(cfg),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		runIDs: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScriptFilter builds the script pipeline from cfg: block removals, line
// removals, renames, then the generated-code injection.
func ScriptFilter(cfg *config.Config) filter.Pipeline {
	var p filter.Pipeline
	for _, m := range cfg.RemoveBlockMarkers {
		p = append(p, filter.RemoveBlock{Marker: m})
	}
	if len(cfg.RemoveLineSubstrings) > 0 {
		p = append(p, filter.RemoveLines{Substrings: cfg.RemoveLineSubstrings})
	}
	for _, r := range cfg.RenameRules {
		p = append(p, filter.Rename{From: r.From, To: r.To})
	}
	if cfg.Boilerplate != "" {
		p = append(p, filter.InjectBefore{
			Lines:    lines.FragmentOf(cfg.Boilerplate),
			Prefixes: cfg.InsertBefore,
		})
	}
	return p
}

// dataRewrites builds the rename pipeline for the legacy data fragment.
func dataRewrites(cfg *config.Config) filter.Pipeline {
	p := make(filter.Pipeline, 0, len(cfg.DataRenames))
	for _, r := range cfg.DataRenames {
		p = append(p, filter.Rename{From: r.From, To: r.To})
	}
	return p
}

// run carries the state of one Compose call.
type run struct {
	*Result
	log *slog.Logger
}

func (r *run) record(step, source string, n, size int) {
	r.Steps = append(r.Steps, StepReport{Step: step, Source: source, Lines: n, Bytes: size})
	r.log.Info("step complete", "step", step, "source", source, "lines", n, "bytes", size)
}

func (r *run) fail(err *StepError) error {
	r.log.Debug("step failed", "step", err.Step, "source", err.Source, "code", err.Code(), "error", err.Err)
	return err
}

// Compose runs every step in memory and returns the composed document.
// Nothing is written.
func (c *Composer) Compose(src Sources) (*Result, error) {
	r := &run{Result: &Result{RunID: c.runIDs.Generate()}}
	r.log = c.logger.With("run_id", r.RunID)
	cfg := c.cfg

	shell, err := lines.Load(src.Shell)
	if err != nil {
		return nil, r.fail(stepErr(StepLoadShell, src.Shell, err))
	}
	r.record(StepLoadShell, src.Shell, shell.Len(), shell.Size())

	draft, err := lines.Load(src.Draft)
	if err != nil {
		return nil, r.fail(stepErr(StepLoadDraft, src.Draft, err))
	}
	r.record(StepLoadDraft, src.Draft, draft.Len(), draft.Size())

	legacy, err := lines.Load(src.Legacy)
	if err != nil {
		return nil, r.fail(stepErr(StepLoadLegacy, src.Legacy, err))
	}
	r.record(StepLoadLegacy, src.Legacy, legacy.Len(), legacy.Size())

	content, err := lines.Between(draft.Lines(), cfg.DraftStart, cfg.DraftEnd, false)
	if err != nil {
		return nil, r.fail(stepErr(StepDraftContent, src.Draft, err))
	}
	r.record(StepDraftContent, src.Draft, content.Len(), content.Size())

	data, err := c.legacyData(legacy)
	if err != nil {
		return nil, r.fail(stepErr(StepLegacyData, src.Legacy, err))
	}
	r.record(StepLegacyData, src.Legacy, data.Len(), data.Size())

	script, err := lines.Between(legacy.Lines(), cfg.ScriptStart, cfg.ScriptEnd, cfg.ScriptInclusive)
	if err != nil {
		return nil, r.fail(stepErr(StepLegacyScript, src.Legacy, err))
	}
	r.record(StepLegacyScript, src.Legacy, script.Len(), script.Size())

	data, _, err = dataRewrites(cfg).Apply(data)
	if err != nil {
		return nil, r.fail(stepErr(StepRewriteData, src.Legacy, err))
	}
	r.record(StepRewriteData, src.Legacy, data.Len(), data.Size())

	merged, err := lines.Inject(content, cfg.DraftAnchor, data)
	if err != nil {
		return nil, r.fail(stepErr(StepInjectData, src.Draft, err))
	}
	r.record(StepInjectData, src.Draft, merged.Len(), merged.Size())

	filtered, reports, err := c.filter.Apply(script)
	r.Rules = reports
	for _, rep := range reports {
		r.log.Debug("rule applied", "rule", rep.Rule, "lines_in", rep.LinesIn, "lines_out", rep.LinesOut)
	}
	if err != nil {
		return nil, r.fail(stepErr(StepFilterScript, src.Legacy, err))
	}
	r.record(StepFilterScript, src.Legacy, filtered.Len(), filtered.Size())

	shellLines := shell.Lines()
	anchor, err := lines.Locate(shellLines, cfg.ShellAnchor, 0)
	if err != nil {
		return nil, r.fail(stepErr(StepLocateAnchor, src.Shell, err))
	}
	prefix := lines.Fragment(shellLines[:anchor+1])
	r.record(StepLocateAnchor, src.Shell, prefix.Len(), prefix.Size())

	out := assemble(prefix, merged, filtered, cfg.Closing)
	r.Output = []byte(out)
	r.Bytes = len(out)
	r.Lines = len(lines.Split(out))
	sum := blake3.Sum256(r.Output)
	r.Digest = hex.EncodeToString(sum[:])
	r.record(StepAssemble, "", r.Lines, r.Bytes)

	return r.Result, nil
}

// Run composes and writes the result to outPath. The file is replaced only
// when every step succeeded.
func (c *Composer) Run(src Sources, outPath string) (*Result, error) {
	res, err := c.Compose(src)
	if err != nil {
		return nil, err
	}

	log := c.logger.With("run_id", res.RunID)
	if err := WriteFile(outPath, res.Output); err != nil {
		log.Debug("step failed", "step", StepWriteOutput, "error", err)
		return nil, stepErr(StepWriteOutput, outPath, err)
	}
	res.OutputPath = outPath
	res.Written = true
	res.Steps = append(res.Steps, StepReport{Step: StepWriteOutput, Source: outPath, Lines: res.Lines, Bytes: res.Bytes})
	log.Info("step complete", "step", StepWriteOutput, "source", outPath, "lines", res.Lines, "bytes", res.Bytes, "digest", res.Digest)
	return res, nil
}

// legacyData extracts the data fragment by markers when configured,
// otherwise by line range.
func (c *Composer) legacyData(legacy *lines.Document) (lines.Fragment, error) {
	if c.cfg.UsesLegacyMarkers() {
		return lines.Between(legacy.Lines(), c.cfg.LegacyStart, c.cfg.LegacyEnd, false)
	}
	return lines.Range(legacy.Lines(), c.cfg.LegacyRange[0], c.cfg.LegacyRange[1])
}

// assemble concatenates the output parts, separated by newlines.
func assemble(prefix, content, script lines.Fragment, closing string) string {
	var b strings.Builder
	b.Grow(prefix.Size() + content.Size() + script.Size() + len(closing) + 3)
	b.WriteString(prefix.String())
	b.WriteString("\n")
	b.WriteString(content.String())
	b.WriteString("\n")
	b.WriteString(script.String())
	b.WriteString("\n")
	b.WriteString(closing)
	return b.String()
}
