package compose

import (
	"fmt"

	"github.com/roach88/splice/internal/config"
	"github.com/roach88/splice/internal/lines"
)

// Check statuses.
const (
	CheckOK         = "ok"
	CheckMissing    = "missing"
	CheckDuplicate  = "duplicate" // found more than once; the first line is used
	CheckOutOfRange = "out_of_range"
)

// MarkerCheck reports where one configured marker occurs in its source.
type MarkerCheck struct {
	Source string `json:"source"`
	Field  string `json:"field"`
	Marker string `json:"marker"`
	Lines  []int  `json:"lines"` // 1-indexed
	Status string `json:"status"`
}

// Check locates every required marker in the sources without composing.
// Only load failures are returned as errors; missing markers are reported
// in the result.
func Check(cfg *config.Config, src Sources) ([]MarkerCheck, error) {
	shell, err := lines.Load(src.Shell)
	if err != nil {
		return nil, stepErr(StepLoadShell, src.Shell, err)
	}
	draft, err := lines.Load(src.Draft)
	if err != nil {
		return nil, stepErr(StepLoadDraft, src.Draft, err)
	}
	legacy, err := lines.Load(src.Legacy)
	if err != nil {
		return nil, stepErr(StepLoadLegacy, src.Legacy, err)
	}

	var checks []MarkerCheck
	add := func(doc *lines.Document, field, marker string) MarkerCheck {
		c := checkMarker(doc, field, marker)
		checks = append(checks, c)
		return c
	}
	addEnd := func(doc *lines.Document, field, marker string, start MarkerCheck) {
		checks = append(checks, checkEnd(checkMarker(doc, field, marker), start))
	}

	add(shell, "shellAnchor", cfg.ShellAnchor)
	draftStart := add(draft, "draftStart", cfg.DraftStart)
	addEnd(draft, "draftEnd", cfg.DraftEnd, draftStart)
	add(draft, "draftAnchor", cfg.DraftAnchor)
	if cfg.UsesLegacyMarkers() {
		legacyStart := add(legacy, "legacyStart", cfg.LegacyStart)
		addEnd(legacy, "legacyEnd", cfg.LegacyEnd, legacyStart)
	} else {
		checks = append(checks, checkRange(legacy, cfg.LegacyRange))
	}
	scriptStart := add(legacy, "scriptStart", cfg.ScriptStart)
	addEnd(legacy, "scriptEnd", cfg.ScriptEnd, scriptStart)

	return checks, nil
}

// Passed reports whether every check found its marker.
func Passed(checks []MarkerCheck) bool {
	for _, c := range checks {
		if c.Status == CheckMissing || c.Status == CheckOutOfRange {
			return false
		}
	}
	return true
}

func checkMarker(doc *lines.Document, field, marker string) MarkerCheck {
	c := MarkerCheck{Source: doc.Path, Field: field, Marker: marker, Status: CheckOK}
	for _, idx := range lines.LocateAll(doc.Lines(), marker) {
		c.Lines = append(c.Lines, idx+1)
	}
	switch {
	case len(c.Lines) == 0:
		c.Status = CheckMissing
	case len(c.Lines) > 1:
		c.Status = CheckDuplicate
	}
	return c
}

// checkEnd marks an end marker missing when none of its occurrences follows
// the first start line, since extraction only looks after the start.
func checkEnd(c, start MarkerCheck) MarkerCheck {
	if len(start.Lines) == 0 || len(c.Lines) == 0 {
		return c
	}
	after := 0
	for _, l := range c.Lines {
		if l > start.Lines[0] {
			after++
		}
	}
	switch {
	case after == 0:
		c.Status = CheckMissing
	case after == 1:
		c.Status = CheckOK
	}
	return c
}

func checkRange(doc *lines.Document, r []int) MarkerCheck {
	c := MarkerCheck{Source: doc.Path, Field: "legacyRange", Status: CheckOK}
	if len(r) != 2 {
		c.Status = CheckOutOfRange
		return c
	}
	c.Marker = fmt.Sprintf("%d-%d", r[0], r[1])
	c.Lines = []int{r[0], r[1]}
	if _, err := lines.Range(doc.Lines(), r[0], r[1]); err != nil {
		c.Status = CheckOutOfRange
	}
	return c
}
