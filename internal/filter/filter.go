// Package filter rewrites script fragments with line-based heuristics.
//
// There is no script grammar here. Blocks are found by a marker substring
// and closed by counting braces, lines are dropped by substring containment,
// and renames are literal text replacement. Callers depend on the Filter
// interface so a grammar-aware implementation can replace Pipeline without
// changing them.
//
// Removed lines are dropped, never replaced with blank placeholders: the
// output line count is not preserved.
package filter

import (
	"github.com/roach88/splice/internal/lines"
)

// Filter transforms a fragment into a new fragment.
type Filter interface {
	Apply(frag lines.Fragment) (lines.Fragment, []Report, error)
}

// Rule is one transformation step.
type Rule interface {
	// Name identifies the rule in reports and logs.
	Name() string

	// Apply returns the transformed fragment. It must not modify frag.
	Apply(frag lines.Fragment) (lines.Fragment, error)
}

// Report records the effect of one rule.
type Report struct {
	Rule     string `json:"rule"`
	LinesIn  int    `json:"lines_in"`
	LinesOut int    `json:"lines_out"`
}

// Pipeline applies rules in declaration order, each seeing the cumulative
// result of the rules before it.
type Pipeline []Rule

// Apply runs every rule. The first failing rule aborts the pipeline.
func (p Pipeline) Apply(frag lines.Fragment) (lines.Fragment, []Report, error) {
	cur := frag.Clone()
	reports := make([]Report, 0, len(p))
	for _, r := range p {
		next, err := r.Apply(cur)
		if err != nil {
			return nil, reports, err
		}
		reports = append(reports, Report{Rule: r.Name(), LinesIn: len(cur), LinesOut: len(next)})
		cur = next
	}
	return cur, reports, nil
}
