package filter

import (
	"fmt"
	"strings"

	"github.com/roach88/splice/internal/lines"
)

const (
	scopeOpen  = "{"
	scopeClose = "}"
)

// RemoveBlock drops every code block whose first line contains Marker.
//
// Depth starts at zero on the trigger line and moves by the number of
// opening minus closing braces on each line, the trigger line included.
// The block ends on the first line where depth is back to zero, so a trigger
// line with no net braces is removed alone. A block still open at the end of
// the fragment is an ErrCodeUnbalancedBlock error.
type RemoveBlock struct {
	Marker string
}

func (r RemoveBlock) Name() string {
	return fmt.Sprintf("remove-block(%s)", r.Marker)
}

func (r RemoveBlock) Apply(frag lines.Fragment) (lines.Fragment, error) {
	out := make(lines.Fragment, 0, len(frag))
	for i := 0; i < len(frag); i++ {
		if r.Marker == "" || !strings.Contains(frag[i], r.Marker) {
			out = append(out, frag[i])
			continue
		}
		end, err := blockEnd(frag, i)
		if err != nil {
			return nil, &lines.Error{
				Code:    lines.ErrCodeUnbalancedBlock,
				Message: "block never closes before end of fragment",
				Marker:  r.Marker,
				Line:    i + 1,
				Err:     err,
			}
		}
		i = end
	}
	return out, nil
}

// blockEnd returns the index of the line closing the block opened at start.
func blockEnd(frag lines.Fragment, start int) (int, error) {
	depth := 0
	for j := start; j < len(frag); j++ {
		depth += strings.Count(frag[j], scopeOpen) - strings.Count(frag[j], scopeClose)
		if depth == 0 {
			return j, nil
		}
	}
	return -1, fmt.Errorf("depth %d after %d lines", depth, len(frag)-start)
}

// RemoveLines drops every line containing any of Substrings.
type RemoveLines struct {
	Substrings []string
}

func (r RemoveLines) Name() string {
	return fmt.Sprintf("remove-lines(%s)", strings.Join(r.Substrings, ", "))
}

func (r RemoveLines) Apply(frag lines.Fragment) (lines.Fragment, error) {
	out := make(lines.Fragment, 0, len(frag))
	for _, l := range frag {
		if !r.matches(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r RemoveLines) matches(l string) bool {
	for _, s := range r.Substrings {
		if s != "" && strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// Rename replaces every occurrence of From with To across the fragment
// text. The result is split into lines again, so From and To may span or
// introduce line breaks.
type Rename struct {
	From string
	To   string
}

func (r Rename) Name() string {
	return fmt.Sprintf("rename(%s -> %s)", r.From, r.To)
}

func (r Rename) Apply(frag lines.Fragment) (lines.Fragment, error) {
	if r.From == "" {
		return frag.Clone(), nil
	}
	return lines.FragmentOf(strings.ReplaceAll(frag.String(), r.From, r.To)), nil
}

// InjectBefore inserts Lines once, before the first line whose content,
// ignoring leading whitespace, starts with any of Prefixes. With no such
// line the block goes to the start of the fragment.
type InjectBefore struct {
	Lines    lines.Fragment
	Prefixes []string
}

func (r InjectBefore) Name() string {
	return fmt.Sprintf("inject-before(%s)", strings.Join(r.Prefixes, ", "))
}

func (r InjectBefore) Apply(frag lines.Fragment) (lines.Fragment, error) {
	block := r.Lines.Clone()
	if n := len(block); n > 0 && !strings.HasSuffix(block[n-1], "\n") {
		block[n-1] += "\n"
	}

	pos := r.insertionPoint(frag)
	out := make(lines.Fragment, 0, len(frag)+len(block))
	out = append(out, frag[:pos]...)
	out = append(out, block...)
	out = append(out, frag[pos:]...)
	return out, nil
}

func (r InjectBefore) insertionPoint(frag lines.Fragment) int {
	for i, l := range frag {
		trimmed := strings.TrimLeft(l, " \t")
		for _, p := range r.Prefixes {
			if p != "" && strings.HasPrefix(trimmed, p) {
				return i
			}
		}
	}
	return 0
}
