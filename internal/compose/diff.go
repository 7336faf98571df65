package compose

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/roach88/splice/internal/lines"
)

// DiffOp is the kind of a diff line.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// DiffStats counts inserted and deleted lines.
type DiffStats struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// LineDiff computes a line-level diff from before to after.
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, l := range lines.Split(d.Text) {
			out = append(out, DiffLine{Op: op, Text: l})
		}
	}
	return out
}

// Stats counts the changed lines of a diff.
func Stats(diff []DiffLine) DiffStats {
	var s DiffStats
	for _, d := range diff {
		switch d.Op {
		case DiffInsert:
			s.Inserted++
		case DiffDelete:
			s.Deleted++
		}
	}
	return s
}
