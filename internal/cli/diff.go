package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/roach88/splice/internal/compose"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

var (
	diffInsert = color.New(color.FgGreen).SprintFunc()
	diffDelete = color.New(color.FgRed).SprintFunc()
	diffHunk   = color.New(color.FgCyan).SprintFunc()
)

// renderDiff prints changed lines with a little context, unified-diff style.
func renderDiff(w io.Writer, diff []compose.DiffLine) {
	show := make([]bool, len(diff))
	for i, d := range diff {
		if d.Op == compose.DiffEqual {
			continue
		}
		for j := max(0, i-diffContext); j <= min(len(diff)-1, i+diffContext); j++ {
			show[j] = true
		}
	}

	gap := true
	for i, d := range diff {
		if !show[i] {
			gap = true
			continue
		}
		if gap {
			fmt.Fprintln(w, diffHunk("@@"))
			gap = false
		}
		text := strings.TrimRight(d.Text, "\r\n")
		switch d.Op {
		case compose.DiffInsert:
			fmt.Fprintln(w, diffInsert("+"+text))
		case compose.DiffDelete:
			fmt.Fprintln(w, diffDelete("-"+text))
		default:
			fmt.Fprintln(w, " "+text)
		}
	}
}
