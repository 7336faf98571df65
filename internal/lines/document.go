package lines

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Document is an immutable source file split into lines.
// Each line keeps its terminator, so joining the lines reproduces the text.
type Document struct {
	// Path is where the document was loaded from (or a label for in-memory
	// documents). Used in diagnostics only.
	Path string

	lines []string
	size  int
}

// Load reads path as UTF-8 text. A leading byte order mark is stripped so
// it cannot end up in the middle of a composed document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeIOFailure,
			Message: fmt.Sprintf("reading %s", path),
			Err:     err,
		}
	}

	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeIOFailure,
			Message: fmt.Sprintf("decoding %s as UTF-8", path),
			Err:     err,
		}
	}

	return FromString(path, string(text)), nil
}

// FromString builds a Document from in-memory text.
func FromString(path, text string) *Document {
	return &Document{
		Path:  path,
		lines: Split(text),
		size:  len(text),
	}
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Size returns the document size in bytes.
func (d *Document) Size() int {
	return d.size
}

// Split breaks text into lines, keeping each "\n" with the line it ends.
// A final line without a terminator is kept as is; empty text yields no lines.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// Fragment is a contiguous run of lines taken from one document.
type Fragment []string

// FragmentOf splits text into a Fragment.
func FragmentOf(text string) Fragment {
	return Fragment(Split(text))
}

// String joins the fragment lines back into text.
func (f Fragment) String() string {
	return strings.Join(f, "")
}

// Len returns the number of lines.
func (f Fragment) Len() int {
	return len(f)
}

// Size returns the fragment size in bytes.
func (f Fragment) Size() int {
	n := 0
	for _, l := range f {
		n += len(l)
	}
	return n
}

// Clone returns a copy that shares no backing array with f.
func (f Fragment) Clone() Fragment {
	if f == nil {
		return nil
	}
	out := make(Fragment, len(f))
	copy(out, f)
	return out
}
