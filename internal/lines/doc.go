// Package lines provides the line-oriented document model used by splice.
//
// A Document is the verbatim content of a source file split into lines with
// their terminators preserved. A Fragment is a contiguous run of lines taken
// from one Document. Nothing in this package parses markup or script: every
// boundary is found by literal, case-sensitive substring containment, and the
// first matching line wins.
//
// The package has three groups of operations:
//
//   - Locate / LocateAll find marker lines.
//   - Between / Range extract fragments by markers or by a 1-indexed line range.
//   - Inject inserts a fragment before an anchor line.
//
// All operations return new slices. Inputs are never modified, so a Document
// can be shared between extraction steps without copying.
//
// Failures are reported as *Error values carrying an ErrorCode. Use IsCode to
// test for a specific kind through any amount of wrapping:
//
//	_, err := lines.Between(doc.Lines(), "<body>", "</body>", false)
//	if lines.IsCode(err, lines.ErrCodeBoundsNotFound) {
//	    ...
//	}
package lines
