package lines

import "strings"

// Inject returns target with add inserted immediately before the first line
// containing anchor. The anchor line and every other target line keep their
// content and relative order.
//
// If the last added line has no terminator, "\n" is appended to it so it
// cannot run into the anchor line.
func Inject(target Fragment, anchor string, add Fragment) (Fragment, error) {
	k, err := Locate(target, anchor, 0)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeAnchorNotFound,
			Message: "injection anchor not found",
			Marker:  anchor,
			Err:     err,
		}
	}

	block := add.Clone()
	if n := len(block); n > 0 && !strings.HasSuffix(block[n-1], "\n") {
		block[n-1] += "\n"
	}

	out := make(Fragment, 0, len(target)+len(block))
	out = append(out, target[:k]...)
	out = append(out, block...)
	out = append(out, target[k:]...)
	return out, nil
}
