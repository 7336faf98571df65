package lines

import "fmt"

// Between extracts the lines bounded by the first line containing start and
// the next line after it containing end.
//
// With inclusive false the boundary lines are excluded; with inclusive true
// both are part of the result. Either marker missing fails with
// ErrCodeBoundsNotFound wrapping the locator error.
func Between(ls []string, start, end string, inclusive bool) (Fragment, error) {
	s, err := Locate(ls, start, 0)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeBoundsNotFound,
			Message: "start marker not found",
			Marker:  start,
			Err:     err,
		}
	}

	e, err := Locate(ls, end, s+1)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeBoundsNotFound,
			Message: fmt.Sprintf("end marker not found after line %d", s+1),
			Marker:  end,
			Err:     err,
		}
	}

	if inclusive {
		return Fragment(ls[s : e+1]).Clone(), nil
	}
	return Fragment(ls[s+1 : e]).Clone(), nil
}

// Range extracts lines first through last, 1-indexed and inclusive.
func Range(ls []string, first, last int) (Fragment, error) {
	if first < 1 || last > len(ls) || first > last {
		return nil, &Error{
			Code:    ErrCodeRangeOutOfBounds,
			Message: fmt.Sprintf("range [%d, %d] invalid for %d lines", first, last, len(ls)),
			Marker:  fmt.Sprintf("%d-%d", first, last),
		}
	}
	return Fragment(ls[first-1 : last]).Clone(), nil
}
