package lines

import (
	"fmt"
	"strings"
)

// Locate returns the index of the first line at or after from that contains
// marker. It fails with ErrCodeMarkerNotFound when no line matches, when
// marker is empty, or when from lies outside the slice.
func Locate(ls []string, marker string, from int) (int, error) {
	if marker == "" {
		return -1, &Error{Code: ErrCodeMarkerNotFound, Message: "empty marker"}
	}
	if from < 0 || from > len(ls) {
		return -1, &Error{
			Code:    ErrCodeMarkerNotFound,
			Message: fmt.Sprintf("search start %d outside %d lines", from, len(ls)),
			Marker:  marker,
		}
	}
	for i := from; i < len(ls); i++ {
		if strings.Contains(ls[i], marker) {
			return i, nil
		}
	}
	return -1, &Error{
		Code:    ErrCodeMarkerNotFound,
		Message: "marker not found",
		Marker:  marker,
	}
}

// LocateAll returns the indices of every line containing marker.
func LocateAll(ls []string, marker string) []int {
	if marker == "" {
		return nil
	}
	var out []int
	for i, l := range ls {
		if strings.Contains(l, marker) {
			out = append(out, i)
		}
	}
	return out
}
