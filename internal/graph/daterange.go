package graph

import (
	"fmt"
	"strings"
	"time"

	apperrors "arecibodash/internal/errors"
)

// Accepted date input layouts, most specific first
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"Mon, 02 Jan 2006 15:04",
	"Mon, 2 Jan 2006 15:04",
	"2006-01-02",
}

// ParseTime parses a date input in loc. An empty input returns the zero time.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.Validation(fmt.Sprintf("unrecognised date %q", s))
}

// Side names the date input that was just edited
type Side int

const (
	Start Side = iota
	End
)

// AdjustRange keeps start no later than end after one side was edited. An
// empty counterpart takes the edited value; when the two cross, the other
// side is moved onto the edited one.
func AdjustRange(start, end string, edited Side, loc *time.Location) (string, string) {
	switch edited {
	case Start:
		if strings.TrimSpace(start) == "" {
			return start, end
		}
		if strings.TrimSpace(end) == "" {
			return start, start
		}
		s, errS := ParseTime(start, loc)
		e, errE := ParseTime(end, loc)
		if errS == nil && errE == nil && s.After(e) {
			return start, start
		}
	case End:
		if strings.TrimSpace(end) == "" {
			return start, end
		}
		if strings.TrimSpace(start) == "" {
			return end, end
		}
		s, errS := ParseTime(start, loc)
		e, errE := ParseTime(end, loc)
		if errS == nil && errE == nil && s.After(e) {
			return end, end
		}
	}
	return start, end
}
