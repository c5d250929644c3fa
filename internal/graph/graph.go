package graph

import (
	"strconv"
	"strings"
	"time"

	"arecibodash/internal/codec"
	"arecibodash/internal/domain"
	apperrors "arecibodash/internal/errors"
)

// Defaults of the graph page
const (
	DefaultPath        = "/graph"
	DefaultOutputCount = 500
)

// Request is everything the graph page needs
type Request struct {
	Hosts       []domain.SelectedHost
	SampleKinds []domain.SelectedSampleKind
	From        time.Time
	To          time.Time
	OutputCount int
}

// Validate checks that a graph can be drawn for r
func Validate(r Request) error {
	switch {
	case r.From.IsZero():
		return apperrors.Validation("please enter a start date")
	case r.To.IsZero():
		return apperrors.Validation("please enter an end date")
	case r.From.After(r.To):
		return apperrors.Validation("the start date must be before the end date")
	case len(r.Hosts) == 0:
		return apperrors.Validation("please select at least one host")
	case len(r.SampleKinds) == 0:
		return apperrors.Validation("please select at least one sample kind")
	case r.OutputCount <= 0:
		return apperrors.Validation("the number of samples must be positive")
	}
	return nil
}

// BuildURL validates r and renders the graph page URL under path
func BuildURL(path string, r Request) (string, error) {
	if err := Validate(r); err != nil {
		return "", err
	}
	if path == "" {
		path = DefaultPath
	}
	query := codec.JoinQuery(
		codec.EncodeSelection(r.Hosts),
		codec.EncodeSampleKindSelection(r.SampleKinds),
		"from="+ISODateString(r.From),
		"to="+ISODateString(r.To),
		"output_count="+strconv.Itoa(r.OutputCount),
	)

	var b strings.Builder
	b.WriteString(path)
	b.WriteString("?")
	b.WriteString(query)
	return b.String(), nil
}

// ISODateString formats t as RFC 3339 in UTC with second precision
func ISODateString(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
