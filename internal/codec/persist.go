package codec

import (
	"encoding/json"

	"arecibodash/internal/domain"
	apperrors "arecibodash/internal/errors"
)

// EncodeHosts renders hosts in their persisted form
func EncodeHosts(hosts []domain.SelectedHost) (string, error) {
	if hosts == nil {
		hosts = []domain.SelectedHost{}
	}
	data, err := json.Marshal(hosts)
	if err != nil {
		return "", apperrors.Format("failed to encode hosts", err)
	}
	return string(data), nil
}

// DecodeHosts parses the persisted form of hosts. "null" and the empty string
// decode to an empty selection.
func DecodeHosts(s string) ([]domain.SelectedHost, error) {
	var hosts []domain.SelectedHost
	if s == "" {
		return hosts, nil
	}
	if err := json.Unmarshal([]byte(s), &hosts); err != nil {
		return nil, apperrors.Format("malformed persisted hosts", err)
	}
	for _, h := range hosts {
		if h.HostName == "" {
			return nil, apperrors.Format("persisted host without a name", nil)
		}
	}
	return hosts, nil
}

// EncodeSampleKinds renders sample kinds in their persisted form
func EncodeSampleKinds(kinds []domain.SelectedSampleKind) (string, error) {
	if kinds == nil {
		kinds = []domain.SelectedSampleKind{}
	}
	data, err := json.Marshal(kinds)
	if err != nil {
		return "", apperrors.Format("failed to encode sample kinds", err)
	}
	return string(data), nil
}

// DecodeSampleKinds parses the persisted form of sample kinds
func DecodeSampleKinds(s string) ([]domain.SelectedSampleKind, error) {
	var kinds []domain.SelectedSampleKind
	if s == "" {
		return kinds, nil
	}
	if err := json.Unmarshal([]byte(s), &kinds); err != nil {
		return nil, apperrors.Format("malformed persisted sample kinds", err)
	}
	for _, k := range kinds {
		if k.SampleKind == "" {
			return nil, apperrors.Format("persisted sample kind without a name", nil)
		}
	}
	return kinds, nil
}
