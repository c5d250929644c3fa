package codec

import (
	"net/url"
	"strings"

	"arecibodash/internal/domain"
)

// Query parameter names understood by the collector and the graph page
const (
	ParamHost                  = "host"
	ParamCategoryAndSampleKind = "category_and_sample_kind"
)

// EncodeSelection renders hosts as host=<name> pairs joined by '&'
func EncodeSelection(hosts []domain.SelectedHost) string {
	parts := make([]string, 0, len(hosts))
	for _, h := range hosts {
		parts = append(parts, ParamHost+"="+url.QueryEscape(h.HostName))
	}
	return strings.Join(parts, "&")
}

// EncodeSampleKindSelection renders kinds as category_and_sample_kind=<category,>kind
// pairs joined by '&'. The category prefix is left out for the null category.
func EncodeSampleKindSelection(kinds []domain.SelectedSampleKind) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		value := url.QueryEscape(k.SampleKind)
		if k.SampleCategory.Valid {
			value = url.QueryEscape(k.SampleCategory.Name) + "," + value
		}
		parts = append(parts, ParamCategoryAndSampleKind+"="+value)
	}
	return strings.Join(parts, "&")
}

// JoinQuery joins non-empty query fragments with '&'
func JoinQuery(fragments ...string) string {
	nonEmpty := fragments[:0:0]
	for _, f := range fragments {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.Join(nonEmpty, "&")
}
