package codec

import (
	"fmt"
	"strings"

	apperrors "arecibodash/internal/errors"
)

// SuperGroupSeparator joins the category and the kind of a super group label
const SuperGroupSeparator = "::"

// EncodeSuperGroup builds a "category::kind" label
func EncodeSuperGroup(category, kind string) string {
	return category + SuperGroupSeparator + kind
}

// IsSuperGroup reports whether s splits into exactly two parts on "::"
func IsSuperGroup(s string) bool {
	return s != "" && len(strings.Split(s, SuperGroupSeparator)) == 2
}

// DecodeSuperGroup splits a super group label into its category and kind
func DecodeSuperGroup(s string) (category, kind string, err error) {
	if !IsSuperGroup(s) {
		return "", "", apperrors.Format(fmt.Sprintf("not a super group label: %q", s), nil)
	}
	parts := strings.Split(s, SuperGroupSeparator)
	return parts[0], parts[1], nil
}
