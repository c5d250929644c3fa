package logic

import (
	"sort"

	"arecibodash/internal/domain"
)

// Set is a set of optional string keys. The null key is a member distinct
// from every string.
type Set map[domain.Category]struct{}

// MakeSet collects field(record) for each record
func MakeSet[T any](records []T, field func(T) domain.Category) Set {
	set := make(Set, len(records))
	for _, r := range records {
		set[field(r)] = struct{}{}
	}
	return set
}

// SetOf builds a set of non-null keys
func SetOf(keys ...string) Set {
	set := make(Set, len(keys))
	for _, k := range keys {
		set[domain.CategoryOf(k)] = struct{}{}
	}
	return set
}

// SetsEqual reports whether a and b have the same members. A nil set equals an empty one.
func SetsEqual(a, b Set) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func (s Set) Contains(key domain.Category) bool {
	_, ok := s[key]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order, null first
func (s Set) Sorted() []domain.Category {
	keys := make([]domain.Category, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Valid != keys[j].Valid {
			return !keys[i].Valid
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}

// Names returns the non-null members in ascending order
func (s Set) Names() []string {
	var names []string
	for _, k := range s.Sorted() {
		if k.Valid {
			names = append(names, k.Name)
		}
	}
	return names
}
