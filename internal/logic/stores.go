package logic

import (
	"arecibodash/internal/codec"
	"arecibodash/internal/domain"
)

// HostSelectionStore holds the hosts currently selected in the hosts tree
type HostSelectionStore struct {
	hosts []domain.SelectedHost
	index map[string]struct{}
}

// NewHostSelectionStore creates a store seeded with hosts, dropping duplicate names
func NewHostSelectionStore(hosts []domain.SelectedHost) *HostSelectionStore {
	s := &HostSelectionStore{}
	s.set(hosts)
	return s
}

func (s *HostSelectionStore) set(hosts []domain.SelectedHost) {
	s.hosts = make([]domain.SelectedHost, 0, len(hosts))
	s.index = make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if _, dup := s.index[h.HostName]; dup {
			continue
		}
		s.index[h.HostName] = struct{}{}
		s.hosts = append(s.hosts, h)
	}
}

// RebuildFromTree replaces the selection with the fully selected leaves among nodes
func (s *HostSelectionStore) RebuildFromTree(nodes []domain.TreeNode) []domain.SelectedHost {
	hosts := make([]domain.SelectedHost, 0, len(nodes))
	for _, node := range nodes {
		if node.HasSubSelection() || !node.IsLeaf() {
			continue
		}
		category := domain.NoCategory
		if parent, ok := node.ParentLabel(); ok {
			category = domain.CategoryOf(parent)
		}
		hosts = append(hosts, domain.SelectedHost{HostName: node.Label(), Category: category})
	}
	s.set(hosts)
	return s.Hosts()
}

// Hosts returns a copy of the selection in tree order
func (s *HostSelectionStore) Hosts() []domain.SelectedHost {
	return append([]domain.SelectedHost(nil), s.hosts...)
}

// Contains reports whether hostName is selected
func (s *HostSelectionStore) Contains(hostName string) bool {
	_, ok := s.index[hostName]
	return ok
}

// DerivedCategories is the set of categories the selected hosts were picked under
func (s *HostSelectionStore) DerivedCategories() Set {
	return DerivedCategories(s.hosts)
}

// DerivedCategories is the set of distinct categories of hosts
func DerivedCategories(hosts []domain.SelectedHost) Set {
	return MakeSet(hosts, func(h domain.SelectedHost) domain.Category { return h.Category })
}

type sampleKindKey struct {
	kind     string
	category domain.Category
}

// SampleKindSelectionStore holds the sample kinds currently selected in the
// sample kinds tree, keyed on the (kind, category) pair
type SampleKindSelectionStore struct {
	kinds []domain.SelectedSampleKind
	index map[sampleKindKey]struct{}
}

// NewSampleKindSelectionStore creates a store seeded with kinds, dropping duplicate pairs
func NewSampleKindSelectionStore(kinds []domain.SelectedSampleKind) *SampleKindSelectionStore {
	s := &SampleKindSelectionStore{}
	s.set(kinds)
	return s
}

func (s *SampleKindSelectionStore) set(kinds []domain.SelectedSampleKind) {
	s.kinds = make([]domain.SelectedSampleKind, 0, len(kinds))
	s.index = make(map[sampleKindKey]struct{}, len(kinds))
	for _, k := range kinds {
		key := sampleKindKey{kind: k.SampleKind, category: k.SampleCategory}
		if _, dup := s.index[key]; dup {
			continue
		}
		s.index[key] = struct{}{}
		s.kinds = append(s.kinds, k)
	}
}

// RebuildFromTree replaces the selection with the fully selected leaves among
// nodes. A super group label carries its own category and overrides the parent.
func (s *SampleKindSelectionStore) RebuildFromTree(nodes []domain.TreeNode) []domain.SelectedSampleKind {
	kinds := make([]domain.SelectedSampleKind, 0, len(nodes))
	for _, node := range nodes {
		if node.HasSubSelection() || !node.IsLeaf() {
			continue
		}
		kinds = append(kinds, SampleKindFromLabel(node.Label(), node.ParentLabel))
	}
	s.set(kinds)
	return s.SampleKinds()
}

// SampleKindFromLabel resolves the (kind, category) pair of a tree leaf
func SampleKindFromLabel(label string, parent func() (string, bool)) domain.SelectedSampleKind {
	if category, kind, err := codec.DecodeSuperGroup(label); err == nil {
		return domain.SelectedSampleKind{SampleKind: kind, SampleCategory: domain.CategoryOf(category)}
	}
	category := domain.NoCategory
	if parent != nil {
		if p, ok := parent(); ok {
			category = domain.CategoryOf(p)
		}
	}
	return domain.SelectedSampleKind{SampleKind: label, SampleCategory: category}
}

// SampleKinds returns a copy of the selection in tree order
func (s *SampleKindSelectionStore) SampleKinds() []domain.SelectedSampleKind {
	return append([]domain.SelectedSampleKind(nil), s.kinds...)
}

// Contains reports whether kind is selected under category
func (s *SampleKindSelectionStore) Contains(kind string, category domain.Category) bool {
	_, ok := s.index[sampleKindKey{kind: kind, category: category}]
	return ok
}
