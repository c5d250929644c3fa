package reconciler

import (
	"sort"

	"arecibodash/internal/codec"
	"arecibodash/internal/domain"
)

// OrderHosts sorts hosts by core type then host name. Hosts without a core
// type come first.
func OrderHosts(hosts []domain.Host) []domain.Host {
	out := append([]domain.Host(nil), hosts...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CoreType.Normalize(), out[j].CoreType.Normalize()
		if a != b {
			if a.Valid != b.Valid {
				return !a.Valid
			}
			return a.Name < b.Name
		}
		return out[i].HostName < out[j].HostName
	})
	return out
}

// OrderSampleKinds puts super group categories first, then sorts categories
// and the kinds inside each category alphabetically. The input is not modified.
func OrderSampleKinds(entries []domain.SampleKindEntry) []domain.SampleKindEntry {
	out := make([]domain.SampleKindEntry, len(entries))
	for i, e := range entries {
		kinds := append([]string(nil), e.SampleKinds...)
		out[i] = domain.SampleKindEntry{SampleCategory: e.SampleCategory, SampleKinds: kinds}
	}
	// The super group flag comes from the first kind as reported
	superGroup := make(map[int]bool, len(out))
	for i, e := range out {
		superGroup[i] = isSuperGroupEntry(e)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if superGroup[a] != superGroup[b] {
			return superGroup[a]
		}
		return out[a].SampleCategory < out[b].SampleCategory
	})

	sorted := make([]domain.SampleKindEntry, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
		sort.Strings(sorted[i].SampleKinds)
	}
	return sorted
}

func isSuperGroupEntry(e domain.SampleKindEntry) bool {
	return len(e.SampleKinds) > 0 && codec.IsSuperGroup(e.SampleKinds[0])
}
