package reconciler

import (
	"arecibodash/internal/domain"
	"arecibodash/internal/logic"
)

// PlanHostsTree lays out hosts as folders per core type. Hosts without a core
// type are attached to the root. A folder holding a selected host is expanded.
func PlanHostsTree(hosts []domain.Host, selected *logic.HostSelectionStore) []domain.TreeFolder {
	var folders []domain.TreeFolder
	index := make(map[domain.Category]int)

	for _, h := range OrderHosts(hosts) {
		coreType := h.CoreType.Normalize()
		i, ok := index[coreType]
		if !ok {
			folders = append(folders, domain.TreeFolder{Title: coreType.Name})
			i = len(folders) - 1
			index[coreType] = i
		}
		isSelected := selected != nil && selected.Contains(h.HostName)
		folders[i].Leaves = append(folders[i].Leaves, domain.TreeLeaf{Title: h.HostName, Selected: isSelected})
		if isSelected {
			folders[i].Expand = true
		}
	}
	return folders
}

// PlanSampleKindsTree lays out ordered entries as one folder per category.
// A kind is restored as selected only when both its kind and category match.
func PlanSampleKindsTree(entries []domain.SampleKindEntry, selected *logic.SampleKindSelectionStore) []domain.TreeFolder {
	folders := make([]domain.TreeFolder, 0, len(entries))
	for _, e := range entries {
		folder := domain.TreeFolder{Title: e.SampleCategory, Highlight: isSuperGroupEntry(e)}
		parent := func() (string, bool) { return e.SampleCategory, true }
		for _, kind := range e.SampleKinds {
			isSelected := false
			if selected != nil {
				k := logic.SampleKindFromLabel(kind, parent)
				isSelected = selected.Contains(k.SampleKind, k.SampleCategory)
			}
			folder.Leaves = append(folder.Leaves, domain.TreeLeaf{Title: kind, Selected: isSelected})
			if isSelected {
				folder.Expand = true
			}
		}
		folders = append(folders, folder)
	}
	return folders
}
