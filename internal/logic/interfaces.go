package logic

import (
	"context"

	"arecibodash/internal/domain"
)

// DataSource provides the collector data the pickers are built from
type DataSource interface {
	Hosts(ctx context.Context) ([]domain.Host, error)
	SampleKinds(ctx context.Context, hostsQuery string) ([]domain.SampleKindEntry, error)
}

// KVStore is best-effort persistence of string values by key
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// TreeWidget is the structural surface of a checkbox tree
type TreeWidget interface {
	SelectedNodes() []domain.TreeNode
	Populate(folders []domain.TreeFolder)
	RemoveChildren()
}
