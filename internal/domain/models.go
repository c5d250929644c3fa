package domain

import (
	"bytes"
	"encoding/json"
)

// Category is an optional grouping label. The zero value is the null
// category, which never equals a real category, including one named "null".
type Category struct {
	Name  string
	Valid bool
}

// NoCategory is the null category
var NoCategory = Category{}

// CategoryOf returns a non-null category
func CategoryOf(name string) Category {
	return Category{Name: name, Valid: true}
}

// String returns the category name, or "null" for the null category
func (c Category) String() string {
	if !c.Valid {
		return "null"
	}
	return c.Name
}

// MarshalJSON encodes the null category as JSON null
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Name)
}

// UnmarshalJSON accepts a JSON string or null. The empty string decodes to
// the null category, as the collector reports ungrouped hosts either way.
func (c *Category) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = NoCategory
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*c = CategoryOf(name).Normalize()
	return nil
}

// Normalize returns the null category for an empty name
func (c Category) Normalize() Category {
	if c.Name == "" {
		return NoCategory
	}
	return c
}

// Host is a monitored host as reported by the collector
type Host struct {
	HostName string   `json:"hostName"`
	CoreType Category `json:"coreType"`
}

// SelectedHost is a host picked in the hosts tree, with the folder it was
// picked under
type SelectedHost struct {
	HostName string   `json:"hostName"`
	Category Category `json:"category"`
}

// SampleKindEntry groups the sample kinds the collector knows for a category
type SampleKindEntry struct {
	SampleCategory string   `json:"eventCategory"`
	SampleKinds    []string `json:"sampleKinds"`
}

// UnmarshalJSON accepts both "eventCategory" and "sampleCategory" as the
// category field
func (e *SampleKindEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		EventCategory  *string  `json:"eventCategory"`
		SampleCategory *string  `json:"sampleCategory"`
		SampleKinds    []string `json:"sampleKinds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.SampleKinds = raw.SampleKinds
	switch {
	case raw.EventCategory != nil:
		e.SampleCategory = *raw.EventCategory
	case raw.SampleCategory != nil:
		e.SampleCategory = *raw.SampleCategory
	default:
		e.SampleCategory = ""
	}
	return nil
}

// SelectedSampleKind is a sample kind picked in the sample kinds tree.
// Kind names are not unique across categories, so identity is the pair.
type SelectedSampleKind struct {
	SampleKind     string   `json:"sampleKind"`
	SampleCategory Category `json:"sampleCategory"`
}

// Snapshot is the selection state of one dashboard session
type Snapshot struct {
	HostsSelected       []SelectedHost
	SampleKindsSelected []SelectedSampleKind
	SamplesStart        string
	SamplesEnd          string
}

// TreeNode is the read-only view of a selected tree node
type TreeNode interface {
	Label() string
	ParentLabel() (string, bool)
	IsLeaf() bool
	HasSubSelection() bool
}

// TreeLeaf describes a leaf to add to a tree folder
type TreeLeaf struct {
	Title    string
	Selected bool
}

// TreeFolder describes a folder and its leaves to add to a tree. A folder
// with an empty title stands for leaves attached directly to the root.
type TreeFolder struct {
	Title     string
	Expand    bool
	Highlight bool
	Leaves    []TreeLeaf
}
