// Package stub serves the collector endpoints used by the dashboard from a
// fixture, for local development and tests.
package stub

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"

	"arecibodash/internal/datasource"
	"arecibodash/internal/domain"
)

// DefaultFixture is served when no fixture file is given
//
//go:embed fixture.yaml
var DefaultFixture []byte

// Fixture is the data served by the stub
type Fixture struct {
	// Hosts maps a core type to its host names. The "" core type holds ungrouped hosts.
	Hosts map[string][]string `yaml:"hosts"`
	// SampleKinds maps a core type to its sample kinds per category
	SampleKinds map[string]map[string][]string `yaml:"sample_kinds"`
}

// LoadFixture reads a YAML fixture from path
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if f.Hosts == nil {
		f.Hosts = make(map[string][]string)
	}
	if f.SampleKinds == nil {
		f.SampleKinds = make(map[string]map[string][]string)
	}
	return &f, nil
}

// HostList flattens the fixture hosts
func (f *Fixture) HostList() []domain.Host {
	coreTypes := make([]string, 0, len(f.Hosts))
	for ct := range f.Hosts {
		coreTypes = append(coreTypes, ct)
	}
	sort.Strings(coreTypes)

	var hosts []domain.Host
	for _, ct := range coreTypes {
		coreType := domain.NoCategory
		if ct != "" {
			coreType = domain.CategoryOf(ct)
		}
		for _, name := range f.Hosts[ct] {
			hosts = append(hosts, domain.Host{HostName: name, CoreType: coreType})
		}
	}
	return hosts
}

// SampleKindsFor merges the sample kinds of the core types of hostNames
func (f *Fixture) SampleKindsFor(hostNames []string) []domain.SampleKindEntry {
	wanted := make(map[string]bool)
	for ct, names := range f.Hosts {
		for _, n := range names {
			for _, h := range hostNames {
				if n == h {
					wanted[ct] = true
				}
			}
		}
	}

	merged := make(map[string]map[string]bool)
	for ct := range wanted {
		for category, kinds := range f.SampleKinds[ct] {
			if merged[category] == nil {
				merged[category] = make(map[string]bool)
			}
			for _, k := range kinds {
				merged[category][k] = true
			}
		}
	}

	categories := make([]string, 0, len(merged))
	for c := range merged {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	entries := make([]domain.SampleKindEntry, 0, len(categories))
	for _, c := range categories {
		kinds := make([]string, 0, len(merged[c]))
		for k := range merged[c] {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		entries = append(entries, domain.SampleKindEntry{SampleCategory: c, SampleKinds: kinds})
	}
	return entries
}

// NewRouter serves the fixture on the collector endpoints
func NewRouter(f *Fixture) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(datasource.HostsPath, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, f.HostList())
	})
	r.Get(datasource.SampleKindsPath, func(w http.ResponseWriter, req *http.Request) {
		hosts := req.URL.Query()["host"]
		if len(hosts) == 0 {
			http.Error(w, "at least one host parameter is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, f.SampleKindsFor(hosts))
	})
	return r
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
