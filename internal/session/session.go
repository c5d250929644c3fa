package session

import (
	"log"
	"time"

	"arecibodash/internal/codec"
	"arecibodash/internal/domain"
	"arecibodash/internal/eventbus"
	"arecibodash/internal/graph"
	"arecibodash/internal/kvstore"
	"arecibodash/internal/logic"
	"arecibodash/internal/reconciler"
)

// Summary lists the current selection for display
type Summary struct {
	Hosts       []string
	SampleKinds []string
}

// Session is the selection state of one dashboard session. It is owned by
// the UI event loop and must not be shared across goroutines.
type Session struct {
	store       logic.KVStore
	bus         eventbus.EventBus
	hosts       *logic.HostSelectionStore
	sampleKinds *logic.SampleKindSelectionStore
	reconciler  *reconciler.Reconciler
	start       string
	end         string
	graphPath   string
}

// Options configures a session
type Options struct {
	GraphPath    string
	FetchTimeout time.Duration
}

// New restores a session from store. Unreadable or malformed persisted
// values fall back to an empty selection.
func New(store logic.KVStore, bus eventbus.EventBus, opts Options) *Session {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if store == nil {
		store = kvstore.NewMemoryStore()
	}
	s := &Session{
		store:      store,
		bus:        bus,
		reconciler: reconciler.New(bus, opts.FetchTimeout),
		graphPath:  opts.GraphPath,
	}
	s.restore()
	return s
}

func (s *Session) restore() {
	var hosts []domain.SelectedHost
	if raw, ok := s.get(kvstore.KeyHosts); ok {
		decoded, err := codec.DecodeHosts(raw)
		if err != nil {
			log.Printf("Ignoring persisted hosts: %v", err)
		} else {
			hosts = decoded
		}
	}
	s.hosts = logic.NewHostSelectionStore(hosts)

	var kinds []domain.SelectedSampleKind
	if raw, ok := s.get(kvstore.KeySampleKinds); ok {
		decoded, err := codec.DecodeSampleKinds(raw)
		if err != nil {
			log.Printf("Ignoring persisted sample kinds: %v", err)
		} else {
			kinds = decoded
		}
	}
	s.sampleKinds = logic.NewSampleKindSelectionStore(kinds)

	s.start, _ = s.get(kvstore.KeySamplesStart)
	s.end, _ = s.get(kvstore.KeySamplesEnd)
}

func (s *Session) get(key string) (string, bool) {
	v, ok, err := s.store.Get(key)
	if err != nil {
		log.Printf("Failed to read %s: %v", key, err)
		return "", false
	}
	return v, ok
}

// set writes best effort; failures are logged and ignored
func (s *Session) set(key, value string) {
	if err := s.store.Set(key, value); err != nil {
		log.Printf("Failed to persist %s: %v", key, err)
	}
}

// Snapshot returns a copy of the current selection
func (s *Session) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		HostsSelected:       s.hosts.Hosts(),
		SampleKindsSelected: s.sampleKinds.SampleKinds(),
		SamplesStart:        s.start,
		SamplesEnd:          s.end,
	}
}

// Categories returns the categories the sample kinds tree reflects
func (s *Session) Categories() logic.Set {
	return s.reconciler.Categories()
}

// State returns the reconciler state after the last host event
func (s *Session) State() reconciler.State {
	return s.reconciler.State()
}

// HostsTree lays out hosts with the current selection restored
func (s *Session) HostsTree(hosts []domain.Host) []domain.TreeFolder {
	s.bus.Publish(eventbus.HostsLoadedEvent{Count: len(hosts)})
	return reconciler.PlanHostsTree(hosts, s.hosts)
}

// SampleKindsTree lays out ordered entries with the current selection restored
func (s *Session) SampleKindsTree(entries []domain.SampleKindEntry) []domain.TreeFolder {
	return reconciler.PlanSampleKindsTree(entries, s.sampleKinds)
}

// OnHostsTreeChanged rebuilds and persists the host selection, then decides
// whether the sample kinds tree has to be reloaded
func (s *Session) OnHostsTreeChanged(nodes []domain.TreeNode) reconciler.Decision {
	hosts := s.hosts.RebuildFromTree(nodes)
	if encoded, err := codec.EncodeHosts(hosts); err == nil {
		s.set(kvstore.KeyHosts, encoded)
	}

	decision := s.reconciler.HostsChanged(hosts)
	s.bus.Publish(eventbus.HostsSelectionChangedEvent{
		Hosts:             hosts,
		CategoriesChanged: decision.State == reconciler.CategoriesChanged,
	})
	return decision
}

// OnSampleKindsTreeChanged rebuilds and persists the sample kind selection
func (s *Session) OnSampleKindsTreeChanged(nodes []domain.TreeNode) []domain.SelectedSampleKind {
	kinds := s.sampleKinds.RebuildFromTree(nodes)
	if encoded, err := codec.EncodeSampleKinds(kinds); err == nil {
		s.set(kvstore.KeySampleKinds, encoded)
	}
	s.bus.Publish(eventbus.SampleKindsSelectionChangedEvent{SampleKinds: kinds})
	return kinds
}

// ResolveSampleKinds accepts the response of a sample kinds request. See
// reconciler.Reconciler.Resolve.
func (s *Session) ResolveSampleKinds(generation uint64, entries []domain.SampleKindEntry, err error) ([]domain.SampleKindEntry, error) {
	return s.reconciler.Resolve(generation, entries, err)
}

// RetrySampleKinds reissues the sample kinds request for the current hosts
func (s *Session) RetrySampleKinds() *reconciler.FetchRequest {
	return s.reconciler.Retry()
}

// SetRange stores the date inputs, adjusting the side that was not edited
func (s *Session) SetRange(start, end string, edited graph.Side) (string, string) {
	s.start, s.end = graph.AdjustRange(start, end, edited, time.Local)
	s.set(kvstore.KeySamplesStart, s.start)
	s.set(kvstore.KeySamplesEnd, s.end)
	return s.start, s.end
}

// Range returns the stored date inputs
func (s *Session) Range() (string, string) {
	return s.start, s.end
}

// BuildGraphURL renders the graph page URL for the current selection.
// A ValidationError leaves the session untouched.
func (s *Session) BuildGraphURL(start, end time.Time, sampleCount int) (string, error) {
	url, err := graph.BuildURL(s.graphPath, graph.Request{
		Hosts:       s.hosts.Hosts(),
		SampleKinds: s.sampleKinds.SampleKinds(),
		From:        start,
		To:          end,
		OutputCount: sampleCount,
	})
	if err != nil {
		return "", err
	}
	s.bus.Publish(eventbus.GraphURLBuiltEvent{URL: url})
	return url, nil
}

// BuildGraphURLFromInputs parses the stored date inputs and builds the URL
func (s *Session) BuildGraphURLFromInputs(sampleCount int) (string, error) {
	from, err := graph.ParseTime(s.start, time.Local)
	if err != nil {
		return "", err
	}
	to, err := graph.ParseTime(s.end, time.Local)
	if err != nil {
		return "", err
	}
	return s.BuildGraphURL(from, to, sampleCount)
}

// CurrentSelectionSummary lists host names and category::kind pairs
func (s *Session) CurrentSelectionSummary() Summary {
	summary := Summary{}
	for _, h := range s.hosts.Hosts() {
		summary.Hosts = append(summary.Hosts, h.HostName)
	}
	for _, k := range s.sampleKinds.SampleKinds() {
		summary.SampleKinds = append(summary.SampleKinds, k.SampleCategory.String()+codec.SuperGroupSeparator+k.SampleKind)
	}
	return summary
}
