package reconciler

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"arecibodash/internal/codec"
	"arecibodash/internal/domain"
	apperrors "arecibodash/internal/errors"
	"arecibodash/internal/eventbus"
	"arecibodash/internal/logic"
)

// DefaultFetchTimeout bounds a sample kinds request
const DefaultFetchTimeout = 10 * time.Second

// State is the outcome of the last host selection event
type State int

const (
	HostsOnly State = iota
	CategoriesStable
	CategoriesChanged
)

func (s State) String() string {
	switch s {
	case HostsOnly:
		return "hosts-only"
	case CategoriesStable:
		return "categories-stable"
	case CategoriesChanged:
		return "categories-changed"
	default:
		return "unknown"
	}
}

// ErrStaleResponse marks a sample kinds response superseded by a newer request
var ErrStaleResponse = stderrors.New("stale sample kinds response")

// FetchRequest is a sample kinds request decided by the reconciler. The
// request context is cancelled when a newer request is issued.
type FetchRequest struct {
	Generation uint64
	Query      string
	Categories []string
	Ctx        context.Context
}

// Run performs the request against src
func (r *FetchRequest) Run(src logic.DataSource) ([]domain.SampleKindEntry, error) {
	return src.SampleKinds(r.Ctx, r.Query)
}

// Decision tells the caller what to do with the sample kinds tree
type Decision struct {
	State            State
	ClearSampleKinds bool
	Fetch            *FetchRequest
}

// Reconciler keeps the sample kinds tree consistent with the categories of
// the selected hosts
type Reconciler struct {
	state      State
	categories logic.Set
	generation uint64
	cancel     context.CancelFunc
	timeout    time.Duration
	lastHosts  []domain.SelectedHost
	bus        eventbus.EventBus
}

// New creates a reconciler. A zero timeout uses DefaultFetchTimeout.
func New(bus eventbus.EventBus, timeout time.Duration) *Reconciler {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Reconciler{
		state:      HostsOnly,
		categories: logic.Set{},
		timeout:    timeout,
		bus:        bus,
	}
}

// State returns the state reached by the last host selection event
func (r *Reconciler) State() State {
	return r.state
}

// Categories returns the categories the sample kinds tree was built for
func (r *Reconciler) Categories() logic.Set {
	out := make(logic.Set, len(r.categories))
	for k := range r.categories {
		out[k] = struct{}{}
	}
	return out
}

// Generation returns the generation of the latest request
func (r *Reconciler) Generation() uint64 {
	return r.generation
}

// HostsChanged handles a host selection event. The sample kinds tree is only
// invalidated when the derived category set differs from the current one.
func (r *Reconciler) HostsChanged(hosts []domain.SelectedHost) Decision {
	r.lastHosts = append([]domain.SelectedHost(nil), hosts...)
	newCategories := logic.DerivedCategories(hosts)

	if logic.SetsEqual(newCategories, r.categories) {
		r.state = CategoriesStable
		return Decision{State: CategoriesStable}
	}

	r.state = CategoriesChanged
	r.categories = newCategories
	decision := Decision{State: CategoriesChanged, ClearSampleKinds: true}
	if len(hosts) == 0 {
		// Nothing to ask the collector for. The pending request is
		// superseded all the same, so its response must come back stale.
		r.cancelPending()
		r.generation++
		return decision
	}
	decision.Fetch = r.issue(hosts)
	return decision
}

// Retry reissues the request for the last host selection
func (r *Reconciler) Retry() *FetchRequest {
	if len(r.lastHosts) == 0 {
		return nil
	}
	r.categories = logic.DerivedCategories(r.lastHosts)
	return r.issue(r.lastHosts)
}

func (r *Reconciler) issue(hosts []domain.SelectedHost) *FetchRequest {
	r.cancelPending()
	r.generation++

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	r.cancel = cancel

	req := &FetchRequest{
		Generation: r.generation,
		Query:      codec.EncodeSelection(hosts),
		Categories: r.categories.Names(),
		Ctx:        ctx,
	}
	r.bus.Publish(eventbus.SampleKindsRequestedEvent{
		Generation: req.Generation,
		Query:      req.Query,
		Categories: req.Categories,
	})
	return req
}

func (r *Reconciler) cancelPending() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Resolve accepts the response of request generation. Stale responses return
// ErrStaleResponse. A failed or malformed response returns a DataSourceError
// and resets the categories, so the next host event fetches again.
func (r *Reconciler) Resolve(generation uint64, entries []domain.SampleKindEntry, err error) ([]domain.SampleKindEntry, error) {
	if generation != r.generation {
		return nil, ErrStaleResponse
	}
	r.cancelPending()

	if err == nil {
		err = validateEntries(entries)
	}
	if err != nil {
		r.categories = logic.Set{}
		if !apperrors.IsDataSource(err) {
			err = apperrors.DataSource("failed to load sample kinds", err)
		}
		r.bus.Publish(eventbus.DataSourceFailedEvent{Operation: "sample_kinds", Err: err})
		return nil, err
	}

	ordered := OrderSampleKinds(entries)
	r.bus.Publish(eventbus.SampleKindsLoadedEvent{Generation: generation, Categories: len(ordered)})
	return ordered, nil
}

func validateEntries(entries []domain.SampleKindEntry) error {
	for i, e := range entries {
		if e.SampleCategory == "" {
			return apperrors.DataSource(fmt.Sprintf("malformed sample kinds: entry %d has no category", i), nil)
		}
		for _, k := range e.SampleKinds {
			if k == "" {
				return apperrors.DataSource(fmt.Sprintf("malformed sample kinds: empty kind in %q", e.SampleCategory), nil)
			}
		}
	}
	return nil
}
