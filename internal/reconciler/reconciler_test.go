package reconciler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"arecibodash/internal/domain"
	apperrors "arecibodash/internal/errors"
	"arecibodash/internal/eventbus"
	"arecibodash/internal/logic"
)

type mockDataSource struct {
	mock.Mock
}

func (m *mockDataSource) Hosts(ctx context.Context) ([]domain.Host, error) {
	args := m.Called(ctx)
	hosts, _ := args.Get(0).([]domain.Host)
	return hosts, args.Error(1)
}

func (m *mockDataSource) SampleKinds(ctx context.Context, hostsQuery string) ([]domain.SampleKindEntry, error) {
	args := m.Called(ctx, hostsQuery)
	entries, _ := args.Get(0).([]domain.SampleKindEntry)
	return entries, args.Error(1)
}

// recordingBus records published events synchronously
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close()                                                   {}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func host(name, category string) domain.SelectedHost {
	return domain.SelectedHost{HostName: name, Category: domain.CategoryOf(category)}
}

func TestHostsChangedFetchesOnlyWhenCategoriesChange(t *testing.T) {
	bus := &recordingBus{}
	r := New(bus, 0)
	assert.Equal(t, HostsOnly, r.State())

	d := r.HostsChanged([]domain.SelectedHost{host("h1", "api")})
	assert.Equal(t, CategoriesChanged, d.State)
	assert.True(t, d.ClearSampleKinds)
	require.NotNil(t, d.Fetch)
	assert.Equal(t, []string{"api"}, d.Fetch.Categories)
	assert.Equal(t, "host=h1", d.Fetch.Query)

	// Another api host keeps the category set
	d = r.HostsChanged([]domain.SelectedHost{host("h1", "api"), host("h2", "api")})
	assert.Equal(t, CategoriesStable, d.State)
	assert.False(t, d.ClearSampleKinds)
	assert.Nil(t, d.Fetch)

	// A db host changes it
	d = r.HostsChanged([]domain.SelectedHost{host("h1", "api"), host("h2", "api"), host("d1", "db")})
	assert.Equal(t, CategoriesChanged, d.State)
	require.NotNil(t, d.Fetch)
	assert.Equal(t, []string{"api", "db"}, d.Fetch.Categories)
	assert.Equal(t, "host=h1&host=h2&host=d1", d.Fetch.Query)
	assert.True(t, logic.SetsEqual(logic.SetOf("api", "db"), r.Categories()))

	assert.Len(t, bus.ofType(eventbus.EventSampleKindsRequested), 2)
}

func TestHostsChangedWithNoHostsClearsWithoutFetching(t *testing.T) {
	r := New(nil, 0)
	first := r.HostsChanged([]domain.SelectedHost{host("h1", "api")})
	require.NotNil(t, first.Fetch)

	d := r.HostsChanged(nil)
	assert.Equal(t, CategoriesChanged, d.State)
	assert.True(t, d.ClearSampleKinds)
	assert.Nil(t, d.Fetch)
	assert.ErrorIs(t, first.Fetch.Ctx.Err(), context.Canceled, "pending request is cancelled")

	// Nothing selected before and after is stable
	d = r.HostsChanged(nil)
	assert.Equal(t, CategoriesStable, d.State)
}

func TestResolveAfterClearingHostsIsStale(t *testing.T) {
	bus := &recordingBus{}
	r := New(bus, 0)
	first := r.HostsChanged([]domain.SelectedHost{host("h1", "api")}).Fetch
	require.NotNil(t, first)

	r.HostsChanged(nil)
	assert.Greater(t, r.Generation(), first.Generation)

	entries, err := r.Resolve(first.Generation, []domain.SampleKindEntry{{SampleCategory: "JVM", SampleKinds: []string{"heapUsed"}}}, nil)
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Nil(t, entries)

	// The cancelled request failing is stale too and leaves the categories alone
	_, err = r.Resolve(first.Generation, nil, first.Ctx.Err())
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Equal(t, 0, r.Categories().Len())
	assert.Empty(t, bus.ofType(eventbus.EventDataSourceFailed))
	assert.Empty(t, bus.ofType(eventbus.EventSampleKindsLoaded))

	// Selecting hosts again issues a fresh request that resolves normally
	next := r.HostsChanged([]domain.SelectedHost{host("h1", "api")}).Fetch
	require.NotNil(t, next)
	entries, err = r.Resolve(next.Generation, []domain.SampleKindEntry{{SampleCategory: "JVM", SampleKinds: []string{"heapUsed"}}}, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestResolveDropsStaleResponses(t *testing.T) {
	r := New(nil, 0)
	first := r.HostsChanged([]domain.SelectedHost{host("h1", "api")}).Fetch
	second := r.HostsChanged([]domain.SelectedHost{host("d1", "db")}).Fetch
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Greater(t, second.Generation, first.Generation)
	assert.ErrorIs(t, first.Ctx.Err(), context.Canceled)

	_, err := r.Resolve(first.Generation, []domain.SampleKindEntry{{SampleCategory: "JVM", SampleKinds: []string{"heapUsed"}}}, nil)
	assert.ErrorIs(t, err, ErrStaleResponse)

	entries, err := r.Resolve(second.Generation, []domain.SampleKindEntry{{SampleCategory: "MySQL", SampleKinds: []string{"queries"}}}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "MySQL", entries[0].SampleCategory)
}

func TestResolveFailureResetsCategories(t *testing.T) {
	bus := &recordingBus{}
	r := New(bus, 0)
	hosts := []domain.SelectedHost{host("h1", "api")}
	req := r.HostsChanged(hosts).Fetch

	_, err := r.Resolve(req.Generation, nil, errors.New("connection refused"))
	require.Error(t, err)
	assert.True(t, apperrors.IsDataSource(err))
	assert.Equal(t, 0, r.Categories().Len())

	failed := bus.ofType(eventbus.EventDataSourceFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "sample_kinds", failed[0].(eventbus.DataSourceFailedEvent).Operation)

	// The same selection fetches again
	d := r.HostsChanged(hosts)
	assert.Equal(t, CategoriesChanged, d.State)
	assert.NotNil(t, d.Fetch)
}

func TestResolveRejectsMalformedEntries(t *testing.T) {
	r := New(nil, 0)
	req := r.HostsChanged([]domain.SelectedHost{host("h1", "api")}).Fetch

	_, err := r.Resolve(req.Generation, []domain.SampleKindEntry{{SampleCategory: "", SampleKinds: []string{"cpu"}}}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsDataSource(err))

	req = r.Retry()
	require.NotNil(t, req)
	_, err = r.Resolve(req.Generation, []domain.SampleKindEntry{{SampleCategory: "os", SampleKinds: []string{""}}}, nil)
	require.Error(t, err)
}

func TestRetry(t *testing.T) {
	r := New(nil, 0)
	assert.Nil(t, r.Retry(), "nothing to retry without hosts")

	first := r.HostsChanged([]domain.SelectedHost{host("h1", "api")}).Fetch
	retry := r.Retry()
	require.NotNil(t, retry)
	assert.Equal(t, first.Query, retry.Query)
	assert.Equal(t, first.Generation+1, retry.Generation)
	assert.Equal(t, retry.Generation, r.Generation())
	assert.ErrorIs(t, first.Ctx.Err(), context.Canceled)
}

func TestFetchRequestRun(t *testing.T) {
	src := &mockDataSource{}
	entries := []domain.SampleKindEntry{{SampleCategory: "os", SampleKinds: []string{"cpu"}}}
	src.On("SampleKinds", mock.Anything, "host=h1").Return(entries, nil).Once()

	r := New(nil, 0)
	req := r.HostsChanged([]domain.SelectedHost{host("h1", "os")}).Fetch

	got, err := req.Run(src)
	require.NoError(t, err)

	ordered, err := r.Resolve(req.Generation, got, err)
	require.NoError(t, err)
	assert.Equal(t, entries, ordered)
	src.AssertExpectations(t)
}

func TestFetchRequestTimesOut(t *testing.T) {
	r := New(nil, 20*time.Millisecond)
	req := r.HostsChanged([]domain.SelectedHost{host("h1", "os")}).Fetch

	_, ok := req.Ctx.Deadline()
	require.True(t, ok)

	src := &mockDataSource{}
	src.On("SampleKinds", mock.Anything, "host=h1").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	_, err := req.Run(src)
	_, err = r.Resolve(req.Generation, nil, err)
	require.Error(t, err)
	assert.True(t, apperrors.IsDataSource(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDefaultTimeout(t *testing.T) {
	r := New(nil, 0)
	req := r.HostsChanged([]domain.SelectedHost{host("h1", "os")}).Fetch
	deadline, ok := req.Ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultFetchTimeout), deadline, time.Second)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "hosts-only", HostsOnly.String())
	assert.Equal(t, "categories-stable", CategoriesStable.String())
	assert.Equal(t, "categories-changed", CategoriesChanged.String())
}
