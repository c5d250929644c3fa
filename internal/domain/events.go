package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventHostsLoaded                 EventType = "HostsLoaded"
	EventHostsSelectionChanged       EventType = "HostsSelectionChanged"
	EventSampleKindsSelectionChanged EventType = "SampleKindsSelectionChanged"
	EventSampleKindsRequested        EventType = "SampleKindsRequested"
	EventSampleKindsLoaded           EventType = "SampleKindsLoaded"
	EventDataSourceFailed            EventType = "DataSourceFailed"
	EventGraphURLBuilt               EventType = "GraphURLBuilt"
	EventConfigLoaded                EventType = "ConfigLoaded"
	EventConfigSaved                 EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// HostsLoadedEvent is emitted when the host list arrives from the collector
type HostsLoadedEvent struct {
	Count int
}

func (e HostsLoadedEvent) Type() EventType { return EventHostsLoaded }

// HostsSelectionChangedEvent is emitted after the hosts tree selection was rebuilt
type HostsSelectionChangedEvent struct {
	Hosts             []SelectedHost
	CategoriesChanged bool
}

func (e HostsSelectionChangedEvent) Type() EventType { return EventHostsSelectionChanged }

// SampleKindsSelectionChangedEvent is emitted after the sample kinds tree selection was rebuilt
type SampleKindsSelectionChangedEvent struct {
	SampleKinds []SelectedSampleKind
}

func (e SampleKindsSelectionChangedEvent) Type() EventType { return EventSampleKindsSelectionChanged }

// SampleKindsRequestedEvent is emitted when a sample kinds fetch is issued
type SampleKindsRequestedEvent struct {
	Generation uint64
	Query      string
	Categories []string
}

func (e SampleKindsRequestedEvent) Type() EventType { return EventSampleKindsRequested }

// SampleKindsLoadedEvent is emitted when a current sample kinds response was accepted
type SampleKindsLoadedEvent struct {
	Generation uint64
	Categories int
}

func (e SampleKindsLoadedEvent) Type() EventType { return EventSampleKindsLoaded }

// DataSourceFailedEvent is emitted when a collector call fails
type DataSourceFailedEvent struct {
	Operation string
	Err       error
}

func (e DataSourceFailedEvent) Type() EventType { return EventDataSourceFailed }

// GraphURLBuiltEvent is emitted when a graph URL was built for navigation
type GraphURLBuiltEvent struct {
	URL string
}

func (e GraphURLBuiltEvent) Type() EventType { return EventGraphURLBuilt }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
