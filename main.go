package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"arecibodash/internal/config"
	"arecibodash/internal/datasource"
	"arecibodash/internal/eventbus"
	"arecibodash/internal/kvstore"
	"arecibodash/internal/logic"
	"arecibodash/internal/session"
	"arecibodash/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		baseURL    string
		stateFile  string
		ephemeral  bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config.toml")
	flag.StringVar(&baseURL, "url", "", "Collector base URL (overrides config and "+config.EnvBaseURL+")")
	flag.StringVar(&stateFile, "state", "", "Path to the persisted selection")
	flag.BoolVar(&ephemeral, "ephemeral", false, "Do not persist the selection")
	flag.Parse()

	config.LoadDotEnv()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if baseURL != "" {
		cfg.DataSource.BaseURL = baseURL
	}
	if stateFile != "" {
		cfg.StateFile = stateFile
	}

	// Set up logging
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	log.Printf("Config %s, collector %s", configSvc.Path(), cfg.DataSource.BaseURL)

	subscribeAuditLog(bus)

	var store logic.KVStore = kvstore.NewMemoryStore()
	if !ephemeral {
		if err := os.MkdirAll(filepath.Dir(cfg.StateFile), 0755); err != nil {
			log.Printf("Could not create state directory: %v", err)
		}
		store = kvstore.NewFileStore(cfg.StateFile)
	}

	sess := session.New(store, bus, session.Options{
		GraphPath:    cfg.Graph.Path,
		FetchTimeout: cfg.DataSource.Timeout.Duration,
	})
	client := datasource.NewClient(cfg.DataSource.BaseURL, cfg.DataSource.Timeout.Duration)

	uiModel := ui.NewModel(cfg, sess, client)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	if cfg.UISettings.AutosaveOnExit {
		if _, err := os.Stat(configSvc.Path()); os.IsNotExist(err) {
			if err := configSvc.Save(cfg); err != nil {
				log.Printf("Failed to save config: %v", err)
			}
		}
	}
}

// subscribeAuditLog logs domain events as they happen
func subscribeAuditLog(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Printf("Config saved to %s", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventHostsLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.HostsLoadedEvent); ok {
			log.Printf("Hosts loaded: %d", event.Count)
		}
	})
	bus.Subscribe(eventbus.EventHostsSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.HostsSelectionChangedEvent); ok {
			log.Printf("Hosts selected: %d (categories changed: %t)", len(event.Hosts), event.CategoriesChanged)
		}
	})
	bus.Subscribe(eventbus.EventSampleKindsRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SampleKindsRequestedEvent); ok {
			log.Printf("Sample kinds request %d for %v", event.Generation, event.Categories)
		}
	})
	bus.Subscribe(eventbus.EventSampleKindsLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SampleKindsLoadedEvent); ok {
			log.Printf("Sample kinds request %d loaded %d categories", event.Generation, event.Categories)
		}
	})
	bus.Subscribe(eventbus.EventDataSourceFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.DataSourceFailedEvent); ok {
			log.Printf("Data source %s failed: %v", event.Operation, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventGraphURLBuilt, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.GraphURLBuiltEvent); ok {
			log.Printf("Graph URL %s", event.URL)
		}
	})
}
