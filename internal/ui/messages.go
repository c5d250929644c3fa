package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"arecibodash/internal/domain"
	"arecibodash/internal/logic"
	"arecibodash/internal/reconciler"
)

// hostsLoadedMsg contains the result of a hosts request
type hostsLoadedMsg struct {
	hosts []domain.Host
	err   error
}

// sampleKindsLoadedMsg contains the result of a sample kinds request
type sampleKindsLoadedMsg struct {
	generation uint64
	entries    []domain.SampleKindEntry
	err        error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

func loadHosts(src logic.DataSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		hosts, err := src.Hosts(ctx)
		return hostsLoadedMsg{hosts: hosts, err: err}
	}
}

func loadSampleKinds(src logic.DataSource, req *reconciler.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		entries, err := req.Run(src)
		return sampleKindsLoadedMsg{generation: req.Generation, entries: entries, err: err}
	}
}
