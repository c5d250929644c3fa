package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// StatusKind picks the style of the status line
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Hosts         PaneState
	SampleKinds   PaneState
	StartInput    string // rendered text input
	EndInput      string
	ShowSummary   bool
	SummaryHosts  []string
	SummaryKinds  []string
	GraphURL      string
	StatusMessage string
	StatusKind    StatusKind
	BaseURL       string
	HelpModel     help.Model
	KeyMap        help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	treeRender *TreeRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		treeRender: NewTreeRenderer(styles),
	}
}

// Styles exposes the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// PaneWidth splits the terminal width between the two panes
func PaneWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	w := (termWidth - 6) / 2 // main padding and gap
	if w < 20 {
		w = 20
	}
	return w
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	title := r.styles.Title.Render("arecibo")
	if state.BaseURL != "" {
		title += "  " + r.styles.Dim.Render(state.BaseURL)
	}
	content.WriteString(title)
	content.WriteString("\n\n")

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		r.treeRender.RenderPane(state.Hosts),
		" ",
		r.treeRender.RenderPane(state.SampleKinds),
	)
	content.WriteString(panes)
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		r.styles.Label.Render("Start:"), state.StartInput,
		r.styles.Label.Render("End:"), state.EndInput))

	if state.ShowSummary {
		content.WriteString(r.RenderSummary(state.SummaryHosts, state.SummaryKinds, state.Width))
		content.WriteString("\n")
	}

	if state.GraphURL != "" {
		content.WriteString(r.styles.Label.Render("Graph: "))
		content.WriteString(r.styles.URL.Render(state.GraphURL))
		content.WriteString("\n")
	}

	if state.StatusMessage != "" {
		content.WriteString(r.statusStyle(state.StatusKind).Render(state.StatusMessage))
		content.WriteString("\n")
	}

	if state.KeyMap != nil {
		content.WriteString(r.styles.Help.Render(state.HelpModel.ShortHelpView(state.KeyMap.ShortHelp())))
	}

	return r.styles.Main.Render(content.String())
}

// RenderSummary renders the selected hosts and sample kinds side by side
func (r *Renderer) RenderSummary(hosts, kinds []string, termWidth int) string {
	w := PaneWidth(termWidth) - 4
	hostBox := r.styles.SummaryBox.Width(w).Render(r.summaryBody("Selected hosts", hosts))
	kindBox := r.styles.SummaryBox.Width(w).Render(r.summaryBody("Selected sample kinds", kinds))
	return lipgloss.JoinHorizontal(lipgloss.Top, hostBox, " ", kindBox)
}

func (r *Renderer) summaryBody(title string, items []string) string {
	var b strings.Builder
	b.WriteString(r.styles.SummaryTitle.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	if len(items) == 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("none"))
	}
	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(item)
	}
	return b.String()
}

// RenderSummaryPlain renders the selection for the pager
func (r *Renderer) RenderSummaryPlain(hosts, kinds []string, graphURL string) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Current selection"))
	b.WriteString("\n\n")
	b.WriteString(r.summaryBody("Selected hosts", hosts))
	b.WriteString("\n\n")
	b.WriteString(r.summaryBody("Selected sample kinds", kinds))
	b.WriteString("\n")
	if graphURL != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Label.Render("Graph: "))
		b.WriteString(graphURL)
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) statusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusError:
		return r.styles.StatusError
	case StatusWarning:
		return r.styles.StatusWarning
	case StatusSuccess:
		return r.styles.StatusSuccess
	default:
		return r.styles.Status
	}
}
