package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arecibodash/internal/config"
	"arecibodash/internal/domain"
	apperrors "arecibodash/internal/errors"
	"arecibodash/internal/graph"
	"arecibodash/internal/logic"
	"arecibodash/internal/reconciler"
	"arecibodash/internal/session"
	"arecibodash/internal/tree"
	"arecibodash/internal/ui/services/navigation"
	"arecibodash/internal/ui/views"
)

// pane identifies one of the two trees
type pane int

const (
	paneHosts pane = iota
	paneSampleKinds
)

// editField identifies the date input being edited
type editField int

const (
	editNone editField = iota
	editStart
	editEnd
)

// Model represents the UI state
type Model struct {
	config  *config.Config
	session *session.Session
	source  logic.DataSource

	hostsTree *tree.Tree
	kindsTree *tree.Tree
	hostsNav  *navigation.Service
	kindsNav  *navigation.Service
	focus     pane

	width  int
	height int
	help   help.Model
	keys   keyMap

	startInput textinput.Model
	endInput   textinput.Model
	editing    editField

	statusMessage string
	statusKind    views.StatusKind
	loadingHosts  bool
	loadingKinds  bool
	graphURL      string
	inPagerMode   bool // tracks if we're currently in pager mode

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps
	browser      *BrowserOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, sess *session.Session, source logic.DataSource) *Model {
	keys := newKeyMap()
	m := &Model{
		config:       cfg,
		session:      sess,
		source:       source,
		hostsTree:    tree.New(),
		kindsTree:    tree.New(),
		help:         help.New(),
		keys:         keys,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(keys),
		pager:        NewPagerOps(),
		browser:      NewBrowserOps(),
		loadingHosts: true,
	}
	m.hostsNav = navigation.NewService(func() int { return len(m.hostsTree.Visible()) })
	m.kindsNav = navigation.NewService(func() int { return len(m.kindsTree.Visible()) })

	m.startInput = newDateInput()
	m.endInput = newDateInput()
	start, end := sess.Range()
	m.startInput.SetValue(start)
	m.endInput.SetValue(end)

	return m
}

func newDateInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "YYYY-MM-DD HH:MM"
	ti.CharLimit = 40
	ti.Width = 22
	return ti
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init loads the host list
func (m *Model) Init() tea.Cmd {
	return loadHosts(m.source, m.config.DataSource.Timeout.Duration)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.hostsNav.SetViewportHeight(m.paneHeight())
		m.kindsNav.SetViewportHeight(m.paneHeight())
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		if m.editing != editNone {
			return m, m.handleEditKey(msg)
		}
		return m, m.handleKey(msg)

	case hostsLoadedMsg:
		return m, m.handleHostsLoaded(msg)

	case sampleKindsLoadedMsg:
		m.handleSampleKindsLoaded(msg)
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			log.Printf("%s pager failed: %v", msg.what, msg.err)
			m.setStatus(views.StatusError, fmt.Sprintf("%s pager failed: %v", msg.what, msg.err))
		}
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			log.Printf("Failed to open %s: %v", msg.url, msg.err)
			m.setStatus(views.StatusError, msg.err.Error())
		} else {
			m.setStatus(views.StatusSuccess, "Opened graph in browser")
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m *Model) handleHostsLoaded(msg hostsLoadedMsg) tea.Cmd {
	m.loadingHosts = false
	if msg.err != nil {
		log.Printf("Failed to load hosts: %v", msg.err)
		m.setStatus(views.StatusError, fmt.Sprintf("%v (press r to reload)", msg.err))
		return nil
	}

	replaceTree(m.hostsTree, m.session.HostsTree(msg.hosts))
	m.hostsNav.Reset()
	m.setStatus(views.StatusInfo, fmt.Sprintf("Loaded %d hosts", len(msg.hosts)))

	// Hosts that disappeared drop out of the selection here
	return m.hostsChanged()
}

func (m *Model) handleSampleKindsLoaded(msg sampleKindsLoadedMsg) {
	entries, err := m.session.ResolveSampleKinds(msg.generation, msg.entries, msg.err)
	if errors.Is(err, reconciler.ErrStaleResponse) {
		log.Printf("Dropping stale sample kinds response %d", msg.generation)
		return
	}
	m.loadingKinds = false
	if err != nil {
		log.Printf("Failed to load sample kinds: %v", err)
		m.setStatus(views.StatusError, fmt.Sprintf("%v (press R to retry)", err))
		return
	}

	replaceTree(m.kindsTree, m.session.SampleKindsTree(entries))
	m.kindsNav.Reset()
	m.setStatus(views.StatusInfo, fmt.Sprintf("Loaded sample kinds for %s", strings.Join(m.session.Categories().Names(), ", ")))
}

func replaceTree(w logic.TreeWidget, folders []domain.TreeFolder) {
	w.RemoveChildren()
	w.Populate(folders)
}

// hostsChanged runs the reconciler after the host selection changed
func (m *Model) hostsChanged() tea.Cmd {
	return m.applyDecision(m.session.OnHostsTreeChanged(m.hostsTree.SelectedNodes()))
}

func (m *Model) applyDecision(d reconciler.Decision) tea.Cmd {
	if d.ClearSampleKinds {
		m.kindsTree.RemoveChildren()
		m.kindsNav.Reset()
		m.loadingKinds = false
	}
	if d.Fetch == nil {
		return nil
	}
	m.loadingKinds = true
	m.setStatus(views.StatusInfo, fmt.Sprintf("Loading sample kinds for %s", strings.Join(d.Fetch.Categories, ", ")))
	return loadSampleKinds(m.source, d.Fetch)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	nav := m.nav()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		nav.Navigate(navigation.DirectionUp)
	case key.Matches(msg, m.keys.Down):
		nav.Navigate(navigation.DirectionDown)
	case key.Matches(msg, m.keys.PageUp):
		nav.Navigate(navigation.DirectionPageUp)
	case key.Matches(msg, m.keys.PageDown):
		nav.Navigate(navigation.DirectionPageDown)
	case key.Matches(msg, m.keys.Home):
		nav.Navigate(navigation.DirectionHome)
	case key.Matches(msg, m.keys.End):
		nav.Navigate(navigation.DirectionEnd)

	case key.Matches(msg, m.keys.Collapse):
		m.collapse()
	case key.Matches(msg, m.keys.Expand):
		if n := m.currentNode(); n != nil && n.Folder() && !n.Expanded() {
			m.currentTree().Expand(n, true)
		}

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == paneHosts {
			m.focus = paneSampleKinds
		} else {
			m.focus = paneHosts
		}

	case key.Matches(msg, m.keys.Toggle):
		n := m.currentNode()
		if n == nil {
			return nil
		}
		m.currentTree().Toggle(n)
		return m.selectionChanged()

	case key.Matches(msg, m.keys.SelectAll):
		m.currentTree().SetAll(true)
		return m.selectionChanged()
	case key.Matches(msg, m.keys.DeselectAll):
		m.currentTree().SetAll(false)
		return m.selectionChanged()

	case key.Matches(msg, m.keys.EditStart):
		return m.startEditing(editStart)
	case key.Matches(msg, m.keys.EditEnd):
		return m.startEditing(editEnd)

	case key.Matches(msg, m.keys.Graph):
		m.buildGraphURL()
	case key.Matches(msg, m.keys.Open):
		return m.openGraph()

	case key.Matches(msg, m.keys.Retry):
		return m.retrySampleKinds()
	case key.Matches(msg, m.keys.Reload):
		m.loadingHosts = true
		m.setStatus(views.StatusInfo, "Reloading hosts")
		return loadHosts(m.source, m.config.DataSource.Timeout.Duration)

	case key.Matches(msg, m.keys.Summary):
		summary := m.session.CurrentSelectionSummary()
		return m.showPager("summary", m.renderer.RenderSummaryPlain(summary.Hosts, summary.SampleKinds, m.graphURL))
	case key.Matches(msg, m.keys.Help):
		return m.showPager("help", m.helpRenderer.RenderHelpContentPlain())
	}

	return nil
}

func (m *Model) selectionChanged() tea.Cmd {
	if m.focus == paneHosts {
		return m.hostsChanged()
	}
	m.session.OnSampleKindsTreeChanged(m.kindsTree.SelectedNodes())
	return nil
}

func (m *Model) collapse() {
	n := m.currentNode()
	if n == nil {
		return
	}
	t := m.currentTree()
	if n.Folder() && n.Expanded() {
		t.Expand(n, false)
		return
	}
	// On a leaf or a collapsed folder, jump to the parent folder
	parent := n.Parent()
	if parent == nil || parent == t.Root() {
		return
	}
	for i, row := range t.Visible() {
		if row == parent {
			m.nav().MoveToIndex(i)
			return
		}
	}
}

func (m *Model) retrySampleKinds() tea.Cmd {
	req := m.session.RetrySampleKinds()
	if req == nil {
		m.setStatus(views.StatusWarning, "Select at least one host first")
		return nil
	}
	// The rendered tree stays until a response replaces it
	m.loadingKinds = true
	m.setStatus(views.StatusInfo, fmt.Sprintf("Retrying sample kinds for %s", strings.Join(req.Categories, ", ")))
	return loadSampleKinds(m.source, req)
}

func (m *Model) startEditing(field editField) tea.Cmd {
	m.editing = field
	start, end := m.session.Range()
	if field == editStart {
		m.startInput.SetValue(start)
		m.startInput.CursorEnd()
		return m.startInput.Focus()
	}
	m.endInput.SetValue(end)
	m.endInput.CursorEnd()
	return m.endInput.Focus()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.stopEditing()
		return nil
	case tea.KeyEnter, tea.KeyTab:
		m.commitDate()
		return nil
	}

	var cmd tea.Cmd
	if m.editing == editStart {
		m.startInput, cmd = m.startInput.Update(msg)
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return cmd
}

func (m *Model) commitDate() {
	start, end := m.session.Range()
	side := graph.Start
	value := strings.TrimSpace(m.startInput.Value())
	if m.editing == editStart {
		start = value
	} else {
		side = graph.End
		value = strings.TrimSpace(m.endInput.Value())
		end = value
	}

	if _, err := graph.ParseTime(value, time.Local); err != nil {
		m.setStatus(views.StatusError, err.Error())
		return
	}

	m.session.SetRange(start, end, side)
	m.stopEditing()
	m.setStatus(views.StatusInfo, "")
}

func (m *Model) stopEditing() {
	m.editing = editNone
	m.startInput.Blur()
	m.endInput.Blur()
	start, end := m.session.Range()
	m.startInput.SetValue(start)
	m.endInput.SetValue(end)
}

// buildGraphURL syncs the sample kind selection with the tree and renders
// the graph URL
func (m *Model) buildGraphURL() bool {
	if m.loadingKinds {
		m.setStatus(views.StatusWarning, "Sample kinds are still loading")
		return false
	}
	if m.kindsTree.Len() == 0 {
		m.setStatus(views.StatusError, apperrors.Validation("no sample kinds loaded for the selected hosts").Error())
		return false
	}
	m.session.OnSampleKindsTreeChanged(m.kindsTree.SelectedNodes())

	url, err := m.session.BuildGraphURLFromInputs(m.config.Graph.OutputCount)
	if err != nil {
		m.setStatus(views.StatusError, err.Error())
		return false
	}
	m.graphURL = strings.TrimRight(m.config.DataSource.BaseURL, "/") + url
	m.setStatus(views.StatusSuccess, "Graph URL ready (press o to open)")
	return true
}

func (m *Model) openGraph() tea.Cmd {
	if !m.buildGraphURL() {
		return nil
	}
	url := m.graphURL
	browser := m.browser
	return func() tea.Msg {
		return browserOpenedMsg{url: url, err: browser.Open(url)}
	}
}

// showPager returns a command that shows content using ov pager
func (m *Model) showPager(what, content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{what: what, err: err}
	}
}

func (m *Model) setStatus(kind views.StatusKind, message string) {
	m.statusKind = kind
	m.statusMessage = message
}

func (m *Model) nav() *navigation.Service {
	if m.focus == paneSampleKinds {
		return m.kindsNav
	}
	return m.hostsNav
}

func (m *Model) currentTree() *tree.Tree {
	if m.focus == paneSampleKinds {
		return m.kindsTree
	}
	return m.hostsTree
}

func (m *Model) currentNode() *tree.Node {
	rows := m.currentTree().Visible()
	if len(rows) == 0 {
		return nil
	}
	cursor := m.nav().GetCursor()
	if cursor >= len(rows) {
		return nil
	}
	return rows[cursor]
}

func (m *Model) paneHeight() int {
	// title, pane borders, pane title, dates, status, help, padding
	overhead := 14
	if m.config.UISettings.ShowSummary {
		overhead += 6
	}
	h := m.height - overhead
	if h < 3 {
		h = 3
	}
	return h
}

// View renders the model
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	width := views.PaneWidth(m.width)
	height := m.paneHeight()
	summary := m.session.CurrentSelectionSummary()

	hostsEmpty := "No hosts"
	if m.loadingHosts {
		hostsEmpty = "Loading hosts..."
	}
	kindsEmpty := "Select hosts to list their sample kinds"
	if m.loadingKinds {
		kindsEmpty = "Loading sample kinds..."
	}

	return m.renderer.Render(views.ViewState{
		Width:  m.width,
		Height: m.height,
		Hosts: views.PaneState{
			Title:   "Hosts",
			Rows:    m.hostsTree.Visible(),
			Cursor:  m.hostsNav.GetCursor(),
			Offset:  m.hostsNav.GetViewportOffset(),
			Height:  height,
			Width:   width,
			Focused: m.focus == paneHosts,
			Loading: m.loadingHosts,
			Empty:   hostsEmpty,
		},
		SampleKinds: views.PaneState{
			Title:   "Sample kinds",
			Rows:    m.kindsTree.Visible(),
			Cursor:  m.kindsNav.GetCursor(),
			Offset:  m.kindsNav.GetViewportOffset(),
			Height:  height,
			Width:   width,
			Focused: m.focus == paneSampleKinds,
			Loading: m.loadingKinds,
			Empty:   kindsEmpty,
		},
		StartInput:    m.startInput.View(),
		EndInput:      m.endInput.View(),
		ShowSummary:   m.config.UISettings.ShowSummary,
		SummaryHosts:  summary.Hosts,
		SummaryKinds:  summary.SampleKinds,
		GraphURL:      m.graphURL,
		StatusMessage: m.statusMessage,
		StatusKind:    m.statusKind,
		BaseURL:       m.config.DataSource.BaseURL,
		HelpModel:     m.help,
		KeyMap:        m.keys,
	})
}
