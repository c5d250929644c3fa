package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arecibodash/internal/tree"
)

// PaneState is everything needed to draw one tree pane
type PaneState struct {
	Title   string
	Rows    []*tree.Node
	Cursor  int
	Offset  int
	Height  int
	Width   int
	Focused bool
	Loading bool
	Empty   string // shown when there are no rows
}

// TreeRenderer draws checkbox trees
type TreeRenderer struct {
	styles *Styles
}

// NewTreeRenderer creates a new tree renderer
func NewTreeRenderer(styles *Styles) *TreeRenderer {
	return &TreeRenderer{styles: styles}
}

// Checkbox returns the marker for a node's selection state
func Checkbox(n *tree.Node) string {
	switch {
	case n.Selected():
		return "[x]"
	case n.Partial():
		return "[-]"
	default:
		return "[ ]"
	}
}

// RenderRow renders a single node
func (r *TreeRenderer) RenderRow(n *tree.Node, isCursor bool, width int) string {
	indent := strings.Repeat("  ", n.Depth())

	arrow := " "
	if n.Folder() {
		arrow = "▶"
		if n.Expanded() {
			arrow = "▼"
		}
	}

	box := Checkbox(n)
	if n.Selected() || n.Partial() {
		box = r.styles.SelectedMark.Render(box)
	}

	title := n.Title()
	if n.Highlighted() {
		title = r.styles.SuperGroup.Render(title)
	}
	if n.Folder() {
		title = fmt.Sprintf("%s (%d)", title, len(n.Children()))
	}

	line := fmt.Sprintf("%s%s %s %s", indent, arrow, box, title)

	if isCursor {
		if width > 0 {
			if w := lipgloss.Width(line); w < width {
				line += strings.Repeat(" ", width-w)
			}
		}
		line = r.styles.CursorBg.Render(line)
	}
	return line
}

// RenderPane renders the visible window of a pane inside a border
func (r *TreeRenderer) RenderPane(p PaneState) string {
	var b strings.Builder

	title := r.styles.PaneTitle.Render(p.Title)
	if p.Loading {
		title += " " + r.styles.StatusLoading.Render("(loading)")
	}
	b.WriteString(title)
	b.WriteString("\n")

	innerWidth := p.Width - 4 // border and padding
	if innerWidth < 10 {
		innerWidth = 10
	}

	height := p.Height
	if height < 1 {
		height = 1
	}

	if len(p.Rows) == 0 {
		b.WriteString(r.styles.Dim.Render(p.Empty))
		b.WriteString(strings.Repeat("\n", height-1))
	} else {
		end := p.Offset + height
		if end > len(p.Rows) {
			end = len(p.Rows)
		}
		written := 0
		for i := p.Offset; i < end; i++ {
			if written > 0 {
				b.WriteString("\n")
			}
			b.WriteString(r.RenderRow(p.Rows[i], p.Focused && i == p.Cursor, innerWidth))
			written++
		}
		for ; written < height; written++ {
			b.WriteString("\n")
		}
		if len(p.Rows) > height {
			b.WriteString("\n")
			b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("%d-%d of %d", p.Offset+1, end, len(p.Rows))))
		}
	}

	style := r.styles.Pane
	if p.Focused {
		style = r.styles.PaneFocused
	}
	return style.Width(innerWidth).Render(b.String())
}
