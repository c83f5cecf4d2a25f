package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"keylens.dev/pkg/keylens/internal/domain"
	m "keylens.dev/pkg/keylens/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// TUI implements the workflow UI using Bubble Tea for interactive display.
type TUI struct {
	output   io.Writer
	previews PreviewSource
}

// NewTUI creates a new TUI. previews backs the on-demand preview pane.
func NewTUI(output io.Writer, previews PreviewSource) *TUI {
	return &TUI{output: output, previews: previews}
}

// DisplayUsages renders the usage list once, without entering the
// interactive loop. Used when a command only needs a listing.
func (t *TUI) DisplayUsages(ctx context.Context, usages []m.KeyUsage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newBrowseModel(usages, t.previews)

	_, err := fmt.Fprint(t.output, model.View())

	return err
}

// DisplayPreview prints the preview tree for a key.
func (t *TUI) DisplayPreview(ctx context.Context, keyName string, node m.PreviewNode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.output, "%s\n\n%s",
		titleStyle.Render(fmt.Sprintf("Preview for %q", keyName)),
		renderPreviewTree(node, 1))

	return err
}

// DisplayWatchEvent reports a batch of changed files before a re-scan.
func (t *TUI) DisplayWatchEvent(ctx context.Context, changed []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	_, _ = fmt.Fprintf(t.output, "%s\n", dimStyle.Render(fmt.Sprintf("changed: %d file(s), re-indexing", len(changed))))
}

// Browse runs the interactive key browser: cursor-driven exclusive
// selection, an archetype filter toggle, and a preview pane.
func (t *TUI) Browse(ctx context.Context, usages []m.KeyUsage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newBrowseModel(usages, t.previews)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// browseModel is the Bubble Tea model for the key browser.
type browseModel struct {
	all      []m.KeyUsage
	visible  []m.KeyUsage
	previews PreviewSource

	cursor      int
	filtered    bool
	showPreview bool
	preview     viewport.Model

	width    int
	height   int
	quitting bool
}

func newBrowseModel(usages []m.KeyUsage, previews PreviewSource) browseModel {
	model := browseModel{
		all:      usages,
		previews: previews,
		preview:  viewport.New(0, 0),
	}

	model.visible = domain.SelectAt(usages, 0)

	return model
}

func (bm browseModel) Init() tea.Cmd {
	return nil
}

func (bm browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.width = msg.Width
		bm.height = msg.Height
		bm.preview.Width = msg.Width
		bm.preview.Height = bm.itemsPerPage()

		return bm, nil

	case tea.KeyMsg:
		return bm.handleKeyPress(msg)
	}

	return bm, nil
}

func (bm browseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if bm.showPreview {
		return bm.handlePreviewKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		bm.quitting = true
		return bm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		bm.quitting = true
		return bm, tea.Quit

	case "down", "j":
		return bm.moveCursor(1), nil

	case "up", "k":
		return bm.moveCursor(-1), nil

	case "g", "home":
		return bm.moveCursorTo(0), nil

	case "G", "end":
		return bm.moveCursorTo(len(bm.visible) - 1), nil

	case "d", "pgdown":
		return bm.moveCursor(bm.itemsPerPage()), nil

	case "u", "pgup":
		return bm.moveCursor(-bm.itemsPerPage()), nil

	case "f":
		return bm.toggleFilter(), nil

	case "enter":
		return bm.openPreview(), nil
	}

	return bm, nil
}

func (bm browseModel) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		bm.showPreview = false
		return bm, nil

	case "ctrl+c":
		bm.quitting = true
		return bm, tea.Quit
	}

	var cmd tea.Cmd
	bm.preview, cmd = bm.preview.Update(msg)

	return bm, cmd
}

func (bm browseModel) moveCursor(delta int) browseModel {
	return bm.moveCursorTo(bm.cursor + delta)
}

// moveCursorTo clamps the cursor and re-applies the exclusive selection
// through the pure reducer, never flipping flags in place.
func (bm browseModel) moveCursorTo(index int) browseModel {
	if index < 0 {
		index = 0
	}

	if max := len(bm.visible) - 1; index > max {
		index = max
	}

	bm.cursor = index
	bm.visible = domain.SelectAt(bm.visible, bm.cursor)

	return bm
}

// toggleFilter switches between all keys and only keys the classifier
// recognized (everything but the default archetype).
func (bm browseModel) toggleFilter() browseModel {
	bm.filtered = !bm.filtered

	if bm.filtered {
		bm.visible = domain.FilterRecognized(bm.all)
	} else {
		bm.visible = append([]m.KeyUsage(nil), bm.all...)
	}

	return bm.moveCursorTo(0)
}

func (bm browseModel) openPreview() browseModel {
	if bm.previews == nil || len(bm.visible) == 0 {
		return bm
	}

	usage := bm.visible[bm.cursor]

	node, err := bm.previews.PreviewFor(usage.KeyName)
	if err != nil {
		return bm
	}

	content := fmt.Sprintf("%s  %s:%d\n\n%s",
		titleStyle.Render(usage.KeyName), usage.File, usage.Line,
		renderPreviewTree(node, 1))

	bm.preview.SetContent(content)
	bm.preview.GotoTop()
	bm.showPreview = true

	return bm
}

// itemsPerPage calculates how many rows fit between header and footer.
func (bm browseModel) itemsPerPage() int {
	if bm.height == 0 {
		return 10 // Default
	}

	// Header (2) + blank (1) + footer counts (2) + help (2)
	reserved := 7

	available := bm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (bm browseModel) View() string {
	if bm.quitting {
		return ""
	}

	if bm.showPreview {
		return bm.previewView()
	}

	return bm.listView()
}

func (bm browseModel) listView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("keylens — testing keys"))
	b.WriteString("\n\n")

	if len(bm.visible) == 0 {
		if bm.filtered {
			b.WriteString("  no recognized keys (press f to show all)\n")
		} else {
			b.WriteString("  no testing keys found\n")
		}

		return b.String()
	}

	perPage := bm.itemsPerPage()
	start, end := windowBounds(bm.cursor, len(bm.visible), perPage)

	for i := start; i < end; i++ {
		usage := bm.visible[i]

		marker := "  "
		line := bm.usageRow(usage)

		if usage.Selected {
			marker = "▸ "
			line = selectedStyle.Render(line)
		}

		fmt.Fprintf(&b, "%s%s\n", marker, line)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %d of %d keys", end-start, len(bm.visible))

	if bm.filtered {
		b.WriteString(dimStyle.Render("  (filter: recognized widgets only)"))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  ↑/k ↓/j: move | enter: preview | f: filter | q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (bm browseModel) usageRow(usage m.KeyUsage) string {
	tested := " "
	if usage.HasTest {
		tested = "✓"
	}

	return fmt.Sprintf("%s %-28s %-16s %s:%d", tested, usage.KeyName, usage.Widget, usage.File, usage.Line)
}

func (bm browseModel) previewView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("keylens — preview"))
	b.WriteString("\n\n")
	b.WriteString(bm.preview.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  esc/enter: back | q: close | ↑/↓: scroll"))
	b.WriteString("\n")

	return b.String()
}

// windowBounds keeps the cursor inside the visible slice of rows.
func windowBounds(cursor, total, perPage int) (int, int) {
	if total <= perPage {
		return 0, total
	}

	start := cursor - perPage/2
	if start < 0 {
		start = 0
	}

	if start+perPage > total {
		start = total - perPage
	}

	return start, start + perPage
}
