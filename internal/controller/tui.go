package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	m "assethub.dev/pkg/assethub/internal/model"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorSuccess = lipgloss.Color("#00E676")
	colorAccent  = lipgloss.Color("#FFD700")
	colorMuted   = lipgloss.Color("#636363")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarn    = lipgloss.NewStyle().Foreground(colorAccent)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)

	styleHeader = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)
)

// TUI implements UI with styled output and a Bubble Tea pager for long views.
type TUI struct {
	output io.Writer
	// size reports the terminal size; ok is false when it is unknown.
	size func() (width, height int, ok bool)
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{
		output: output,
		size: func() (int, int, bool) {
			f, ok := output.(*os.File)
			if !ok {
				return 0, 0, false
			}

			width, height, err := term.GetSize(f.Fd())
			if err != nil {
				return 0, 0, false
			}

			return width, height, true
		},
	}
}

// DisplayScanStart lists the roots about to be scanned.
func (t *TUI) DisplayScanStart(ctx context.Context, roots []m.ScanRoot, concurrency int) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Scanning %d root(s) with %d worker(s)", len(roots), concurrency)))
	b.WriteString("\n")

	for _, root := range roots {
		fmt.Fprintf(&b, "  %s %s %s\n", root.Key, styleMuted.Render("->"), root.Path)
	}

	_, _ = fmt.Fprint(t.output, b.String())
}

// DisplayScanReport prints the scan tallies and where the index went.
func (t *TUI) DisplayScanReport(ctx context.Context, report ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(styleSuccess.Render("✓ Scan complete"))
	b.WriteString("\n\n")
	b.WriteString(renderScanStats(report.Stats, report.Index))

	if report.Stats.ErrorsEncountered > 0 {
		b.WriteString("\n")
		b.WriteString(styleWarn.Render(fmt.Sprintf("⚠ %d error(s) while scanning, see the log for details", report.Stats.ErrorsEncountered)))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nIndex written to %s\n", report.Output)

	if report.Backup != "" {
		fmt.Fprintf(&b, "%s\n", styleMuted.Render("Previous index backed up to "+string(report.Backup)))
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplayIndex shows the index summary and product list, paged when it does not fit.
func (t *TUI) DisplayIndex(ctx context.Context, index *m.AssetIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderIndexSummary(index) + "\n"
	if len(index.Products) == 0 {
		content += styleMuted.Render("No products") + "\n"
	} else {
		content += renderProductList(index)
	}

	return t.page("Asset index", content)
}

// DisplayProduct shows one product and its assets.
func (t *TUI) DisplayProduct(ctx context.Context, details ProductDetails) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if details.Product == nil {
		return fmt.Errorf("no product to display")
	}

	return t.page("Product "+details.Product.Code, renderProduct(details))
}

// DisplayTimeline shows the activity timeline of a directory.
func (t *TUI) DisplayTimeline(ctx context.Context, timeline m.DirectoryTimeline) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page("Activity timeline", renderTimeline(timeline))
}

// page prints content directly when it fits the terminal and opens the pager otherwise.
func (t *TUI) page(title, content string) error {
	model := newPagerModel(title, content)

	if width, height, ok := t.size(); ok {
		model.width = width
		model.height = height
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}

	return nil
}

type pagerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func defaultPagerKeyMap() pagerKeyMap {
	return pagerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "u"),
			key.WithHelp("u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "d", " "),
			key.WithHelp("d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k pagerKeyMap) help() string {
	bindings := []key.Binding{k.Up, k.Down, k.PageDown, k.PageUp, k.Top, k.Bottom, k.Quit}
	parts := make([]string, 0, len(bindings))

	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}

	return strings.Join(parts, " | ")
}

// pagerModel scrolls a block of pre-rendered lines.
type pagerModel struct {
	title    string
	lines    []string
	keys     pagerKeyMap
	height   int
	width    int
	offset   int
	quitting bool
}

// pagerReserved is the number of lines taken by the header box and the footer.
const pagerReserved = 7

func newPagerModel(title, content string) pagerModel {
	return pagerModel{
		title: title,
		lines: strings.Split(strings.TrimRight(content, "\n"), "\n"),
		keys:  defaultPagerKeyMap(),
	}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width
		pm.offset = min(pm.offset, pm.maxOffset())

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, pm.keys.Quit):
		pm.quitting = true
		return pm, tea.Quit
	case key.Matches(msg, pm.keys.Down):
		pm.offset = min(pm.offset+1, pm.maxOffset())
	case key.Matches(msg, pm.keys.Up):
		pm.offset = max(pm.offset-1, 0)
	case key.Matches(msg, pm.keys.PageDown):
		pm.offset = min(pm.offset+pm.linesPerPage(), pm.maxOffset())
	case key.Matches(msg, pm.keys.PageUp):
		pm.offset = max(pm.offset-pm.linesPerPage(), 0)
	case key.Matches(msg, pm.keys.Top):
		pm.offset = 0
	case key.Matches(msg, pm.keys.Bottom):
		pm.offset = pm.maxOffset()
	}

	return pm, nil
}

func (pm pagerModel) linesPerPage() int {
	if pm.height == 0 {
		return len(pm.lines)
	}

	return max(pm.height-pagerReserved, 1)
}

func (pm pagerModel) maxOffset() int {
	return max(len(pm.lines)-pm.linesPerPage(), 0)
}

func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && len(pm.lines) > pm.linesPerPage()
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styleHeader.Render(styleTitle.Render(pm.title)))
	b.WriteString("\n\n")

	visible := pm.lines
	paged := pm.needsPagination()

	if paged {
		end := min(pm.offset+pm.linesPerPage(), len(pm.lines))
		visible = pm.lines[pm.offset:end]
	}

	for _, line := range visible {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if paged {
		end := min(pm.offset+pm.linesPerPage(), len(pm.lines))

		b.WriteString("\n")
		b.WriteString(styleMuted.Render(fmt.Sprintf("Lines %d-%d of %d", pm.offset+1, end, len(pm.lines))))
		b.WriteString("\n")
		b.WriteString(styleMuted.Render(pm.keys.help()))
		b.WriteString("\n")
	}

	return b.String()
}
