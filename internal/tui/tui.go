package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Makepad-fr/atlas/internal/countries"
	"github.com/Makepad-fr/atlas/internal/filter"
	"github.com/Makepad-fr/atlas/internal/model"
	"github.com/Makepad-fr/atlas/internal/ui"
)

// Loader is satisfied by *countries.Loader.
type Loader interface {
	Load(ctx context.Context) countries.Result
}

// Options tune the viewer.
type Options struct {
	Theme      ui.Theme
	Population ui.PopulationFormatter
	Logger     *zap.Logger
}

// countryItem adapts model.Country to bubbles/list.Item
type countryItem struct{ c model.Country }

func (i countryItem) Title() string       { return i.c.Name }
func (i countryItem) Description() string { return i.c.Region }
func (i countryItem) FilterValue() string { return i.c.Name }

// Custom delegate to render each item as a card
type cardDelegate struct {
	theme ui.Theme
	pop   ui.PopulationFormatter
}

func (d cardDelegate) Height() int                               { return 5 }
func (d cardDelegate) Spacing() int                              { return 1 }
func (d cardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(countryItem)
	if !ok {
		return
	}
	lines := ui.CardLines(d.theme, d.pop, it.c, m.Width()-4)
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render("▌ ")
	}
	for i, ln := range lines {
		lines[i] = prefix + ln
	}
	fmt.Fprint(w, strings.Join(lines, "\n"))
}

type loadedMsg struct{ res countries.Result }

// Model is the interactive country viewer.
type Model struct {
	ctx    context.Context
	loader Loader
	log    *zap.Logger

	result countries.Result
	view   filter.View

	search  textinput.Model
	region  int // index into model.Regions
	theme   ui.Theme
	pop     ui.PopulationFormatter
	spinner spinner.Model
	list    list.Model
	keys    keyMap

	width, height int
}

// New builds the viewer in the loading state.
func New(ctx context.Context, loader Loader, opt Options) Model {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Theme.Name == "" {
		opt.Theme = ui.NewTheme(ui.ThemeDark)
	}

	m := Model{
		ctx:    ctx,
		loader: loader,
		log:    opt.Logger,
		result: countries.Loading(),
		theme:  opt.Theme,
		pop:    opt.Population,
		keys:   defaultKeys(),
		width:  80,
		height: 24,
	}

	m.search = textinput.New()
	m.search.Prompt = ""
	m.search.Placeholder = "Search for a country..."
	m.search.CharLimit = 100
	m.search.Width = 28
	m.search.Focus()

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	l := list.New(nil, m.delegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	m.list = l

	m.applyTheme()
	m.resize()
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(), textinput.Blink)
}

// fetch runs the single startup load off the update loop.
func (m Model) fetch() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		return loadedMsg{res: loader.Load(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		m.result = msg.res
		m.log.Info("country data ready",
			zap.Stringer("state", m.result.State),
			zap.Int("records", len(m.result.Records())),
			zap.Error(m.result.Err),
		)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.result.State != countries.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextRegion):
			m.region = (m.region + 1) % len(model.Regions)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.PrevRegion):
			m.region = (m.region - 1 + len(model.Regions)) % len(model.Regions)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.theme = m.theme.Toggled()
			m.applyTheme()
			return m, nil
		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	// everything else edits the search box
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refresh()
	}
	return m, cmd
}

// refresh recomputes the visible subset from scratch.
func (m *Model) refresh() {
	m.view = filter.Evaluate(m.result, m.Query())
	items := make([]list.Item, 0, len(m.view.Countries))
	for _, c := range m.view.Countries {
		items = append(items, countryItem{c: c})
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *Model) applyTheme() {
	m.list.SetDelegate(m.delegate())
	m.list.Styles.PaginationStyle = m.theme.Muted
	m.search.PlaceholderStyle = m.theme.Muted
	m.search.TextStyle = m.theme.Title.UnsetBold()
	m.spinner.Style = m.theme.Accent
}

func (m *Model) resize() {
	w, h := m.width-6, m.height-14
	if w < 20 {
		w = 20
	}
	if h < 6 {
		h = 6
	}
	m.list.SetSize(w, h)
}

func (m Model) delegate() cardDelegate {
	return cardDelegate{theme: m.theme, pop: m.pop}
}

// Query is the current pair of filter inputs.
func (m Model) Query() filter.Query {
	return filter.Query{Term: m.search.Value(), Region: model.Regions[m.region]}
}

// Visible is the filtered list currently shown.
func (m Model) Visible() []model.Country { return m.view.Countries }

func (m Model) Outcome() filter.Outcome { return m.view.Outcome }

func (m Model) Theme() ui.Theme { return m.theme }

func (m Model) View() string {
	t := m.theme
	var body string
	switch m.view.Outcome {
	case filter.Loading:
		body = m.spinner.View() + " Loading countries..."
	case filter.NoResults:
		body = ui.NoResults(t)
		if note := ui.Unavailable(t, m.view.Failure); note != "" {
			body = lipgloss.JoinVertical(lipgloss.Center, body, note)
		}
		body = lipgloss.PlaceHorizontal(m.width-6, lipgloss.Center, body)
	default:
		status := t.Muted.Render(fmt.Sprintf("Showing %d of %d countries", len(m.view.Countries), m.view.Total))
		body = status + "\n\n" + m.list.View()
	}

	content := strings.Join([]string{m.header(), m.controls(), "", body, "", m.help()}, "\n")
	return t.App.Render(ui.PanelString(t, content))
}

// helpers for View
func (m Model) header() string {
	t := m.theme
	title := t.Title.Render("Where in the world?")
	toggle := t.Toggle.Render(t.ToggleLabel())
	gap := m.width - 6 - t.Header.GetHorizontalFrameSize() - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 2 {
		gap = 2
	}
	return t.Header.Render(title + strings.Repeat(" ", gap) + toggle)
}

func (m Model) controls() string {
	t := m.theme
	search := t.Input.Render(t.SymSearch + " " + m.search.View())
	region := t.Input.Render("◀ " + model.RegionLabel(model.Regions[m.region]) + " ▶")
	return lipgloss.JoinHorizontal(lipgloss.Center, search, "  ", region)
}

func (m Model) help() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Muted.Render(strings.Join(parts, " • "))
}

// Run starts the viewer and blocks until the user quits. Quitting cancels
// a fetch that is still in flight.
func Run(ctx context.Context, loader Loader, opt Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, loader, opt), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
