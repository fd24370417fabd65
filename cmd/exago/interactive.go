package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hotolab/exago-app/internal/project"
	"github.com/hotolab/exago-app/internal/report"
	"github.com/hotolab/exago-app/internal/sections"
	"github.com/hotolab/exago-app/internal/store"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Explore  key.Binding
	Refresh  key.Binding
	Close    key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Explore, k.Refresh, k.Close, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Explore, k.Refresh, k.Close},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Explore:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "explore charts")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Close:    key.NewBinding(key.WithKeys("x", "enter"), key.WithHelp("x", "close dialog")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))
)

const (
	opLoad    = "load"
	opRefresh = "refresh"
)

// settledMsg reports that a store fetch finished. The outcome is read
// back from the store snapshot.
type settledMsg struct {
	op  string
	err error
}

// viewModel is the Bubble Tea model hosting the report view state.
type viewModel struct {
	ctx        context.Context
	repository string
	store      *store.Store
	state      *project.ViewState
	opts       report.Options

	page    *sections.Page
	pageErr error

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	ready    bool
}

func newViewModel(ctx context.Context, repository string, st *store.Store, opts report.Options) viewModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := viewModel{
		ctx:        ctx,
		repository: repository,
		store:      st,
		state:      project.NewViewState(),
		opts:       opts,
		spinner:    sp,
		help:       help.New(),
		keys:       defaultKeyMap,
	}
	m.state.Apply(st.Snapshot(repository))
	m.rebuild()
	return m
}

// fetch runs op against the store off the update loop.
func (m viewModel) fetch(op string) tea.Cmd {
	ctx, st, repo := m.ctx, m.store, m.repository
	return func() tea.Msg {
		var err error
		if op == opRefresh {
			_, err = st.Refresh(ctx, repo)
		} else {
			_, err = st.Load(ctx, repo)
		}
		return settledMsg{op: op, err: err}
	}
}

// rebuild re-renders the report for the current document.
func (m *viewModel) rebuild() {
	m.page, m.pageErr = nil, nil
	if m.state.State() != project.StateLoaded {
		return
	}
	m.page, m.pageErr = sections.Build(m.state.Document())
	if m.pageErr != nil {
		logger.Error("building report failed", "repository", m.repository, "err", m.pageErr)
		return
	}
	if m.page.Name == "" {
		m.page.Name = m.repository
	}
	for _, err := range m.page.SectionErrors {
		logger.Warn("section left empty", "repository", m.repository, "err", err)
	}
	m.setContent()
}

func (m *viewModel) setContent() {
	if !m.ready || m.page == nil {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m viewModel) renderContent() string {
	opts := m.opts
	opts.Charts = m.state.ChartsVisible()
	content := report.Render(m.page, opts)
	if !opts.Charts {
		content += "\n\n" + statusStyle.Render("Press e to explore the charts.")
	}
	return content
}

func (m viewModel) Init() tea.Cmd {
	if m.state.State() != project.StateLoading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetch(opLoad))
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight)
			m.ready = true
			m.setContent()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight
		}

	case settledMsg:
		if msg.err != nil {
			logger.Debug("fetch settled with error", "op", msg.op, "err", msg.err)
		}
		m.state.Apply(m.store.Snapshot(m.repository))
		m.rebuild()
		return m, nil

	case spinner.TickMsg:
		if m.state.State() != project.StateLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Explore):
			if m.state.ShowCharts() {
				m.setContent()
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.state.Refresh() {
				return m, tea.Batch(m.spinner.Tick, m.fetch(opRefresh))
			}
			return m, nil
		case key.Matches(msg, m.keys.Close):
			m.state.CloseDialog()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.state.State() {
	case project.StateLoading:
		body = m.spinner.View() + " " + report.Loading(m.repository, m.state.LoadingDuration())
	case project.StateError:
		body = report.ErrorView(m.repository, m.state.Err())
	default:
		if m.pageErr != nil {
			body = report.ErrorView(m.repository, m.pageErr)
		} else {
			body = m.viewport.View()
		}
	}

	if m.state.ErrorDialogVisible() {
		body = m.dialog() + "\n" + body
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return body + "\n" + footer
}

func (m viewModel) dialog() string {
	const hint = "press x to close"
	if m.state.State() == project.StateError {
		return report.Dialog("Failed to load results", m.state.Err().Error(), hint)
	}
	return report.Dialog("Download failed", m.state.Document().DownloadError(), hint)
}

// runInteractiveView launches the Bubble Tea TUI for one repository.
func runInteractiveView(ctx context.Context, repository string, st *store.Store, opts report.Options) error {
	model := newViewModel(ctx, repository, st, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
