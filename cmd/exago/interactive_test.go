package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/hotolab/exago-app/internal/project"
	"github.com/hotolab/exago-app/internal/report"
	"github.com/hotolab/exago-app/internal/results"
	"github.com/hotolab/exago-app/internal/store"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// scriptedLoader returns the next queued outcome on every fetch.
type scriptedLoader struct {
	mu       sync.Mutex
	outcomes []outcome
	cached   bool
}

type outcome struct {
	doc *results.Document
	err error
}

func (l *scriptedLoader) next() (*results.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.outcomes) == 0 {
		return nil, errors.New("no scripted outcome")
	}
	o := l.outcomes[0]
	l.outcomes = l.outcomes[1:]
	return o.doc, o.err
}

func (l *scriptedLoader) Load(context.Context, string) (*results.Document, error) {
	return l.next()
}

func (l *scriptedLoader) Refresh(context.Context, string) (*results.Document, error) {
	return l.next()
}

func (l *scriptedLoader) IsCached(context.Context, string) (bool, error) {
	return l.cached, nil
}

func loadedDoc() *results.Document {
	return &results.Document{
		Name:          sampleRepo,
		ExecutionTime: 30,
		Score:         &results.Score{Value: 90, Rank: "A"},
		ProjectRunner: &results.ProjectRunner{
			Coverage: &results.CoverageResult{Data: &results.CoverageData{Packages: []results.CoveragePackage{
				{Name: "pkg/a", Coverage: 75},
			}}},
		},
	}
}

func newTestModel(t *testing.T, outcomes ...outcome) viewModel {
	t.Helper()
	st := store.New(&scriptedLoader{outcomes: outcomes}, store.WithLogger(quietLogger()))
	m := newViewModel(context.Background(), sampleRepo, st, report.Options{})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
}

func update(t *testing.T, m viewModel, msg tea.Msg) viewModel {
	t.Helper()
	next, _ := m.Update(msg)
	vm, ok := next.(viewModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return vm
}

// settle runs a fetch synchronously and feeds its message back.
func settle(t *testing.T, m viewModel, op string) viewModel {
	t.Helper()
	return update(t, m, m.fetch(op)())
}

func keyPress(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestViewModel_StartsLoading(t *testing.T) {
	m := newTestModel(t, outcome{doc: loadedDoc()})

	if m.state.State() != project.StateLoading {
		t.Fatalf("state = %s, want loading", m.state.State())
	}
	if m.Init() == nil {
		t.Error("Init should start a load")
	}
	if !strings.Contains(m.View(), "Loading results...") {
		t.Errorf("loading view missing:\n%s", m.View())
	}
}

func TestViewModel_LoadThenExplore(t *testing.T) {
	m := settle(t, newTestModel(t, outcome{doc: loadedDoc()}), opLoad)

	if m.state.State() != project.StateLoaded {
		t.Fatalf("state = %s, want loaded", m.state.State())
	}
	view := m.View()
	if !strings.Contains(view, "Code Quality Report for "+sampleRepo) {
		t.Errorf("loaded view missing title:\n%s", view)
	}
	if !strings.Contains(view, "Press e to explore") {
		t.Error("explore hint missing before charts are shown")
	}

	m = update(t, m, keyPress("e"))
	if !m.state.ChartsVisible() {
		t.Fatal("e should show charts once loaded")
	}
	if !strings.Contains(m.View(), "Coverage by Package") {
		t.Errorf("charts missing after explore:\n%s", m.View())
	}
}

func TestViewModel_ExploreIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t, outcome{doc: loadedDoc()})
	m = update(t, m, keyPress("e"))
	if m.state.ChartsVisible() {
		t.Error("charts should not show before results load")
	}
}

func TestViewModel_ErrorDialog(t *testing.T) {
	m := settle(t, newTestModel(t, outcome{err: errors.New("status code 500")}), opLoad)

	if m.state.State() != project.StateError {
		t.Fatalf("state = %s, want error", m.state.State())
	}
	view := m.View()
	if !strings.Contains(view, "Something went wrong!") || !strings.Contains(view, "status code 500") {
		t.Errorf("error view missing message:\n%s", view)
	}
	if !strings.Contains(view, "Failed to load results") {
		t.Error("error dialog should be open on entry")
	}

	m = update(t, m, keyPress("x"))
	if m.state.ErrorDialogVisible() {
		t.Error("x should close the dialog")
	}
	if strings.Contains(m.View(), "Failed to load results") {
		t.Error("closed dialog still rendered")
	}
	if !strings.Contains(m.View(), "Something went wrong!") {
		t.Error("error view should remain after closing the dialog")
	}
}

func TestViewModel_FailedRefreshReopensDialog(t *testing.T) {
	m := newTestModel(t,
		outcome{err: errors.New("first")},
		outcome{err: errors.New("second")},
	)
	m = settle(t, m, opLoad)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.ErrorDialogVisible() {
		t.Fatal("enter should close the dialog")
	}

	m = update(t, m, keyPress("r"))
	if m.state.State() != project.StateLoading {
		t.Fatalf("state = %s, want loading after r", m.state.State())
	}
	m = settle(t, m, opRefresh)
	if !m.state.ErrorDialogVisible() {
		t.Error("a new failure should reopen the dialog")
	}
}

func TestViewModel_RefreshKeepsCharts(t *testing.T) {
	m := newTestModel(t, outcome{doc: loadedDoc()}, outcome{doc: loadedDoc()})
	m = settle(t, m, opLoad)
	m = update(t, m, keyPress("e"))

	m = update(t, m, keyPress("r"))
	if !strings.Contains(m.View(), "about 30s") {
		t.Errorf("loading screen should show the previous duration:\n%s", m.View())
	}
	m = settle(t, m, opRefresh)

	if m.state.State() != project.StateLoaded || !m.state.ChartsVisible() {
		t.Errorf("state = %s charts = %v, want loaded with charts", m.state.State(), m.state.ChartsVisible())
	}
}

func TestViewModel_DownloadErrorDialog(t *testing.T) {
	doc := loadedDoc()
	doc.ProjectRunner.Download = &results.Download{Error: "Could not download repository"}
	m := settle(t, newTestModel(t, outcome{doc: doc}), opLoad)

	if !strings.Contains(m.View(), "Could not download repository") {
		t.Errorf("download error dialog missing:\n%s", m.View())
	}
	m = update(t, m, keyPress("x"))
	if strings.Contains(m.View(), "Could not download repository") {
		t.Error("dialog should close on x")
	}
}

func TestViewModel_PreloadedSkipsFetch(t *testing.T) {
	loader := &scriptedLoader{outcomes: []outcome{{doc: loadedDoc()}}, cached: true}
	st := store.New(loader, store.WithLogger(quietLogger()))
	if ok, err := st.Preload(context.Background(), sampleRepo); err != nil || !ok {
		t.Fatalf("Preload = %v, %v", ok, err)
	}

	m := newViewModel(context.Background(), sampleRepo, st, report.Options{})
	if m.state.State() != project.StateLoaded {
		t.Errorf("state = %s, want loaded from snapshot", m.state.State())
	}
	if m.Init() != nil {
		t.Error("Init should not fetch when results are preloaded")
	}
}

func TestViewModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewModel_NotReady(t *testing.T) {
	st := store.New(&scriptedLoader{}, store.WithLogger(quietLogger()))
	m := newViewModel(context.Background(), sampleRepo, st, report.Options{})
	if m.View() != "Initializing..." {
		t.Errorf("View = %q", m.View())
	}
}
