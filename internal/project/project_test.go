package project

import (
	"errors"
	"testing"

	"github.com/hotolab/exago-app/internal/results"
)

var errFetch = errors.New("connection refused")

func TestNewViewState_StartsLoading(t *testing.T) {
	v := NewViewState()
	if v.State() != StateLoading {
		t.Errorf("State() = %s, want loading", v.State())
	}
	if v.ChartsVisible() || v.ErrorDialogVisible() {
		t.Error("a fresh view should show neither charts nor dialog")
	}
	if v.LoadingDuration() != 0 {
		t.Errorf("LoadingDuration() = %d, want 0", v.LoadingDuration())
	}
}

func TestErrorDialog_Lifecycle(t *testing.T) {
	v := NewViewState()
	v.Fail(errFetch)

	if v.State() != StateError {
		t.Fatalf("State() = %s, want error", v.State())
	}
	if !v.ErrorDialogVisible() {
		t.Error("dialog should be open on entering Error")
	}
	if !errors.Is(v.Err(), errFetch) {
		t.Errorf("Err() = %v, want %v", v.Err(), errFetch)
	}

	if !v.CloseDialog() {
		t.Error("CloseDialog() = false, want true")
	}
	if v.ErrorDialogVisible() {
		t.Error("dialog should be closed after CloseDialog")
	}
	if v.CloseDialog() {
		t.Error("second CloseDialog() should report no change")
	}

	// A second failed refresh re-enters Error and reopens the dialog.
	v.Refresh()
	v.Fail(errFetch)
	if !v.ErrorDialogVisible() {
		t.Error("dialog should reopen when Error is re-entered")
	}
}

func TestErrorDialog_SurvivesReRender(t *testing.T) {
	v := NewViewState()
	v.Fail(errFetch)
	v.CloseDialog()

	// Re-applying the same snapshot is a re-render, not a new failure.
	v.Apply(Entity{Name: "r", Err: errFetch})
	if v.ErrorDialogVisible() {
		t.Error("re-applying the same error should not reopen the dialog")
	}

	v.Apply(Entity{Name: "r", Err: errors.New("timeout")})
	if !v.ErrorDialogVisible() {
		t.Error("a different failure should reopen the dialog")
	}
}

func TestShowCharts_OnlyWhenLoaded(t *testing.T) {
	v := NewViewState()
	if v.ShowCharts() {
		t.Error("ShowCharts() while loading should be a no-op")
	}
	v.Fail(errFetch)
	if v.ShowCharts() {
		t.Error("ShowCharts() in Error should be a no-op")
	}

	v.Refresh()
	v.Succeed(&results.Document{Name: "r"})
	if !v.ShowCharts() {
		t.Error("ShowCharts() when loaded should expand the charts")
	}
	if !v.ChartsVisible() {
		t.Error("ChartsVisible() = false after ShowCharts")
	}
	if v.ShowCharts() {
		t.Error("ShowCharts() twice should report no change")
	}
}

func TestRefresh_KeepsDocumentUntilReplaced(t *testing.T) {
	first := &results.Document{Name: "r", ExecutionTime: 30}
	second := &results.Document{Name: "r", ExecutionTime: 12}

	v := NewViewState()
	if v.Refresh() {
		t.Error("Refresh() while loading should report no change")
	}
	v.Succeed(first)
	v.ShowCharts()

	if !v.Refresh() {
		t.Fatal("Refresh() from Loaded should re-enter Loading")
	}
	if v.State() != StateLoading {
		t.Errorf("State() = %s, want loading", v.State())
	}
	if v.Document() != first {
		t.Error("previous document should be kept during refresh")
	}
	if v.LoadingDuration() != 30 {
		t.Errorf("LoadingDuration() = %d, want 30", v.LoadingDuration())
	}

	v.Succeed(second)
	if v.Document() != second {
		t.Error("Succeed should replace the document")
	}
	if !v.ChartsVisible() {
		t.Error("charts stay expanded for the session")
	}
}

func TestDownloadError_OpensDialog(t *testing.T) {
	doc := &results.Document{ProjectRunner: &results.ProjectRunner{
		Download: &results.Download{Error: "Could not download repository"},
	}}
	v := NewViewState()
	v.Succeed(doc)

	if !v.ErrorDialogVisible() {
		t.Fatal("dialog should be open for a download error")
	}
	v.CloseDialog()
	if v.ErrorDialogVisible() {
		t.Error("dialog should close")
	}
}

func TestApply(t *testing.T) {
	doc := &results.Document{Name: "r"}
	v := NewViewState()

	v.Apply(Entity{Name: "r", Loading: true})
	if v.State() != StateLoading {
		t.Errorf("after loading snapshot: %s", v.State())
	}

	v.Apply(Entity{Name: "r", Results: doc})
	if v.State() != StateLoaded || v.Document() != doc {
		t.Errorf("after results snapshot: %s %v", v.State(), v.Document())
	}

	v.Apply(Entity{Name: "r", Loading: true, Results: doc})
	if v.State() != StateLoading {
		t.Errorf("loading should win over results, got %s", v.State())
	}

	v.Apply(Entity{Name: "r", Err: errFetch, Results: doc})
	if v.State() != StateError {
		t.Errorf("error should win over results, got %s", v.State())
	}

	v.Apply(Entity{Name: "r"})
	if v.State() != StateError {
		t.Errorf("empty snapshot should not change state, got %s", v.State())
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateLoading: "loading",
		StateError:   "error",
		StateLoaded:  "loaded",
		State(42):    "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
