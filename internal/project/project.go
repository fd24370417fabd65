// Package project holds the view state of a project report page.
//
// The page moves through three states: Loading until the store
// answers, then Error or Loaded. A loaded page starts with its charts
// collapsed; Explore expands them for the rest of the session. The
// error dialog opens every time the page enters Error and only the
// user can close it.
package project

import (
	"errors"

	"github.com/hotolab/exago-app/internal/results"
)

// Entity is a read-only snapshot of one repository as held by the
// store.
type Entity struct {
	Name    string
	Err     error
	Results *results.Document
	Loading bool
}

// State is the top-level branch of the page.
type State int

// Page states.
const (
	StateLoading State = iota
	StateError
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// ViewState drives which part of the page is rendered. The zero
// value is not usable; call NewViewState.
type ViewState struct {
	state           State
	err             error
	doc             *results.Document
	showCharts      bool
	showErrorDialog bool
}

// NewViewState returns a view in the Loading state.
func NewViewState() *ViewState {
	return &ViewState{state: StateLoading}
}

// State returns the current branch.
func (v *ViewState) State() State { return v.state }

// Err returns the fetch error while in the Error state.
func (v *ViewState) Err() error {
	if v.state != StateError {
		return nil
	}
	return v.err
}

// Document returns the last fully loaded document, or nil. During a
// refresh it still holds the previous document.
func (v *ViewState) Document() *results.Document { return v.doc }

// ChartsVisible reports whether the chart list is expanded.
func (v *ViewState) ChartsVisible() bool { return v.showCharts }

// ErrorDialogVisible reports whether the error dialog is open. The
// dialog belongs to the Error state and to a loaded document whose
// sources could not be downloaded.
func (v *ViewState) ErrorDialogVisible() bool {
	if !v.showErrorDialog {
		return false
	}
	switch v.state {
	case StateError:
		return true
	case StateLoaded:
		return v.doc.DownloadError() != ""
	default:
		return false
	}
}

// Fail moves the view to Error and reopens the error dialog.
func (v *ViewState) Fail(err error) {
	v.state = StateError
	v.err = err
	v.showErrorDialog = true
}

// Succeed moves the view to Loaded with doc replacing any previous
// document in one step. A document reporting a download failure opens
// the error dialog.
func (v *ViewState) Succeed(doc *results.Document) {
	v.state = StateLoaded
	v.err = nil
	v.doc = doc
	if doc.DownloadError() != "" {
		v.showErrorDialog = true
	}
}

// Refresh moves the view back to Loading. The previous document is
// kept until a new one arrives through Succeed. It returns false when
// a load is already in flight.
func (v *ViewState) Refresh() bool {
	if v.state == StateLoading {
		return false
	}
	v.state = StateLoading
	return true
}

// ShowCharts expands the chart list. It only applies to a loaded page
// and cannot be undone; it returns whether the call changed anything.
func (v *ViewState) ShowCharts() bool {
	if v.state != StateLoaded || v.showCharts {
		return false
	}
	v.showCharts = true
	return true
}

// CloseDialog dismisses the error dialog. It returns whether the
// dialog was open.
func (v *ViewState) CloseDialog() bool {
	if !v.ErrorDialogVisible() {
		return false
	}
	v.showErrorDialog = false
	return true
}

// Apply derives the transition from a store snapshot: loading wins
// over an error, an error over results.
func (v *ViewState) Apply(e Entity) {
	switch {
	case e.Loading:
		if v.state != StateLoading {
			v.Refresh()
		}
	case e.Err != nil:
		// The same failure seen again is a re-render, not a new entry.
		if v.state != StateError || !errors.Is(v.err, e.Err) {
			v.Fail(e.Err)
		}
	case e.Results != nil:
		if e.Results != v.doc || v.state != StateLoaded {
			v.Succeed(e.Results)
		}
	}
}

// LoadingDuration is how long the last analysis took, which the
// loading screen shows as the expected wait. It is zero when unknown.
func (v *ViewState) LoadingDuration() results.Seconds {
	if v.doc == nil || v.doc.ExecutionTime < 0 {
		return 0
	}
	return v.doc.ExecutionTime
}
