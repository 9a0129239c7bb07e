// Package survey provides the interactive TUI for the AgriAssist farm
// assessment: the guided multi-module form, the submission flow, and the
// tabbed strategy report.
package survey

import (
	"context"

	"agriassist/cmd/agriassist/ui"
	"agriassist/internal/advisory"
	"agriassist/internal/catalog"
	"agriassist/internal/geo"
	"agriassist/internal/report"
	"agriassist/internal/session"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Phase determines which top-level view is active.
type Phase int

const (
	PhaseForm Phase = iota
	PhaseReport
)

// noticeKind classifies the single notification line at the bottom of the
// view. Errors from every async operation land here instead of blocking
// dialogs.
type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeInfo
	noticeSuccess
	noticeError
)

// Submitter sends a completed survey to the analysis service.
// *advisory.Client satisfies it; tests substitute a stub.
type Submitter interface {
	Submit(ctx context.Context, answers map[string]string, fix *geo.Fix) (*advisory.StrategyResponse, error)
}

// Options wires the collaborators of the survey model.
type Options struct {
	Catalog   *catalog.Catalog
	Session   *session.Session
	Locator   geo.Locator // nil when the environment has no location capability
	Submitter Submitter
	Writer    report.DocumentWriter
	Styles    ui.Styles
}

// Model is the bubbletea model for the whole client.
type Model struct {
	styles ui.Styles

	catalog *catalog.Catalog
	sess    *session.Session

	locator   geo.Locator
	submitter Submitter
	writer    report.DocumentWriter

	// Form state
	phase     Phase
	curModule int // index into sess.VisibleModules(catalog)
	curField  int // index into the current module's questions
	input     textinput.Model
	bar       progress.Model
	spin      spinner.Model

	// Async flags. locating is cosmetic only: the GPS trigger is disabled
	// after success, not while a request is outstanding.
	locating   bool
	submitting bool
	exporting  bool

	// Report state
	presenter *report.Presenter
	renderer  *glamour.TermRenderer
	body      viewport.Model

	// Notification sink
	notice     string
	noticeType noticeKind

	width  int
	height int
	ready  bool
}

// Messages for tea updates.
type (
	locationMsg    geo.Fix
	locationErrMsg struct{ err error }

	submitDoneMsg struct{ resp *advisory.StrategyResponse }
	submitErrMsg  struct{ err error }

	exportDoneMsg struct{ path string }
	exportErrMsg  struct{ err error }

	// scrollReportMsg fires shortly after the report renders so the view
	// starts at the top of the report area.
	scrollReportMsg struct{}
)

// New creates the survey model.
func New(opts Options) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	bar := progress.New(
		progress.WithSolidFill(string(opts.Styles.Theme.Accent)),
		progress.WithoutPercentage(),
	)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = opts.Styles.Spinner

	m := Model{
		styles:    opts.Styles,
		catalog:   opts.Catalog,
		sess:      opts.Session,
		locator:   opts.Locator,
		submitter: opts.Submitter,
		writer:    opts.Writer,
		phase:     PhaseForm,
		input:     input,
		bar:       bar,
		spin:      spin,
	}
	m.loadFocusedField()
	return m
}

// Init starts the spinner ticker.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// modules returns the currently visible module grouping.
func (m *Model) modules() []session.Module {
	return m.sess.VisibleModules(m.catalog)
}

// focusedQuestion returns the question under the cursor.
func (m *Model) focusedQuestion() (catalog.Question, bool) {
	mods := m.modules()
	if m.curModule >= len(mods) {
		return catalog.Question{}, false
	}
	qs := mods[m.curModule].Questions
	if m.curField >= len(qs) {
		return catalog.Question{}, false
	}
	return qs[m.curField], true
}

// clampFocus keeps the cursor valid after the visible set changes (a GPS
// fix removes hide_if_gps questions).
func (m *Model) clampFocus() {
	mods := m.modules()
	if len(mods) == 0 {
		m.curModule, m.curField = 0, 0
		return
	}
	if m.curModule >= len(mods) {
		m.curModule = len(mods) - 1
	}
	qs := mods[m.curModule].Questions
	if m.curField >= len(qs) {
		m.curField = len(qs) - 1
	}
	if m.curField < 0 {
		m.curField = 0
	}
}

// loadFocusedField binds the shared text input to the focused question so
// the input always shows the stored answer.
func (m *Model) loadFocusedField() {
	q, ok := m.focusedQuestion()
	if !ok {
		m.input.Blur()
		return
	}
	switch q.Type {
	case catalog.Text, catalog.Number:
		val, _ := m.sess.Answer(q.ID)
		m.input.SetValue(val)
		m.input.CursorEnd()
		placeholder := q.Placeholder
		if placeholder == "" {
			placeholder = "Type here..."
		}
		m.input.Placeholder = placeholder
		m.input.Focus()
	default:
		m.input.Blur()
	}
}

func (m *Model) setNotice(kind noticeKind, text string) {
	m.noticeType = kind
	m.notice = text
}

func (m *Model) clearNotice() {
	m.noticeType = noticeNone
	m.notice = ""
}

// Session exposes the underlying session, used by tests to assert state.
func (m Model) Session() *session.Session {
	return m.sess
}

// Presenter exposes the report presenter once the report phase is active.
func (m Model) Presenter() *report.Presenter {
	return m.presenter
}
