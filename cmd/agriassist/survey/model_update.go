package survey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"agriassist/internal/advisory"
	"agriassist/internal/catalog"
	"agriassist/internal/geo"
	"agriassist/internal/report"
)

// reportChromeHeight is the vertical space the report header, tab bar and
// footer occupy around the body viewport.
const reportChromeHeight = 8

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case locationMsg:
		m.locating = false
		m.sess.SetLocation(geo.Fix(msg))
		m.clampFocus()
		m.loadFocusedField()
		m.setNotice(noticeSuccess,
			fmt.Sprintf("Location captured at %s. State & soil auto-filled.", geo.Fix(msg)))
		return m, nil

	case locationErrMsg:
		m.locating = false
		m.setNotice(noticeError, "GPS failed: "+locationFailureText(msg.err))
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		m.sess.CompleteSubmit(msg.resp)
		m.presenter = report.NewPresenter(msg.resp)
		m.phase = PhaseReport
		m.clearNotice()
		m.refreshReportBody()
		return m, scheduleReportScroll()

	case submitErrMsg:
		m.submitting = false
		m.sess.FailSubmit()
		m.setNotice(noticeError, advisory.BackendFailureNotice)
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		m.setNotice(noticeSuccess, "Exported "+msg.path)
		return m, nil

	case exportErrMsg:
		m.exporting = false
		m.setNotice(noticeError, "Export failed. The report is unchanged; press e to retry.")
		return m, nil

	case scrollReportMsg:
		m.body.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.phase == PhaseReport {
			return m.updateReport(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width <= 0 || msg.Height <= 0 {
		return m, nil
	}
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	wrap := msg.Width - 4
	if wrap > 100 {
		wrap = 100
	}
	if wrap > 0 {
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		); err == nil {
			m.renderer = r
		}
	}

	m.input.Width = msg.Width - 10
	barWidth := msg.Width - 24
	if barWidth < 10 {
		barWidth = 10
	}
	m.bar.Width = barWidth

	bodyHeight := msg.Height - reportChromeHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.body.Width = msg.Width - 4
	m.body.Height = bodyHeight
	if m.phase == PhaseReport {
		m.refreshReportBody()
	}
	return m, nil
}

// =============================================================================
// FORM KEYS
// =============================================================================

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, hasFocus := m.focusedQuestion()

	switch msg.String() {
	case "ctrl+g":
		return m.triggerSubmit()

	case "tab", "down":
		m.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil

	case "enter", " ":
		if hasFocus && q.Type == catalog.GpsButton {
			return m.triggerLocation()
		}
		if msg.String() == "enter" {
			m.moveFocus(1)
			return m, nil
		}

	case "left", "right":
		if hasFocus && q.Type.NeedsOptions() {
			m.cycleOption(q, msg.String() == "right")
			return m, nil
		}
	}

	// Everything else belongs to the focused text input, if any.
	if hasFocus && (q.Type == catalog.Text || q.Type == catalog.Number) {
		if q.Type == catalog.Number && !numberKeyAllowed(msg) {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.sess.SetAnswer(q.ID, m.input.Value())
		return m, cmd
	}
	return m, nil
}

// numberKeyAllowed restricts rune input on Number fields to what a numeric
// input medium accepts. The stored value stays a string either way.
func numberKeyAllowed(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeySpace {
		return false
	}
	if msg.Type != tea.KeyRunes {
		return true // navigation and editing keys pass through
	}
	for _, r := range msg.Runes {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != '-' {
			return false
		}
	}
	return true
}

// moveFocus advances the cursor by delta fields, crossing module boundaries.
func (m *Model) moveFocus(delta int) {
	mods := m.modules()
	if len(mods) == 0 {
		return
	}
	m.clampFocus()

	if delta > 0 {
		if m.curField < len(mods[m.curModule].Questions)-1 {
			m.curField++
		} else if m.curModule < len(mods)-1 {
			m.curModule++
			m.curField = 0
		}
	} else {
		if m.curField > 0 {
			m.curField--
		} else if m.curModule > 0 {
			m.curModule--
			m.curField = len(mods[m.curModule].Questions) - 1
		}
	}
	m.loadFocusedField()
}

// cycleOption selects the previous/next option of a Dropdown or Radio
// question. Selection writes through immediately, which keeps Radio
// exclusivity trivially: one id, one value.
func (m *Model) cycleOption(q catalog.Question, forward bool) {
	current, _ := m.sess.Answer(q.ID)
	idx := -1
	for i, opt := range q.Options {
		if opt == current {
			idx = i
			break
		}
	}
	if forward {
		idx++
		if idx >= len(q.Options) {
			idx = 0
		}
	} else {
		idx--
		if idx < 0 {
			idx = len(q.Options) - 1
		}
	}
	m.sess.SetAnswer(q.ID, q.Options[idx])
}

// triggerLocation starts a one-shot acquisition. The control is disabled
// once a fix exists; before the first success overlapping triggers are not
// prevented, matching the documented acquisition contract.
func (m Model) triggerLocation() (tea.Model, tea.Cmd) {
	if m.sess.Location() != nil {
		return m, nil
	}
	if m.locator == nil {
		m.setNotice(noticeError, "GPS failed: no location capability on this device.")
		return m, nil
	}
	m.locating = true
	m.clearNotice()
	return m, acquireLocation(m.locator)
}

// triggerSubmit starts the submission unless one is already in flight or
// has succeeded. No answers are required; an empty survey is submittable.
func (m Model) triggerSubmit() (tea.Model, tea.Cmd) {
	if !m.sess.BeginSubmit() {
		return m, nil
	}
	m.submitting = true
	m.clearNotice()
	return m, submitSurvey(m.submitter, m.sess.Answers(), m.sess.Location())
}

// locationFailureText maps an acquisition error to its fixed user message.
func locationFailureText(err error) string {
	if errors.Is(err, geo.ErrUnavailable) {
		return "no location capability on this device."
	}
	var gerr *geo.Error
	if errors.As(err, &gerr) {
		return gerr.Message()
	}
	return (&geo.Error{Kind: geo.KindUnknown}).Message()
}

// =============================================================================
// REPORT KEYS
// =============================================================================

func (m Model) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "left", "h":
		m.presenter.PrevTab()
		m.refreshReportBody()
		return m, nil

	case "right", "l":
		m.presenter.NextTab()
		m.refreshReportBody()
		return m, nil

	case "1", "2", "3":
		tab := report.Tab(int(msg.String()[0] - '1'))
		m.presenter.SelectTab(tab)
		m.refreshReportBody()
		return m, nil

	case "e":
		if m.exporting {
			return m, nil
		}
		m.exporting = true
		m.clearNotice()
		return m, exportActive(m.presenter, m.writer)
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

// refreshReportBody re-renders the active strategy into the viewport.
func (m *Model) refreshReportBody() {
	if m.presenter == nil {
		return
	}
	content := m.presenter.RenderBody(m.renderer)
	m.body.SetContent(strings.TrimRight(content, "\n"))
	m.body.GotoTop()
}
