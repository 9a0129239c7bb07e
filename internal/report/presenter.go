// Package report presents the three-strategy advisory response: it holds the
// active tab, renders the selected strategy's markdown, and exports the
// currently displayed strategy as a standalone document.
package report

import (
	"agriassist/internal/advisory"
)

// Tab identifies one of the three strategy views.
type Tab int

const (
	TabLowRisk Tab = iota
	TabBalanced
	TabHighRisk
)

// Tabs lists the carousel order used for prev/next navigation.
var Tabs = []Tab{TabLowRisk, TabBalanced, TabHighRisk}

// String returns the wire/file identifier for the tab.
func (t Tab) String() string {
	switch t {
	case TabLowRisk:
		return "lowRisk"
	case TabBalanced:
		return "balanced"
	case TabHighRisk:
		return "highRisk"
	}
	return "unknown"
}

// Display returns the human label for the tab bar.
func (t Tab) Display() string {
	switch t {
	case TabLowRisk:
		return "Low Risk"
	case TabBalanced:
		return "Balanced"
	case TabHighRisk:
		return "High Risk"
	}
	return "Unknown"
}

// Renderer turns markdown into displayable text. Satisfied by
// *glamour.TermRenderer; the presenter falls back to the raw markdown when
// rendering fails so a styling problem never hides the report.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Presenter is a read-only view over a StrategyResponse plus the active-tab
// cell. Tab selection touches nothing outside the presenter.
type Presenter struct {
	resp   *advisory.StrategyResponse
	active Tab
}

// NewPresenter creates a presenter with the balanced strategy selected.
func NewPresenter(resp *advisory.StrategyResponse) *Presenter {
	return &Presenter{resp: resp, active: TabBalanced}
}

// ActiveTab returns the currently selected tab.
func (p *Presenter) ActiveTab() Tab {
	return p.active
}

// SelectTab switches the active tab. Out-of-range values are ignored.
func (p *Presenter) SelectTab(t Tab) {
	if t < TabLowRisk || t > TabHighRisk {
		return
	}
	p.active = t
}

// NextTab advances in carousel order, wrapping at the end.
func (p *Presenter) NextTab() {
	p.active = Tabs[(int(p.active)+1)%len(Tabs)]
}

// PrevTab moves back in carousel order, wrapping at the start.
func (p *Presenter) PrevTab() {
	p.active = Tabs[(int(p.active)+len(Tabs)-1)%len(Tabs)]
}

// Active returns the strategy behind the active tab.
func (p *Presenter) Active() advisory.Strategy {
	switch p.active {
	case TabLowRisk:
		return p.resp.LowRisk
	case TabHighRisk:
		return p.resp.HighRisk
	default:
		return p.resp.Balanced
	}
}

// RenderBody renders the active strategy's markdown body. A nil renderer or
// a rendering failure degrades to the raw markdown.
func (p *Presenter) RenderBody(r Renderer) string {
	content := p.Active().Content
	if r == nil || content == "" {
		return content
	}
	rendered, err := safeRender(r, content)
	if err != nil {
		return content
	}
	return rendered
}

// safeRender guards against renderer panics (glamour can panic on
// pathological input) as well as plain errors.
func safeRender(r Renderer, content string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = "", errRenderPanic
		}
	}()
	return r.Render(content)
}
