// View rendering for the survey TUI: form header with progress accounting,
// module cards, and the tabbed strategy report.

package survey

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"agriassist/internal/report"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.phase == PhaseReport {
		return m.viewReport()
	}
	return m.viewForm()
}

// =============================================================================
// FORM VIEW
// =============================================================================

func (m Model) viewForm() string {
	header := m.renderHeader()

	mods := m.modules()
	var card string
	if len(mods) > 0 {
		idx := m.curModule
		if idx >= len(mods) {
			idx = len(mods) - 1
		}
		card = m.renderModuleCard(mods[idx], idx, len(mods))
	}

	footer := m.renderFormFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.styles.Content.Render(card),
		footer,
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" AgriAssist ")
	subtitle := m.styles.Muted.Render(" Smart Agricultural Analysis")

	answered := m.sess.AnsweredCount(m.catalog)
	total := len(m.sess.Countable(m.catalog))
	counter := m.styles.Badge.Render(fmt.Sprintf("%d / %d", answered, total))

	headerLine := lipgloss.JoinHorizontal(lipgloss.Center, title, subtitle, "  ", counter)

	pct := m.sess.Progress(m.catalog)
	barLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.bar.ViewAs(float64(pct)/100),
		m.styles.Bold.Render(fmt.Sprintf(" %d%%", pct)),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		barLine,
		m.styles.RenderDivider(m.width),
	)
}

func (m Model) renderFormFooter() string {
	var parts []string

	if m.submitting {
		parts = append(parts, m.spin.View()+m.styles.Bold.Render(" Generating strategy..."))
	} else {
		parts = append(parts, m.styles.Muted.Render("ctrl+g: Generate Strategy"))
	}
	parts = append(parts, m.styles.Muted.Render(
		"↑/↓ move · ←/→ choose · enter next · ctrl+c quit"))

	if notice := m.renderNotice(); notice != "" {
		parts = append(parts, notice)
	}
	return m.styles.Footer.Render(strings.Join(parts, "\n"))
}

func (m Model) renderNotice() string {
	switch m.noticeType {
	case noticeSuccess:
		return m.styles.Success.Render(m.notice)
	case noticeError:
		return m.styles.Error.Render(m.notice)
	case noticeInfo:
		return m.styles.Info.Render(m.notice)
	default:
		return ""
	}
}

// =============================================================================
// REPORT VIEW
// =============================================================================

func (m Model) viewReport() string {
	header := m.styles.Header.Render(" AgriAssist ") +
		m.styles.Muted.Render(" Strategy Report")

	tabs := m.renderTabBar()
	title := m.styles.Title.Render(m.presenter.Active().Title)

	var footerParts []string
	if m.exporting {
		footerParts = append(footerParts, m.spin.View()+m.styles.Bold.Render(" Exporting..."))
	} else {
		footerParts = append(footerParts, m.styles.Muted.Render(
			fmt.Sprintf("←/→ tabs · 1/2/3 jump · e export (.%s) · q quit", m.writer.Ext())))
	}
	if notice := m.renderNotice(); notice != "" {
		footerParts = append(footerParts, notice)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tabs,
		m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.body.View())),
		m.styles.Footer.Render(strings.Join(footerParts, "\n")),
	)
}

func (m Model) renderTabBar() string {
	var rendered []string
	for _, t := range report.Tabs {
		if t == m.presenter.ActiveTab() {
			rendered = append(rendered, m.styles.TabActive.Render(t.Display()))
		} else {
			rendered = append(rendered, m.styles.TabIdle.Render(t.Display()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
