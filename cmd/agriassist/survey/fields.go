// Field rendering: one renderer per question type, dispatched exhaustively
// over the closed FieldType union.

package survey

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"agriassist/internal/catalog"
	"agriassist/internal/session"
)

// renderModuleCard renders one module: numbered header plus its visible
// fields. Hidden questions never reach this point; the session's visibility
// resolver already dropped them.
func (m Model) renderModuleCard(mod session.Module, pos, count int) string {
	badge := m.styles.ModuleBadge.Render(fmt.Sprintf(" %d ", mod.Index+1))
	name := m.styles.ModuleHeader.Render(" " + mod.Name)
	progress := m.styles.Muted.Render(fmt.Sprintf("  (module %d of %d)", pos+1, count))
	header := lipgloss.JoinHorizontal(lipgloss.Center, badge, name, progress)

	parts := []string{header}
	for i, q := range mod.Questions {
		parts = append(parts, m.renderField(q, i == m.curField))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderField(q catalog.Question, focused bool) string {
	cursor := "  "
	if focused {
		cursor = m.styles.OptionOn.Render("› ")
	}

	var body string
	switch q.Type {
	case catalog.Text, catalog.Number:
		body = m.renderInputField(q, focused)
	case catalog.Dropdown:
		body = m.renderDropdownField(q, focused)
	case catalog.Radio:
		body = m.renderRadioField(q)
	case catalog.GpsButton:
		body = m.renderGpsField(q, focused)
	}

	label := m.styles.FieldLabel.Render(q.Label)
	return lipgloss.JoinVertical(lipgloss.Left,
		cursor+label,
		"  "+body,
	)
}

func (m Model) renderInputField(q catalog.Question, focused bool) string {
	if focused {
		return m.styles.FieldFocused.Render(m.input.View())
	}
	val, _ := m.sess.Answer(q.ID)
	if val == "" {
		placeholder := q.Placeholder
		if placeholder == "" {
			placeholder = "Type here..."
		}
		return m.styles.FieldBlurred.Render(m.styles.Muted.Render(placeholder))
	}
	return m.styles.FieldBlurred.Render(val)
}

func (m Model) renderDropdownField(q catalog.Question, focused bool) string {
	val, _ := m.sess.Answer(q.ID)
	display := val
	if display == "" {
		display = m.styles.Muted.Render("Select an option...")
	}
	box := m.styles.FieldBlurred
	if focused {
		box = m.styles.FieldFocused
	}
	return box.Render("▾ " + display)
}

func (m Model) renderRadioField(q catalog.Question) string {
	selected, _ := m.sess.Answer(q.ID)
	var lines []string
	for _, opt := range q.Options {
		if opt == selected {
			lines = append(lines, m.styles.OptionOn.Render("(•) "+opt))
		} else {
			lines = append(lines, m.styles.OptionOff.Render("( ) "+opt))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderGpsField renders the acquisition trigger. The control reads as
// disabled once a fix exists; it never reverts.
func (m Model) renderGpsField(q catalog.Question, focused bool) string {
	box := m.styles.FieldBlurred
	if focused {
		box = m.styles.FieldFocused
	}

	var caption string
	switch {
	case m.sess.Location() != nil:
		caption = m.styles.Success.Render("✓ Location Captured") +
			m.styles.Muted.Render("  coordinates saved")
	case m.locating:
		caption = m.spin.View() + m.styles.Bold.Render(" Locating...")
	default:
		caption = m.styles.Bold.Render("⌖ Use My Current Location") +
			m.styles.Muted.Render("  auto-fills state & soil data")
	}

	field := box.Render(caption)
	if q.Info != "" {
		field = lipgloss.JoinVertical(lipgloss.Left, field, "  "+m.styles.Subtitle.Render(q.Info))
	}
	return field
}
