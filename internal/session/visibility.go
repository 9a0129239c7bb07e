package session

import "agriassist/internal/catalog"

// Module is one renderable module: its display name and the questions that
// are currently visible in it. Modules with no visible questions are dropped
// from the layout entirely.
type Module struct {
	Index     int
	Name      string
	Questions []catalog.Question
}

// visible reports whether q should be rendered given the current location
// state. The only conditional rule: hide_if_gps questions disappear once a
// fix is captured.
func (s *Session) visible(q catalog.Question) bool {
	return !(q.HideIfGPS && s.location != nil)
}

// Renderable returns the ordered questions that should be shown, including
// the GPS trigger control.
func (s *Session) Renderable(c *catalog.Catalog) []catalog.Question {
	var out []catalog.Question
	for _, q := range c.Questions {
		if s.visible(q) {
			out = append(out, q)
		}
	}
	return out
}

// Countable returns the questions that participate in progress accounting:
// everything renderable except the GPS trigger, which is a control rather
// than a question.
func (s *Session) Countable(c *catalog.Catalog) []catalog.Question {
	var out []catalog.Question
	for _, q := range s.Renderable(c) {
		if q.Type == catalog.GpsButton {
			continue
		}
		out = append(out, q)
	}
	return out
}

// VisibleModules groups the renderable questions by module, skipping modules
// that end up empty.
func (s *Session) VisibleModules(c *catalog.Catalog) []Module {
	var out []Module
	for i, name := range c.Modules {
		var qs []catalog.Question
		for _, q := range c.QuestionsForModule(i) {
			if s.visible(q) {
				qs = append(qs, q)
			}
		}
		if len(qs) == 0 {
			continue
		}
		out = append(out, Module{Index: i, Name: name, Questions: qs})
	}
	return out
}
