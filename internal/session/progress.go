package session

import (
	"math"

	"agriassist/internal/catalog"
)

// Answered reports whether q counts as answered: present and non-empty.
// "0" is a legitimate answer; an edited-then-cleared field is not.
func (s *Session) Answered(q catalog.Question) bool {
	v, ok := s.answers[q.ID]
	return ok && v != ""
}

// AnsweredCount returns how many countable questions are answered.
func (s *Session) AnsweredCount(c *catalog.Catalog) int {
	n := 0
	for _, q := range s.Countable(c) {
		if s.Answered(q) {
			n++
		}
	}
	return n
}

// Progress returns the completion percentage over the countable questions,
// rounded to the nearest integer, 0 when nothing is countable.
func (s *Session) Progress(c *catalog.Catalog) int {
	countable := s.Countable(c)
	if len(countable) == 0 {
		return 0
	}
	answered := 0
	for _, q := range countable {
		if s.Answered(q) {
			answered++
		}
	}
	return int(math.Round(float64(answered) / float64(len(countable)) * 100))
}
