// Package session owns the mutable state of one assessment run: the answer
// map, the acquired location, and the submission lifecycle. All mutation goes
// through Session methods; derived views (visibility, progress) are pure
// reads so the UI can recompute them after every event.
package session

import (
	"agriassist/internal/advisory"
	"agriassist/internal/geo"
)

// Fields auto-filled on a successful location acquisition. These are fixed
// stand-in values for a reverse-geocoding step that is not implemented yet;
// the coordinates themselves are real.
const (
	AutoFillStateID    = "q3_state"
	AutoFillStateValue = "Odisha"
	AutoFillSoilID     = "q12_soil_type"
	AutoFillSoilValue  = "Alluvial / River Soil"
)

// SubmissionState is the lifecycle of the survey submission.
type SubmissionState int

const (
	Idle SubmissionState = iota
	Submitting
	Succeeded
	Failed
)

func (s SubmissionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Session is the single-writer state of one assessment run.
type Session struct {
	answers  map[string]string
	location *geo.Fix

	state    SubmissionState
	response *advisory.StrategyResponse
}

// New creates an empty session.
func New() *Session {
	return &Session{
		answers: map[string]string{},
		state:   Idle,
	}
}

// SetAnswer inserts or overwrites one answer. The backing map is replaced
// with a fresh snapshot on every write so views handed out earlier never
// observe a partial update.
func (s *Session) SetAnswer(id, value string) {
	next := make(map[string]string, len(s.answers)+1)
	for k, v := range s.answers {
		next[k] = v
	}
	next[id] = value
	s.answers = next
}

// Answer returns the stored value for id. Absence is distinct from an empty
// string: both are unanswered for progress, but only the latter was edited.
func (s *Session) Answer(id string) (string, bool) {
	v, ok := s.answers[id]
	return v, ok
}

// Answers returns a copy of the current answer map.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Location returns the acquired fix, or nil before a successful acquisition.
func (s *Session) Location() *geo.Fix {
	return s.location
}

// SetLocation records a successful acquisition and applies the documented
// auto-fill side effect, overwriting any prior values in the two designated
// fields. Once set, the location is never reset; a second call (possible
// when overlapping triggers raced before the first success) is
// last-write-wins.
func (s *Session) SetLocation(fix geo.Fix) {
	f := fix
	s.location = &f
	s.SetAnswer(AutoFillStateID, AutoFillStateValue)
	s.SetAnswer(AutoFillSoilID, AutoFillSoilValue)
}

// State returns the current submission state.
func (s *Session) State() SubmissionState {
	return s.state
}

// Response returns the parsed strategy response once State is Succeeded.
func (s *Session) Response() *advisory.StrategyResponse {
	return s.response
}

// BeginSubmit transitions Idle/Failed to Submitting. It reports false when a
// submission is already in flight or has already succeeded, in which case
// nothing changes.
func (s *Session) BeginSubmit() bool {
	if s.state == Submitting || s.state == Succeeded {
		return false
	}
	s.state = Submitting
	return true
}

// CompleteSubmit records a successful submission.
func (s *Session) CompleteSubmit(resp *advisory.StrategyResponse) {
	s.state = Succeeded
	s.response = resp
}

// FailSubmit records a failed submission. Answers and location are left
// untouched so the user can retry immediately.
func (s *Session) FailSubmit() {
	s.state = Failed
}
