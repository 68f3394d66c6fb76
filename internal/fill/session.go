// Package fill drives the question-and-answer pass over an extracted
// document. A Session walks the placeholder list in order, validates
// each answer, and tracks completion; the substitution helpers merge
// collected answers back into the document markup.
package fill

import (
	"fmt"
	"regexp"
	"strings"

	cferrors "github.com/chazuruo/chatfill/internal/errors"
	"github.com/chazuruo/chatfill/internal/placeholder"
)

// State describes where a Session is in its lifecycle.
type State int

const (
	// StateIdle means the session has not started prompting yet.
	StateIdle State = iota
	// StateChatting means a placeholder is awaiting an answer.
	StateChatting
	// StateComplete means every placeholder has an accepted answer.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChatting:
		return "chatting"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	// ErrNoActivePrompt is returned by Submit when the session is not
	// currently waiting on an answer.
	ErrNoActivePrompt = fmt.Errorf("no active prompt: %w", cferrors.ErrInvalid)

	// ErrEmptyAnswer is returned when a submitted answer is blank.
	ErrEmptyAnswer = fmt.Errorf("answer is empty: %w", cferrors.ErrInvalid)

	// ErrDateFormat is returned when a date placeholder receives an
	// answer that is not in YYYY-MM-DD form.
	ErrDateFormat = fmt.Errorf("date must be in YYYY-MM-DD format: %w", cferrors.ErrInvalid)
)

var dateAnswerRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Session tracks answers for an ordered placeholder list. The zero
// value is not usable; construct one with NewSession.
type Session struct {
	placeholders []placeholder.Placeholder
	answers      map[string]string
	cursor       int
	state        State
	enforceDates bool
}

// NewSession returns an idle session over the given placeholders.
// Date-format enforcement is on unless disabled with SetEnforceDates.
func NewSession(placeholders []placeholder.Placeholder) *Session {
	return &Session{
		placeholders: placeholders,
		answers:      make(map[string]string, len(placeholders)),
		state:        StateIdle,
		enforceDates: true,
	}
}

// SetEnforceDates toggles YYYY-MM-DD validation on answers to
// date-like placeholders.
func (s *Session) SetEnforceDates(enforce bool) {
	s.enforceDates = enforce
}

// Start moves the session into its prompting state. A session with no
// placeholders completes immediately.
func (s *Session) Start() {
	if s.state != StateIdle {
		return
	}
	if len(s.placeholders) == 0 {
		s.state = StateComplete
		return
	}
	s.cursor = 0
	s.state = StateChatting
}

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// Placeholders returns the ordered placeholder list the session walks.
func (s *Session) Placeholders() []placeholder.Placeholder {
	return s.placeholders
}

// Current returns the placeholder awaiting an answer. The second
// return is false unless the session is chatting.
func (s *Session) Current() (placeholder.Placeholder, bool) {
	if s.state != StateChatting {
		return placeholder.Placeholder{}, false
	}
	return s.placeholders[s.cursor], true
}

// CurrentIndex returns the cursor position, or -1 when the session is
// not chatting.
func (s *Session) CurrentIndex() int {
	if s.state != StateChatting {
		return -1
	}
	return s.cursor
}

// Answer returns the stored answer for a placeholder id.
func (s *Session) Answer(id string) (string, bool) {
	v, ok := s.answers[id]
	return v, ok
}

// Answers returns a copy of the collected answers keyed by
// placeholder id.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Progress reports how many placeholders have accepted answers out of
// the total.
func (s *Session) Progress() (answered, total int) {
	return len(s.answers), len(s.placeholders)
}

// Submit validates and stores an answer for the current placeholder,
// then advances to the next unanswered one. When none remain the
// session completes.
func (s *Session) Submit(answer string) error {
	if s.state != StateChatting {
		return ErrNoActivePrompt
	}
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return ErrEmptyAnswer
	}
	current := s.placeholders[s.cursor]
	if s.enforceDates && placeholder.IsDateLabel(current.Label) && !dateAnswerRe.MatchString(trimmed) {
		return ErrDateFormat
	}
	s.answers[current.ID] = trimmed
	s.advance()
	return nil
}

// Select re-opens the placeholder at index for revision. Any prior
// answer is kept until Submit overwrites it.
func (s *Session) Select(index int) error {
	if index < 0 || index >= len(s.placeholders) {
		return fmt.Errorf("placeholder index %d out of range: %w", index, cferrors.ErrInvalid)
	}
	s.cursor = index
	s.state = StateChatting
	return nil
}

// advance moves the cursor to the next unanswered placeholder,
// preferring positions after the cursor before wrapping around.
func (s *Session) advance() {
	for i := s.cursor + 1; i < len(s.placeholders); i++ {
		if _, ok := s.answers[s.placeholders[i].ID]; !ok {
			s.cursor = i
			return
		}
	}
	for i := 0; i < len(s.placeholders); i++ {
		if _, ok := s.answers[s.placeholders[i].ID]; !ok {
			s.cursor = i
			return
		}
	}
	s.state = StateComplete
}
