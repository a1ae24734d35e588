package session

import (
	"fmt"
	"sync"

	errx "github.com/P-AlaKara/rag-study-assistant/internal/core/error"
	"github.com/P-AlaKara/rag-study-assistant/internal/paper"
)

// Config holds session tuning sourced from environment variables.
type Config struct {
	BatchSize int `envconfig:"SESSION_BATCH_SIZE" default:"5"`
}

// Label describes which paper a session walks through. Purely descriptive,
// never validated against a catalog.
type Label struct {
	UnitCode string
	Year     string
}

// Session tracks one conversation's walkthrough of a past paper. All fields
// are guarded by mu; callers go through Store which locks per operation, so
// operations on a single session are mutually exclusive while distinct
// sessions never block each other.
type Session struct {
	mu             sync.Mutex
	label          Label
	questions      []paper.Question
	cursor         int
	answers        map[int]string
	clarifications map[int]string
	active         bool
}

func newSession() *Session {
	return &Session{
		answers:        map[int]string{},
		clarifications: map[int]string{},
	}
}

// reset returns the session to the empty state. Caller holds mu.
func (s *Session) reset() {
	s.label = Label{}
	s.questions = nil
	s.cursor = 0
	s.answers = map[int]string{}
	s.clarifications = map[int]string{}
	s.active = false
}

// Store owns every session keyed by conversation identity. Sessions are
// created on first reference and persist for the process lifetime; eviction
// is an external concern.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	batchSize int
}

// NewStore creates a session store delivering batches of cfg.BatchSize
// questions per turn.
func NewStore(cfg Config) *Store {
	size := cfg.BatchSize
	if size <= 0 {
		size = 5
	}
	return &Store{
		sessions:  map[string]*Session{},
		batchSize: size,
	}
}

// BatchSize reports how many questions one batch holds.
func (st *Store) BatchSize() int {
	return st.batchSize
}

// session returns the session for id, creating it on first reference.
func (st *Store) session(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok = st.sessions[id]; ok {
		return s
	}
	s = newSession()
	st.sessions[id] = s
	return s
}

// StartPaper re-initialises the session in place with a fresh question list:
// cursor back to zero, answer and clarification maps cleared, session active.
// An empty question list is an error, not a silently accepted start.
func (st *Store) StartPaper(id string, label Label, questions []paper.Question) error {
	if len(questions) == 0 {
		return errx.ErrEmptyPaper
	}

	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.label = label
	s.questions = questions
	s.active = true
	return nil
}

// NextBatch returns the next contiguous slice of questions and whether more
// remain after it. When nothing is left the session resets to empty and an
// empty batch with hasMore=false signals completion.
func (st *Store) NextBatch(id string) (batch []paper.Question, hasMore bool) {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.questions)
	start := s.cursor * st.batchSize
	if start >= total {
		s.reset()
		return nil, false
	}

	end := start + st.batchSize
	if end > total {
		end = total
	}
	s.cursor++
	return s.questions[start:end], end < total
}

// RecordAnswer upserts the submitted answer for a question. The text is
// stored verbatim; only the ordinal is validated.
func (st *Store) RecordAnswer(id string, ordinal int, text string) error {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	if ordinal < 1 || ordinal > len(s.questions) {
		return errx.ErrInvalidOrdinal
	}
	s.answers[ordinal] = text
	return nil
}

// Answer returns the recorded answer for a question, if any.
func (st *Store) Answer(id string, ordinal int) (string, bool) {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.answers[ordinal]
	return text, ok
}

// Clarification returns the cached explanation for a question. The store
// never calls the generation capability itself; on a cache miss the caller
// generates the text and writes it back via CacheClarification.
func (st *Store) Clarification(id string, ordinal int) (text string, ok bool, err error) {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	if ordinal < 1 || ordinal > len(s.questions) {
		return "", false, errx.ErrInvalidOrdinal
	}
	text, ok = s.clarifications[ordinal]
	return text, ok, nil
}

// CacheClarification stores a generated explanation. Idempotent: an already
// cached ordinal keeps its first value so re-requests never regenerate.
func (st *Store) CacheClarification(id string, ordinal int, text string) error {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	if ordinal < 1 || ordinal > len(s.questions) {
		return errx.ErrInvalidOrdinal
	}
	if _, exists := s.clarifications[ordinal]; !exists {
		s.clarifications[ordinal] = text
	}
	return nil
}

// Question returns the question with the given ordinal.
func (st *Store) Question(id string, ordinal int) (paper.Question, error) {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	if ordinal < 1 || ordinal > len(s.questions) {
		return paper.Question{}, errx.ErrInvalidOrdinal
	}
	return s.questions[ordinal-1], nil
}

// Active reports whether the session currently walks through a paper.
func (st *Store) Active(id string) bool {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Label returns the descriptive paper label for the session.
func (st *Store) Label(id string) Label {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// Total returns the number of questions in the session's paper.
func (st *Store) Total(id string) int {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Progress renders how far the walkthrough has come, e.g. "Questions 10/12".
func (st *Store) Progress(id string) string {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	shown := s.cursor * st.batchSize
	if shown > len(s.questions) {
		shown = len(s.questions)
	}
	return fmt.Sprintf("Questions %d/%d", shown, len(s.questions))
}

// Reset returns the session to the empty state, discarding all fields.
func (st *Store) Reset(id string) {
	s := st.session(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}
