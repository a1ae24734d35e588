package errx

import "errors"

// Engine error kinds. None of these are fatal: the dialogue router maps each
// one onto a user-facing guidance message and the turn still produces a
// response string.
var (
	// ErrInvalidOrdinal marks a question number that is missing or outside
	// [1, total] on a clarification or answer request.
	ErrInvalidOrdinal = errors.New("question number missing or out of range")

	// ErrEmptyPaper marks an attempt to start a session with no questions.
	ErrEmptyPaper = errors.New("cannot start a paper without questions")

	// ErrGenerationUnavailable marks a failed call to the generation
	// capability; flows substitute a fixed placeholder instead of failing.
	ErrGenerationUnavailable = errors.New("generation capability unavailable")
)
