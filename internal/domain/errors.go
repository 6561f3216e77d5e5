package domain

import "errors"

// Failures in these two categories abort the whole run before any phase
// processes examples; every other failure is recorded per example and the
// batch continues.
var (
	// ErrToolNotFound means a required external executable is absent.
	ErrToolNotFound = errors.New("required tool not found")

	// ErrNoExamples means discovery found nothing across both variants.
	ErrNoExamples = errors.New("no examples found")
)
