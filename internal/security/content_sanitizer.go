// Package security provides application security features.
//
// FeedbackSanitizer strips markup from user-authored feedback text before it
// is stored. Strengths and areas-to-improve are prose fields rendered on both
// dashboards, so anything beyond plain text is removed with a bluemonday
// strict policy.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FeedbackSanitizer cleans user-authored feedback text.
// Same input always yields the same output.
type FeedbackSanitizer interface {
	// Sanitize removes all HTML markup, unescapes entities and trims
	// surrounding whitespace. Empty input returns the empty string.
	Sanitize(raw string) string
}

// feedbackSanitizer implements FeedbackSanitizer with a strict policy that
// allows no elements or attributes at all. Safe for concurrent use.
type feedbackSanitizer struct {
	policy *bluemonday.Policy
}

// NewFeedbackSanitizer creates a FeedbackSanitizer.
func NewFeedbackSanitizer() FeedbackSanitizer {
	return &feedbackSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize removes all HTML markup from the text.
// bluemonday escapes entities it keeps, so the output is unescaped back to
// plain text for storage ("AT&T" stays "AT&T" in the database).
func (s *feedbackSanitizer) Sanitize(raw string) string {
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
