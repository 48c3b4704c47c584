// Package oracle adapts the external language model that invents daily
// challenges and grades submitted phrases.
//
// The game core only sees the ChallengeGenerator and Scorer interfaces. The
// Gemini type implements both on top of Google's generative-ai-go client;
// tests and alternative oracles plug in through the same interfaces.
package oracle

import (
	"context"
	"errors"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("oracle returned no text")

// ChallengeGenerator produces the prompt for a category's daily challenge.
type ChallengeGenerator interface {
	// Generate returns a prompt beginning with "Create a phrase that".
	Generate(ctx context.Context, category domain.Category) (string, error)
}

// Scorer grades a phrase written for prompt in category.
type Scorer interface {
	Score(ctx context.Context, phrase string, category domain.Category, prompt string) (Score, error)
}

// Score is the outcome of grading a phrase.
//
// Value is always within 0..10. Parsed is false when the model's text held
// no valid score and Value fell back to 0; Feedback is returned regardless.
type Score struct {
	Value    int    `json:"score"`
	Feedback string `json:"feedback"`
	Parsed   bool   `json:"-"`
}
