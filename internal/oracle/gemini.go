package oracle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/observability"
)

const (
	challengeTemperature = 1.5
	scoringTemperature   = 0.6
)

// request is one single-turn exchange with the model.
type request struct {
	System      string
	Prompt      string
	Temperature float32
}

// textGenerator performs a single model call and returns its text.
type textGenerator interface {
	generateText(ctx context.Context, req request) (string, error)
}

// Gemini implements ChallengeGenerator and Scorer with Google Gemini.
type Gemini struct {
	gen     textGenerator
	timeout time.Duration
	close   func() error
}

var (
	_ ChallengeGenerator = (*Gemini)(nil)
	_ Scorer             = (*Gemini)(nil)
)

// NewGemini dials the Gemini API with apiKey. Every call is bounded by
// timeout; a zero timeout leaves the caller's deadline in charge.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("oracle: gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{
		gen:     &genaiGenerator{client: client, model: model},
		timeout: timeout,
		close:   client.Close,
	}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.close == nil {
		return nil
	}
	return g.close()
}

// Generate asks the model for today's challenge in category.
func (g *Gemini) Generate(ctx context.Context, category domain.Category) (prompt string, err error) {
	ctx, span := otel.Tracer("oracle/Gemini").Start(ctx, "Generate",
		trace.WithAttributes(attribute.String("category", category.String())),
	)
	defer span.End()
	defer observability.ObserveOracle("generate", time.Now(), &err)

	text, err := g.call(ctx, request{
		System:      challengeSystemPrompt,
		Prompt:      challengeUserPrompt(category),
		Temperature: challengeTemperature,
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	prompt = NormalizeChallenge(text)
	if prompt == "" {
		err = ErrEmptyResponse
		return "", err
	}
	return prompt, nil
}

// Score grades phrase. A response without a valid score is not an error:
// the value falls back to 0 and the feedback is still returned.
func (g *Gemini) Score(ctx context.Context, phrase string, category domain.Category, prompt string) (s Score, err error) {
	ctx, span := otel.Tracer("oracle/Gemini").Start(ctx, "Score",
		trace.WithAttributes(attribute.String("category", category.String())),
	)
	defer span.End()
	defer observability.ObserveOracle("score", time.Now(), &err)

	text, err := g.call(ctx, request{
		System:      scoringSystemPrompt,
		Prompt:      scoringUserPrompt(phrase, category, prompt),
		Temperature: scoringTemperature,
	})
	if err != nil {
		span.RecordError(err)
		return Score{}, err
	}

	value, ok := ParseScore(ctx, text)
	if !ok {
		observability.ScoreParseFailures.Inc()
	}
	span.SetAttributes(attribute.Int("score", value), attribute.Bool("score.parsed", ok))
	return Score{Value: value, Feedback: strings.TrimSpace(text), Parsed: ok}, nil
}

func (g *Gemini) call(ctx context.Context, req request) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.gen.generateText(ctx, req)
}

// genaiGenerator is the production textGenerator.
type genaiGenerator struct {
	client *genai.Client
	model  string
}

var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockLowAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockLowAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockLowAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockLowAndAbove},
}

func (g *genaiGenerator) generateText(ctx context.Context, req request) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	model.SetTemperature(req.Temperature)
	model.SafetySettings = safetySettings

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
