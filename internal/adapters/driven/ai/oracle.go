package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Ensure Oracle implements RelevanceOracle
var _ driven.RelevanceOracle = (*Oracle)(nil)

const (
	defaultOracleModel = "gpt-4o-mini"
	defaultOracleRPS   = 20
)

// Oracle implements RelevanceOracle with chat completions.
// Calls are throttled by a shared token bucket.
type Oracle struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOracle creates a relevance oracle for the given provider settings.
func NewOracle(settings *domain.OracleSettings) (*Oracle, error) {
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", settings.Provider)
	}

	model := settings.Model
	if model == "" {
		model = defaultOracleModel
	}
	rps := settings.RequestsPerSecond
	if rps <= 0 {
		rps = defaultOracleRPS
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &Oracle{
		client:  newClient(settings.Provider, settings.APIKey, settings.BaseURL),
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

const scorePrompt = `You judge how well a passage from a survey report answers a search query.

Return a JSON object with two integer fields from 0 to 10:
- "contextual_score": how relevant the passage's topic is to the query, even if worded differently.
- "direct_match_score": how much of the query's wording and specific terms appear in the passage.

QUERY: %q

PASSAGE:
%s`

const explainPrompt = `Query: %q

Passage:
%s

In one sentence of at most 12 words starting with "Mentions ...", say what in the passage matches the query.
Be specific to this passage. Do not repeat the query. Reply with the sentence only.`

const keyphrasePrompt = `Pick 1 to 6 single words from the RAW TEXT that appear in it exactly as written and best relate to the query.
They will be highlighted in the document, so copy them with the same capitalisation.
Skip common words such as "the", "and" or "is".

QUERY: %q

CONTEXT:
%s

RAW TEXT:
%s

Reply with the words separated by commas and nothing else.
If no word in the RAW TEXT relates to the query, reply exactly ` + driven.NoMatchSentinel

// Score judges how well the passage answers the query
func (o *Oracle) Score(ctx context.Context, query, passage string) (domain.RelevanceJudgment, error) {
	content, err := o.complete(ctx, fmt.Sprintf(scorePrompt, query, passage), 60, true)
	if err != nil {
		return domain.RelevanceJudgment{}, err
	}
	return parseJudgment(content)
}

// Explain returns a one-sentence rationale for the match
func (o *Oracle) Explain(ctx context.Context, query, passage string) (string, error) {
	return o.complete(ctx, fmt.Sprintf(explainPrompt, query, passage), 250, false)
}

// ExtractKeyphrases returns comma-separated verbatim words or the no-match sentinel
func (o *Oracle) ExtractKeyphrases(ctx context.Context, query, rawText, passageContext string) (string, error) {
	return o.complete(ctx, fmt.Sprintf(keyphrasePrompt, query, passageContext, rawText), 100, false)
}

// Model returns the model name being used
func (o *Oracle) Model() string {
	return o.model
}

// Ping verifies the oracle answers
func (o *Oracle) Ping(ctx context.Context) error {
	_, err := o.complete(ctx, "Reply with OK.", 5, false)
	return err
}

// Close is a no-op
func (o *Oracle) Close() error {
	return nil
}

func (o *Oracle) complete(ctx context.Context, prompt string, maxTokens int, jsonMode bool) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", domain.ErrMalformedResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseJudgment reads the score object, tolerating prose or code fences
// around it. Scores are clamped to [0,10] before rounding.
func parseJudgment(content string) (domain.RelevanceJudgment, error) {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start < 0 || end < start {
		return domain.RelevanceJudgment{}, fmt.Errorf("%w: no JSON object in %q", domain.ErrMalformedResponse, content)
	}

	var raw struct {
		Contextual *float64 `json:"contextual_score"`
		Direct     *float64 `json:"direct_match_score"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return domain.RelevanceJudgment{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if raw.Contextual == nil || raw.Direct == nil {
		return domain.RelevanceJudgment{}, fmt.Errorf("%w: missing score fields", domain.ErrMalformedResponse)
	}

	return domain.RelevanceJudgment{
		ContextualScore:  scoreFromFloat(*raw.Contextual),
		DirectMatchScore: scoreFromFloat(*raw.Direct),
	}, nil
}

// scoreFromFloat bounds v before the int conversion, which overflows for
// values far out of range.
func scoreFromFloat(v float64) int {
	v = math.Max(domain.MinScore, math.Min(domain.MaxScore, v))
	return int(math.Round(v))
}
