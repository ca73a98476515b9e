package driven

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// NoMatchSentinel is the keyphrase answer meaning nothing in the passage fits.
const NoMatchSentinel = "NO_MATCH_FOUND"

// RelevanceOracle is the external scoring and generation service.
// Every method may fail or answer with unusable output; callers apply
// their own fallbacks.
type RelevanceOracle interface {
	// Score judges how well the passage answers the query on two 0-10 axes
	Score(ctx context.Context, query, passage string) (domain.RelevanceJudgment, error)

	// Explain returns a one-sentence rationale for the match
	Explain(ctx context.Context, query, passage string) (string, error)

	// ExtractKeyphrases returns a comma-separated list of verbatim words from
	// rawText, or NoMatchSentinel
	ExtractKeyphrases(ctx context.Context, query, rawText, passageContext string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the oracle is available
	Ping(ctx context.Context) error

	// Close releases resources held by the oracle
	Close() error
}
