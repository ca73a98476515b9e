package domain

import (
	"strings"
	"time"
)

// RetrievalMethod names the query that surfaced a candidate
type RetrievalMethod string

const (
	RetrievalSemantic RetrievalMethod = "semantic" // vector distance
	RetrievalKeyword  RetrievalMethod = "keyword"  // full-text rank
)

// SearchCandidate is a retrieved passage before scoring.
// Scores holds each method's raw score: cosine distance for semantic,
// text rank for keyword. MergeOrder is the position in the merged list.
type SearchCandidate struct {
	Chunk      *ChunkRecord                `json:"chunk"`
	Scores     map[RetrievalMethod]float64 `json:"scores"`
	MergeOrder int                         `json:"-"`
}

// NewCandidate creates a candidate surfaced by a single method.
func NewCandidate(chunk *ChunkRecord, method RetrievalMethod, score float64) *SearchCandidate {
	return &SearchCandidate{
		Chunk:  chunk,
		Scores: map[RetrievalMethod]float64{method: score},
	}
}

// Methods returns the retrieval methods that surfaced the candidate, semantic first.
func (c *SearchCandidate) Methods() []RetrievalMethod {
	var methods []RetrievalMethod
	for _, m := range []RetrievalMethod{RetrievalSemantic, RetrievalKeyword} {
		if _, ok := c.Scores[m]; ok {
			methods = append(methods, m)
		}
	}
	return methods
}

// MatchType classifies a match by its direct lexical evidence
type MatchType string

const (
	MatchTypeDirect     MatchType = "direct"
	MatchTypeBalanced   MatchType = "balanced"
	MatchTypeContextual MatchType = "contextual"
)

// Score bounds and weights for relevance judgments.
const (
	MinScore     = 0
	MaxScore     = 10
	NeutralScore = 5

	ContextualWeight = 0.3
	DirectWeight     = 0.7
)

// MatchTypeFor derives the match type from the direct match score alone.
func MatchTypeFor(directScore int) MatchType {
	switch {
	case directScore >= 7:
		return MatchTypeDirect
	case directScore >= 4:
		return MatchTypeBalanced
	default:
		return MatchTypeContextual
	}
}

// OverallScore weights direct evidence above contextual fit.
func OverallScore(contextualScore, directScore int) float64 {
	return ContextualWeight*float64(contextualScore) + DirectWeight*float64(directScore)
}

// ClampScore forces an oracle score into [0,10].
func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// RelevanceJudgment is the oracle's two-axis verdict on one passage.
type RelevanceJudgment struct {
	ContextualScore  int `json:"contextual_score"`
	DirectMatchScore int `json:"direct_match_score"`
}

// NeutralJudgment is substituted when the oracle cannot be used.
func NeutralJudgment() RelevanceJudgment {
	return RelevanceJudgment{ContextualScore: NeutralScore, DirectMatchScore: NeutralScore}
}

// Clamp returns the judgment with both scores forced into range.
func (j RelevanceJudgment) Clamp() RelevanceJudgment {
	return RelevanceJudgment{
		ContextualScore:  ClampScore(j.ContextualScore),
		DirectMatchScore: ClampScore(j.DirectMatchScore),
	}
}

// ScoredMatch is a candidate after scoring, ranking and enrichment.
type ScoredMatch struct {
	Candidate        *SearchCandidate `json:"-"`
	DocumentID       int64            `json:"document_id"`
	PageNumber       int              `json:"page_number"`
	ContextualScore  int              `json:"contextual_score"`
	DirectMatchScore int              `json:"direct_match_score"`
	MatchType        MatchType        `json:"match_type"`
	OverallScore     float64          `json:"overall_score"`
	Rank             int              `json:"rank"`
	Explanation      string           `json:"explanation"`
	Keyphrases       []string         `json:"keyphrases"`
	Fallback         bool             `json:"-"` // neutral scores were substituted
}

// NewScoredMatch applies a (clamped) judgment to a candidate.
func NewScoredMatch(c *SearchCandidate, j RelevanceJudgment) *ScoredMatch {
	j = j.Clamp()
	return &ScoredMatch{
		Candidate:        c,
		DocumentID:       c.Chunk.DocumentID,
		PageNumber:       c.Chunk.PageNumber,
		ContextualScore:  j.ContextualScore,
		DirectMatchScore: j.DirectMatchScore,
		MatchType:        MatchTypeFor(j.DirectMatchScore),
		OverallScore:     OverallScore(j.ContextualScore, j.DirectMatchScore),
	}
}

// CombinedScore is the unweighted mean of the two axes.
func (m *ScoredMatch) CombinedScore() float64 {
	return float64(m.ContextualScore+m.DirectMatchScore) / 2
}

// HighlightTerm joins the keyphrases into the comma form used for rendering.
func (m *ScoredMatch) HighlightTerm() string {
	return strings.Join(m.Keyphrases, ",")
}

// DocumentResult groups the retained matches of one document.
type DocumentResult struct {
	Metadata          DocumentMetadata `json:"metadata"`
	Matches           []*ScoredMatch   `json:"matches"`
	DirectCount       int              `json:"direct_count"`
	BalancedCount     int              `json:"balanced_count"`
	ContextualCount   int              `json:"contextual_count"`
	MeanCombinedScore float64          `json:"mean_combined_score"`
	HighlightedURL    string           `json:"highlighted_url,omitempty"`
	HighlightError    string           `json:"highlight_error,omitempty"`
}

// PageKeywords collects the keyphrases of each matched page.
func (d *DocumentResult) PageKeywords() PageKeywords {
	pk := make(PageKeywords)
	for _, m := range d.Matches {
		pk.Add(m.PageNumber, m.Keyphrases...)
	}
	return pk
}

// Result size bounds
const (
	DefaultMaxResults = 25
	MaxMaxResults     = 100
	DefaultFanOut     = 40
)

// SearchOptions configures a search request
type SearchOptions struct {
	MaxResults int          `json:"max_results"`
	Filters    FacetFilters `json:"filters,omitempty"`
	Highlight  bool         `json:"highlight"`
	UserID     string       `json:"-"`
}

// DefaultSearchOptions returns sensible defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxResults: DefaultMaxResults,
		Highlight:  true,
	}
}

// NormalizeMaxResults clamps a requested result size, using fallback when unset.
func NormalizeMaxResults(requested, fallback int) int {
	if requested <= 0 {
		requested = fallback
	}
	if requested <= 0 {
		requested = DefaultMaxResults
	}
	if requested > MaxMaxResults {
		requested = MaxMaxResults
	}
	return requested
}

// SearchResult represents the result of a search query
type SearchResult struct {
	ID         string            `json:"id"`
	Query      string            `json:"query"`
	Documents  []*DocumentResult `json:"documents"`
	MatchCount int               `json:"match_count"`
	Message    string            `json:"message,omitempty"`
	Took       time.Duration     `json:"took" swaggertype:"integer" example:"1500000"`
}
