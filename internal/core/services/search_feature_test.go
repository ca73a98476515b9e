package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

type searchScenario struct {
	fixture *searchFixture
	result  *domain.SearchResult
}

func (s *searchScenario) aPassage(pageNumber int, documentID int, text string) error {
	s.fixture.store.Add(page(int64(documentID), pageNumber, text))
	return nil
}

func (s *searchScenario) theOracleIsUnavailable() error {
	down := errors.New("oracle unavailable")
	s.fixture.oracle.ScoreFn = func(string, string) (domain.RelevanceJudgment, error) {
		return domain.RelevanceJudgment{}, down
	}
	s.fixture.oracle.ExplainFn = func(string, string) (string, error) { return "", down }
	s.fixture.oracle.KeyphraseFn = func(string, string, string) (string, error) { return "", down }
	return nil
}

func (s *searchScenario) theOracleFindsNoKeyphrases() error {
	s.fixture.oracle.KeyphraseFn = func(string, string, string) (string, error) {
		return driven.NoMatchSentinel, nil
	}
	return nil
}

func (s *searchScenario) iSearchFor(query string) error {
	result, err := s.fixture.service().Search(context.Background(), query, domain.DefaultSearchOptions())
	if err != nil {
		return err
	}
	s.result = result
	return nil
}

func (s *searchScenario) document(id int) (int, *domain.DocumentResult, error) {
	for i, doc := range s.result.Documents {
		if doc.Metadata.DocumentID == int64(id) {
			return i, doc, nil
		}
	}
	return 0, nil, fmt.Errorf("document %d not in results", id)
}

func (s *searchScenario) documentRanksAbove(upper, lower int) error {
	i, _, err := s.document(upper)
	if err != nil {
		return err
	}
	j, _, err := s.document(lower)
	if err != nil {
		return err
	}
	if i >= j {
		return fmt.Errorf("document %d is at position %d, document %d at %d", upper, i, lower, j)
	}
	return nil
}

func (s *searchScenario) theMatchOnDocumentIs(id int, matchType string) error {
	_, doc, err := s.document(id)
	if err != nil {
		return err
	}
	if got := doc.Matches[0].MatchType; got != domain.MatchType(matchType) {
		return fmt.Errorf("document %d match type is %s, want %s", id, got, matchType)
	}
	return nil
}

func (s *searchScenario) keyphrasesAreVerbatim(id int) error {
	_, doc, err := s.document(id)
	if err != nil {
		return err
	}
	for _, m := range doc.Matches {
		if len(m.Keyphrases) == 0 {
			return fmt.Errorf("document %d page %d has no keyphrases", id, m.PageNumber)
		}
		for _, kw := range m.Keyphrases {
			if !strings.Contains(m.Candidate.Chunk.RawText, kw) {
				return fmt.Errorf("keyphrase %q not found in passage", kw)
			}
		}
	}
	return nil
}

func (s *searchScenario) matchesAreReturned(n int) error {
	if s.result.MatchCount != n {
		return fmt.Errorf("got %d matches, want %d", s.result.MatchCount, n)
	}
	return nil
}

func (s *searchScenario) everyMatchHasNeutralScores() error {
	for _, doc := range s.result.Documents {
		for _, m := range doc.Matches {
			if m.ContextualScore != 5 || m.DirectMatchScore != 5 || m.MatchType != domain.MatchTypeBalanced || m.OverallScore != 5 {
				return fmt.Errorf("document %d page %d is not neutral: %+v", m.DocumentID, m.PageNumber, m)
			}
		}
	}
	return nil
}

func (s *searchScenario) theKeyphrasesOfDocumentAre(id int, want string) error {
	_, doc, err := s.document(id)
	if err != nil {
		return err
	}
	if got := doc.Matches[0].HighlightTerm(); got != want {
		return fmt.Errorf("keyphrases are %q, want %q", got, want)
	}
	return nil
}

func initializeSearchScenario(ctx *godog.ScenarioContext) {
	s := &searchScenario{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		s.fixture = newSearchFixture()
		s.result = nil
		return ctx, nil
	})

	ctx.Step(`^a passage on page (\d+) of document (\d+) reading "([^"]*)"$`, s.aPassage)
	ctx.Step(`^the oracle is unavailable$`, s.theOracleIsUnavailable)
	ctx.Step(`^the oracle finds no keyphrases$`, s.theOracleFindsNoKeyphrases)
	ctx.Step(`^I search for "([^"]*)"$`, s.iSearchFor)
	ctx.Step(`^document (\d+) ranks above document (\d+)$`, s.documentRanksAbove)
	ctx.Step(`^the match on document (\d+) is "([^"]*)"$`, s.theMatchOnDocumentIs)
	ctx.Step(`^every keyphrase of document (\d+) appears verbatim in its passage$`, s.keyphrasesAreVerbatim)
	ctx.Step(`^(\d+) matches are returned$`, s.matchesAreReturned)
	ctx.Step(`^every match has neutral scores$`, s.everyMatchHasNeutralScores)
	ctx.Step(`^the keyphrases of document (\d+) are "([^"]*)"$`, s.theKeyphrasesOfDocumentAre)
}

func TestSearchFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "search",
		ScenarioInitializer: initializeSearchScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
