package services

import (
	"sort"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// RankMatches orders matches by overall score, highest first, and assigns
// dense ranks starting at 1. Equal scores keep their incoming order.
// The input slice is sorted in place and returned.
func RankMatches(matches []*domain.ScoredMatch) []*domain.ScoredMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].OverallScore > matches[j].OverallScore
	})
	for i, m := range matches {
		m.Rank = i + 1
	}
	return matches
}

// TruncateMatches keeps the first n ranked matches.
func TruncateMatches(matches []*domain.ScoredMatch, n int) []*domain.ScoredMatch {
	if n >= 0 && len(matches) > n {
		return matches[:n]
	}
	return matches
}

// GroupByDocument collects ranked matches per document, computing
// per-document match type counts and the mean combined score. Documents are
// returned in retrieval-merge order of their earliest passage. Matches inside
// a document stay in rank order.
func GroupByDocument(matches []*domain.ScoredMatch) []*domain.DocumentResult {
	index := make(map[int64]int)
	var docs []*domain.DocumentResult
	var firstMerge []int

	for _, m := range matches {
		i, ok := index[m.DocumentID]
		if !ok {
			i = len(docs)
			index[m.DocumentID] = i
			docs = append(docs, &domain.DocumentResult{Metadata: m.Candidate.Chunk.Metadata()})
			firstMerge = append(firstMerge, m.Candidate.MergeOrder)
		}
		if m.Candidate.MergeOrder < firstMerge[i] {
			firstMerge[i] = m.Candidate.MergeOrder
		}
		doc := docs[i]
		doc.Matches = append(doc.Matches, m)
		switch m.MatchType {
		case domain.MatchTypeDirect:
			doc.DirectCount++
		case domain.MatchTypeBalanced:
			doc.BalancedCount++
		default:
			doc.ContextualCount++
		}
	}

	for _, doc := range docs {
		var sum float64
		for _, m := range doc.Matches {
			sum += m.CombinedScore()
		}
		doc.MeanCombinedScore = sum / float64(len(doc.Matches))
	}

	order := make([]int, len(docs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return firstMerge[order[a]] < firstMerge[order[b]]
	})
	sorted := make([]*domain.DocumentResult, len(docs))
	for i, j := range order {
		sorted[i] = docs[j]
	}
	return sorted
}

// OrderDocuments sorts documents by direct matches, then mean combined score,
// then balanced matches (all descending), then fewer contextual matches.
// Full ties keep their incoming order.
func OrderDocuments(docs []*domain.DocumentResult) []*domain.DocumentResult {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		if a.DirectCount != b.DirectCount {
			return a.DirectCount > b.DirectCount
		}
		if a.MeanCombinedScore != b.MeanCombinedScore {
			return a.MeanCombinedScore > b.MeanCombinedScore
		}
		if a.BalancedCount != b.BalancedCount {
			return a.BalancedCount > b.BalancedCount
		}
		return a.ContextualCount < b.ContextualCount
	})
	return docs
}
