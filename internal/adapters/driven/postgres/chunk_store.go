package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore implements driven.ChunkStore over the documents table,
// using pgvector for semantic search and tsvector for keyword search.
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

const chunkColumns = `
	id, document_id, page_number, file_name,
	COALESCE(title, ''), COALESCE(summary, ''), COALESCE(pdf_url, ''), COALESCE(year, 0),
	COALESCE(raw_text, ''), contextualized_chunk,
	organizations, survey_types, countries, regions`

// SemanticSearch orders rows by cosine distance to the embedding
func (s *ChunkStore) SemanticSearch(ctx context.Context, embedding []float32, filters domain.FacetFilters, limit int) ([]driven.ScoredChunk, error) {
	query, args := buildSemanticQuery(embedding, filters, limit)
	return s.query(ctx, query, args)
}

// KeywordSearch returns rows matching the query, ordered by ts_rank_cd
func (s *ChunkStore) KeywordSearch(ctx context.Context, text string, filters domain.FacetFilters, limit int) ([]driven.ScoredChunk, error) {
	query, args := buildKeywordQuery(text, filters, limit)
	return s.query(ctx, query, args)
}

// Ping checks if the store is reachable
func (s *ChunkStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func buildSemanticQuery(embedding []float32, filters domain.FacetFilters, limit int) (string, []any) {
	args := []any{vectorLiteral(embedding)}
	where, args := facetClause(filters, args)
	if where != "" {
		where = "WHERE " + where
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s, content_embedding <=> $1::vector AS score
		FROM documents
		%s
		ORDER BY score ASC
		LIMIT $%d`, chunkColumns, where, len(args))
	return query, args
}

func buildKeywordQuery(text string, filters domain.FacetFilters, limit int) (string, []any) {
	args := []any{text}
	where, args := facetClause(filters, args)
	if where != "" {
		where = "AND " + where
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s, ts_rank_cd(to_tsvector('english', contextualized_chunk), plainto_tsquery('english', $1)) AS score
		FROM documents
		WHERE to_tsvector('english', contextualized_chunk) @@ plainto_tsquery('english', $1)
		%s
		ORDER BY score DESC
		LIMIT $%d`, chunkColumns, where, len(args))
	return query, args
}

// facetClause renders one "column ?| array" test per constrained facet,
// joined with AND, appending its parameters to args.
func facetClause(filters domain.FacetFilters, args []any) (string, []any) {
	facets := []struct {
		column string
		values []string
	}{
		{"organizations", filters.Organizations},
		{"survey_types", filters.SurveyTypes},
		{"countries", filters.Countries},
		{"regions", filters.Regions},
	}

	var clauses []string
	for _, f := range facets {
		if len(f.values) == 0 {
			continue
		}
		args = append(args, pq.Array(f.values))
		clauses = append(clauses, fmt.Sprintf("%s ?| $%d", f.column, len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

// vectorLiteral formats an embedding as a pgvector text literal
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

func (s *ChunkStore) query(ctx context.Context, query string, args []any) ([]driven.ScoredChunk, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []driven.ScoredChunk
	for rows.Next() {
		var c domain.ChunkRecord
		var orgs, types, countries, regions []byte
		var score sql.NullFloat64

		err := rows.Scan(
			&c.ID, &c.DocumentID, &c.PageNumber, &c.FileName,
			&c.Title, &c.Summary, &c.SourceURL, &c.Year,
			&c.RawText, &c.ContextualizedText,
			&orgs, &types, &countries, &regions,
			&score,
		)
		if err != nil {
			return nil, err
		}
		c.Organizations = decodeTags(orgs)
		c.SurveyTypes = decodeTags(types)
		c.Countries = decodeTags(countries)
		c.Regions = decodeTags(regions)

		results = append(results, driven.ScoredChunk{Chunk: &c, Score: score.Float64})
	}
	return results, rows.Err()
}

// decodeTags reads a JSONB string array; malformed or null values yield nil
func decodeTags(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}
