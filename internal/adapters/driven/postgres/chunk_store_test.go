package postgres

import (
	"database/sql/driver"
	"strings"
	"testing"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		in   []float32
		want string
	}{
		{nil, "[]"},
		{[]float32{1}, "[1]"},
		{[]float32{0.5, -0.25, 3}, "[0.5,-0.25,3]"},
	}
	for _, tt := range tests {
		if got := vectorLiteral(tt.in); got != tt.want {
			t.Errorf("vectorLiteral(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFacetClause(t *testing.T) {
	where, args := facetClause(domain.FacetFilters{}, []any{"q"})
	if where != "" {
		t.Errorf("expected empty clause, got %q", where)
	}
	if len(args) != 1 {
		t.Errorf("expected args unchanged, got %d", len(args))
	}

	where, args = facetClause(domain.FacetFilters{
		Countries: []string{"Kenya", "Uganda"},
		Regions:   []string{"East Africa"},
	}, []any{"q"})

	want := "countries ?| $2 AND regions ?| $3"
	if where != want {
		t.Errorf("clause = %q, want %q", where, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	arr, ok := args[1].(driver.Valuer)
	if !ok {
		t.Fatalf("expected array valuer, got %T", args[1])
	}
	v, err := arr.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `{"Kenya","Uganda"}` {
		t.Errorf("array literal = %v", v)
	}
}

func TestBuildSemanticQuery(t *testing.T) {
	query, args := buildSemanticQuery([]float32{0.1, 0.2}, domain.FacetFilters{SurveyTypes: []string{"DHS"}}, 40)

	for _, fragment := range []string{
		"content_embedding <=> $1::vector AS score",
		"WHERE survey_types ?| $2",
		"ORDER BY score ASC",
		"LIMIT $3",
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("query missing %q:\n%s", fragment, query)
		}
	}
	if len(args) != 3 || args[0] != "[0.1,0.2]" || args[2] != 40 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildSemanticQuery_NoFilters(t *testing.T) {
	query, args := buildSemanticQuery([]float32{1}, domain.FacetFilters{}, 10)
	if strings.Contains(query, "WHERE") {
		t.Errorf("unexpected WHERE clause:\n%s", query)
	}
	if !strings.Contains(query, "LIMIT $2") || len(args) != 2 {
		t.Errorf("unexpected limit placement: %s %v", query, args)
	}
}

func TestBuildKeywordQuery(t *testing.T) {
	query, args := buildKeywordQuery("child mortality", domain.FacetFilters{Organizations: []string{"UNICEF"}}, 40)

	for _, fragment := range []string{
		"ts_rank_cd(to_tsvector('english', contextualized_chunk), plainto_tsquery('english', $1))",
		"@@ plainto_tsquery('english', $1)",
		"AND organizations ?| $2",
		"ORDER BY score DESC",
		"LIMIT $3",
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("query missing %q:\n%s", fragment, query)
		}
	}
	if args[0] != "child mortality" {
		t.Errorf("first arg = %v", args[0])
	}
}

func TestDecodeTags(t *testing.T) {
	if got := decodeTags(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if got := decodeTags([]byte("null")); got != nil {
		t.Errorf("expected nil for null, got %v", got)
	}
	if got := decodeTags([]byte(`not json`)); got != nil {
		t.Errorf("expected nil for malformed, got %v", got)
	}
	got := decodeTags([]byte(`["Kenya","Peru"]`))
	if len(got) != 2 || got[0] != "Kenya" || got[1] != "Peru" {
		t.Errorf("unexpected tags %v", got)
	}
}

func TestHashLockName(t *testing.T) {
	if hashLockName("a") != hashLockName("a") {
		t.Error("hash is not stable")
	}
	if hashLockName("a") == hashLockName("b") {
		t.Error("distinct names collide")
	}
}
