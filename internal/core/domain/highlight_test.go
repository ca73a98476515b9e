package domain

import (
	"testing"
)

func TestHighlightRequest_CacheKeyStable(t *testing.T) {
	a := HighlightRequest{
		SourceURL:    "https://example.org/report.pdf",
		PageKeywords: PageKeywords{2: {"vaccination"}, 1: {"maternal", "health"}},
	}
	b := HighlightRequest{
		SourceURL:    "https://example.org/report.pdf",
		PageKeywords: PageKeywords{1: {"maternal", "health"}, 2: {"vaccination"}},
	}

	if a.CacheKey() != b.CacheKey() {
		t.Error("expected equal keyword maps to produce equal keys")
	}
	if len(a.CacheKey()) != 64 {
		t.Errorf("expected sha256 hex key, got %q", a.CacheKey())
	}
}

func TestHighlightRequest_CacheKeyDistinguishesInputs(t *testing.T) {
	base := HighlightRequest{SourceURL: "https://example.org/a.pdf", FallbackTerm: "health"}
	otherTerm := HighlightRequest{SourceURL: "https://example.org/a.pdf", FallbackTerm: "clinic"}
	otherURL := HighlightRequest{SourceURL: "https://example.org/b.pdf", FallbackTerm: "health"}
	paged := HighlightRequest{SourceURL: "https://example.org/a.pdf", PageKeywords: PageKeywords{1: {"health"}}}

	keys := map[string]bool{}
	for _, r := range []HighlightRequest{base, otherTerm, otherURL, paged} {
		keys[r.CacheKey()] = true
	}
	if len(keys) != 4 {
		t.Errorf("expected 4 distinct keys, got %d", len(keys))
	}
}

func TestPageKeywords_Canonical(t *testing.T) {
	pk := PageKeywords{10: {"b"}, 2: {"a", "c"}}
	expected := `{"2":["a","c"],"10":["b"]}`
	if got := pk.Canonical(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestHighlightRequest_Validate(t *testing.T) {
	if err := (HighlightRequest{FallbackTerm: "x"}).Validate(); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for missing url, got %v", err)
	}
	if err := (HighlightRequest{SourceURL: "https://x"}).Validate(); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for missing terms, got %v", err)
	}
	if err := (HighlightRequest{SourceURL: "https://x", FallbackTerm: "ok"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHighlightRequest_Plan(t *testing.T) {
	fallback := HighlightRequest{SourceURL: "u", FallbackTerm: "maternal, health ,,access"}
	plan := fallback.Plan()
	if len(plan.AllPages) != 3 {
		t.Fatalf("expected 3 terms, got %v", plan.AllPages)
	}
	if kws := plan.KeywordsFor(7); len(kws) != 3 {
		t.Errorf("expected fallback terms on every page, got %v", kws)
	}

	paged := HighlightRequest{SourceURL: "u", FallbackTerm: "ignored", PageKeywords: PageKeywords{2: {"clinic"}}}
	plan = paged.Plan()
	if kws := plan.KeywordsFor(2); len(kws) != 1 || kws[0] != "clinic" {
		t.Errorf("unexpected keywords for page 2: %v", kws)
	}
	if kws := plan.KeywordsFor(1); len(kws) != 0 {
		t.Errorf("expected no keywords for unlisted page, got %v", kws)
	}
}
