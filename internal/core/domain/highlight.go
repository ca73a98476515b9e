package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Highlight rendering constants
const (
	HighlightOpacity   = 0.6
	MinHighlightLength = 2
)

// HighlightColor is the RGB stroke color of every highlight annotation.
var HighlightColor = [3]float64{1, 0.8, 0.2}

// PageKeywords maps a 1-indexed page number to the keyphrases to highlight on it.
type PageKeywords map[int][]string

// Add appends keywords to a page, skipping ones already present.
func (pk PageKeywords) Add(page int, keywords ...string) {
	for _, kw := range keywords {
		if kw == "" || containsString(pk[page], kw) {
			continue
		}
		pk[page] = append(pk[page], kw)
	}
}

// Pages returns the page numbers in ascending order.
func (pk PageKeywords) Pages() []int {
	pages := make([]int, 0, len(pk))
	for p := range pk {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// Canonical serialises the map with pages in ascending order so equal maps
// always produce equal bytes.
func (pk PageKeywords) Canonical() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range pk.Pages() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(strconv.Itoa(p)))
		b.WriteByte(':')
		kws, _ := json.Marshal(pk[p])
		b.Write(kws)
	}
	b.WriteByte('}')
	return b.String()
}

// HighlightRequest asks for an annotated copy of a source document.
type HighlightRequest struct {
	SourceURL    string       `json:"source_url"`
	FallbackTerm string       `json:"term,omitempty"`
	PageKeywords PageKeywords `json:"page_keywords,omitempty"`
}

// Validate checks the request can produce a cache key.
func (r HighlightRequest) Validate() error {
	if strings.TrimSpace(r.SourceURL) == "" {
		return ErrInvalidInput
	}
	if len(r.PageKeywords) == 0 && strings.TrimSpace(r.FallbackTerm) == "" {
		return ErrInvalidInput
	}
	return nil
}

// CacheKey is the content address of the rendered copy.
func (r HighlightRequest) CacheKey() string {
	var material string
	if len(r.PageKeywords) > 0 {
		material = r.SourceURL + "\x00paged\x00" + r.PageKeywords.Canonical()
	} else {
		material = r.SourceURL + "\x00term\x00" + r.FallbackTerm
	}
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// FallbackTerms splits the comma-separated fallback term.
func (r HighlightRequest) FallbackTerms() []string {
	var terms []string
	for _, t := range strings.Split(r.FallbackTerm, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// AnnotationPlan is what the annotator applies to a document.
// AllPages is used for every page when PerPage is empty.
type AnnotationPlan struct {
	PerPage  PageKeywords
	AllPages []string
}

// Plan converts the request into an annotation plan.
func (r HighlightRequest) Plan() AnnotationPlan {
	if len(r.PageKeywords) > 0 {
		return AnnotationPlan{PerPage: r.PageKeywords}
	}
	return AnnotationPlan{AllPages: r.FallbackTerms()}
}

// KeywordsFor returns the keywords to search on a page.
func (p AnnotationPlan) KeywordsFor(page int) []string {
	if len(p.PerPage) > 0 {
		return p.PerPage[page]
	}
	return p.AllPages
}

// AnnotationResult reports what the annotator did.
type AnnotationResult struct {
	Highlights   int `json:"highlights"`
	PagesTouched int `json:"pages_touched"`
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
