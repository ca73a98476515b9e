package domain

import "strings"

// ChunkRecord is one page of an ingested document.
// Rows are written by the ingestion pipeline and are read-only here.
// (DocumentID, PageNumber) is unique.
type ChunkRecord struct {
	ID                 int64     `json:"id"`
	DocumentID         int64     `json:"document_id"`
	PageNumber         int       `json:"page_number"` // 1-indexed
	RawText            string    `json:"raw_text"`
	ContextualizedText string    `json:"contextualized_text"`
	Embedding          []float32 `json:"-"`

	// Facet tags
	Organizations []string `json:"organizations,omitempty"`
	SurveyTypes   []string `json:"survey_types,omitempty"`
	Countries     []string `json:"countries,omitempty"`
	Regions       []string `json:"regions,omitempty"`

	// Document snapshot, denormalised onto every page row
	FileName  string `json:"file_name"`
	Title     string `json:"title,omitempty"`
	Summary   string `json:"summary,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
	Year      int    `json:"year,omitempty"`
}

// PassageKey identifies a single page of a single document.
type PassageKey struct {
	DocumentID int64
	PageNumber int
}

// Key returns the dedupe key of the chunk.
func (c *ChunkRecord) Key() PassageKey {
	return PassageKey{DocumentID: c.DocumentID, PageNumber: c.PageNumber}
}

const rawTextMarker = "RAW TEXT:"

// HighlightText returns the text keyphrases must be verbatim substrings of.
// Older rows only carry the contextualized block, in which case the RAW TEXT
// section is cut out of it.
func (c *ChunkRecord) HighlightText() string {
	if c.RawText != "" {
		return c.RawText
	}
	if idx := strings.Index(c.ContextualizedText, rawTextMarker); idx >= 0 {
		if raw := strings.TrimSpace(c.ContextualizedText[idx+len(rawTextMarker):]); raw != "" {
			return raw
		}
	}
	return c.ContextualizedText
}

// Metadata returns the document snapshot carried by the chunk.
func (c *ChunkRecord) Metadata() DocumentMetadata {
	return DocumentMetadata{
		DocumentID:    c.DocumentID,
		FileName:      c.FileName,
		Title:         c.Title,
		Summary:       c.Summary,
		SourceURL:     c.SourceURL,
		Year:          c.Year,
		Organizations: c.Organizations,
		SurveyTypes:   c.SurveyTypes,
		Countries:     c.Countries,
		Regions:       c.Regions,
	}
}

// DocumentMetadata is the per-document snapshot returned with results.
type DocumentMetadata struct {
	DocumentID    int64    `json:"document_id"`
	FileName      string   `json:"file_name"`
	Title         string   `json:"title,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	SourceURL     string   `json:"source_url,omitempty"`
	Year          int      `json:"year,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
	SurveyTypes   []string `json:"survey_types,omitempty"`
	Countries     []string `json:"countries,omitempty"`
	Regions       []string `json:"regions,omitempty"`
}

// FacetFilters restricts retrieval to rows tagged with any of the listed
// values, per facet. Facets are combined conjunctively.
type FacetFilters struct {
	Organizations []string `json:"organizations,omitempty"`
	SurveyTypes   []string `json:"survey_types,omitempty"`
	Countries     []string `json:"countries,omitempty"`
	Regions       []string `json:"regions,omitempty"`
}

// IsEmpty reports whether no facet is constrained.
func (f FacetFilters) IsEmpty() bool {
	return len(f.Organizations) == 0 && len(f.SurveyTypes) == 0 &&
		len(f.Countries) == 0 && len(f.Regions) == 0
}

// Matches reports whether the chunk satisfies every constrained facet.
func (f FacetFilters) Matches(c *ChunkRecord) bool {
	return anyOverlap(f.Organizations, c.Organizations) &&
		anyOverlap(f.SurveyTypes, c.SurveyTypes) &&
		anyOverlap(f.Countries, c.Countries) &&
		anyOverlap(f.Regions, c.Regions)
}

func anyOverlap(want, have []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}
