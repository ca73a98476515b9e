package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// DocumentFetcher downloads source documents
type DocumentFetcher interface {
	// Fetch returns the document bytes at url
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Annotator writes highlight annotations into a document
type Annotator interface {
	// Annotate copies src to dst, adding a highlight for every on-page
	// occurrence of the planned keywords. Zero matches still writes a copy.
	Annotate(src []byte, dst io.Writer, plan domain.AnnotationPlan) (domain.AnnotationResult, error)
}

// HighlightStore persists rendered copies under their content address
type HighlightStore interface {
	// Exists reports whether a rendered copy is stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// Save atomically stores the rendered copy produced by write
	Save(ctx context.Context, key string, write func(w io.Writer) error) error

	// Open returns a reader for a stored copy by file name
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// URL returns the public URL of the copy stored under key
	URL(key string) string
}
