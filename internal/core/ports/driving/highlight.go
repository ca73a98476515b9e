package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// HighlightService produces and serves annotated copies of source documents
type HighlightService interface {
	// GetHighlighted returns the URL of an annotated copy, rendering it at most
	// once per distinct (source, keywords) key
	GetHighlighted(ctx context.Context, req domain.HighlightRequest) (string, error)

	// Open returns a stored annotated copy by file name
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
