package mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// MockDocumentFetcher serves documents from memory
type MockDocumentFetcher struct {
	mu    sync.Mutex
	docs  map[string][]byte
	calls map[string]int

	FetchFn func(url string) ([]byte, error)
}

// NewMockDocumentFetcher creates a new MockDocumentFetcher
func NewMockDocumentFetcher() *MockDocumentFetcher {
	return &MockDocumentFetcher{
		docs:  make(map[string][]byte),
		calls: make(map[string]int),
	}
}

// Put registers a document body for url
func (m *MockDocumentFetcher) Put(url string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[url] = body
}

func (m *MockDocumentFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	m.calls[url]++
	body, ok := m.docs[url]
	m.mu.Unlock()

	if m.FetchFn != nil {
		return m.FetchFn(url)
	}
	if !ok {
		return nil, fmt.Errorf("fetch %s: %w", url, domain.ErrNotFound)
	}
	return body, nil
}

// Calls returns how many times url was fetched
func (m *MockDocumentFetcher) Calls(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}

// MockAnnotator records plans and writes a marker copy of the source
type MockAnnotator struct {
	mu    sync.Mutex
	plans []domain.AnnotationPlan

	AnnotateFn func(src []byte, plan domain.AnnotationPlan) (domain.AnnotationResult, error)
}

// NewMockAnnotator creates a new MockAnnotator
func NewMockAnnotator() *MockAnnotator {
	return &MockAnnotator{}
}

func (m *MockAnnotator) Annotate(src []byte, dst io.Writer, plan domain.AnnotationPlan) (domain.AnnotationResult, error) {
	m.mu.Lock()
	m.plans = append(m.plans, plan)
	m.mu.Unlock()

	if m.AnnotateFn != nil {
		res, err := m.AnnotateFn(src, plan)
		if err != nil {
			return res, err
		}
		_, err = dst.Write(src)
		return res, err
	}

	if _, err := dst.Write(src); err != nil {
		return domain.AnnotationResult{}, err
	}
	return domain.AnnotationResult{Highlights: len(plan.PerPage) + len(plan.AllPages)}, nil
}

// Plans returns every plan applied so far
func (m *MockAnnotator) Plans() []domain.AnnotationPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AnnotationPlan, len(m.plans))
	copy(out, m.plans)
	return out
}

// MockHighlightStore keeps rendered copies in memory
type MockHighlightStore struct {
	mu    sync.RWMutex
	files map[string][]byte

	SaveErr error
}

// NewMockHighlightStore creates a new MockHighlightStore
func NewMockHighlightStore() *MockHighlightStore {
	return &MockHighlightStore{files: make(map[string][]byte)}
}

func (m *MockHighlightStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[key+".pdf"]
	return ok, nil
}

func (m *MockHighlightStore) Save(ctx context.Context, key string, write func(w io.Writer) error) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key+".pdf"] = buf.Bytes()
	return nil
}

func (m *MockHighlightStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockHighlightStore) URL(key string) string {
	return "/api/v1/highlights/" + key + ".pdf"
}

// Count returns the number of stored copies
func (m *MockHighlightStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
