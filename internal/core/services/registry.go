package services

import (
	"golang.org/x/sync/singleflight"
)

// RenderRegistry coalesces concurrent renders of the same cache key within
// this process. Entries exist only while a render is in flight; completed
// results live in the HighlightStore and failures are never remembered.
type RenderRegistry struct {
	group singleflight.Group
}

// NewRenderRegistry creates an empty registry.
func NewRenderRegistry() *RenderRegistry {
	return &RenderRegistry{}
}

// GetOrStart runs render for key unless a render for key is already in
// flight, in which case it waits for that one and shares its outcome.
// started reports whether this caller's render ran.
func (r *RenderRegistry) GetOrStart(key string, render func() (string, error)) (url string, started bool, err error) {
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		started = true
		return render()
	})
	if err != nil {
		return "", started, err
	}
	return v.(string), started, nil
}
