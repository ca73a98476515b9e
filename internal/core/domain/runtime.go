package domain

import "sync"

// RuntimeConfig tracks which services are available at runtime.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	LockBackend string // "redis", "postgres" or "none"

	// Dynamic capability flags
	embeddingAvailable bool
	oracleAvailable    bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(lockBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		LockBackend: lockBackend,
	}
}

// EmbeddingAvailable returns whether embedding service is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// OracleAvailable returns whether the relevance oracle is available
func (c *RuntimeConfig) OracleAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.oracleAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetOracleAvailable updates the oracle availability flag
func (c *RuntimeConfig) SetOracleAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.oracleAvailable = available
}

// CanSearch returns true if queries can be embedded.
// Without an oracle searches still run on neutral scores.
func (c *RuntimeConfig) CanSearch() bool {
	return c.EmbeddingAvailable()
}

// Capabilities is a point-in-time view of what the service can do
type Capabilities struct {
	Search      bool   `json:"search"`
	Embedding   bool   `json:"embedding"`
	Oracle      bool   `json:"oracle"`
	LockBackend string `json:"lock_backend"`
}

// Capabilities returns the current capability flags
func (c *RuntimeConfig) Capabilities() Capabilities {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Capabilities{
		Search:      c.embeddingAvailable,
		Embedding:   c.embeddingAvailable,
		Oracle:      c.oracleAvailable,
		LockBackend: c.LockBackend,
	}
}
