package domain

import (
	"testing"
)

func TestNewRuntimeConfig(t *testing.T) {
	config := NewRuntimeConfig("postgres")

	if config == nil {
		t.Fatal("expected non-nil config")
	}
	if config.LockBackend != "postgres" {
		t.Errorf("expected postgres, got %s", config.LockBackend)
	}
	if config.EmbeddingAvailable() {
		t.Error("expected embedding to be unavailable initially")
	}
	if config.OracleAvailable() {
		t.Error("expected oracle to be unavailable initially")
	}
	if config.CanSearch() {
		t.Error("expected search to be unavailable without embedding")
	}
}

func TestRuntimeConfig_EmbeddingAvailable(t *testing.T) {
	config := NewRuntimeConfig("redis")

	config.SetEmbeddingAvailable(true)
	if !config.EmbeddingAvailable() {
		t.Error("expected embedding to be available after setting")
	}
	if !config.CanSearch() {
		t.Error("expected search to be possible with embedding")
	}

	config.SetEmbeddingAvailable(false)
	if config.EmbeddingAvailable() {
		t.Error("expected embedding to be unavailable after clearing")
	}
}

func TestRuntimeConfig_OracleAvailable(t *testing.T) {
	config := NewRuntimeConfig("none")

	config.SetOracleAvailable(true)
	if !config.OracleAvailable() {
		t.Error("expected oracle to be available after setting")
	}

	config.SetOracleAvailable(false)
	if config.OracleAvailable() {
		t.Error("expected oracle to be unavailable after clearing")
	}
}

func TestRuntimeConfig_Capabilities(t *testing.T) {
	config := NewRuntimeConfig("redis")

	caps := config.Capabilities()
	if caps.Search || caps.Embedding || caps.Oracle {
		t.Errorf("expected nothing available initially, got %+v", caps)
	}
	if caps.LockBackend != "redis" {
		t.Errorf("expected redis lock backend, got %s", caps.LockBackend)
	}

	config.SetEmbeddingAvailable(true)
	config.SetOracleAvailable(true)
	caps = config.Capabilities()
	if !caps.Search || !caps.Embedding || !caps.Oracle {
		t.Errorf("expected everything available, got %+v", caps)
	}
}
