package services

import (
	"time"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
)

// Config keys read from the configuration file.
const (
	keyStorageBackend  = "storage.backend"
	keyStorageDataDir  = "storage.data_dir"
	keyMaxTextLength   = "documents.max_text_length"
	keyMaxFileBytes    = "documents.max_file_bytes"
	keyWindowBefore    = "composer.window_before"
	keyWindowAfter     = "composer.window_after"
	keyFallbackLength  = "composer.fallback_length"
	keyStreamChunkSize = "stream.chunk_size"
	keyStreamInterval  = "stream.interval_ms"
)

// LoadConfig resolves the engine configuration from store.
// Missing or invalid values keep their defaults. A nil store yields the defaults.
func LoadConfig(store driven.ConfigStore) domain.Config {
	cfg := domain.DefaultConfig()
	if store == nil {
		return cfg
	}

	if b := domain.StorageBackend(store.GetString(keyStorageBackend)); b.IsValid() {
		cfg.Storage.Backend = b
	}
	if dir := store.GetString(keyStorageDataDir); dir != "" {
		cfg.Storage.DataDir = dir
	}

	setPositive(store, keyMaxTextLength, &cfg.Documents.MaxTextLength)
	if _, ok := store.Get(keyMaxFileBytes); ok {
		if n := store.GetInt(keyMaxFileBytes); n >= 0 {
			cfg.Documents.MaxFileBytes = int64(n)
		}
	}

	setPositive(store, keyWindowBefore, &cfg.Composer.WindowBefore)
	setPositive(store, keyWindowAfter, &cfg.Composer.WindowAfter)
	setPositive(store, keyFallbackLength, &cfg.Composer.FallbackLength)

	setPositive(store, keyStreamChunkSize, &cfg.Stream.ChunkSize)
	if _, ok := store.Get(keyStreamInterval); ok {
		if ms := store.GetInt(keyStreamInterval); ms >= 0 {
			cfg.Stream.Interval = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}

func setPositive(store driven.ConfigStore, key string, dst *int) {
	if n := store.GetInt(key); n > 0 {
		*dst = n
	}
}
