// Package env overrides configuration from RAGCHAT_* environment variables.
// Variables that are unset leave the file or default value in place.
package env

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/ragchat/internal/core/domain"
)

// overrides lists the supported variables.
type overrides struct {
	StorageBackend  string        `env:"RAGCHAT_STORAGE_BACKEND"`
	DataDir         string        `env:"RAGCHAT_DATA_DIR"`
	MaxTextLength   int           `env:"RAGCHAT_MAX_TEXT_LENGTH"`
	MaxFileBytes    int64         `env:"RAGCHAT_MAX_FILE_BYTES"`
	StreamChunkSize int           `env:"RAGCHAT_STREAM_CHUNK_SIZE"`
	StreamInterval  time.Duration `env:"RAGCHAT_STREAM_INTERVAL"`
}

// Apply overrides cfg from the process environment.
func Apply(cfg *domain.Config) error {
	return apply(cfg, env.Options{})
}

// ApplyFrom overrides cfg from the given variables instead of the process environment.
func ApplyFrom(cfg *domain.Config, environ map[string]string) error {
	return apply(cfg, env.Options{Environment: environ})
}

func apply(cfg *domain.Config, opts env.Options) error {
	o := overrides{
		StorageBackend:  string(cfg.Storage.Backend),
		DataDir:         cfg.Storage.DataDir,
		MaxTextLength:   cfg.Documents.MaxTextLength,
		MaxFileBytes:    cfg.Documents.MaxFileBytes,
		StreamChunkSize: cfg.Stream.ChunkSize,
		StreamInterval:  cfg.Stream.Interval,
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	backend := domain.StorageBackend(o.StorageBackend)
	if !backend.IsValid() {
		return fmt.Errorf("%w: RAGCHAT_STORAGE_BACKEND %q", domain.ErrInvalidInput, o.StorageBackend)
	}
	if o.MaxTextLength <= 0 || o.StreamChunkSize <= 0 || o.MaxFileBytes < 0 || o.StreamInterval < 0 {
		return fmt.Errorf("%w: sizes and intervals must not be negative", domain.ErrInvalidInput)
	}

	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = o.DataDir
	cfg.Documents.MaxTextLength = o.MaxTextLength
	cfg.Documents.MaxFileBytes = o.MaxFileBytes
	cfg.Stream.ChunkSize = o.StreamChunkSize
	cfg.Stream.Interval = o.StreamInterval
	return nil
}
