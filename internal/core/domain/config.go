package domain

import "time"

// StorageBackend selects the key-value store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists to a SQLite database in the data directory.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps everything in process memory.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// Config is the resolved engine configuration.
type Config struct {
	Storage   StorageConfig
	Documents DocumentConfig
	Composer  ComposerConfig
	Stream    StreamConfig
}

// StorageConfig configures persistence.
type StorageConfig struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// DataDir is where persistent backends keep their files.
	// Empty means ~/.ragchat/data.
	DataDir string
}

// DocumentConfig bounds ingestion.
type DocumentConfig struct {
	// MaxTextLength caps extracted text, in characters.
	MaxTextLength int

	// MaxFileBytes rejects larger uploads. Zero disables the check.
	MaxFileBytes int64
}

// ComposerConfig sizes response excerpts, in characters.
type ComposerConfig struct {
	WindowBefore   int
	WindowAfter    int
	FallbackLength int
}

// StreamConfig paces simulated streaming.
type StreamConfig struct {
	ChunkSize int
	Interval  time.Duration
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: StorageSQLite,
		},
		Documents: DocumentConfig{
			MaxTextLength: MaxTextLength,
			MaxFileBytes:  16 * 1024 * 1024,
		},
		Composer: ComposerConfig{
			WindowBefore:   40,
			WindowAfter:    80,
			FallbackLength: 120,
		},
		Stream: StreamConfig{
			ChunkSize: 10,
			Interval:  15 * time.Millisecond,
		},
	}
}
