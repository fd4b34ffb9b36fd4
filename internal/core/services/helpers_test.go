package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/ragchat/internal/adapters/driven/storage/memory"
)

var errDiskFull = errors.New("disk full")

// flakyStorage wraps the in-memory store and fails reads or writes on demand.
type flakyStorage struct {
	*memory.Storage

	mu       sync.Mutex
	failGet  bool
	failSet  bool
	setCalls int
}

func newFlakyStorage() *flakyStorage {
	return &flakyStorage{Storage: memory.NewStorage()}
}

func (f *flakyStorage) fail(get, set bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet = get
	f.failSet = set
}

func (f *flakyStorage) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

func (f *flakyStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, false, errDiskFull
	}
	return f.Storage.Get(ctx, key)
}

func (f *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.setCalls++
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.Storage.Set(ctx, key, value)
}
