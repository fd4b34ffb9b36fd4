package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driving"
)

// Ensure Stream implements the interface.
var _ driving.ReplyStream = (*Stream)(nil)

// Prefixes returns the strictly growing prefixes of text, advancing
// chunkSize characters at a time. The last prefix is text itself.
// Empty text yields a single empty prefix.
func Prefixes(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = domain.DefaultConfig().Stream.ChunkSize
	}
	if text == "" {
		return []string{""}
	}

	// Byte offsets of every rune boundary after the first.
	var bounds []int
	count := 0
	for i := range text {
		if count > 0 && count%chunkSize == 0 {
			bounds = append(bounds, i)
		}
		count++
	}
	bounds = append(bounds, len(text))

	out := make([]string, len(bounds))
	for i, b := range bounds {
		out[i] = text[:b]
	}
	return out
}

// Emitter paces one text at a time into a Stream.
// Starting a new stream cancels the previous one and waits for it to finish.
type Emitter struct {
	mu        sync.Mutex
	chunkSize int
	interval  time.Duration
	current   *Stream
}

// NewEmitter creates an emitter. Non-positive sizes take their defaults.
func NewEmitter(cfg domain.StreamConfig) *Emitter {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = domain.DefaultConfig().Stream.ChunkSize
	}
	if cfg.Interval < 0 {
		cfg.Interval = 0
	}
	return &Emitter{
		chunkSize: cfg.ChunkSize,
		interval:  cfg.Interval,
	}
}

// Start emits the prefixes of fullText on the emitter's interval.
// onFinish, if set, runs once when emission ends, before the stream is
// marked done. completed is false if the stream was cancelled.
func (e *Emitter) Start(ctx context.Context, fullText string, onFinish func(completed bool)) *Stream {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	prefixes := Prefixes(fullText, e.chunkSize)
	ctx, cancel := context.WithCancel(ctx)
	st := &Stream{
		// Sized to hold every prefix so emission never waits on the reader.
		events: make(chan string, len(prefixes)),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	e.current = st

	go st.run(ctx, prefixes, e.interval, onFinish)
	return st
}

// Stop cancels the active stream, if any, and waits for it to finish.
func (e *Emitter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Emitter) stopLocked() {
	if e.current == nil {
		return
	}
	e.current.Cancel()
	_ = e.current.Wait()
	e.current = nil
}

// Stream is one in-flight emission.
type Stream struct {
	events chan string
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Events returns growing prefixes of the text. The channel is closed when
// the stream finishes or is cancelled.
func (s *Stream) Events() <-chan string {
	return s.events
}

// Cancel stops emission.
func (s *Stream) Cancel() {
	s.cancel()
}

// Wait blocks until the stream is done. It returns context.Canceled if the
// stream was cancelled before the last prefix was emitted.
func (s *Stream) Wait() error {
	<-s.done
	return s.err
}

// Done is closed once the stream has finished and its hook has run.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

func (s *Stream) run(ctx context.Context, prefixes []string, interval time.Duration, onFinish func(bool)) {
	defer close(s.done)
	defer s.cancel()

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	completed := true
	for _, p := range prefixes {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			completed = false
			break
		}
		s.events <- p
	}

	close(s.events)
	if !completed {
		s.err = context.Canceled
	}
	if onFinish != nil {
		onFinish(completed)
	}
}
