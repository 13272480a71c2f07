package daysync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var (
	ErrWriteFailed = errors.New("write failed")
	ErrClosed      = errors.New("synchronizer closed")
)

// Observer is notified after every store call.
type Observer func(table string, operation string, err error)

type Config[T any] struct {
	Table string
	// Default returns the value a day starts with when no row exists.
	Default func() T
	// Reader is nil for append-only entries, which never load.
	Reader   Reader[T]
	Writer   Writer[T]
	Policy   Policy
	Clock    func() time.Time
	Location *time.Location
	// Clone copies values that share memory (slices, maps).
	Clone    func(T) T
	Observer Observer
}

type Synchronizer[T any] struct {
	config Config[T]

	mu        sync.Mutex
	value     T
	day       string
	loaded    bool
	loadedFor uint
	version   uint64
	closed    bool
}

func New[T any](config Config[T]) *Synchronizer[T] {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Default == nil {
		config.Default = func() T {
			var zero T
			return zero
		}
	}
	if config.Clone == nil {
		config.Clone = func(value T) T { return value }
	}

	synchronizer := &Synchronizer[T]{config: config}
	synchronizer.day = EntryDate(config.Clock(), config.Location)
	synchronizer.value = config.Default()
	return synchronizer
}

// Value returns a copy of the local state.
func (s *Synchronizer[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolloverLocked()
	return s.config.Clone(s.value)
}

// Today returns the entry date local state belongs to.
func (s *Synchronizer[T]) Today() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolloverLocked()
	return s.day
}

// Load reads today's row for userID once. A missing row keeps the default;
// read errors are logged and treated the same way. Results that arrive after
// Close, after a day change or after a local change are discarded.
func (s *Synchronizer[T]) Load(ctx context.Context, userID uint) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.rolloverLocked()
	if s.loaded && s.loadedFor == userID {
		s.mu.Unlock()
		return
	}
	s.loaded = true
	s.loadedFor = userID
	key := Key{UserID: userID, EntryDate: s.day}
	version := s.version
	s.mu.Unlock()

	if s.config.Reader == nil {
		return
	}

	value, found, err := s.config.Reader.Read(ctx, key)
	s.observe("read", err)
	if err != nil {
		log.Printf("daysync: load %s for user %d on %s: %v", s.config.Table, key.UserID, key.EntryDate, err)
		return
	}
	if !found {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.day != key.EntryDate || s.version != version {
		return
	}
	s.value = value
}

// Save applies next locally and then persists it.
func (s *Synchronizer[T]) Save(ctx context.Context, userID uint, next T) error {
	return s.Update(ctx, userID, func(T) T { return next })
}

// Update derives the next value from the current one, applies it locally and
// persists it. On failure the configured Policy decides what stays local and
// the returned error wraps ErrWriteFailed.
func (s *Synchronizer[T]) Update(ctx context.Context, userID uint, change func(current T) T) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.rolloverLocked()
	previous := s.value
	next := change(s.config.Clone(s.value))
	s.value = next
	s.version++
	version := s.version
	key := Key{UserID: userID, EntryDate: s.day}
	s.mu.Unlock()

	err := s.config.Writer.Write(ctx, key, s.config.Clone(next))
	s.observe(s.config.Writer.Operation(), err)
	if err == nil {
		return nil
	}

	s.mu.Lock()
	if s.config.Policy == Rollback && !s.closed && s.version == version && s.day == key.EntryDate {
		s.value = previous
	}
	s.mu.Unlock()
	return fmt.Errorf("%w: %s %s: %w", ErrWriteFailed, s.config.Table, s.config.Writer.Operation(), err)
}

// Apply changes local state without writing, for owners that have no
// identity yet.
func (s *Synchronizer[T]) Apply(change func(current T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rolloverLocked()
	s.value = change(s.config.Clone(s.value))
	s.version++
}

// Reset puts local state back to the default without writing.
func (s *Synchronizer[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = s.config.Default()
	s.version++
}

// Close marks the owner as gone. In-flight loads are discarded and further
// saves return ErrClosed.
func (s *Synchronizer[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Synchronizer[T]) rolloverLocked() {
	today := EntryDate(s.config.Clock(), s.config.Location)
	if today == s.day {
		return
	}
	s.day = today
	s.value = s.config.Default()
	s.loaded = false
	s.version++
}

func (s *Synchronizer[T]) observe(operation string, err error) {
	if s.config.Observer != nil {
		s.config.Observer(s.config.Table, operation, err)
	}
}
