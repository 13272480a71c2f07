package trackers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/models"
)

var errStoreUnavailable = errors.New("store unavailable")

var testNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

type fakeHydrationStore struct {
	mu       sync.Mutex
	rows     map[daysync.Key]int
	upserts  int
	writeErr error
}

func (store *fakeHydrationStore) Read(ctx context.Context, key daysync.Key) (int, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	glasses, ok := store.rows[key]
	return glasses, ok, nil
}

func (store *fakeHydrationStore) Upsert(ctx context.Context, key daysync.Key, glasses int) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.upserts++
	if store.writeErr != nil {
		return store.writeErr
	}
	if store.rows == nil {
		store.rows = map[daysync.Key]int{}
	}
	store.rows[key] = glasses
	return nil
}

type fakeChecklistStore struct {
	mu       sync.Mutex
	rows     map[daysync.Key][]models.ChecklistItem
	inserts  int
	updates  int
	writeErr error
}

func (store *fakeChecklistStore) Read(ctx context.Context, key daysync.Key) ([]models.ChecklistItem, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	items, ok := store.rows[key]
	return cloneItems(items), ok, nil
}

func (store *fakeChecklistStore) FindRowID(ctx context.Context, key daysync.Key) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.rows[key]; !ok {
		return "", false, nil
	}
	return key.EntryDate, true, nil
}

func (store *fakeChecklistStore) UpdateRow(ctx context.Context, rowID string, items []models.ChecklistItem) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.updates++
	if store.writeErr != nil {
		return store.writeErr
	}
	for key := range store.rows {
		if key.EntryDate == rowID {
			store.rows[key] = cloneItems(items)
		}
	}
	return nil
}

func (store *fakeChecklistStore) Insert(ctx context.Context, key daysync.Key, items []models.ChecklistItem) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.inserts++
	if store.writeErr != nil {
		return store.writeErr
	}
	if store.rows == nil {
		store.rows = map[daysync.Key][]models.ChecklistItem{}
	}
	store.rows[key] = cloneItems(items)
	return nil
}

type fakeMoodStore struct {
	mu       sync.Mutex
	drafts   []MoodDraft
	writeErr error
	// block, when set, holds Insert until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func (store *fakeMoodStore) Insert(ctx context.Context, key daysync.Key, draft MoodDraft) error {
	if store.entered != nil {
		close(store.entered)
	}
	if store.block != nil {
		<-store.block
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.writeErr != nil {
		return store.writeErr
	}
	store.drafts = append(store.drafts, draft)
	return nil
}

func (store *fakeMoodStore) History(ctx context.Context, key daysync.Key) ([]models.MoodEntry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := make([]models.MoodEntry, 0, len(store.drafts))
	for _, draft := range store.drafts {
		entries = append(entries, models.MoodEntry{
			UserID:      key.UserID,
			EntryDate:   key.EntryDate,
			Mood:        draft.Mood,
			EnergyLevel: draft.EnergyLevel,
			Notes:       draft.Notes,
		})
	}
	return entries, nil
}

func (store *fakeMoodStore) calls() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.drafts)
}

type fakeSwellingStore struct {
	mu       sync.Mutex
	drafts   []SwellingDraft
	inserts  int
	writeErr error
}

func (store *fakeSwellingStore) Insert(ctx context.Context, key daysync.Key, draft SwellingDraft) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.inserts++
	if store.writeErr != nil {
		return store.writeErr
	}
	store.drafts = append(store.drafts, draft)
	return nil
}

func (store *fakeSwellingStore) History(ctx context.Context, key daysync.Key) ([]models.SwellingEntry, error) {
	return nil, nil
}

func testOptions(t *testing.T, session *Session) (Options, *Inbox) {
	t.Helper()

	inbox := &Inbox{}
	return Options{
		Session:  session,
		Notifier: inbox,
		Clock:    func() time.Time { return testNow },
		Location: time.UTC,
	}, inbox
}

func identifiedSession() *Session {
	return NewIdentifiedSession(Identity{UserID: 42, Email: "ana@example.com"})
}

func todayKey() daysync.Key {
	return daysync.Key{UserID: 42, EntryDate: "2026-03-01"}
}
