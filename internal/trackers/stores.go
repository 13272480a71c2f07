package trackers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/datatypes"
)

type HydrationStore interface {
	daysync.Reader[int]
	daysync.Upserter[int]
}

type ChecklistStore interface {
	daysync.Reader[[]models.ChecklistItem]
	daysync.InsertUpdater[[]models.ChecklistItem]
}

type MoodStore interface {
	daysync.Inserter[MoodDraft]
	History(ctx context.Context, key daysync.Key) ([]models.MoodEntry, error)
}

type SwellingStore interface {
	daysync.Inserter[SwellingDraft]
	History(ctx context.Context, key daysync.Key) ([]models.SwellingEntry, error)
}

// Stores bundles the database-backed stores for all trackers.
type Stores struct {
	Hydration HydrationStore
	Checklist ChecklistStore
	Moods     MoodStore
	Swelling  SwellingStore
	// Activity holds every tracker table, for the streak.
	Activity []EntryDateLister
}

func NewStores(repositories *db.Repositories) Stores {
	return Stores{
		Hydration: hydrationTable{table: repositories.Hydration},
		Checklist: checklistTable{table: repositories.Checklist},
		Moods:     moodTable{table: repositories.Moods},
		Swelling:  swellingTable{table: repositories.Swelling},
		Activity: []EntryDateLister{
			repositories.Hydration,
			repositories.Checklist,
			repositories.Moods,
			repositories.Swelling,
		},
	}
}

type hydrationTable struct {
	table *db.DailyEntryTable[models.HydrationEntry]
}

func (store hydrationTable) Read(ctx context.Context, key daysync.Key) (int, bool, error) {
	entry, found, err := store.table.FindForDay(ctx, key.UserID, key.EntryDate)
	if err != nil || !found {
		return 0, false, err
	}
	return entry.Glasses, true, nil
}

func (store hydrationTable) Upsert(ctx context.Context, key daysync.Key, glasses int) error {
	return store.table.Upsert(ctx, &models.HydrationEntry{
		UserID:    key.UserID,
		EntryDate: key.EntryDate,
		Glasses:   glasses,
	})
}

type checklistTable struct {
	table *db.DailyEntryTable[models.DailyChecklist]
}

// Read accepts a stored checklist only when it is a non-empty array.
func (store checklistTable) Read(ctx context.Context, key daysync.Key) ([]models.ChecklistItem, bool, error) {
	entry, found, err := store.table.FindForDay(ctx, key.UserID, key.EntryDate)
	if err != nil || !found {
		return nil, false, err
	}
	if len(entry.Items) == 0 {
		return nil, false, nil
	}
	return []models.ChecklistItem(entry.Items), true, nil
}

func (store checklistTable) FindRowID(ctx context.Context, key daysync.Key) (string, bool, error) {
	id, found, err := store.table.FindIDForDay(ctx, key.UserID, key.EntryDate)
	if err != nil || !found {
		return "", false, err
	}
	return id.String(), true, nil
}

func (store checklistTable) UpdateRow(ctx context.Context, rowID string, items []models.ChecklistItem) error {
	id, err := uuid.Parse(rowID)
	if err != nil {
		return fmt.Errorf("parse checklist id %q: %w", rowID, err)
	}
	return store.table.UpdateByID(ctx, id, map[string]any{
		"items": datatypes.JSONSlice[models.ChecklistItem](items),
	})
}

func (store checklistTable) Insert(ctx context.Context, key daysync.Key, items []models.ChecklistItem) error {
	return store.table.Insert(ctx, &models.DailyChecklist{
		UserID:    key.UserID,
		EntryDate: key.EntryDate,
		Items:     datatypes.JSONSlice[models.ChecklistItem](items),
	})
}

type moodTable struct {
	table *db.DailyEntryTable[models.MoodEntry]
}

func (store moodTable) Insert(ctx context.Context, key daysync.Key, draft MoodDraft) error {
	return store.table.Insert(ctx, &models.MoodEntry{
		UserID:      key.UserID,
		EntryDate:   key.EntryDate,
		Mood:        draft.Mood,
		EnergyLevel: draft.EnergyLevel,
		Notes:       draft.Notes,
	})
}

func (store moodTable) History(ctx context.Context, key daysync.Key) ([]models.MoodEntry, error) {
	return store.table.ListForDay(ctx, key.UserID, key.EntryDate)
}

type swellingTable struct {
	table *db.DailyEntryTable[models.SwellingEntry]
}

func (store swellingTable) Insert(ctx context.Context, key daysync.Key, draft SwellingDraft) error {
	areas := datatypes.JSONSlice[string]{}
	areas = append(areas, draft.Areas...)
	return store.table.Insert(ctx, &models.SwellingEntry{
		UserID:    key.UserID,
		EntryDate: key.EntryDate,
		Level:     draft.Level,
		Areas:     areas,
	})
}

func (store swellingTable) History(ctx context.Context, key daysync.Key) ([]models.SwellingEntry, error) {
	return store.table.ListForDay(ctx, key.UserID, key.EntryDate)
}
