package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyEntryTable reads and writes rows scoped to one user and one entry_date.
// T must be a GORM model with id, user_id and entry_date columns.
type DailyEntryTable[T any] struct {
	database      *gorm.DB
	upsertColumns []string
}

func NewDailyEntryTable[T any](database *gorm.DB, upsertColumns ...string) *DailyEntryTable[T] {
	return &DailyEntryTable[T]{database: database, upsertColumns: upsertColumns}
}

// FindForDay returns the most recent row for the day. A missing row is not an error.
func (table *DailyEntryTable[T]) FindForDay(ctx context.Context, userID uint, entryDate string) (T, bool, error) {
	var entry T
	result := table.database.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, entryDate).
		Order("created_at DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		var zero T
		return zero, false, result.Error
	}
	if result.RowsAffected == 0 {
		var zero T
		return zero, false, nil
	}
	return entry, true, nil
}

func (table *DailyEntryTable[T]) ListForDay(ctx context.Context, userID uint, entryDate string) ([]T, error) {
	entries := make([]T, 0)
	if err := table.database.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, entryDate).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (table *DailyEntryTable[T]) FindIDForDay(ctx context.Context, userID uint, entryDate string) (uuid.UUID, bool, error) {
	var row struct {
		ID uuid.UUID `gorm:"column:id"`
	}
	result := table.database.WithContext(ctx).
		Model(new(T)).
		Select("id").
		Where("user_id = ? AND entry_date = ?", userID, entryDate).
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return uuid.Nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return uuid.Nil, false, nil
	}
	return row.ID, true, nil
}

func (table *DailyEntryTable[T]) Insert(ctx context.Context, entry *T) error {
	return table.database.WithContext(ctx).Create(entry).Error
}

func (table *DailyEntryTable[T]) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return table.database.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates).Error
}

// Upsert inserts the row or overwrites the configured columns of the existing
// (user_id, entry_date) row in a single statement.
func (table *DailyEntryTable[T]) Upsert(ctx context.Context, entry *T) error {
	return table.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
			DoUpdates: clause.AssignmentColumns(table.upsertColumns),
		}).
		Create(entry).Error
}

func (table *DailyEntryTable[T]) CountForDay(ctx context.Context, userID uint, entryDate string) (int64, error) {
	var count int64
	if err := table.database.WithContext(ctx).
		Model(new(T)).
		Where("user_id = ? AND entry_date = ?", userID, entryDate).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListEntryDates returns the distinct entry dates of userID on or before
// through, newest first.
func (table *DailyEntryTable[T]) ListEntryDates(ctx context.Context, userID uint, through string) ([]string, error) {
	dates := make([]string, 0)
	if err := table.database.WithContext(ctx).
		Model(new(T)).
		Distinct().
		Where("user_id = ? AND entry_date <= ?", userID, through).
		Order("entry_date DESC").
		Pluck("entry_date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}
