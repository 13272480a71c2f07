// Package daysync keeps one piece of local state consistent with one remote
// row scoped to (user, today).
package daysync

import (
	"context"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

type Key struct {
	UserID    uint
	EntryDate string
}

// EntryDate formats the calendar date of now in location as YYYY-MM-DD.
func EntryDate(now time.Time, location *time.Location) string {
	if location == nil {
		location = time.Local
	}
	return now.In(location).Format(models.EntryDateLayout)
}

type Reader[T any] interface {
	Read(ctx context.Context, key Key) (T, bool, error)
}

type Inserter[T any] interface {
	Insert(ctx context.Context, key Key, value T) error
}

// Updater locates the day's row and overwrites it by id.
type Updater[T any] interface {
	FindRowID(ctx context.Context, key Key) (string, bool, error)
	UpdateRow(ctx context.Context, rowID string, value T) error
}

type Upserter[T any] interface {
	Upsert(ctx context.Context, key Key, value T) error
}

type InsertUpdater[T any] interface {
	Inserter[T]
	Updater[T]
}
