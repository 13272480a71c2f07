package trackers

import (
	"context"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

// EntryDateLister lists the distinct days a user has rows in one table.
type EntryDateLister interface {
	ListEntryDates(ctx context.Context, userID uint, through string) ([]string, error)
}

// Streak counts the consecutive days with at least one row in any of the
// tracker tables, ending today. A streak that ends yesterday still counts
// because today can still be logged.
func Streak(ctx context.Context, tables []EntryDateLister, userID uint, today string) (int, error) {
	active := make(map[string]bool)
	for _, table := range tables {
		dates, err := table.ListEntryDates(ctx, userID, today)
		if err != nil {
			return 0, err
		}
		for _, date := range dates {
			active[date] = true
		}
	}
	return StreakDays(today, active), nil
}

// StreakDays counts back from today over the days marked in active.
func StreakDays(today string, active map[string]bool) int {
	day, err := time.Parse(models.EntryDateLayout, today)
	if err != nil {
		return 0
	}
	if !active[today] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for active[day.Format(models.EntryDateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
