package trackers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/datatypes"
)

func openTrackerTestRepositories(t *testing.T) (*db.Repositories, models.User) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ciclo-trackers.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("load sql db: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("close sqlite: %v", err)
		}
	})

	repositories := db.NewRepositories(database)
	user := models.User{Email: "ana@example.com", PasswordHash: "hash"}
	if err := repositories.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return repositories, user
}

func TestHydrationTrackerKeepsOneRowPerDay(t *testing.T) {
	repositories, user := openTrackerTestRepositories(t)
	stores := NewStores(repositories)
	options, inbox := testOptions(t, NewIdentifiedSession(Identity{UserID: user.ID}))
	ctx := context.Background()

	tracker := NewHydrationTracker(stores.Hydration, options)
	tracker.Mount(ctx)
	for range 3 {
		tracker.Increment(ctx)
	}
	tracker.Decrement(ctx)

	count, err := repositories.Hydration.CountForDay(ctx, user.ID, "2026-03-01")
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one hydration row, got %d", count)
	}
	if inbox.HasErrors() {
		t.Fatalf("unexpected notifications %+v", inbox.Notifications())
	}

	reloaded := NewHydrationTracker(stores.Hydration, options)
	reloaded.Mount(ctx)
	if got := reloaded.Glasses(); got != 2 {
		t.Fatalf("expected reloaded glasses 2, got %d", got)
	}
}

func TestChecklistTrackerUpdatesExistingRow(t *testing.T) {
	repositories, user := openTrackerTestRepositories(t)
	stores := NewStores(repositories)
	options, _ := testOptions(t, NewIdentifiedSession(Identity{UserID: user.ID}))
	ctx := context.Background()

	tracker := NewChecklistTracker(stores.Checklist, options)
	tracker.Mount(ctx)
	if err := tracker.Toggle(ctx, "1"); err != nil {
		t.Fatalf("toggle 1: %v", err)
	}
	if err := tracker.Toggle(ctx, "6"); err != nil {
		t.Fatalf("toggle 6: %v", err)
	}

	count, err := repositories.Checklist.CountForDay(ctx, user.ID, "2026-03-01")
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one checklist row, got %d", count)
	}

	reloaded := NewChecklistTracker(stores.Checklist, options)
	reloaded.Mount(ctx)
	if diff := cmp.Diff(tracker.Items(), reloaded.Items()); diff != "" {
		t.Fatalf("reloaded checklist mismatch (-want +got):\n%s", diff)
	}
}

func TestChecklistStoreIgnoresEmptyStoredArray(t *testing.T) {
	repositories, user := openTrackerTestRepositories(t)
	ctx := context.Background()
	if err := repositories.Checklist.Insert(ctx, &models.DailyChecklist{
		UserID:    user.ID,
		EntryDate: "2026-03-01",
		Items:     datatypes.JSONSlice[models.ChecklistItem]{},
	}); err != nil {
		t.Fatalf("insert empty checklist: %v", err)
	}

	options, _ := testOptions(t, NewIdentifiedSession(Identity{UserID: user.ID}))
	tracker := NewChecklistTracker(NewStores(repositories).Checklist, options)
	tracker.Mount(ctx)

	if diff := cmp.Diff(models.DefaultChecklist(), tracker.Items()); diff != "" {
		t.Fatalf("expected default checklist (-want +got):\n%s", diff)
	}
}

func TestMoodAndSwellingAppendHistory(t *testing.T) {
	repositories, user := openTrackerTestRepositories(t)
	stores := NewStores(repositories)
	options, _ := testOptions(t, NewIdentifiedSession(Identity{UserID: user.ID}))
	ctx := context.Background()

	moods := NewMoodTracker(stores.Moods, options)
	for _, mood := range []string{models.MoodTired, models.MoodLoving} {
		if err := moods.Select(mood); err != nil {
			t.Fatalf("select %q: %v", mood, err)
		}
		if err := moods.Save(ctx); err != nil {
			t.Fatalf("save %q: %v", mood, err)
		}
	}
	moodHistory, err := moods.History(ctx)
	if err != nil {
		t.Fatalf("mood history: %v", err)
	}
	if len(moodHistory) != 2 {
		t.Fatalf("expected two mood entries, got %d", len(moodHistory))
	}

	swelling := NewSwellingTracker(stores.Swelling, options)
	swelling.SetLevel(3)
	if err := swelling.Save(ctx); err != nil {
		t.Fatalf("save swelling: %v", err)
	}
	swellingHistory, err := swelling.History(ctx)
	if err != nil {
		t.Fatalf("swelling history: %v", err)
	}
	if len(swellingHistory) != 1 || swellingHistory[0].Level != 3 || len(swellingHistory[0].Areas) != 0 || swellingHistory[0].Areas == nil {
		t.Fatalf("expected {level:3, areas:[]}, got %+v", swellingHistory)
	}
}
