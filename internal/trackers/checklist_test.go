package trackers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/models"
)

func TestToggleTwiceRestoresItems(t *testing.T) {
	original := models.DefaultChecklist()
	original[3].Checked = true

	for _, item := range original {
		toggled := ToggleItem(ToggleItem(original, item.ID), item.ID)
		if diff := cmp.Diff(original, toggled); diff != "" {
			t.Fatalf("toggling %q twice changed the list (-want +got):\n%s", item.ID, diff)
		}
	}

	sequence := []string{"1", "3", "1", "6", "2", "6", "3", "2"}
	items := original
	for _, id := range sequence {
		items = ToggleItem(items, id)
		if len(items) != len(original) {
			t.Fatalf("expected %d items, got %d", len(original), len(items))
		}
		for index := range items {
			if items[index].ID != original[index].ID {
				t.Fatalf("toggle %q reordered items: %+v", id, items)
			}
		}
	}
	if diff := cmp.Diff(original, items); diff != "" {
		t.Fatalf("paired toggles changed the list (-want +got):\n%s", diff)
	}
}

func TestChecklistProgress(t *testing.T) {
	items := models.DefaultChecklist()
	if got := ChecklistProgress(items); got != 0 {
		t.Fatalf("expected 0 with nothing checked, got %v", got)
	}

	items[0].Checked, items[1].Checked, items[2].Checked = true, true, true
	if got := ChecklistProgress(items); got != 50 {
		t.Fatalf("expected 50 with 3 of 6 checked, got %v", got)
	}

	for index := range items {
		items[index].Checked = true
	}
	if got := ChecklistProgress(items); got != 100 {
		t.Fatalf("expected 100 with all checked, got %v", got)
	}

	if got := ChecklistProgress(nil); got != 0 {
		t.Fatalf("expected 0 for an empty list, got %v", got)
	}
}

func TestChecklistLoadThenToggle(t *testing.T) {
	stored := models.DefaultChecklist()
	stored[0].Checked = true
	store := &fakeChecklistStore{rows: map[daysync.Key][]models.ChecklistItem{todayKey(): stored}}
	options, _ := testOptions(t, identifiedSession())
	tracker := NewChecklistTracker(store, options)
	ctx := context.Background()

	tracker.Mount(ctx)
	if diff := cmp.Diff(stored, tracker.Items()); diff != "" {
		t.Fatalf("loaded items mismatch (-want +got):\n%s", diff)
	}

	if err := tracker.Toggle(ctx, "2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	want := models.DefaultChecklist()
	want[0].Checked = true
	want[1].Checked = true
	if diff := cmp.Diff(want, tracker.Items()); diff != "" {
		t.Fatalf("toggled items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, store.rows[todayKey()]); diff != "" {
		t.Fatalf("stored items mismatch (-want +got):\n%s", diff)
	}
	if store.updates != 1 || store.inserts != 0 {
		t.Fatalf("expected one update and no insert, got updates=%d inserts=%d", store.updates, store.inserts)
	}
}

func TestChecklistFirstToggleInserts(t *testing.T) {
	store := &fakeChecklistStore{}
	options, _ := testOptions(t, identifiedSession())
	tracker := NewChecklistTracker(store, options)
	ctx := context.Background()

	tracker.Mount(ctx)
	if err := tracker.Toggle(ctx, "4"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := tracker.Toggle(ctx, "5"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if store.inserts != 1 || store.updates != 1 {
		t.Fatalf("expected insert then update, got inserts=%d updates=%d", store.inserts, store.updates)
	}
	if got := tracker.Completed(); got != 2 {
		t.Fatalf("expected 2 completed, got %d", got)
	}
}

func TestChecklistUnknownItemDoesNotWrite(t *testing.T) {
	store := &fakeChecklistStore{}
	options, _ := testOptions(t, identifiedSession())
	tracker := NewChecklistTracker(store, options)

	err := tracker.Toggle(context.Background(), "99")
	if !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if store.inserts != 0 || store.updates != 0 {
		t.Fatalf("expected no writes, got inserts=%d updates=%d", store.inserts, store.updates)
	}
}

func TestChecklistWriteFailureKeepsToggle(t *testing.T) {
	store := &fakeChecklistStore{writeErr: errStoreUnavailable}
	options, inbox := testOptions(t, identifiedSession())
	tracker := NewChecklistTracker(store, options)

	if err := tracker.Toggle(context.Background(), "1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !tracker.Items()[0].Checked {
		t.Fatal("expected optimistic toggle to remain")
	}
	if !inbox.HasErrors() {
		t.Fatal("expected an error notification")
	}
}

func TestChecklistItemsAreCopies(t *testing.T) {
	options, _ := testOptions(t, identifiedSession())
	tracker := NewChecklistTracker(&fakeChecklistStore{}, options)

	items := tracker.Items()
	items[0].Checked = true

	if tracker.Items()[0].Checked {
		t.Fatal("mutating a returned slice must not change tracker state")
	}
}
