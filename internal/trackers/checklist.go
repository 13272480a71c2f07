package trackers

import (
	"context"
	"errors"

	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/models"
)

var ErrUnknownItem = errors.New("unknown checklist item")

type ChecklistState struct {
	Items     []models.ChecklistItem `json:"items"`
	Completed int                    `json:"completed"`
	Total     int                    `json:"total"`
	Progress  float64                `json:"progress"`
}

type ChecklistTracker struct {
	options Options
	entries *daysync.Synchronizer[[]models.ChecklistItem]
}

func NewChecklistTracker(store ChecklistStore, options Options) *ChecklistTracker {
	options = options.normalized()
	config := syncConfig(options, "daily_checklist", models.DefaultChecklist)
	config.Reader = store
	config.Writer = daysync.CheckThenWrite[[]models.ChecklistItem](store)
	config.Clone = cloneItems
	return &ChecklistTracker{options: options, entries: daysync.New(config)}
}

func (tracker *ChecklistTracker) Mount(ctx context.Context) {
	tracker.options.Session.WhenIdentified(ctx, func(ctx context.Context, identity Identity) {
		tracker.entries.Load(ctx, identity.UserID)
	})
}

func (tracker *ChecklistTracker) Close() {
	tracker.entries.Close()
}

func (tracker *ChecklistTracker) Items() []models.ChecklistItem {
	return tracker.entries.Value()
}

// Toggle flips the checked flag of one item and persists the whole list.
func (tracker *ChecklistTracker) Toggle(ctx context.Context, itemID string) error {
	if !containsItem(tracker.Items(), itemID) {
		return ErrUnknownItem
	}
	flip := func(items []models.ChecklistItem) []models.ChecklistItem {
		return ToggleItem(items, itemID)
	}

	identity, ok := tracker.options.Session.Identity()
	if !ok {
		tracker.entries.Apply(flip)
		return nil
	}
	if err := tracker.entries.Update(ctx, identity.UserID, flip); err != nil {
		tracker.options.Notifier.Notify(saveFailed("Não foi possível salvar seu checklist."))
	}
	return nil
}

func (tracker *ChecklistTracker) Completed() int {
	return CompletedItems(tracker.Items())
}

func (tracker *ChecklistTracker) Progress() float64 {
	return ChecklistProgress(tracker.Items())
}

func (tracker *ChecklistTracker) State() ChecklistState {
	items := tracker.Items()
	return ChecklistState{
		Items:     items,
		Completed: CompletedItems(items),
		Total:     len(items),
		Progress:  ChecklistProgress(items),
	}
}

// ToggleItem returns a copy of items with itemID flipped.
func ToggleItem(items []models.ChecklistItem, itemID string) []models.ChecklistItem {
	toggled := cloneItems(items)
	for index := range toggled {
		if toggled[index].ID == itemID {
			toggled[index].Checked = !toggled[index].Checked
		}
	}
	return toggled
}

func CompletedItems(items []models.ChecklistItem) int {
	completed := 0
	for _, item := range items {
		if item.Checked {
			completed++
		}
	}
	return completed
}

// ChecklistProgress is completed/total*100, or 0 for an empty list.
func ChecklistProgress(items []models.ChecklistItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(CompletedItems(items)) / float64(len(items)) * 100
}

func containsItem(items []models.ChecklistItem, itemID string) bool {
	for _, item := range items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func cloneItems(items []models.ChecklistItem) []models.ChecklistItem {
	if items == nil {
		return nil
	}
	return append(make([]models.ChecklistItem, 0, len(items)), items...)
}
