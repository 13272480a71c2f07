package trackers

import (
	"context"
	"errors"
	"sync"

	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/models"
)

var (
	ErrUnknownArea   = errors.New("unknown swelling area")
	ErrLevelRequired = errors.New("swelling level required before choosing areas")
)

// SwellingDraft is one swelling entry as written to the store.
type SwellingDraft struct {
	Level int
	Areas []string
}

type SwellingState struct {
	Level  int      `json:"level"`
	Areas  []string `json:"areas"`
	Saving bool     `json:"saving"`
}

type SwellingTracker struct {
	options Options
	store   SwellingStore
	entries *daysync.Synchronizer[SwellingDraft]

	mu     sync.Mutex
	level  int
	areas  map[string]bool
	saving bool
}

func NewSwellingTracker(store SwellingStore, options Options) *SwellingTracker {
	options = options.normalized()
	config := syncConfig(options, "swelling_entries", func() SwellingDraft { return SwellingDraft{Areas: []string{}} })
	config.Writer = daysync.Append[SwellingDraft](store)
	config.Clone = func(draft SwellingDraft) SwellingDraft {
		draft.Areas = append([]string{}, draft.Areas...)
		return draft
	}
	return &SwellingTracker{
		options: options,
		store:   store,
		entries: daysync.New(config),
		areas:   make(map[string]bool),
	}
}

func (tracker *SwellingTracker) Close() {
	tracker.entries.Close()
}

// SetLevel stores level clamped to [0, 5]; 0 means unset and drops the
// areas.
func (tracker *SwellingTracker) SetLevel(level int) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.level = ClampSwellingLevel(level)
	if tracker.level == 0 {
		clear(tracker.areas)
	}
}

// ToggleArea adds the area if absent and removes it if present.
func (tracker *SwellingTracker) ToggleArea(areaID string) error {
	if !models.IsValidSwellingArea(areaID) {
		return ErrUnknownArea
	}
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.level == 0 {
		return ErrLevelRequired
	}
	if tracker.areas[areaID] {
		delete(tracker.areas, areaID)
	} else {
		tracker.areas[areaID] = true
	}
	return nil
}

func (tracker *SwellingTracker) State() SwellingState {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return SwellingState{Level: tracker.level, Areas: tracker.orderedAreasLocked(), Saving: tracker.saving}
}

// Save appends today's level and areas. It does nothing at level 0 or
// without an identity. A successful save resets level and areas.
func (tracker *SwellingTracker) Save(ctx context.Context) error {
	identity, identified := tracker.options.Session.Identity()

	tracker.mu.Lock()
	if tracker.level == 0 || !identified {
		tracker.mu.Unlock()
		return nil
	}
	if tracker.saving {
		tracker.mu.Unlock()
		return ErrSaveInFlight
	}
	tracker.saving = true
	draft := SwellingDraft{Level: tracker.level, Areas: tracker.orderedAreasLocked()}
	tracker.mu.Unlock()

	err := tracker.entries.Save(ctx, identity.UserID, draft)

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.saving = false
	if err != nil {
		tracker.options.Notifier.Notify(saveFailed("Não foi possível salvar o registro."))
		return nil
	}
	tracker.level = 0
	clear(tracker.areas)
	tracker.options.Notifier.Notify(Notification{
		Kind:        NotificationSuccess,
		Title:       "Registrado! 💕",
		Description: "Inchaço salvo com sucesso.",
	})
	return nil
}

func (tracker *SwellingTracker) History(ctx context.Context) ([]models.SwellingEntry, error) {
	identity, ok := tracker.options.Session.Identity()
	if !ok {
		return nil, ErrNotIdentified
	}
	return tracker.store.History(ctx, daysync.Key{UserID: identity.UserID, EntryDate: tracker.entries.Today()})
}

func ClampSwellingLevel(level int) int {
	return min(max(level, 0), models.MaxSwellingLevel)
}

// orderedAreasLocked returns the selected areas in catalog order, never nil.
func (tracker *SwellingTracker) orderedAreasLocked() []string {
	areas := make([]string, 0, len(tracker.areas))
	for _, area := range models.SwellingAreas() {
		if tracker.areas[area.ID] {
			areas = append(areas, area.ID)
		}
	}
	return areas
}
