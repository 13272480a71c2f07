package trackers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/models"
)

const MaxMoodNotesLength = 500

var (
	ErrSaveInFlight = errors.New("save already in progress")
	ErrUnknownMood  = errors.New("unknown mood")
	ErrNotesTooLong = errors.New("notes too long")
)

// MoodDraft is one mood entry as written to the store.
type MoodDraft struct {
	Mood        string
	EnergyLevel int
	Notes       string
}

type MoodState struct {
	SelectedMood string `json:"selected_mood,omitempty"`
	EnergyLevel  int    `json:"energy_level"`
	Notes        string `json:"notes,omitempty"`
	Saving       bool   `json:"saving"`
}

type MoodTracker struct {
	options Options
	store   MoodStore
	entries *daysync.Synchronizer[MoodDraft]

	mu       sync.Mutex
	selected string
	energy   int
	notes    string
	saving   bool
}

func NewMoodTracker(store MoodStore, options Options) *MoodTracker {
	options = options.normalized()
	config := syncConfig(options, "mood_entries", func() MoodDraft { return MoodDraft{} })
	config.Writer = daysync.Append[MoodDraft](store)
	return &MoodTracker{
		options: options,
		store:   store,
		entries: daysync.New(config),
		energy:  models.DefaultEnergyLevel,
	}
}

func (tracker *MoodTracker) Close() {
	tracker.entries.Close()
}

func (tracker *MoodTracker) Select(mood string) error {
	if !models.IsValidMood(mood) {
		return ErrUnknownMood
	}
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.selected = mood
	return nil
}

func (tracker *MoodTracker) Clear() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.selected = ""
}

// SetEnergy stores level clamped to [1, 5].
func (tracker *MoodTracker) SetEnergy(level int) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.energy = min(max(level, models.MinEnergyLevel), models.MaxEnergyLevel)
}

func (tracker *MoodTracker) SetNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > MaxMoodNotesLength {
		return ErrNotesTooLong
	}
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.notes = notes
	return nil
}

func (tracker *MoodTracker) State() MoodState {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return MoodState{
		SelectedMood: tracker.selected,
		EnergyLevel:  tracker.energy,
		Notes:        tracker.notes,
		Saving:       tracker.saving,
	}
}

// Save appends the selected mood for today. Without a selection or an
// identity it does nothing. A successful save clears the selection and
// notes; the energy level is kept.
func (tracker *MoodTracker) Save(ctx context.Context) error {
	identity, identified := tracker.options.Session.Identity()

	tracker.mu.Lock()
	if tracker.selected == "" || !identified {
		tracker.mu.Unlock()
		return nil
	}
	if tracker.saving {
		tracker.mu.Unlock()
		return ErrSaveInFlight
	}
	tracker.saving = true
	draft := MoodDraft{Mood: tracker.selected, EnergyLevel: tracker.energy, Notes: tracker.notes}
	tracker.mu.Unlock()

	err := tracker.entries.Save(ctx, identity.UserID, draft)

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.saving = false
	if err != nil {
		tracker.options.Notifier.Notify(saveFailed("Não foi possível salvar seu humor."))
		return nil
	}
	tracker.selected = ""
	tracker.notes = ""
	tracker.options.Notifier.Notify(Notification{
		Kind:        NotificationSuccess,
		Title:       "Humor registrado! 💕",
		Description: "Seu humor foi salvo com sucesso.",
	})
	return nil
}

// History lists the moods saved today, oldest first.
func (tracker *MoodTracker) History(ctx context.Context) ([]models.MoodEntry, error) {
	identity, ok := tracker.options.Session.Identity()
	if !ok {
		return nil, ErrNotIdentified
	}
	return tracker.store.History(ctx, daysync.Key{UserID: identity.UserID, EntryDate: tracker.entries.Today()})
}
