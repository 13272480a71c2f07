package trackers

import (
	"context"

	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/models"
)

const HydrationGoal = 8

type HydrationState struct {
	Glasses     int     `json:"glasses"`
	Goal        int     `json:"goal"`
	Progress    float64 `json:"progress"`
	GoalReached bool    `json:"goal_reached"`
}

type HydrationTracker struct {
	options Options
	entries *daysync.Synchronizer[int]
}

func NewHydrationTracker(store HydrationStore, options Options) *HydrationTracker {
	options = options.normalized()
	config := syncConfig(options, "hydration_entries", func() int { return models.MinGlasses })
	config.Reader = store
	config.Writer = daysync.Upsert[int](store)
	return &HydrationTracker{options: options, entries: daysync.New(config)}
}

// Mount loads today's glasses once the session is identified.
func (tracker *HydrationTracker) Mount(ctx context.Context) {
	tracker.options.Session.WhenIdentified(ctx, func(ctx context.Context, identity Identity) {
		tracker.entries.Load(ctx, identity.UserID)
	})
}

func (tracker *HydrationTracker) Close() {
	tracker.entries.Close()
}

func (tracker *HydrationTracker) Glasses() int {
	return tracker.entries.Value()
}

func (tracker *HydrationTracker) Increment(ctx context.Context) {
	tracker.update(ctx, func(glasses int) int { return glasses + 1 })
}

func (tracker *HydrationTracker) Decrement(ctx context.Context) {
	tracker.update(ctx, func(glasses int) int { return glasses - 1 })
}

// Set stores glasses clamped to [0, 12].
func (tracker *HydrationTracker) Set(ctx context.Context, glasses int) {
	tracker.update(ctx, func(int) int { return glasses })
}

func (tracker *HydrationTracker) update(ctx context.Context, change func(int) int) {
	clamped := func(current int) int { return ClampGlasses(change(current)) }

	identity, ok := tracker.options.Session.Identity()
	if !ok {
		tracker.entries.Apply(clamped)
		return
	}
	if err := tracker.entries.Update(ctx, identity.UserID, clamped); err != nil {
		tracker.options.Notifier.Notify(saveFailed("Não foi possível salvar sua hidratação."))
	}
}

func (tracker *HydrationTracker) Progress() float64 {
	return HydrationProgress(tracker.Glasses())
}

func (tracker *HydrationTracker) GoalReached() bool {
	return tracker.Glasses() >= HydrationGoal
}

func (tracker *HydrationTracker) State() HydrationState {
	glasses := tracker.Glasses()
	return HydrationState{
		Glasses:     glasses,
		Goal:        HydrationGoal,
		Progress:    HydrationProgress(glasses),
		GoalReached: glasses >= HydrationGoal,
	}
}

func ClampGlasses(glasses int) int {
	return min(max(glasses, models.MinGlasses), models.MaxGlasses)
}

// HydrationProgress is min(glasses/goal, 1) * 100.
func HydrationProgress(glasses int) float64 {
	return min(float64(glasses)/HydrationGoal, 1) * 100
}
