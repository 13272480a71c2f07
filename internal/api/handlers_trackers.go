package api

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/trackers"
)

type hydrationInput struct {
	Glasses *int `json:"glasses" form:"glasses"`
}

type moodInput struct {
	Mood        string `json:"mood" form:"mood"`
	EnergyLevel int    `json:"energy_level" form:"energy_level"`
	Notes       string `json:"notes" form:"notes"`
}

type swellingInput struct {
	Level int      `json:"level" form:"level"`
	Areas []string `json:"areas" form:"areas"`
}

func (handler *Handler) GetHydration(c *fiber.Ctx) error {
	return handler.withHydration(c, nil)
}

func (handler *Handler) IncrementHydration(c *fiber.Ctx) error {
	return handler.withHydration(c, func(ctx context.Context, tracker *trackers.HydrationTracker) {
		tracker.Increment(ctx)
	})
}

func (handler *Handler) DecrementHydration(c *fiber.Ctx) error {
	return handler.withHydration(c, func(ctx context.Context, tracker *trackers.HydrationTracker) {
		tracker.Decrement(ctx)
	})
}

func (handler *Handler) SetHydration(c *fiber.Ctx) error {
	input := hydrationInput{}
	if err := c.BodyParser(&input); err != nil || input.Glasses == nil {
		return apiError(c, fiber.StatusBadRequest, "glasses is required")
	}
	glasses := *input.Glasses
	return handler.withHydration(c, func(ctx context.Context, tracker *trackers.HydrationTracker) {
		tracker.Set(ctx, glasses)
	})
}

func (handler *Handler) withHydration(c *fiber.Ctx, action func(context.Context, *trackers.HydrationTracker)) error {
	inbox := &trackers.Inbox{}
	tracker := trackers.NewHydrationTracker(handler.stores.Hydration, handler.trackerOptions(c, inbox))
	defer tracker.Close()

	ctx := c.UserContext()
	tracker.Mount(ctx)
	if action != nil {
		action(ctx, tracker)
	}
	return c.JSON(fiber.Map{
		"entry_date": handler.entryDate(c),
		"hydration":  tracker.State(),
		"notices":    notices(inbox),
	})
}

func (handler *Handler) GetChecklist(c *fiber.Ctx) error {
	inbox := &trackers.Inbox{}
	tracker := trackers.NewChecklistTracker(handler.stores.Checklist, handler.trackerOptions(c, inbox))
	defer tracker.Close()

	tracker.Mount(c.UserContext())
	return handler.checklistResponse(c, tracker, inbox)
}

func (handler *Handler) ToggleChecklistItem(c *fiber.Ctx) error {
	inbox := &trackers.Inbox{}
	tracker := trackers.NewChecklistTracker(handler.stores.Checklist, handler.trackerOptions(c, inbox))
	defer tracker.Close()

	ctx := c.UserContext()
	tracker.Mount(ctx)
	if err := tracker.Toggle(ctx, c.Params("id")); err != nil {
		if errors.Is(err, trackers.ErrUnknownItem) {
			return apiError(c, fiber.StatusNotFound, "checklist item not found")
		}
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return handler.checklistResponse(c, tracker, inbox)
}

func (handler *Handler) checklistResponse(c *fiber.Ctx, tracker *trackers.ChecklistTracker, inbox *trackers.Inbox) error {
	return c.JSON(fiber.Map{
		"entry_date": handler.entryDate(c),
		"checklist":  tracker.State(),
		"notices":    notices(inbox),
	})
}

func (handler *Handler) GetMood(c *fiber.Ctx) error {
	inbox := &trackers.Inbox{}
	tracker := trackers.NewMoodTracker(handler.stores.Moods, handler.trackerOptions(c, inbox))
	defer tracker.Close()
	return handler.moodResponse(c, tracker, inbox)
}

func (handler *Handler) SaveMood(c *fiber.Ctx) error {
	input := moodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Mood == "" {
		return apiError(c, fiber.StatusBadRequest, "mood is required")
	}

	inbox := &trackers.Inbox{}
	tracker := trackers.NewMoodTracker(handler.stores.Moods, handler.trackerOptions(c, inbox))
	defer tracker.Close()

	if err := tracker.Select(input.Mood); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if input.EnergyLevel != 0 {
		tracker.SetEnergy(input.EnergyLevel)
	}
	if err := tracker.SetNotes(input.Notes); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := tracker.Save(c.UserContext()); err != nil {
		return apiError(c, fiber.StatusConflict, err.Error())
	}
	return handler.moodResponse(c, tracker, inbox)
}

func (handler *Handler) moodResponse(c *fiber.Ctx, tracker *trackers.MoodTracker, inbox *trackers.Inbox) error {
	history, err := tracker.History(c.UserContext())
	if err != nil {
		user, _ := currentUser(c)
		log.Printf("load mood history for user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load mood history")
	}
	return c.JSON(fiber.Map{
		"entry_date": handler.entryDate(c),
		"mood":       tracker.State(),
		"options":    models.MoodOptions(),
		"history":    nonNilMoods(history),
		"notices":    notices(inbox),
	})
}

func (handler *Handler) GetSwelling(c *fiber.Ctx) error {
	inbox := &trackers.Inbox{}
	tracker := trackers.NewSwellingTracker(handler.stores.Swelling, handler.trackerOptions(c, inbox))
	defer tracker.Close()
	return handler.swellingResponse(c, tracker, inbox)
}

func (handler *Handler) SaveSwelling(c *fiber.Ctx) error {
	input := swellingInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Level < models.MinSwellingLevel {
		return apiError(c, fiber.StatusBadRequest, "level is required")
	}

	inbox := &trackers.Inbox{}
	tracker := trackers.NewSwellingTracker(handler.stores.Swelling, handler.trackerOptions(c, inbox))
	defer tracker.Close()

	tracker.SetLevel(input.Level)
	seen := make(map[string]bool, len(input.Areas))
	for _, area := range input.Areas {
		if seen[area] {
			continue
		}
		seen[area] = true
		if err := tracker.ToggleArea(area); err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	if err := tracker.Save(c.UserContext()); err != nil {
		return apiError(c, fiber.StatusConflict, err.Error())
	}
	return handler.swellingResponse(c, tracker, inbox)
}

func (handler *Handler) swellingResponse(c *fiber.Ctx, tracker *trackers.SwellingTracker, inbox *trackers.Inbox) error {
	history, err := tracker.History(c.UserContext())
	if err != nil {
		user, _ := currentUser(c)
		log.Printf("load swelling history for user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load swelling history")
	}
	return c.JSON(fiber.Map{
		"entry_date": handler.entryDate(c),
		"swelling":   tracker.State(),
		"areas":      models.SwellingAreas(),
		"history":    nonNilSwelling(history),
		"notices":    notices(inbox),
	})
}

func nonNilMoods(entries []models.MoodEntry) []models.MoodEntry {
	if entries == nil {
		return []models.MoodEntry{}
	}
	return entries
}

func nonNilSwelling(entries []models.SwellingEntry) []models.SwellingEntry {
	if entries == nil {
		return []models.SwellingEntry{}
	}
	return entries
}
