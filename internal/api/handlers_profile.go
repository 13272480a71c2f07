package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/phases"
	"github.com/terraincognita07/ciclo/internal/services"
)

const foodHighlightCount = 3

type indicatorSlot struct {
	ID     phases.ID `json:"id"`
	Label  string    `json:"label"`
	Active bool      `json:"active"`
}

type phaseView struct {
	Configured     bool            `json:"configured"`
	CycleDay       int             `json:"cycle_day,omitempty"`
	CycleLength    int             `json:"cycle_length,omitempty"`
	Phase          phases.ID       `json:"phase,omitempty"`
	Content        *phases.Info    `json:"content,omitempty"`
	FoodHighlights []string        `json:"food_highlights,omitempty"`
	Indicator      []indicatorSlot `json:"indicator"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	return c.JSON(services.BuildProfileView(*user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := services.ProfileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	today := handler.now().In(handler.requestLocation(c))
	view, err := handler.profileService.Update(user.ID, input, today)
	if err != nil {
		if isProfileValidationError(err) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("update profile for user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}
	return c.JSON(view)
}

func (handler *Handler) GetPhase(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	view, err := handler.buildPhaseView(c, *user)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(view)
}

func (handler *Handler) buildPhaseView(c *fiber.Ctx, user models.User) (phaseView, error) {
	today := handler.now().In(handler.requestLocation(c))
	current, err := handler.profileService.CurrentPhase(user, today)
	if errors.Is(err, services.ErrProfileNoCycleData) {
		return phaseView{Indicator: indicatorSlots("")}, nil
	}
	if err != nil {
		return phaseView{}, err
	}

	content := phases.Content(current.Phase)
	return phaseView{
		Configured:     true,
		CycleDay:       current.CycleDay,
		CycleLength:    current.CycleLength,
		Phase:          current.Phase,
		Content:        &content,
		FoodHighlights: content.FoodHighlights(foodHighlightCount),
		Indicator:      indicatorSlots(current.Phase),
	}, nil
}

func indicatorSlots(active phases.ID) []indicatorSlot {
	slots := phases.Indicator()
	result := make([]indicatorSlot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, indicatorSlot{ID: slot.ID, Label: slot.Label, Active: slot.ID == active})
	}
	return result
}

func isProfileValidationError(err error) bool {
	for _, target := range []error{
		services.ErrProfileNameInvalid,
		services.ErrProfileCycleInvalid,
		services.ErrProfileDateInvalid,
		services.ErrProfilePeriodInFuture,
		services.ErrProfileBirthDateInvalid,
		services.ErrProfileHeightInvalid,
		services.ErrProfileWeightInvalid,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
