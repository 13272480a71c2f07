package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/trackers"
	"golang.org/x/sync/errgroup"
)

type dashboardView struct {
	EntryDate     string                  `json:"entry_date"`
	Greeting      string                  `json:"greeting"`
	Name          string                  `json:"name"`
	Streak        int                     `json:"streak"`
	Phase         phaseView               `json:"phase"`
	Hydration     trackers.HydrationState `json:"hydration"`
	Checklist     trackers.ChecklistState `json:"checklist"`
	MoodCount     int                     `json:"mood_count"`
	SwellingCount int                     `json:"swelling_count"`
	Notices       []trackers.Notification `json:"notices"`
}

// Greeting picks the salutation for the local hour of now.
func Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Bom dia"
	case hour < 18:
		return "Boa tarde"
	default:
		return "Boa noite"
	}
}

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	phase, err := handler.buildPhaseView(c, *user)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	inbox := &trackers.Inbox{}
	options := handler.trackerOptions(c, inbox)
	hydration := trackers.NewHydrationTracker(handler.stores.Hydration, options)
	checklist := trackers.NewChecklistTracker(handler.stores.Checklist, options)
	moods := trackers.NewMoodTracker(handler.stores.Moods, options)
	swelling := trackers.NewSwellingTracker(handler.stores.Swelling, options)
	defer func() {
		hydration.Close()
		checklist.Close()
		moods.Close()
		swelling.Close()
	}()

	view := dashboardView{
		EntryDate: handler.entryDate(c),
		Greeting:  Greeting(handler.now().In(handler.requestLocation(c))),
		Name:      user.Name,
		Phase:     phase,
	}

	group, ctx := errgroup.WithContext(c.UserContext())
	group.Go(func() error {
		streak, err := trackers.Streak(ctx, handler.stores.Activity, user.ID, view.EntryDate)
		view.Streak = streak
		return err
	})
	group.Go(func() error {
		hydration.Mount(ctx)
		return nil
	})
	group.Go(func() error {
		checklist.Mount(ctx)
		return nil
	})
	group.Go(func() error {
		history, err := moods.History(ctx)
		view.MoodCount = len(history)
		return err
	})
	group.Go(func() error {
		history, err := swelling.History(ctx)
		view.SwellingCount = len(history)
		return err
	})
	if err := group.Wait(); err != nil {
		log.Printf("load dashboard for user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	view.Hydration = hydration.State()
	view.Checklist = checklist.State()
	view.Notices = notices(inbox)
	return c.JSON(view)
}
