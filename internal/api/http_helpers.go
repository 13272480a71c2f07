package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/trackers"
)

const timezoneHeader = "X-Timezone"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// requestLocation honours an IANA zone in X-Timezone and otherwise uses the
// server location.
func (handler *Handler) requestLocation(c *fiber.Ctx) *time.Location {
	name := strings.TrimSpace(c.Get(timezoneHeader))
	if name == "" {
		return handler.location
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return handler.location
	}
	return location
}

func (handler *Handler) entryDate(c *fiber.Ctx) string {
	return daysync.EntryDate(handler.now(), handler.requestLocation(c))
}

// trackerOptions builds the per-request session for the signed-in user.
func (handler *Handler) trackerOptions(c *fiber.Ctx, inbox *trackers.Inbox) trackers.Options {
	user, _ := currentUser(c)
	session := trackers.NewIdentifiedSession(trackers.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	return trackers.Options{
		Session:  session,
		Notifier: inbox,
		Policy:   handler.policy,
		Clock:    handler.now,
		Location: handler.requestLocation(c),
		Observer: handler.metrics.StoreObserver(),
	}
}

func notices(inbox *trackers.Inbox) []trackers.Notification {
	notifications := inbox.Notifications()
	if notifications == nil {
		return []trackers.Notification{}
	}
	return notifications
}
