package api

import (
	"errors"
	"log"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/metrics"
	"github.com/terraincognita07/ciclo/internal/services"
	"github.com/terraincognita07/ciclo/internal/trackers"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		retryAfter := handler.loginLimiter.retryAfter(limiterKey, now)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	response := handler.submitAuthForm(c, services.ModeSignIn, fiber.StatusOK)
	if response.reason == services.ReasonInvalidCredentials {
		handler.loginLimiter.addFailure(limiterKey, now)
	}
	if response.err == nil {
		handler.loginLimiter.reset(limiterKey)
	}
	return response.send(c)
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	return handler.submitAuthForm(c, services.ModeSignUp, fiber.StatusCreated).send(c)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

type authResponse struct {
	status int
	body   fiber.Map
	reason services.SubmitReason
	err    error
}

func (response authResponse) send(c *fiber.Ctx) error {
	return c.Status(response.status).JSON(response.body)
}

func (handler *Handler) submitAuthForm(c *fiber.Ctx, mode services.AuthMode, successStatus int) authResponse {
	input := services.AuthInput{}
	if err := c.BodyParser(&input); err != nil {
		return authResponse{status: fiber.StatusBadRequest, body: fiber.Map{"error": "invalid input"}, reason: services.ReasonValidation, err: err}
	}

	form := services.NewAuthForm(handler.authService, mode)
	form.SetInput(input)
	result, err := form.Submit(c.UserContext())
	if err != nil {
		var submitErr *services.SubmitError
		if !errors.As(err, &submitErr) {
			submitErr = &services.SubmitError{Reason: services.ReasonUnexpected, Title: "Erro", Message: err.Error(), Cause: err}
		}
		handler.metrics.ObserveAuth(mode.String(), string(submitErr.Reason))
		status := submitStatus(submitErr.Reason)
		if status >= fiber.StatusInternalServerError {
			log.Printf("auth %s failed: %v", mode, submitErr.Cause)
		}
		return authResponse{
			status: status,
			body:   fiber.Map{"error": submitErr.Message, "title": submitErr.Title},
			reason: submitErr.Reason,
			err:    submitErr,
		}
	}
	handler.metrics.ObserveAuth(mode.String(), metrics.OutcomeOK)

	token, err := handler.buildToken(&result.User)
	if err != nil {
		return authResponse{status: fiber.StatusInternalServerError, body: fiber.Map{"error": "failed to create session"}, reason: services.ReasonUnexpected, err: err}
	}
	handler.setAuthCookie(c, token)

	return authResponse{
		status: successStatus,
		body: fiber.Map{
			"ok":                   true,
			"redirect":             result.Redirect,
			"token":                token,
			"must_change_password": result.User.MustChangePassword,
			"user":                 services.BuildProfileView(result.User),
			"notices":              []trackers.Notification{{
				Kind:        trackers.NotificationSuccess,
				Title:       result.Title,
				Description: result.Description,
			}},
		},
	}
}

func submitStatus(reason services.SubmitReason) int {
	switch reason {
	case services.ReasonValidation:
		return fiber.StatusBadRequest
	case services.ReasonInvalidCredentials:
		return fiber.StatusUnauthorized
	case services.ReasonEmailTaken, services.ReasonInFlight:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
