package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/metrics"
	"github.com/terraincognita07/ciclo/internal/services"
	"github.com/terraincognita07/ciclo/internal/trackers"
	"gorm.io/gorm"
)

const (
	authTokenTTL       = 7 * 24 * time.Hour
	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type HandlerConfig struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	Policy       daysync.Policy
	Metrics      *metrics.Metrics
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	policy       daysync.Policy
	metrics      *metrics.Metrics
	now          func() time.Time

	repositories   *db.Repositories
	stores         trackers.Stores
	authService    *services.AuthService
	profileService *services.ProfileService
	loginLimiter   *attemptLimiter
}

func NewHandler(database *gorm.DB, config HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Metrics == nil {
		config.Metrics = metrics.New()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:      []byte(config.SecretKey),
		location:       config.Location,
		cookieSecure:   config.CookieSecure,
		policy:         config.Policy,
		metrics:        config.Metrics,
		now:            config.Clock,
		repositories:   repositories,
		stores:         trackers.NewStores(repositories),
		authService:    services.NewAuthService(repositories.Users),
		profileService: services.NewProfileService(repositories.Users),
		loginLimiter:   newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
	}, nil
}
