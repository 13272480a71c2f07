// Package config reads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/ciclo/internal/daysync"
	"github.com/terraincognita07/ciclo/internal/db"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	SecretKey    string
	DBDriver     string
	DSN          string
	Port         string
	Location     *time.Location
	CookieSecure bool
	Policy       daysync.Policy
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the environment. Only SECRET_KEY is mandatory.
func Load() (Config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	driver, dsn, err := resolveDatabase()
	if err != nil {
		return Config{}, err
	}
	policy, err := daysync.ParsePolicy(os.Getenv("CONSISTENCY_POLICY"))
	if err != nil {
		return Config{}, err
	}
	cookieSecure, err := resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}

	return Config{
		SecretKey:    secretKey,
		DBDriver:     driver,
		DSN:          dsn,
		Port:         port,
		Location:     LoadLocation(getEnv("TZ", "UTC")),
		CookieSecure: cookieSecure,
		Policy:       policy,
	}, nil
}

// Database returns the driver and DSN alone, for commands that do not serve
// HTTP.
func Database() (string, string, error) {
	return resolveDatabase()
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveDatabase() (string, string, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", db.DriverSQLite))
	switch driver {
	case db.DriverSQLite:
		return driver, getEnv("DB_PATH", filepath.Join("data", "ciclo.db")), nil
	case db.DriverPostgres:
		dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if dsn == "" {
			return "", "", errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
		return driver, dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %q", db.ErrUnsupportedDriver, driver)
	}
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

// LoadLocation falls back to UTC for unknown zone names.
func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
