package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/phases"
)

var (
	ErrProfileNameInvalid      = errors.New("name must be 2 to 100 characters")
	ErrProfileCycleInvalid     = errors.New("cycle duration must be between 21 and 45 days")
	ErrProfileDateInvalid      = errors.New("dates must use YYYY-MM-DD")
	ErrProfilePeriodInFuture   = errors.New("last period date cannot be in the future")
	ErrProfileBirthDateInvalid = errors.New("birth date must be in the past")
	ErrProfileHeightInvalid    = errors.New("height must be between 50 and 250 cm")
	ErrProfileWeightInvalid    = errors.New("weight must be between 20 and 400 kg")
	ErrProfileNoCycleData      = errors.New("last period date not set")
)

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

// ProfileInput carries a partial update. Nil fields are left unchanged and
// empty strings clear optional dates.
type ProfileInput struct {
	Name           *string  `json:"name"`
	CycleDuration  *int     `json:"cycle_duration"`
	LastPeriodDate *string  `json:"last_period_date"`
	BirthDate      *string  `json:"birth_date"`
	Height         *float64 `json:"height"`
	Weight         *float64 `json:"weight"`
}

type BMI struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

type ProfileView struct {
	models.User
	CycleLength int  `json:"cycle_length"`
	BMI         *BMI `json:"bmi,omitempty"`
}

type CurrentPhase struct {
	CycleDay    int       `json:"cycle_day"`
	CycleLength int       `json:"cycle_length"`
	Phase       phases.ID `json:"phase"`
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (service *ProfileService) Get(userID uint) (ProfileView, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return ProfileView{}, err
	}
	return BuildProfileView(user), nil
}

func (service *ProfileService) Update(userID uint, input ProfileInput, now time.Time) (ProfileView, error) {
	updates, err := profileUpdates(input, now)
	if err != nil {
		return ProfileView{}, err
	}
	if len(updates) > 0 {
		if err := service.users.UpdateByID(userID, updates); err != nil {
			return ProfileView{}, fmt.Errorf("update profile: %w", err)
		}
	}
	return service.Get(userID)
}

// CurrentPhase resolves the user's cycle day and phase on today's date.
func (service *ProfileService) CurrentPhase(user models.User, today time.Time) (CurrentPhase, error) {
	if user.LastPeriodDate == nil || *user.LastPeriodDate == "" {
		return CurrentPhase{}, ErrProfileNoCycleData
	}
	lastPeriod, err := time.ParseInLocation(models.EntryDateLayout, *user.LastPeriodDate, today.Location())
	if err != nil {
		return CurrentPhase{}, ErrProfileDateInvalid
	}

	cycleLength := CycleLength(user)
	day, id := phases.Current(lastPeriod, today, cycleLength)
	return CurrentPhase{CycleDay: day, CycleLength: cycleLength, Phase: id}, nil
}

func BuildProfileView(user models.User) ProfileView {
	view := ProfileView{User: user, CycleLength: CycleLength(user)}
	if user.Height != nil && user.Weight != nil {
		if bmi, ok := CalculateBMI(*user.Height, *user.Weight); ok {
			view.BMI = &bmi
		}
	}
	return view
}

func CycleLength(user models.User) int {
	if user.CycleDuration == nil {
		return models.DefaultCycleLength
	}
	return phases.NormalizeCycleLength(*user.CycleDuration)
}

// CalculateBMI takes height in centimetres and weight in kilograms.
func CalculateBMI(heightCM float64, weightKG float64) (BMI, bool) {
	if heightCM <= 0 || weightKG <= 0 {
		return BMI{}, false
	}
	meters := heightCM / 100
	value := math.Round(weightKG/(meters*meters)*10) / 10

	category := "Obesidade"
	switch {
	case value < 18.5:
		category = "Abaixo do peso"
	case value < 25:
		category = "Peso normal"
	case value < 30:
		category = "Sobrepeso"
	}
	return BMI{Value: value, Category: category}, true
}

func profileUpdates(input ProfileInput, now time.Time) (map[string]any, error) {
	updates := make(map[string]any)

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		length := utf8.RuneCountInString(name)
		if length < MinNameLength || length > MaxNameLength {
			return nil, ErrProfileNameInvalid
		}
		updates["name"] = name
	}

	if input.CycleDuration != nil {
		if *input.CycleDuration < phases.MinCycleLength || *input.CycleDuration > phases.MaxCycleLength {
			return nil, ErrProfileCycleInvalid
		}
		updates["cycle_duration"] = *input.CycleDuration
	}

	today := now.Format(models.EntryDateLayout)
	if input.LastPeriodDate != nil {
		value, err := optionalDate(*input.LastPeriodDate)
		if err != nil {
			return nil, err
		}
		if value != nil && *value > today {
			return nil, ErrProfilePeriodInFuture
		}
		updates["last_period_date"] = value
	}

	if input.BirthDate != nil {
		value, err := optionalDate(*input.BirthDate)
		if err != nil {
			return nil, err
		}
		if value != nil && *value >= today {
			return nil, ErrProfileBirthDateInvalid
		}
		updates["birth_date"] = value
	}

	if input.Height != nil {
		if *input.Height < 50 || *input.Height > 250 {
			return nil, ErrProfileHeightInvalid
		}
		updates["height"] = *input.Height
	}

	if input.Weight != nil {
		if *input.Weight < 20 || *input.Weight > 400 {
			return nil, ErrProfileWeightInvalid
		}
		updates["weight"] = *input.Weight
	}

	return updates, nil
}

func optionalDate(raw string) (*string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(models.EntryDateLayout, value)
	if err != nil {
		return nil, ErrProfileDateInvalid
	}
	formatted := parsed.Format(models.EntryDateLayout)
	return &formatted, nil
}
