package models

import "time"

const DefaultCycleLength = 28

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"-"`
	Name               string    `gorm:"not null;default:''" json:"name"`
	CycleDuration      *int      `json:"cycle_duration"`
	LastPeriodDate     *string   `gorm:"size:10" json:"last_period_date"`
	BirthDate          *string   `gorm:"size:10" json:"birth_date"`
	Height             *float64  `json:"height"`
	Weight             *float64  `json:"weight"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
