package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryDateLayout is the storage format of entry_date columns.
const EntryDateLayout = "2006-01-02"

const (
	MinGlasses = 0
	MaxGlasses = 12

	MinSwellingLevel = 1
	MaxSwellingLevel = 5

	MinEnergyLevel     = 1
	MaxEnergyLevel     = 5
	DefaultEnergyLevel = 3
)

type HydrationEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_hydration_user_date" json:"user_id"`
	EntryDate string    `gorm:"size:10;not null;uniqueIndex:uidx_hydration_user_date" json:"entry_date"`
	Glasses   int       `gorm:"not null;default:0" json:"glasses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (entry *HydrationEntry) BeforeCreate(tx *gorm.DB) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return nil
}

type MoodEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_mood_user_date" json:"user_id"`
	EntryDate   string    `gorm:"size:10;not null;index:idx_mood_user_date" json:"entry_date"`
	Mood        string    `gorm:"not null" json:"mood"`
	EnergyLevel int       `gorm:"not null" json:"energy_level"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (entry *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return nil
}

type SwellingEntry struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint                        `gorm:"not null;index:idx_swelling_user_date" json:"user_id"`
	EntryDate string                      `gorm:"size:10;not null;index:idx_swelling_user_date" json:"entry_date"`
	Level     int                         `gorm:"not null" json:"level"`
	Areas     datatypes.JSONSlice[string] `gorm:"not null" json:"areas"`
	CreatedAt time.Time                   `json:"created_at"`
}

func (entry *SwellingEntry) BeforeCreate(tx *gorm.DB) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Areas == nil {
		entry.Areas = datatypes.JSONSlice[string]{}
	}
	return nil
}

type DailyChecklist struct {
	ID        uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint                               `gorm:"not null;uniqueIndex:uidx_checklist_user_date" json:"user_id"`
	EntryDate string                             `gorm:"size:10;not null;uniqueIndex:uidx_checklist_user_date" json:"entry_date"`
	Items     datatypes.JSONSlice[ChecklistItem] `gorm:"not null" json:"items"`
	CreatedAt time.Time                          `json:"created_at"`
	UpdatedAt time.Time                          `json:"updated_at"`
}

func (DailyChecklist) TableName() string {
	return "daily_checklist"
}

func (entry *DailyChecklist) BeforeCreate(tx *gorm.DB) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return nil
}
