package db

import (
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

type Repositories struct {
	Users     *UserRepository
	Hydration *DailyEntryTable[models.HydrationEntry]
	Checklist *DailyEntryTable[models.DailyChecklist]
	Moods     *DailyEntryTable[models.MoodEntry]
	Swelling  *DailyEntryTable[models.SwellingEntry]
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Hydration: NewDailyEntryTable[models.HydrationEntry](database, "glasses", "updated_at"),
		Checklist: NewDailyEntryTable[models.DailyChecklist](database, "items", "updated_at"),
		Moods:     NewDailyEntryTable[models.MoodEntry](database),
		Swelling:  NewDailyEntryTable[models.SwellingEntry](database),
	}
}
