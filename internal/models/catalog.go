package models

type ChecklistItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// DefaultChecklist returns a fresh copy of the six fixed daily items.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{ID: "1", Label: "Beber 8 copos de água"},
		{ID: "2", Label: "Tomar suplementos"},
		{ID: "3", Label: "Fazer exercício físico"},
		{ID: "4", Label: "Comer frutas e vegetais"},
		{ID: "5", Label: "Meditar ou relaxar"},
		{ID: "6", Label: "Dormir 8 horas"},
	}
}

const (
	MoodHappy   = "happy"
	MoodCalm    = "calm"
	MoodNeutral = "neutral"
	MoodSad     = "sad"
	MoodAngry   = "angry"
	MoodAnxious = "anxious"
	MoodTired   = "tired"
	MoodLoving  = "loving"
)

type MoodOption struct {
	Value string `json:"value"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

func MoodOptions() []MoodOption {
	return []MoodOption{
		{Value: MoodHappy, Emoji: "😊", Label: "Feliz"},
		{Value: MoodCalm, Emoji: "😌", Label: "Calma"},
		{Value: MoodNeutral, Emoji: "😐", Label: "Neutra"},
		{Value: MoodSad, Emoji: "😔", Label: "Triste"},
		{Value: MoodAngry, Emoji: "😤", Label: "Irritada"},
		{Value: MoodAnxious, Emoji: "😰", Label: "Ansiosa"},
		{Value: MoodTired, Emoji: "😴", Label: "Cansada"},
		{Value: MoodLoving, Emoji: "🥰", Label: "Amorosa"},
	}
}

func IsValidMood(value string) bool {
	for _, option := range MoodOptions() {
		if option.Value == value {
			return true
		}
	}
	return false
}

const (
	AreaFace    = "face"
	AreaHands   = "hands"
	AreaBelly   = "belly"
	AreaLegs    = "legs"
	AreaFeet    = "feet"
	AreaBreasts = "breasts"
)

type SwellingArea struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func SwellingAreas() []SwellingArea {
	return []SwellingArea{
		{ID: AreaFace, Label: "Rosto"},
		{ID: AreaHands, Label: "Mãos"},
		{ID: AreaBelly, Label: "Barriga"},
		{ID: AreaLegs, Label: "Pernas"},
		{ID: AreaFeet, Label: "Pés"},
		{ID: AreaBreasts, Label: "Seios"},
	}
}

func IsValidSwellingArea(id string) bool {
	for _, area := range SwellingAreas() {
		if area.ID == id {
			return true
		}
	}
	return false
}
