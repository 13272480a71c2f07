// Package phases maps a cycle day to one of five phases and their static content.
package phases

import (
	"math"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

type ID string

const (
	Menstrual  ID = "menstrual"
	Follicular ID = "follicular"
	Ovulation  ID = "ovulation"
	Luteal     ID = "luteal"
	Detox      ID = "detox"
)

const (
	MinCycleLength = 21
	MaxCycleLength = 45

	menstrualDays    = 5
	lutealPhaseDays  = 14
	detoxDays        = 3
	ovulationPadding = 1
)

var all = []ID{Menstrual, Follicular, Ovulation, Luteal, Detox}

func All() []ID {
	result := make([]ID, len(all))
	copy(result, all)
	return result
}

func ParseID(raw string) (ID, bool) {
	for _, id := range all {
		if string(id) == raw {
			return id, true
		}
	}
	return "", false
}

// Content returns the static content of id. Every enumerated id has an entry.
func Content(id ID) Info {
	info, ok := Lookup(id)
	if !ok {
		return catalog[0]
	}
	return info
}

func Lookup(id ID) (Info, bool) {
	for _, info := range catalog {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// Indicator returns the phase row in display order. Phases without an
// indicator label (detox) have no slot.
func Indicator() []Slot {
	slots := make([]Slot, 0, len(catalog))
	for _, info := range catalog {
		if info.Indicator == "" {
			continue
		}
		slots = append(slots, Slot{ID: info.ID, Label: info.Indicator})
	}
	return slots
}

func NormalizeCycleLength(length int) int {
	switch {
	case length <= 0:
		return models.DefaultCycleLength
	case length < MinCycleLength:
		return MinCycleLength
	case length > MaxCycleLength:
		return MaxCycleLength
	default:
		return length
	}
}

// For returns the phase of a 1-based cycle day. Days outside [1, length]
// wrap modulo the cycle length, so day 0 is the last day of the cycle.
func For(cycleDay int, cycleLength int) ID {
	length := NormalizeCycleLength(cycleLength)
	day := wrapDay(cycleDay, length)

	ovulationDay := length - lutealPhaseDays
	switch {
	case day <= menstrualDays:
		return Menstrual
	case day < ovulationDay-ovulationPadding:
		return Follicular
	case day <= ovulationDay+ovulationPadding:
		return Ovulation
	case day <= length-detoxDays:
		return Luteal
	default:
		return Detox
	}
}

// CycleDay returns the 1-based day of the cycle that today falls on, given
// the start of the last period.
func CycleDay(lastPeriodStart time.Time, today time.Time, cycleLength int) int {
	length := NormalizeCycleLength(cycleLength)
	start := dateOnly(lastPeriodStart)
	current := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, start.Location())
	elapsed := int(math.Round(current.Sub(start).Hours() / 24))
	return wrapDay(elapsed+1, length)
}

func Current(lastPeriodStart time.Time, today time.Time, cycleLength int) (int, ID) {
	day := CycleDay(lastPeriodStart, today, cycleLength)
	return day, For(day, cycleLength)
}

func wrapDay(day int, length int) int {
	offset := (day - 1) % length
	if offset < 0 {
		offset += length
	}
	return offset + 1
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}
