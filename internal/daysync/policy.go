package daysync

import (
	"fmt"
	"strings"
)

// Policy decides what local state holds after a failed write.
type Policy int

const (
	// Optimistic keeps the attempted value; local state may diverge from the
	// store until the next load.
	Optimistic Policy = iota
	// Rollback restores the value held before the failed write.
	Rollback
)

func (policy Policy) String() string {
	switch policy {
	case Rollback:
		return "rollback"
	default:
		return "optimistic"
	}
}

func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "optimistic":
		return Optimistic, nil
	case "rollback":
		return Rollback, nil
	default:
		return Optimistic, fmt.Errorf("unknown consistency policy %q", raw)
	}
}
