package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusUpcoming  = "upcoming"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

const (
	TypeODI  = "ODI"
	TypeT20  = "T20"
	TypeTest = "Test"
)

// Flags carries provider capability markers for a match.
type Flags struct {
	FantasyEnabled bool
	BBBEnabled     bool
	HasSquad       bool
	MatchStarted   bool
	MatchEnded     bool
}

// Match is a canonical fixture between two resolved teams.
type Match struct {
	ID          string
	ProviderID  string
	Name        string
	MatchType   string
	Status      string
	ScheduledAt time.Time
	Team1ID     string
	Team2ID     string
	Venue       string
	SeriesID    string
	Flags       Flags
	UpdatedAt   time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Team1ID == "" || m.Team2ID == "" {
		return fmt.Errorf("match requires both team references")
	}

	return nil
}

// NormalizeStatus maps a raw provider status onto the fixed enumeration.
// Anything unrecognized is treated as upcoming.
func NormalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "live":
		return StatusLive
	case "result", "completed", "complete":
		return StatusCompleted
	case "fixture", "upcoming", "scheduled":
		return StatusUpcoming
	default:
		return StatusUpcoming
	}
}

// NormalizeType maps a raw provider match type onto the fixed enumeration.
func NormalizeType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "odi":
		return TypeODI
	case "test":
		return TypeTest
	case "t20":
		return TypeT20
	default:
		return TypeT20
	}
}
