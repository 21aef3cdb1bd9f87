package player

import (
	"fmt"
	"time"
)

const (
	FormPoor      = "poor"
	FormAverage   = "average"
	FormGood      = "good"
	FormExcellent = "excellent"
)

// BattingStats are career aggregates kept alongside the player document.
type BattingStats struct {
	Average      float64
	StrikeRate   float64
	Fifties      int
	Hundreds     int
	HighestScore int
}

type BowlingStats struct {
	Average     float64
	Economy     float64
	StrikeRate  float64
	BestFigures string
	FiveWickets int
}

type FieldingStats struct {
	Catches int
	Stumps  int
	RunOuts int
}

type Stats struct {
	Matches  int
	Runs     int
	Wickets  int
	Batting  BattingStats
	Bowling  BowlingStats
	Fielding FieldingStats
}

// Player is a canonical athlete record reconciled from provider data.
type Player struct {
	ID                 string
	ProviderID         string
	Name               string
	Country            string
	TeamID             string
	Role               string
	BattingStyle       string
	BowlingStyle       string
	Form               string
	IsInjured          bool
	Stats              Stats
	FantasyPointsTotal int
	UpdatedAt          time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
