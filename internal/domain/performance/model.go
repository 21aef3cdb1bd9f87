package performance

import "fmt"

// Batting is one innings' raw batting line.
type Batting struct {
	Runs       int
	BallsFaced int
	Fours      int
	Sixes      int
	IsOut      bool
}

type Bowling struct {
	Overs        float64
	Maidens      int
	RunsConceded int
	Wickets      int
}

type Fielding struct {
	Catches int
	Stumps  int
	RunOuts int
}

// Performance is a player's raw statistics for one match. It is written by
// the match-event ingestion collaborator and consumed read-only by scoring.
type Performance struct {
	PlayerID string
	MatchID  string
	Batting  Batting
	Bowling  Bowling
	Fielding Fielding
}

func (p Performance) Validate() error {
	if p.PlayerID == "" {
		return fmt.Errorf("performance player id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("performance match id is required")
	}
	if p.Batting.Runs < 0 || p.Batting.BallsFaced < 0 {
		return fmt.Errorf("batting figures cannot be negative")
	}
	if p.Bowling.Wickets < 0 || p.Bowling.Maidens < 0 {
		return fmt.Errorf("bowling figures cannot be negative")
	}
	if p.Fielding.Catches < 0 || p.Fielding.Stumps < 0 || p.Fielding.RunOuts < 0 {
		return fmt.Errorf("fielding figures cannot be negative")
	}

	return nil
}
