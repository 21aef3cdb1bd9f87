package fantasy

import (
	"fmt"
	"time"
)

// PointsRecord is the scored breakdown for one player in one match.
// (MatchID, PlayerID) is the unique key; recomputation overwrites the record.
type PointsRecord struct {
	MatchID          string
	PlayerID         string
	Runs             int
	Fours            int
	Sixes            int
	ThirtyBonus      int
	FiftyBonus       int
	HundredBonus     int
	Wickets          int
	Maidens          int
	ThreeWicketBonus int
	FiveWicketBonus  int
	Catches          int
	Stumps           int
	RunOuts          int
	Duck             int
	TotalPoints      int
	CreatedAt        time.Time
}

func (r PointsRecord) Validate() error {
	if r.MatchID == "" {
		return fmt.Errorf("points record match id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("points record player id is required")
	}
	if sum := r.BattingPoints() + r.BowlingPoints() + r.FieldingPoints() + r.Duck; sum != r.TotalPoints {
		return fmt.Errorf("total points %d does not match component sum %d", r.TotalPoints, sum)
	}

	return nil
}

func (r PointsRecord) BattingPoints() int {
	return r.Runs + r.Fours + r.Sixes + r.ThirtyBonus + r.FiftyBonus + r.HundredBonus
}

func (r PointsRecord) BowlingPoints() int {
	return r.Wickets + r.Maidens + r.ThreeWicketBonus + r.FiveWicketBonus
}

func (r PointsRecord) FieldingPoints() int {
	return r.Catches + r.Stumps + r.RunOuts
}
