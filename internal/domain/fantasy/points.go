package fantasy

import "github.com/cricstack/fantasy-core/internal/domain/performance"

// Rules stores the fixed point values applied to raw performance figures.
type Rules struct {
	Run              int
	Four             int
	Six              int
	ThirtyBonus      int
	FiftyBonus       int
	HundredBonus     int
	Wicket           int
	Maiden           int
	ThreeWicketBonus int
	FiveWicketBonus  int
	Catch            int
	Stumping         int
	RunOut           int
	Duck             int
}

func DefaultRules() Rules {
	return Rules{
		Run:              1,
		Four:             2,
		Six:              4,
		ThirtyBonus:      10,
		FiftyBonus:       20,
		HundredBonus:     40,
		Wicket:           25,
		Maiden:           5,
		ThreeWicketBonus: 10,
		FiveWicketBonus:  20,
		Catch:            10,
		Stumping:         12,
		RunOut:           12,
		Duck:             -5,
	}
}

// CalculatePoints scores one performance. It is pure: the same input always
// produces the same record, and only the highest qualifying milestone bonus
// applies within each category.
func CalculatePoints(perf performance.Performance, rules Rules) PointsRecord {
	record := PointsRecord{
		MatchID:  perf.MatchID,
		PlayerID: perf.PlayerID,
	}

	batting := perf.Batting
	record.Runs = batting.Runs * rules.Run
	record.Fours = batting.Fours * rules.Four
	record.Sixes = batting.Sixes * rules.Six

	switch {
	case batting.Runs >= 100:
		record.HundredBonus = rules.HundredBonus
	case batting.Runs >= 50:
		record.FiftyBonus = rules.FiftyBonus
	case batting.Runs >= 30:
		record.ThirtyBonus = rules.ThirtyBonus
	}

	// A duck requires facing at least one ball and being dismissed; a not-out
	// zero is not penalized.
	if batting.Runs == 0 && batting.BallsFaced > 0 && batting.IsOut {
		record.Duck = rules.Duck
	}

	bowling := perf.Bowling
	record.Wickets = bowling.Wickets * rules.Wicket
	record.Maidens = bowling.Maidens * rules.Maiden

	switch {
	case bowling.Wickets >= 5:
		record.FiveWicketBonus = rules.FiveWicketBonus
	case bowling.Wickets >= 3:
		record.ThreeWicketBonus = rules.ThreeWicketBonus
	}

	fielding := perf.Fielding
	record.Catches = fielding.Catches * rules.Catch
	record.Stumps = fielding.Stumps * rules.Stumping
	record.RunOuts = fielding.RunOuts * rules.RunOut

	record.TotalPoints = record.BattingPoints() + record.BowlingPoints() + record.FieldingPoints() + record.Duck

	return record
}
