package fantasy

import (
	"testing"

	"github.com/cricstack/fantasy-core/internal/domain/performance"
)

func TestCalculatePoints_Deterministic(t *testing.T) {
	t.Parallel()

	perf := performance.Performance{
		PlayerID: "p1",
		MatchID:  "m1",
		Batting:  performance.Batting{Runs: 47, BallsFaced: 30, Fours: 5, Sixes: 2, IsOut: true},
		Bowling:  performance.Bowling{Wickets: 2, Maidens: 1},
		Fielding: performance.Fielding{Catches: 1},
	}

	first := CalculatePoints(perf, DefaultRules())
	second := CalculatePoints(perf, DefaultRules())
	if first != second {
		t.Fatalf("scoring is not deterministic: first=%+v second=%+v", first, second)
	}
}

func TestCalculatePoints_SumInvariant(t *testing.T) {
	t.Parallel()

	cases := []performance.Performance{
		{PlayerID: "p1", MatchID: "m1"},
		{PlayerID: "p2", MatchID: "m1", Batting: performance.Batting{Runs: 120, BallsFaced: 80, Fours: 10, Sixes: 4, IsOut: true}},
		{PlayerID: "p3", MatchID: "m1", Bowling: performance.Bowling{Wickets: 6, Maidens: 2}},
		{PlayerID: "p4", MatchID: "m1", Batting: performance.Batting{BallsFaced: 3, IsOut: true}, Fielding: performance.Fielding{Catches: 2, Stumps: 1, RunOuts: 1}},
	}

	for _, perf := range cases {
		record := CalculatePoints(perf, DefaultRules())
		sum := record.Runs + record.Fours + record.Sixes +
			record.ThirtyBonus + record.FiftyBonus + record.HundredBonus +
			record.Wickets + record.Maidens + record.ThreeWicketBonus + record.FiveWicketBonus +
			record.Catches + record.Stumps + record.RunOuts + record.Duck
		if record.TotalPoints != sum {
			t.Fatalf("player=%s total=%d sum=%d", perf.PlayerID, record.TotalPoints, sum)
		}
		if err := record.Validate(); err != nil {
			t.Fatalf("player=%s validate: %v", perf.PlayerID, err)
		}
	}
}

func TestCalculatePoints_BonusExclusivity(t *testing.T) {
	t.Parallel()

	record := CalculatePoints(performance.Performance{
		PlayerID: "p1",
		MatchID:  "m1",
		Batting:  performance.Batting{Runs: 120, BallsFaced: 70, IsOut: false},
	}, DefaultRules())

	if record.HundredBonus != 40 {
		t.Fatalf("unexpected hundred bonus: got=%d want=40", record.HundredBonus)
	}
	if record.FiftyBonus != 0 || record.ThirtyBonus != 0 {
		t.Fatalf("lower milestone bonuses must not stack: fifty=%d thirty=%d", record.FiftyBonus, record.ThirtyBonus)
	}

	bowled := CalculatePoints(performance.Performance{
		PlayerID: "p2",
		MatchID:  "m1",
		Bowling:  performance.Bowling{Wickets: 5},
	}, DefaultRules())
	if bowled.FiveWicketBonus != 20 || bowled.ThreeWicketBonus != 0 {
		t.Fatalf("wicket bonuses must not stack: five=%d three=%d", bowled.FiveWicketBonus, bowled.ThreeWicketBonus)
	}
}

func TestCalculatePoints_DuckCondition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		batting performance.Batting
		want    int
	}{
		{name: "not out zero without facing a ball", batting: performance.Batting{Runs: 0, BallsFaced: 0, IsOut: false}, want: 0},
		{name: "dismissed for zero after facing balls", batting: performance.Batting{Runs: 0, BallsFaced: 4, IsOut: true}, want: -5},
		{name: "dismissed for zero without facing a ball", batting: performance.Batting{Runs: 0, BallsFaced: 0, IsOut: true}, want: 0},
		{name: "not out zero after facing balls", batting: performance.Batting{Runs: 0, BallsFaced: 6, IsOut: false}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			record := CalculatePoints(performance.Performance{PlayerID: "p1", MatchID: "m1", Batting: tc.batting}, DefaultRules())
			if record.Duck != tc.want {
				t.Fatalf("unexpected duck penalty: got=%d want=%d", record.Duck, tc.want)
			}
		})
	}
}

func TestCalculatePoints_FiftyWithBoundariesAndCatch(t *testing.T) {
	t.Parallel()

	record := CalculatePoints(performance.Performance{
		PlayerID: "p1",
		MatchID:  "m1",
		Batting:  performance.Batting{Runs: 55, BallsFaced: 40, Fours: 6, Sixes: 1, IsOut: true},
		Fielding: performance.Fielding{Catches: 1},
	}, DefaultRules())

	if record.Runs != 55 {
		t.Fatalf("unexpected run points: got=%d want=55", record.Runs)
	}
	if record.Fours != 12 {
		t.Fatalf("unexpected four points: got=%d want=12", record.Fours)
	}
	if record.Sixes != 4 {
		t.Fatalf("unexpected six points: got=%d want=4", record.Sixes)
	}
	if record.FiftyBonus != 20 {
		t.Fatalf("unexpected fifty bonus: got=%d want=20", record.FiftyBonus)
	}
	if record.Catches != 10 {
		t.Fatalf("unexpected catch points: got=%d want=10", record.Catches)
	}
	if record.TotalPoints != 101 {
		t.Fatalf("unexpected total: got=%d want=101", record.TotalPoints)
	}
}
