package usecase

import (
	"testing"

	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/domain/statrow"
)

func TestAccumulateEmpty(t *testing.T) {
	t.Parallel()

	got := Accumulate(event.MatchEvent{ID: "fx-1", HomeTeam: "Alpha"})
	if got != (statrow.Counters{}) {
		t.Errorf("Accumulate(no stats) = %+v, want zero counters", got)
	}
}

func TestAccumulateRouting(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{
		ID:       "fx-1",
		HomeTeam: "Alpha",
		Stats: []event.Stat{
			{Type: event.StatGoal, Period: "0", Team: "1"},
			{Type: event.StatGoal, Period: "2", Team: "2"},
			{Type: event.StatCorner, Period: "0", Name: "Alpha corner"},
			{Type: event.StatCorner, Period: "2", Name: "Beta corner"},
			{Type: event.StatYellowCard, Period: "2", Team: "1"},
			{Type: event.StatYellowCard, Period: "0", Team: "2"},
		},
	}

	got := Accumulate(ev)
	want := statrow.Counters{
		HomeGoals:   1,
		AwayGoals:   1,
		HomeGoalsHT: 1,

		HomeCorners:   1,
		AwayCorners:   1,
		HomeCornersHT: 1,

		HomeYellowCards:   1,
		AwayYellowCards:   1,
		AwayYellowCardsHT: 1,
	}
	if got != want {
		t.Errorf("Accumulate() = %+v, want %+v", got, want)
	}
}

// The half-time subset accrues only while the stat's own period marker
// still reads "0". The same stat resent with a later marker counts only
// toward the total.
func TestAccumulateHalfTimeGate(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{
		ID:       "fx-1",
		HomeTeam: "Alpha",
		Stats: []event.Stat{
			{Type: event.StatGoal, Period: "0", Team: "1"},
			{Type: event.StatGoal, Period: "2", Team: "1"},
			{Type: event.StatGoal, Period: "90", Team: "1"},
		},
	}

	got := Accumulate(ev)
	if got.HomeGoals != 3 {
		t.Errorf("HomeGoals = %d, want 3", got.HomeGoals)
	}
	if got.HomeGoalsHT != 1 {
		t.Errorf("HomeGoalsHT = %d, want 1", got.HomeGoalsHT)
	}
}

// Half-time counts can never exceed the running totals: every stat that
// bumps a HT counter bumps the matching total too.
func TestAccumulateHTBoundedByTotal(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{
		ID:       "fx-1",
		HomeTeam: "Alpha",
		Stats: []event.Stat{
			{Type: event.StatGoal, Period: "0", Team: "1"},
			{Type: event.StatGoal, Period: "0", Team: "1"},
			{Type: event.StatCorner, Period: "0", Team: "2"},
			{Type: event.StatYellowCard, Period: "0", Team: "2"},
			{Type: event.StatGoal, Period: "2", Team: "2"},
		},
	}

	c := Accumulate(ev)
	pairs := [][2]int{
		{c.HomeGoalsHT, c.HomeGoals},
		{c.AwayGoalsHT, c.AwayGoals},
		{c.HomeCornersHT, c.HomeCorners},
		{c.AwayCornersHT, c.AwayCorners},
		{c.HomeYellowCardsHT, c.HomeYellowCards},
		{c.AwayYellowCardsHT, c.AwayYellowCards},
	}
	for i, p := range pairs {
		if p[0] > p[1] {
			t.Errorf("pair %d: HT count %d exceeds total %d", i, p[0], p[1])
		}
	}
}

func TestAccumulateSkipsUnusableStats(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{
		ID:       "fx-1",
		HomeTeam: "Alpha",
		Stats: []event.Stat{
			{Type: event.StatGoal, Team: "1"},
			{Type: "Red Card", Period: "0", Team: "1"},
			{Type: "Substitution", Period: "2", Team: "2"},
			{Type: event.StatGoal, Period: "2", Team: "1"},
		},
	}

	got := Accumulate(ev)
	if got.HomeGoals != 1 {
		t.Errorf("HomeGoals = %d, want 1 (periodless and unknown stats skipped)", got.HomeGoals)
	}
	if got.AwayGoals != 0 || got.HomeYellowCards != 0 {
		t.Errorf("unknown stat types leaked into counters: %+v", got)
	}
}

func TestAccumulateMinuteLastWriteWins(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{
		ID:       "fx-1",
		HomeTeam: "Alpha",
		Stats: []event.Stat{
			{Type: event.StatGoal, Period: "0", Team: "1", Minute: 12},
			{Type: event.StatCorner, Period: "2", Team: "2", Minute: 67},
			{Type: event.StatCorner, Period: "2", Team: "2"},
		},
	}

	got := Accumulate(ev)
	if got.Minute != 67 {
		t.Errorf("Minute = %d, want 67", got.Minute)
	}
}
