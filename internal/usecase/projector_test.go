package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/domain/statrow"
)

var projTime = time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)

func TestProjectRowBaseFields(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{ID: "fx-1", IsPlaying: true, CurrentPeriod: "2"}
	c := statrow.Counters{
		HomeGoals: 2, AwayGoals: 1,
		HomeCorners: 5, AwayCorners: 3,
		HomeYellowCards: 1, AwayYellowCards: 2,
		HomeGoalsHT: 1, AwayGoalsHT: 0,
	}

	row := ProjectRow("fx-1", ev, c, projTime)

	if row.FixtureID != "fx-1" {
		t.Errorf("FixtureID = %q, want fx-1", row.FixtureID)
	}
	if row.IsEnded {
		t.Error("IsEnded = true for in-play fixture")
	}
	if row.HomeScore != 2 || row.AwayScore != 1 {
		t.Errorf("score = %d-%d, want 2-1", row.HomeScore, row.AwayScore)
	}
	if row.HomeCorners != 5 || row.AwayCorners != 3 {
		t.Errorf("corners = %d-%d, want 5-3", row.HomeCorners, row.AwayCorners)
	}
	if row.HomeYellowCard != 1 || row.AwayYellowCard != 2 {
		t.Errorf("cards = %d-%d, want 1-2", row.HomeYellowCard, row.AwayYellowCard)
	}
	if row.LastUpdate != "14:30:05" {
		t.Errorf("LastUpdate = %q, want 14:30:05", row.LastUpdate)
	}

	// HT counters exist but the fixture is mid-half, so the snapshot
	// fields stay nil.
	if row.HomeHTScore != nil || row.AwayHTScore != nil {
		t.Error("HT score fields populated outside the half-time break")
	}
	if row.HomeFTScore != nil || row.AwayFTScore != nil {
		t.Error("FT score fields populated before full time")
	}
}

func TestProjectRowHalfTimeBreak(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{ID: "fx-1", IsPlaying: true, CurrentPeriod: "45"}
	c := statrow.Counters{
		HomeGoals: 1, HomeGoalsHT: 1,
		HomeCornersHT: 2, AwayCornersHT: 1,
		AwayYellowCardsHT: 1,
	}

	row := ProjectRow("fx-1", ev, c, projTime)

	if row.HomeHTScore == nil || *row.HomeHTScore != 1 {
		t.Fatalf("HomeHTScore = %v, want 1", row.HomeHTScore)
	}
	if row.AwayHTScore == nil || *row.AwayHTScore != 0 {
		t.Fatalf("AwayHTScore = %v, want 0", row.AwayHTScore)
	}
	if row.HomeCornersHT == nil || *row.HomeCornersHT != 2 {
		t.Fatalf("HomeCornersHT = %v, want 2", row.HomeCornersHT)
	}
	if row.AwayYellowCardHT == nil || *row.AwayYellowCardHT != 1 {
		t.Fatalf("AwayYellowCardHT = %v, want 1", row.AwayYellowCardHT)
	}
	if row.HomeFTScore != nil {
		t.Error("FT fields populated during the half-time break")
	}
}

func TestProjectRowFullTime(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{ID: "fx-1", IsPlaying: true, CurrentPeriod: "90"}
	c := statrow.Counters{
		HomeGoals: 3, AwayGoals: 2,
		HomeCorners: 7, AwayCorners: 4,
		HomeYellowCards: 2, AwayYellowCards: 3,
	}

	row := ProjectRow("fx-1", ev, c, projTime)

	// The FT snapshot mirrors the running totals at the whistle.
	if row.HomeFTScore == nil || *row.HomeFTScore != 3 {
		t.Fatalf("HomeFTScore = %v, want 3", row.HomeFTScore)
	}
	if row.AwayFTScore == nil || *row.AwayFTScore != 2 {
		t.Fatalf("AwayFTScore = %v, want 2", row.AwayFTScore)
	}
	if row.HomeCornersFT == nil || *row.HomeCornersFT != 7 {
		t.Fatalf("HomeCornersFT = %v, want 7", row.HomeCornersFT)
	}
	if row.AwayYellowCardFT == nil || *row.AwayYellowCardFT != 3 {
		t.Fatalf("AwayYellowCardFT = %v, want 3", row.AwayYellowCardFT)
	}
	if row.IsEnded {
		t.Error("IsEnded = true while still in play")
	}
	if row.HomeHTScore != nil {
		t.Error("HT fields populated at full time")
	}
}

func TestProjectRowEnded(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{ID: "fx-1", IsPlaying: false, CurrentPeriod: "90"}
	row := ProjectRow("fx-1", ev, statrow.Counters{HomeGoals: 1}, projTime)

	if !row.IsEnded {
		t.Error("IsEnded = false for finished fixture")
	}
	// Not in play anymore, so the full-time window is closed too.
	if row.HomeFTScore != nil {
		t.Error("FT fields populated after the fixture ended")
	}
}

func TestProjectRowIdempotent(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{ID: "fx-1", IsPlaying: true, CurrentPeriod: "45"}
	c := statrow.Counters{HomeGoals: 1, HomeGoalsHT: 1}

	a := ProjectRow("fx-1", ev, c, projTime)
	b := ProjectRow("fx-1", ev, c, projTime)

	if a.HomeScore != b.HomeScore || a.LastUpdate != b.LastUpdate {
		t.Errorf("repeated projection differs: %+v vs %+v", a, b)
	}
	if *a.HomeHTScore != *b.HomeHTScore {
		t.Errorf("repeated HT projection differs: %d vs %d", *a.HomeHTScore, *b.HomeHTScore)
	}
}

func TestProjectRowUsesGivenKey(t *testing.T) {
	t.Parallel()

	ev := event.MatchEvent{ID: "fx-1", URLID: "170123456", IsPlaying: true, CurrentPeriod: "2"}
	row := ProjectRow(statrow.KeyByMatchURL(ev), ev, statrow.Counters{}, projTime)

	if row.FixtureID != "https://www.bet365.com/#/IP/170123456" {
		t.Errorf("FixtureID = %q, want the match URL key", row.FixtureID)
	}
}
