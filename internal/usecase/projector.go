package usecase

import (
	"time"

	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/domain/statrow"
)

const lastUpdateLayout = "15:04:05"

// ProjectRow builds the store row for one fixture from its folded counters
// and current phase. Half-time snapshot fields are populated only during
// the half-time break and full-time fields only at the full-time whistle
// while the fixture is still in play; outside those windows they stay nil
// so the write blanks any value left from an earlier pass.
//
// Note the two gates use different period markers: snapshot visibility
// follows the match-level period "45", while half-time accrual in
// Accumulate follows the per-stat marker "0". They are not interchangeable.
func ProjectRow(key string, ev event.MatchEvent, c statrow.Counters, now time.Time) statrow.Row {
	row := statrow.Row{
		FixtureID:      key,
		IsEnded:        ev.Ended(),
		HomeScore:      c.HomeGoals,
		AwayScore:      c.AwayGoals,
		HomeCorners:    c.HomeCorners,
		AwayCorners:    c.AwayCorners,
		HomeYellowCard: c.HomeYellowCards,
		AwayYellowCard: c.AwayYellowCards,
		LastUpdate:     now.Format(lastUpdateLayout),
	}

	if ev.HalfTimeBreak() {
		row.HomeHTScore = ptr(c.HomeGoalsHT)
		row.AwayHTScore = ptr(c.AwayGoalsHT)
		row.HomeCornersHT = ptr(c.HomeCornersHT)
		row.AwayCornersHT = ptr(c.AwayCornersHT)
		row.HomeYellowCardHT = ptr(c.HomeYellowCardsHT)
		row.AwayYellowCardHT = ptr(c.AwayYellowCardsHT)
	}

	if ev.FullTime() {
		row.HomeFTScore = ptr(c.HomeGoals)
		row.AwayFTScore = ptr(c.AwayGoals)
		row.HomeCornersFT = ptr(c.HomeCorners)
		row.AwayCornersFT = ptr(c.AwayCorners)
		row.HomeYellowCardFT = ptr(c.HomeYellowCards)
		row.AwayYellowCardFT = ptr(c.AwayYellowCards)
	}

	return row
}

func ptr(v int) *int {
	return &v
}
