package usecase

import (
	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/domain/statrow"
)

// Accumulate folds the full stat log of a match event into counters. The
// feed resends the whole log on every update, so every call starts from
// zero rather than mutating previous state.
//
// A stat counts toward the half-time subset only while its own period
// marker still reads the first-half value; once the feed rolls the marker
// forward the same stat only contributes to the running total.
func Accumulate(ev event.MatchEvent) statrow.Counters {
	var c statrow.Counters

	for _, s := range event.ValidStats(ev.Stats) {
		if s.Minute > 0 {
			c.Minute = s.Minute
		}

		home := s.Side(ev.HomeTeam) == event.SideHome
		firstHalf := s.Period == event.StatPeriodFirstHalf

		var total, totalHT *int
		switch s.Type {
		case event.StatGoal:
			if home {
				total, totalHT = &c.HomeGoals, &c.HomeGoalsHT
			} else {
				total, totalHT = &c.AwayGoals, &c.AwayGoalsHT
			}
		case event.StatCorner:
			if home {
				total, totalHT = &c.HomeCorners, &c.HomeCornersHT
			} else {
				total, totalHT = &c.AwayCorners, &c.AwayCornersHT
			}
		case event.StatYellowCard:
			if home {
				total, totalHT = &c.HomeYellowCards, &c.HomeYellowCardsHT
			} else {
				total, totalHT = &c.AwayYellowCards, &c.AwayYellowCardsHT
			}
		default:
			continue
		}

		*total++
		if firstHalf {
			*totalHT++
		}
	}

	return c
}
