package statrow

import (
	"github.com/riskibarqy/statsboard/internal/domain/event"
)

// Counters is the folded stat tally for one fixture. The HT fields hold the
// subset that accrued before the half-time break.
type Counters struct {
	HomeGoals         int
	AwayGoals         int
	HomeGoalsHT       int
	AwayGoalsHT       int
	HomeCorners       int
	AwayCorners       int
	HomeCornersHT     int
	AwayCornersHT     int
	HomeYellowCards   int
	AwayYellowCards   int
	HomeYellowCardsHT int
	AwayYellowCardsHT int
	Minute            int
}

// Row is the flat record written to the tabular store. Pointer fields carry
// the half-time and full-time snapshots and stay nil outside the phase
// window they belong to, so a write outside the window explicitly blanks
// them rather than leaving stale values behind.
type Row struct {
	FixtureID        string `db:"fixture_id"`
	IsEnded          bool   `db:"is_ended"`
	HomeScore        int    `db:"home_score"`
	AwayScore        int    `db:"away_score"`
	HomeHTScore      *int   `db:"home_ht_score"`
	AwayHTScore      *int   `db:"away_ht_score"`
	HomeFTScore      *int   `db:"home_ft_score"`
	AwayFTScore      *int   `db:"away_ft_score"`
	HomeCorners      int    `db:"home_corners"`
	AwayCorners      int    `db:"away_corners"`
	HomeCornersHT    *int   `db:"home_corners_ht"`
	AwayCornersHT    *int   `db:"away_corners_ht"`
	HomeCornersFT    *int   `db:"home_corners_ft"`
	AwayCornersFT    *int   `db:"away_corners_ft"`
	HomeYellowCard   int    `db:"home_yellow_card"`
	AwayYellowCard   int    `db:"away_yellow_card"`
	HomeYellowCardHT *int   `db:"home_yellow_card_ht"`
	AwayYellowCardHT *int   `db:"away_yellow_card_ht"`
	HomeYellowCardFT *int   `db:"home_yellow_card_ft"`
	AwayYellowCardFT *int   `db:"away_yellow_card_ft"`
	LastUpdate       string `db:"last_update"`
}

// KeyColumn is the store column every row key lands in, regardless of the
// key strategy in use.
const KeyColumn = "fixture_id"

// Columns lists the full column set of the row table in write order. The
// store verifies this exact set at startup.
func Columns() []string {
	return []string{
		"fixture_id",
		"is_ended",
		"home_score",
		"away_score",
		"home_ht_score",
		"away_ht_score",
		"home_ft_score",
		"away_ft_score",
		"home_corners",
		"away_corners",
		"home_corners_ht",
		"away_corners_ht",
		"home_corners_ft",
		"away_corners_ft",
		"home_yellow_card",
		"away_yellow_card",
		"home_yellow_card_ht",
		"away_yellow_card_ht",
		"home_yellow_card_ft",
		"away_yellow_card_ft",
		"last_update",
	}
}

// KeyFunc derives the row key for a fixture event.
type KeyFunc func(ev event.MatchEvent) string

func KeyByFixtureID(ev event.MatchEvent) string {
	return ev.ID
}

// KeyByMatchURL keys rows by the public in-play URL instead of the raw
// fixture id, for consumers that join on the URL.
func KeyByMatchURL(ev event.MatchEvent) string {
	return ev.MatchURL()
}
