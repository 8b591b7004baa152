package event

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Period markers used by the upstream feed. The values are feed convention,
// not minutes.
const (
	PeriodNotStarted    = "0"
	PeriodHalfTimeBreak = "45"
	PeriodFullTime      = "90"
)

// StatPeriodFirstHalf marks individual stats that accrued before the break.
// The feed tags those with period "0" while the match-level half-time break
// is period "45"; both literals are carried as-is from the feed contract.
const StatPeriodFirstHalf = "0"

const (
	SideHome = "1"
	SideAway = "2"
)

// Stat types this service aggregates; anything else on the wire is ignored.
const (
	StatGoal       = "Goal"
	StatCorner     = "Corner"
	StatYellowCard = "Yellow Card"
)

// Stat is one observed occurrence inside a match event. Team and Name are
// both optional; when Team is absent the side is inferred from Name.
type Stat struct {
	Type   string `json:"type"`
	Period string `json:"period"`
	Team   string `json:"team,omitempty"`
	Name   string `json:"name,omitempty"`
	Minute int    `json:"minute,omitempty"`
}

// MatchEvent is the raw payload delivered by the feed. Stats carries the
// full cumulative stat log for the fixture, not a delta.
type MatchEvent struct {
	ID            string `json:"id"`
	URLID         string `json:"urlId"`
	SportID       string `json:"sportId"`
	IsPlaying     bool   `json:"isPlaying"`
	CurrentPeriod string `json:"currentPeriod"`
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam,omitempty"`
	Stats         []Stat `json:"stats"`
}

func Decode(data []byte) (MatchEvent, error) {
	var ev MatchEvent
	if err := sonic.Unmarshal(data, &ev); err != nil {
		return MatchEvent{}, fmt.Errorf("decode match event: %w", err)
	}
	if strings.TrimSpace(ev.ID) == "" {
		return MatchEvent{}, fmt.Errorf("decode match event: missing fixture id")
	}
	return ev, nil
}

func (e MatchEvent) NotStarted() bool {
	return !e.IsPlaying && e.CurrentPeriod == PeriodNotStarted
}

func (e MatchEvent) Ended() bool {
	return !e.IsPlaying && e.CurrentPeriod == PeriodFullTime
}

func (e MatchEvent) HalfTimeBreak() bool {
	return e.CurrentPeriod == PeriodHalfTimeBreak
}

// FullTime reports the boundary tick at the end of play while the fixture is
// still marked in play, distinct from Ended.
func (e MatchEvent) FullTime() bool {
	return e.IsPlaying && e.CurrentPeriod == PeriodFullTime
}

func (e MatchEvent) MatchURL() string {
	return "https://www.bet365.com/#/IP/" + e.URLID
}

// Side resolves which team a stat belongs to: the explicit indicator wins,
// otherwise the free-text descriptor is matched against the home team name.
func (s Stat) Side(homeTeam string) string {
	if s.Team != "" {
		return s.Team
	}
	if homeTeam != "" && strings.Contains(s.Name, homeTeam) {
		return SideHome
	}
	return SideAway
}

// ValidStats filters out entries that cannot be attributed yet: a stat with
// no period is not assignable to a half and a stat with no type cannot be
// routed. Invalid entries are dropped silently.
func ValidStats(stats []Stat) []Stat {
	out := make([]Stat, 0, len(stats))
	for _, s := range stats {
		if s.Period == "" || s.Type == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
