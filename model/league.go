package model

import (
	"github.com/shopspring/decimal"
)

var PlatformSleeper = "sleeper"

// Calendar holds the week numbers that pools are anchored to.
type Calendar struct {
	OpeningWeek      int
	RivalryWeek      int
	LastRegularWeek  int
	ChampionshipWeek int
}

var DefaultCalendar = Calendar{
	OpeningWeek:      1,
	RivalryWeek:      8,
	LastRegularWeek:  14,
	ChampionshipWeek: 17,
}

// RegularSeason returns every regular season week in order.
func (c Calendar) RegularSeason() []int {
	weeks := make([]int, 0, c.LastRegularWeek-c.OpeningWeek+1)
	for w := c.OpeningWeek; w <= c.LastRegularWeek; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

// Season is one league instance for a single year.
type Season struct {
	LeagueID      string
	Season        int
	Week          int // last completed week
	Name          string
	SleeperUserID string
	MainBuyIn     decimal.Decimal
	SideBuyIn     decimal.Decimal
	TeamCount     int
	Optouts       []int // roster ids
	MainPot       decimal.Decimal
	SidePot       decimal.Decimal
	Calendar      Calendar
}

// ComputePots sets the main and side pot from the buy-ins, team count and
// opt-outs.
func (s *Season) ComputePots() {
	s.MainPot = s.MainBuyIn.Mul(decimal.NewFromInt(int64(s.TeamCount)))
	s.SidePot = s.SideBuyIn.Mul(decimal.NewFromInt(int64(s.SidePoolCount())))
}

// SidePoolCount is the number of rosters contributing to the side pot.
func (s *Season) SidePoolCount() int {
	return s.TeamCount - len(s.Optouts)
}

// User is the owner of a roster in a league. Winners are recorded by
// username, payments go to the PaymentHandle.
type User struct {
	LeagueID      string
	RosterID      int
	UserID        string
	Username      string
	Name          string
	Avatar        string
	PaymentHandle string
}

// League is a sleeper league as listed for a user.
type League struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       int    `json:"season"`
	TotalRosters int    `json:"total_rosters"`
	Status       string `json:"status"`
	Platform     string `json:"platform"`
}

// NFLState is the current point in the NFL calendar.
type NFLState struct {
	Season     int
	Week       int
	SeasonType string // pre, regular, post or off
}

// CompletedWeek returns the last week of the given season with final scores.
// The state week is the week in progress so the previous week is the last
// complete one. A season that has ended is complete through the
// championship.
func (s NFLState) CompletedWeek(season int, c Calendar) int {
	switch {
	case season < s.Season:
		return c.ChampionshipWeek
	case season > s.Season:
		return 0
	}

	switch s.SeasonType {
	case "regular", "post":
		return min(max(s.Week-1, 0), c.ChampionshipWeek)
	case "off":
		return c.ChampionshipWeek
	default:
		return 0
	}
}
