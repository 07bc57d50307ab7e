package sleeper

import (
	"fmt"

	"github.com/ryan-gillies/commish/model"
)

type sleeperState struct {
	Week       int    `json:"week"`
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
}

func (s *sleeperState) toState() (*model.NFLState, error) {
	season := parseSeason(s.Season)
	if season == 0 {
		return nil, fmt.Errorf("error parsing season from sleeper state: '%s'", s.Season)
	}
	return &model.NFLState{
		Season:     season,
		Week:       s.Week,
		SeasonType: s.SeasonType,
	}, nil
}

type sleeperLeague struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	TotalRosters int    `json:"total_rosters"`
	Status       string `json:"status"`
}

func (l *sleeperLeague) toLeague() model.League {
	return model.League{
		LeagueID:     l.LeagueID,
		Name:         l.Name,
		Season:       parseSeason(l.Season),
		TotalRosters: l.TotalRosters,
		Status:       l.Status,
		Platform:     model.PlatformSleeper,
	}
}

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Settings struct {
		Wins                  int `json:"wins"`
		Losses                int `json:"losses"`
		Ties                  int `json:"ties"`
		PointsFor             int `json:"fpts"`
		PointsForDecimal      int `json:"fpts_decimal"`
		PointsAgainst         int `json:"fpts_against"`
		PointsAgainstDecimals int `json:"fpts_against_decimal"`
	} `json:"settings"`
}

func (r *sleeperRoster) toRoster() model.Roster {
	return model.Roster{
		RosterID:             r.RosterID,
		OwnerID:              r.OwnerID,
		Players:              r.Players,
		Wins:                 r.Settings.Wins,
		Losses:               r.Settings.Losses,
		Ties:                 r.Settings.Ties,
		PointsFor:            r.Settings.PointsFor,
		PointsForDecimal:     r.Settings.PointsForDecimal,
		PointsAgainst:        r.Settings.PointsAgainst,
		PointsAgainstDecimal: r.Settings.PointsAgainstDecimals,
	}
}

type sleeperUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

func (u *sleeperUser) toUser(leagueID string) model.User {
	name := u.Metadata.TeamName
	if name == "" {
		name = u.DisplayName
	}
	return model.User{
		LeagueID: leagueID,
		UserID:   u.UserID,
		Username: u.DisplayName,
		Name:     name,
		Avatar:   u.Avatar,
	}
}

type sleeperMatchup struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     *int               `json:"matchup_id"`
	Points        float64            `json:"points"`
	Starters      []string           `json:"starters"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

// toEntry converts the matchup. Sleeper reports a null matchup id for rosters
// without an opponent, those get a matchup id of 0.
func (m *sleeperMatchup) toEntry(week int) model.MatchupEntry {
	e := model.MatchupEntry{
		Week:          week,
		RosterID:      m.RosterID,
		Points:        m.Points,
		Starters:      m.Starters,
		PlayersPoints: m.PlayersPoints,
	}
	if m.MatchupID != nil {
		e.MatchupID = *m.MatchupID
	}
	return e
}

type sleeperBracketMatch struct {
	Round     int  `json:"r"`
	MatchID   int  `json:"m"`
	Team1     *int `json:"t1"`
	Team2     *int `json:"t2"`
	Winner    *int `json:"w"`
	Loser     *int `json:"l"`
	Placement *int `json:"p"`
}

func (m *sleeperBracketMatch) toBracketMatch() model.BracketMatch {
	return model.BracketMatch{
		Round:     m.Round,
		MatchID:   m.MatchID,
		Team1:     valueOrZero(m.Team1),
		Team2:     valueOrZero(m.Team2),
		Winner:    valueOrZero(m.Winner),
		Loser:     valueOrZero(m.Loser),
		Placement: valueOrZero(m.Placement),
	}
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
