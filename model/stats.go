package model

// MatchupEntry is one roster's side of a weekly matchup as reported by the
// league platform.
type MatchupEntry struct {
	Week          int
	RosterID      int
	MatchupID     int
	Points        float64
	Starters      []string
	PlayersPoints map[string]float64
}

// HeadToHead is the derived result of a single matchup.
type HeadToHead struct {
	Week         int     `json:"week"`
	MatchupID    int     `json:"matchup_id"`
	Winner       int     `json:"matchup_winner"`
	Loser        int     `json:"matchup_loser"`
	WinnerPoints float64 `json:"winner_points"`
	LoserPoints  float64 `json:"loser_points"`
	Margin       float64 `json:"matchup_margin"`
}

// TeamScore is a roster's points for a single week.
type TeamScore struct {
	Week      int     `json:"week"`
	MatchupID int     `json:"matchup_id"`
	RosterID  int     `json:"roster_id"`
	Points    float64 `json:"points"`
}

// PlayerScore is the score of one starting player for one roster in one week.
type PlayerScore struct {
	PlayerID string   `json:"player_id"`
	Week     int      `json:"week"`
	Score    float64  `json:"score"`
	RosterID int      `json:"roster_id"`
	Position Position `json:"position"`
	Name     string   `json:"player_name"`
}

// PlayerTotal is a player's cumulative score over the regular season.
type PlayerTotal struct {
	PlayerID   string   `json:"player_id"`
	TotalScore float64  `json:"total_score"`
	RosterID   int      `json:"roster_id"`
	Position   Position `json:"position"`
	Name       string   `json:"player_name"`
}

// TeamStats is the season to date record of a roster.
type TeamStats struct {
	RosterID      int     `json:"roster_id"`
	Wins          int     `json:"total_wins"`
	Losses        int     `json:"total_losses"`
	Ties          int     `json:"total_ties"`
	PointsFor     float64 `json:"total_points_for"`
	PointsAgainst float64 `json:"total_points_against"`
}

// BracketMatch is one match of the winners playoff bracket. Winner and Loser
// are 0 until the match has been played. Placement is set for matches that
// decide a final position (1 for the championship, 3 for third place).
type BracketMatch struct {
	Round     int `json:"r"`
	MatchID   int `json:"m"`
	Team1     int `json:"t1"`
	Team2     int `json:"t2"`
	Winner    int `json:"w"`
	Loser     int `json:"l"`
	Placement int `json:"p"`
}

// Standing is one row of a pool leaderboard. Only the fields relevant to the
// ranking rule that produced it are set.
type Standing struct {
	Rank          int      `json:"rank"`
	RosterID      int      `json:"roster_id"`
	Username      string   `json:"username,omitempty"`
	Week          int      `json:"week,omitempty"`
	MatchupID     int      `json:"matchup_id,omitempty"`
	Opponent      int      `json:"opponent,omitempty"`
	PlayerID      string   `json:"player_id,omitempty"`
	PlayerName    string   `json:"player_name,omitempty"`
	Position      Position `json:"position,omitempty"`
	Value         float64  `json:"value"`
	Wins          int      `json:"wins,omitempty"`
	Losses        int      `json:"losses,omitempty"`
	Ties          int      `json:"ties,omitempty"`
	PointsFor     float64  `json:"points_for,omitempty"`
	PointsAgainst float64  `json:"points_against,omitempty"`
}

// Roster is a league roster with its season settings. Points are reported by
// sleeper as an integer part and a separate hundredths part.
type Roster struct {
	RosterID             int
	OwnerID              string
	Players              []string
	Wins                 int
	Losses               int
	Ties                 int
	PointsFor            int
	PointsForDecimal     int
	PointsAgainst        int
	PointsAgainstDecimal int
}
