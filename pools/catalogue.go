// Package pools holds the catalogue of pool types a season can be configured
// with and turns season configuration into concrete pools.
package pools

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/stats"
)

var (
	ErrUnknownPool      = errors.New("unknown pool")
	ErrCategoryMismatch = errors.New("pool configured in the wrong category")
	ErrMissingPoolID    = errors.New("pool requires a pool_id")
)

// LeaderboardSize is the number of standings shown on a pool leaderboard.
const LeaderboardSize = 12

type Name string

const (
	HighestScoreOfWeekPool                Name = "HighestScoreOfWeekPool"
	HighestScoringMarginOfWeekPool        Name = "HighestScoringMarginOfWeekPool"
	HighestScoringPlayerOfWeekPool        Name = "HighestScoringPlayerOfWeekPool"
	RegularSeasonFirstPlacePool           Name = "RegularSeasonFirstPlacePool"
	RegularSeasonMostPointsPool           Name = "RegularSeasonMostPointsPool"
	RegularSeasonMostPointsAgainstPool    Name = "RegularSeasonMostPointsAgainstPool"
	RegularSeasonHighestScoringPlayerPool Name = "RegularSeasonHighestScoringPlayerPool"
	OneWeekHighestScorePool               Name = "OneWeekHighestScorePool"
	OneWeekHighestScoreAgainstPool        Name = "OneWeekHighestScoreAgainstPool"
	OneWeekHighestScoringPlayerPool       Name = "OneWeekHighestScoringPlayerPool"
	OneWeekSmallestMarginPool             Name = "OneWeekSmallestMarginPool"
	OpeningWeekWinnersPool                Name = "OpeningWeekWinnersPool"
	RivalryWeekWinnersPool                Name = "RivalryWeekWinnersPool"
	LastWeekWinnersPool                   Name = "LastWeekWinnersPool"
	PropPool                              Name = "PropPool"
	LeagueWinner                          Name = "LeagueWinner"
	LeagueRunnerUp                        Name = "LeagueRunnerUp"
	LeagueThirdPlace                      Name = "LeagueThirdPlace"
)

// Descriptor is everything needed to create and resolve one type of pool.
type Descriptor struct {
	Name     Name
	BaseID   string
	Category model.Category
	Subtype  model.Subtype
	// Week returns the week the pool is decided in. Weekly pools use the week
	// of each instance instead.
	Week func(model.Calendar) int
	Rule stats.Rule
	// Leaderboard is the rule used to rank every roster for display, or ""
	// when the pool has no leaderboard.
	Leaderboard stats.Rule
}

func (d Descriptor) HasLeaderboard() bool {
	return d.Leaderboard != ""
}

// RuleWeek is the week passed to the ranking rule for a pool. Pools decided
// over the whole season rank every week to date.
func (d Descriptor) RuleWeek(p *model.Pool) int {
	switch d.Subtype {
	case model.SubtypeWeekly, model.SubtypeSpecialWeek:
		return p.Week
	default:
		return 0
	}
}

func lastRegularWeek(c model.Calendar) int  { return c.LastRegularWeek }
func championshipWeek(c model.Calendar) int { return c.ChampionshipWeek }

var catalogue = map[Name]Descriptor{
	HighestScoreOfWeekPool: {
		BaseID: "highest_score_of_week", Category: model.CategorySide, Subtype: model.SubtypeWeekly,
		Rule: stats.RuleHighTeamScore,
	},
	HighestScoringMarginOfWeekPool: {
		BaseID: "highest_scoring_margin_of_week", Category: model.CategorySide, Subtype: model.SubtypeWeekly,
		Rule: stats.RuleHighScoringMargin,
	},
	HighestScoringPlayerOfWeekPool: {
		BaseID: "highest_scoring_player_of_week", Category: model.CategorySide, Subtype: model.SubtypeWeekly,
		Rule: stats.RuleHighPlayerScore,
	},
	RegularSeasonFirstPlacePool: {
		BaseID: "regular_season_first_place", Category: model.CategorySide, Subtype: model.SubtypeSeasonCumulative,
		Week: lastRegularWeek, Rule: stats.RuleFirstPlace, Leaderboard: stats.RuleFirstPlace,
	},
	RegularSeasonMostPointsPool: {
		BaseID: "regular_season_most_points", Category: model.CategorySide, Subtype: model.SubtypeSeasonCumulative,
		Week: lastRegularWeek, Rule: stats.RuleMostPoints, Leaderboard: stats.RuleMostPoints,
	},
	RegularSeasonMostPointsAgainstPool: {
		BaseID: "regular_season_most_points_against", Category: model.CategorySide, Subtype: model.SubtypeSeasonCumulative,
		Week: lastRegularWeek, Rule: stats.RuleMostPointsAgainst, Leaderboard: stats.RuleMostPointsAgainst,
	},
	RegularSeasonHighestScoringPlayerPool: {
		BaseID: "regular_season_highest_scoring_player", Category: model.CategorySide, Subtype: model.SubtypeSeasonCumulative,
		Week: lastRegularWeek, Rule: stats.RuleTopScoringPlayer, Leaderboard: stats.RuleTopScoringPlayer,
	},
	OneWeekHighestScorePool: {
		BaseID: "one_week_highest_score", Category: model.CategorySide, Subtype: model.SubtypeSeasonHigh,
		Week: lastRegularWeek, Rule: stats.RuleHighTeamScore, Leaderboard: stats.RuleHighTeamScore,
	},
	OneWeekHighestScoreAgainstPool: {
		BaseID: "one_week_highest_score_against", Category: model.CategorySide, Subtype: model.SubtypeSeasonHigh,
		Week: lastRegularWeek, Rule: stats.RuleHighScoreAgainst, Leaderboard: stats.RuleHighScoreAgainst,
	},
	OneWeekHighestScoringPlayerPool: {
		BaseID: "one_week_highest_scoring_player", Category: model.CategorySide, Subtype: model.SubtypeSeasonHigh,
		Week: lastRegularWeek, Rule: stats.RuleHighPlayerScore, Leaderboard: stats.RuleHighPlayerScore,
	},
	OneWeekSmallestMarginPool: {
		BaseID: "one_week_smallest_margin_of_loss", Category: model.CategorySide, Subtype: model.SubtypeSeasonHigh,
		Week: lastRegularWeek, Rule: stats.RuleSmallestMarginOfLoss, Leaderboard: stats.RuleSmallestMarginOfLoss,
	},
	OpeningWeekWinnersPool: {
		BaseID: "each_winner_of_opening_week", Category: model.CategorySide, Subtype: model.SubtypeSpecialWeek,
		Week: func(c model.Calendar) int { return c.OpeningWeek }, Rule: stats.RuleHeadToHeadWinners,
	},
	RivalryWeekWinnersPool: {
		BaseID: "each_winner_of_rivalry_week", Category: model.CategorySide, Subtype: model.SubtypeSpecialWeek,
		Week: func(c model.Calendar) int { return c.RivalryWeek }, Rule: stats.RuleHeadToHeadWinners,
	},
	LastWeekWinnersPool: {
		BaseID: "each_winner_of_last_week", Category: model.CategorySide, Subtype: model.SubtypeSpecialWeek,
		Week: lastRegularWeek, Rule: stats.RuleHeadToHeadWinners,
	},
	PropPool: {
		Category: model.CategorySide, Subtype: model.SubtypeProp,
		Week: championshipWeek, Rule: stats.RuleManual,
	},
	LeagueWinner: {
		BaseID: "league_winner", Category: model.CategoryMain, Subtype: model.SubtypePlayoff,
		Week: championshipWeek, Rule: stats.RuleChampion,
	},
	LeagueRunnerUp: {
		BaseID: "league_runner_up", Category: model.CategoryMain, Subtype: model.SubtypePlayoff,
		Week: championshipWeek, Rule: stats.RuleRunnerUp,
	},
	LeagueThirdPlace: {
		BaseID: "league_third_place", Category: model.CategoryMain, Subtype: model.SubtypePlayoff,
		Week: championshipWeek, Rule: stats.RuleThirdPlace,
	},
}

func init() {
	for name, d := range catalogue {
		d.Name = name
		catalogue[name] = d
	}
}

// Lookup returns the descriptor for a pool name.
func Lookup(name string) (Descriptor, error) {
	d, found := catalogue[Name(name)]
	if !found {
		return Descriptor{}, fmt.Errorf("error looking up pool %q: %w", name, ErrUnknownPool)
	}
	return d, nil
}

// Names returns every pool name in the catalogue, sorted.
func Names() []Name {
	return slices.Sorted(maps.Keys(catalogue))
}

// Entry is one configured pool.
type Entry struct {
	Name     string
	Category model.Category
	Payout   decimal.Decimal
	PoolID   string
}

// Check validates the entry against the catalogue without creating anything.
func (e Entry) Check() (Descriptor, error) {
	d, err := Lookup(e.Name)
	if err != nil {
		return d, err
	}
	if e.Category != "" && e.Category != d.Category {
		return d, fmt.Errorf("error with pool %s: %s pool listed as %s: %w", e.Name, d.Category, e.Category, ErrCategoryMismatch)
	}
	if d.BaseID == "" && e.PoolID == "" {
		return d, fmt.Errorf("error with pool %s: %w", e.Name, ErrMissingPoolID)
	}
	return d, nil
}

// Create builds every pool for the season from the configured entries.
// Weekly pools become one pool per regular season week. The payout of each
// pool is computed from the season's pots and fixed from then on.
func Create(season *model.Season, entries []Entry) ([]*model.Pool, error) {
	pools := make([]*model.Pool, 0, len(entries)*2)
	seen := make(map[string]bool)

	for _, e := range entries {
		d, err := e.Check()
		if err != nil {
			return nil, err
		}

		base := d.BaseID
		if e.PoolID != "" {
			base = e.PoolID
		}

		var created []*model.Pool
		if d.Subtype == model.SubtypeWeekly {
			for _, week := range season.Calendar.RegularSeason() {
				created = append(created, newPool(season, d, fmt.Sprintf("%s_%d", base, week), week, e.Payout))
			}
		} else {
			created = append(created, newPool(season, d, base, d.Week(season.Calendar), e.Payout))
		}

		for _, p := range created {
			if seen[p.PoolID] {
				return nil, fmt.Errorf("error creating pools: duplicate pool id %s", p.PoolID)
			}
			seen[p.PoolID] = true
		}
		pools = append(pools, created...)
	}

	return pools, nil
}

func newPool(season *model.Season, d Descriptor, id string, week int, pct decimal.Decimal) *model.Pool {
	return &model.Pool{
		LeagueID:     season.LeagueID,
		PoolID:       id,
		Name:         string(d.Name),
		Label:        model.LabelFromID(id),
		Category:     d.Category,
		Subtype:      d.Subtype,
		Week:         week,
		PayoutPct:    pct,
		PayoutAmount: PayoutAmount(season, d.Category, pct),
	}
}

// Split creates one child pool per winner of a special week pool. Each child
// is paid an equal share of the parent's payout.
func Split(parent *model.Pool, winners []model.Standing) []*model.Pool {
	share := SplitAmount(parent.PayoutAmount, len(winners))
	children := make([]*model.Pool, 0, len(winners))
	for _, w := range winners {
		id := fmt.Sprintf("%s_%d", parent.PoolID, w.MatchupID)
		children = append(children, &model.Pool{
			LeagueID:     parent.LeagueID,
			PoolID:       id,
			Name:         parent.Name,
			Label:        model.LabelFromID(id),
			Category:     parent.Category,
			Subtype:      parent.Subtype,
			Week:         parent.Week,
			PayoutPct:    parent.PayoutPct,
			PayoutAmount: share,
			ParentPoolID: parent.PoolID,
		})
	}
	return children
}
