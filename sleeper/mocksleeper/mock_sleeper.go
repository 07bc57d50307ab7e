package mocksleeper

import (
	"context"

	"github.com/ryan-gillies/commish/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetState(ctx context.Context) (*model.NFLState, error) {
	args := c.Called(ctx)

	var res *model.NFLState
	if args.Get(0) != nil {
		res = args.Get(0).(*model.NFLState)
	}

	return res, args.Error(1)
}

func (c *Client) GetLeaguesForUser(ctx context.Context, userID string, season int) ([]model.League, error) {
	args := c.Called(ctx, userID, season)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}

	return res, args.Error(1)
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	args := c.Called(ctx, leagueID)

	var res *model.League
	if args.Get(0) != nil {
		res = args.Get(0).(*model.League)
	}

	return res, args.Error(1)
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	args := c.Called(ctx, leagueID)

	var res []model.Roster
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Roster)
	}

	return res, args.Error(1)
}

func (c *Client) GetUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	args := c.Called(ctx, leagueID)

	var res []model.User
	if args.Get(0) != nil {
		res = args.Get(0).([]model.User)
	}

	return res, args.Error(1)
}

func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int) ([]model.MatchupEntry, error) {
	args := c.Called(ctx, leagueID, week)

	var res []model.MatchupEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.MatchupEntry)
	}

	return res, args.Error(1)
}

func (c *Client) GetWinnersBracket(ctx context.Context, leagueID string) ([]model.BracketMatch, error) {
	args := c.Called(ctx, leagueID)

	var res []model.BracketMatch
	if args.Get(0) != nil {
		res = args.Get(0).([]model.BracketMatch)
	}

	return res, args.Error(1)
}

func (c *Client) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	args := c.Called(ctx)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}
