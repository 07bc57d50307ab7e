package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ryan-gillies/commish/model"
)

const SleeperURL = "https://api.sleeper.app/v1"

var (
	ErrLeagueNotFound = errors.New("league not found")
	ErrNoLeagues      = errors.New("no leagues found")
)

type Client interface {
	GetState(ctx context.Context) (*model.NFLState, error)
	GetLeaguesForUser(ctx context.Context, userID string, season int) ([]model.League, error)
	GetLeague(ctx context.Context, leagueID string) (*model.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error)
	GetUsers(ctx context.Context, leagueID string) ([]model.User, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]model.MatchupEntry, error)
	GetWinnersBracket(ctx context.Context, leagueID string) ([]model.BracketMatch, error)
	LoadPlayers(ctx context.Context) ([]model.Player, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(url string) (Client, error) {
	if url == "" {
		url = SleeperURL
	}
	c := &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url + "/v1",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// get sends a GET request to the sleeper api and decodes the JSON response
// into a T. Sleeper answers unknown ids with a 200 and a body of "null" so
// callers need to check for a zero value.
func get[T any](ctx context.Context, c *client, path string) (T, error) {
	var result T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return result, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("unexpected status code from %s: %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return result, nil
}

func (c *client) GetState(ctx context.Context) (*model.NFLState, error) {
	s, err := get[*sleeperState](ctx, c, "/state/nfl")
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("no state returned from sleeper")
	}
	return s.toState()
}

func (c *client) GetLeaguesForUser(ctx context.Context, userID string, season int) ([]model.League, error) {
	leagues, err := get[[]sleeperLeague](ctx, c, fmt.Sprintf("/user/%s/leagues/nfl/%d", userID, season))
	if err != nil {
		return nil, err
	}
	if len(leagues) == 0 {
		return nil, ErrNoLeagues
	}

	result := make([]model.League, 0, len(leagues))
	for _, l := range leagues {
		result = append(result, l.toLeague())
	}
	return result, nil
}

func (c *client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	l, err := get[*sleeperLeague](ctx, c, "/league/"+leagueID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("error loading league %s: %w", leagueID, ErrLeagueNotFound)
	}
	league := l.toLeague()
	return &league, nil
}

func (c *client) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	rosters, err := get[[]sleeperRoster](ctx, c, fmt.Sprintf("/league/%s/rosters", leagueID))
	if err != nil {
		return nil, err
	}

	result := make([]model.Roster, 0, len(rosters))
	for _, r := range rosters {
		result = append(result, r.toRoster())
	}
	return result, nil
}

// GetUsers returns the owners of a league. RosterID is not set since sleeper
// links users to rosters through the roster's owner_id.
func (c *client) GetUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	users, err := get[[]sleeperUser](ctx, c, fmt.Sprintf("/league/%s/users", leagueID))
	if err != nil {
		return nil, err
	}

	result := make([]model.User, 0, len(users))
	for _, u := range users {
		result = append(result, u.toUser(leagueID))
	}
	return result, nil
}

func (c *client) GetMatchups(ctx context.Context, leagueID string, week int) ([]model.MatchupEntry, error) {
	matchups, err := get[[]sleeperMatchup](ctx, c, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week))
	if err != nil {
		return nil, err
	}

	result := make([]model.MatchupEntry, 0, len(matchups))
	for _, m := range matchups {
		result = append(result, m.toEntry(week))
	}
	return result, nil
}

func (c *client) GetWinnersBracket(ctx context.Context, leagueID string) ([]model.BracketMatch, error) {
	bracket, err := get[[]sleeperBracketMatch](ctx, c, fmt.Sprintf("/league/%s/winners_bracket", leagueID))
	if err != nil {
		return nil, err
	}

	result := make([]model.BracketMatch, 0, len(bracket))
	for _, m := range bracket {
		result = append(result, m.toBracketMatch())
	}
	return result, nil
}

func (c *client) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	parsed, err := get[map[string]sleeperPlayer](ctx, c, "/players/nfl")
	if err != nil {
		return nil, err
	}

	// Convert the players into model.Players
	result := make([]model.Player, 0, len(parsed))
	for id, p := range parsed {
		if p.FirstName == "Player" && p.LastName == "Invalid" {
			continue
		}
		if p.ID == "" {
			p.ID = id
		}
		pos := model.ParsePosition(p.Position)
		if pos == model.POS_UNKNOWN {
			continue
		}
		result = append(result, *p.toPlayer())
	}

	return result, nil
}

func parseSeason(s string) int {
	season, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return season
}
