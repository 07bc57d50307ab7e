package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/pools"
)

var ErrMissingEntry = errors.New("missing config entry")

// Season is the configuration of one league season, read from
// <dir>/<year>.yaml.
type Season struct {
	Year int `yaml:"-"`

	Credentials struct {
		SleeperUserID string `yaml:"sleeper_user_id"`
	} `yaml:"credentials"`

	// LeagueID selects the league when the user is in more than one.
	LeagueID string `yaml:"league_id"`
	BuyIns   struct {
		Main *decimal.Decimal `yaml:"main_buy_in"`
		Side *decimal.Decimal `yaml:"side_buy_in"`
	} `yaml:"buy_ins"`

	// Optouts are the sleeper user ids of owners not playing the side pools.
	Optouts []string `yaml:"optouts"`

	Calendar struct {
		OpeningWeek      int `yaml:"opening_week"`
		RivalryWeek      int `yaml:"rivalry_week"`
		LastRegularWeek  int `yaml:"last_regular_week"`
		ChampionshipWeek int `yaml:"championship_week"`
	} `yaml:"calendar"`

	// PaymentHandles maps sleeper usernames to payment handles.
	PaymentHandles map[string]string `yaml:"payment_handles"`

	SidePools []PoolEntry `yaml:"side_pools"`
	MainPools []PoolEntry `yaml:"main_pools"`
}

type PoolEntry struct {
	Pool   string          `yaml:"pool"`
	Payout decimal.Decimal `yaml:"payout"`
	PoolID string          `yaml:"pool_id"`
}

// LoadSeason reads and validates the configuration for a season.
func LoadSeason(dir string, year int) (*Season, error) {
	path := filepath.Join(dir, strconv.Itoa(year)+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading season config: %w", err)
	}
	return ParseSeason(data, year)
}

func ParseSeason(data []byte, year int) (*Season, error) {
	var s Season
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing season config for %d: %w", year, err)
	}
	s.Year = year

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid season config for %d: %w", year, err)
	}
	return &s, nil
}

func (s *Season) validate() error {
	switch {
	case s.Credentials.SleeperUserID == "":
		return fmt.Errorf("credentials.sleeper_user_id: %w", ErrMissingEntry)
	case s.BuyIns.Main == nil:
		return fmt.Errorf("buy_ins.main_buy_in: %w", ErrMissingEntry)
	case s.BuyIns.Side == nil:
		return fmt.Errorf("buy_ins.side_buy_in: %w", ErrMissingEntry)
	case len(s.SidePools) == 0 && len(s.MainPools) == 0:
		return fmt.Errorf("side_pools or main_pools: %w", ErrMissingEntry)
	}

	for _, e := range s.Entries() {
		if e.Name == "" {
			return fmt.Errorf("pool name: %w", ErrMissingEntry)
		}
		if _, err := e.Check(); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns every configured pool, side pools first.
func (s *Season) Entries() []pools.Entry {
	entries := make([]pools.Entry, 0, len(s.SidePools)+len(s.MainPools))
	for _, p := range s.SidePools {
		entries = append(entries, pools.Entry{Name: p.Pool, Category: model.CategorySide, Payout: p.Payout, PoolID: p.PoolID})
	}
	for _, p := range s.MainPools {
		entries = append(entries, pools.Entry{Name: p.Pool, Category: model.CategoryMain, Payout: p.Payout, PoolID: p.PoolID})
	}
	return entries
}

// ModelCalendar returns the configured calendar with the default filled in
// for every week that is not set.
func (s *Season) ModelCalendar() model.Calendar {
	c := model.DefaultCalendar
	if s.Calendar.OpeningWeek > 0 {
		c.OpeningWeek = s.Calendar.OpeningWeek
	}
	if s.Calendar.RivalryWeek > 0 {
		c.RivalryWeek = s.Calendar.RivalryWeek
	}
	if s.Calendar.LastRegularWeek > 0 {
		c.LastRegularWeek = s.Calendar.LastRegularWeek
	}
	if s.Calendar.ChampionshipWeek > 0 {
		c.ChampionshipWeek = s.Calendar.ChampionshipWeek
	}
	return c
}

// MainBuyIn and SideBuyIn are only valid after the season has been loaded.
func (s *Season) MainBuyIn() decimal.Decimal { return *s.BuyIns.Main }
func (s *Season) SideBuyIn() decimal.Decimal { return *s.BuyIns.Side }

// PaymentHandle returns the payment handle for a username, or "" when there
// is none.
func (s *Season) PaymentHandle(username string) string {
	return s.PaymentHandles[username]
}
