package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryMain Category = "main"
	CategorySide Category = "side"
)

type Subtype string

const (
	SubtypeWeekly           Subtype = "weekly"
	SubtypeSeasonCumulative Subtype = "season_cumulative"
	SubtypeSeasonHigh       Subtype = "season_high"
	SubtypeSpecialWeek      Subtype = "special_week"
	SubtypeProp             Subtype = "prop"
	SubtypePlayoff          Subtype = "playoff"
)

type PoolStatus string

const (
	PoolUnresolved PoolStatus = "unresolved"
	PoolResolved   PoolStatus = "resolved"
	PoolPaid       PoolStatus = "paid"
)

// Pool is a single competition within a season. Special week pools are split
// into one child pool per winner when they are resolved, the children point
// back to the original with ParentPoolID.
type Pool struct {
	LeagueID       string          `json:"league_id"`
	PoolID         string          `json:"pool_id"`
	Name           string          `json:"pool_class"`
	Label          string          `json:"label"`
	Category       Category        `json:"pool_type"`
	Subtype        Subtype         `json:"pool_subtype"`
	Week           int             `json:"week"`
	PayoutPct      decimal.Decimal `json:"payout_pct"`
	PayoutAmount   decimal.Decimal `json:"payout_amount"`
	Winner         string          `json:"winner,omitempty"`
	WinnerRosterID int             `json:"winner_roster_id,omitempty"`
	WinnerPayload  *Standing       `json:"winner_payload,omitempty"`
	ParentPoolID   string          `json:"parent_pool_id,omitempty"`
	Paid           bool            `json:"paid"`
	Created        time.Time       `json:"created"`
	Updated        time.Time       `json:"updated"`
}

func (p *Pool) Status() PoolStatus {
	switch {
	case p.Paid:
		return PoolPaid
	case p.Winner != "":
		return PoolResolved
	default:
		return PoolUnresolved
	}
}

// IsSplit reports whether the pool is the parent of per-winner child pools.
func (p *Pool) IsSplit() bool {
	return p.Subtype == SubtypeSpecialWeek && p.ParentPoolID == ""
}

func (p *Pool) PaymentMemo() string {
	return fmt.Sprintf("Payout for pool %s, week %d", p.Label, p.Week)
}

func (p *Pool) String() string {
	return fmt.Sprintf("pool: %s, week: %d, payout: %s, winner: %s, paid: %v",
		p.Label, p.Week, p.PayoutAmount.StringFixed(2), p.Winner, p.Paid)
}

// LabelFromID turns a pool id like "highest_score_of_week_3" into
// "Highest Score Of Week 3".
func LabelFromID(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PoolFilter narrows ListPools. Zero values match everything.
type PoolFilter struct {
	LeagueID string
	Season   int
	Username string
}

// Payout is an entry in the append only payout ledger.
type Payout struct {
	ID            string          `json:"id"`
	PoolID        string          `json:"pool"`
	LeagueID      string          `json:"league_id"`
	Week          int             `json:"week"`
	Season        int             `json:"season"`
	Username      string          `json:"username"`
	PaymentHandle string          `json:"payment_handle"`
	Amount        decimal.Decimal `json:"amount"`
	Paid          bool            `json:"paid"`
	Created       time.Time       `json:"created"`
}

// PayoutSummary is the total paid to one user.
type PayoutSummary struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
}
