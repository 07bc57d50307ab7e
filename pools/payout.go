package pools

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ryan-gillies/commish/model"
)

var cent = decimal.New(1, -2)

// PayoutAmount is the share of the category's pot a pool pays, rounded to the
// cent.
func PayoutAmount(season *model.Season, category model.Category, pct decimal.Decimal) decimal.Decimal {
	pot := season.SidePot
	if category == model.CategoryMain {
		pot = season.MainPot
	}
	return pct.Mul(pot).Round(2)
}

// SplitAmount divides a payout evenly between winners. Each share is rounded
// on its own so the shares may not add up to the total exactly.
func SplitAmount(total decimal.Decimal, winners int) decimal.Decimal {
	if winners <= 1 {
		return total
	}
	return total.Div(decimal.NewFromInt(int64(winners))).Round(2)
}

// PotMismatchError is returned when the payouts of a category do not add up
// to its pot.
type PotMismatchError struct {
	Category model.Category
	Pot      decimal.Decimal
	Total    decimal.Decimal
}

func (e *PotMismatchError) Error() string {
	return fmt.Sprintf("%s pool payouts total %s but the %s pot is %s",
		e.Category, e.Total.StringFixed(2), e.Category, e.Pot.StringFixed(2))
}

// Validate checks that the payouts of each category add up to the season's
// pot for that category. Each pool is allowed to be a cent off because every
// payout is rounded on its own. Split child pools are not counted since their
// parent already carries the full share.
func Validate(season *model.Season, pools []*model.Pool) error {
	totals := map[model.Category]decimal.Decimal{
		model.CategoryMain: decimal.Zero,
		model.CategorySide: decimal.Zero,
	}
	counts := make(map[model.Category]int)

	for _, p := range pools {
		if p.ParentPoolID != "" {
			continue
		}
		totals[p.Category] = totals[p.Category].Add(p.PayoutAmount)
		counts[p.Category]++
	}

	pots := map[model.Category]decimal.Decimal{
		model.CategoryMain: season.MainPot,
		model.CategorySide: season.SidePot,
	}
	for _, c := range []model.Category{model.CategorySide, model.CategoryMain} {
		tolerance := cent.Mul(decimal.NewFromInt(int64(counts[c])))
		if totals[c].Sub(pots[c]).Abs().GreaterThan(tolerance) {
			return &PotMismatchError{Category: c, Pot: pots[c], Total: totals[c]}
		}
	}
	return nil
}
