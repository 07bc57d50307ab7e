package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/payment"
)

func (c *controller) PayPool(ctx context.Context, leagueID, poolID string) (*model.Payout, error) {
	if c.payments == nil {
		return nil, ErrPaymentsDisabled
	}

	p, err := c.db.GetPool(ctx, leagueID, poolID)
	if err != nil {
		return nil, err
	}
	return c.payPool(ctx, p)
}

func (c *controller) payPool(ctx context.Context, p *model.Pool) (*model.Payout, error) {
	switch {
	case p.Paid:
		return nil, fmt.Errorf("error paying pool %s: %w", p.PoolID, ErrAlreadyPaid)
	case p.IsSplit():
		return nil, fmt.Errorf("error paying pool %s: %w", p.PoolID, ErrSplitPool)
	case p.Winner == "":
		return nil, fmt.Errorf("error paying pool %s: %w", p.PoolID, ErrNotResolved)
	}

	season, err := c.db.GetSeason(ctx, p.LeagueID)
	if err != nil {
		return nil, err
	}
	u, err := c.db.GetUserByRoster(ctx, p.LeagueID, p.WinnerRosterID)
	if err != nil {
		return nil, fmt.Errorf("error looking up the winner of pool %s: %w", p.PoolID, err)
	}
	if u.PaymentHandle == "" {
		return nil, fmt.Errorf("error paying pool %s to %s: %w", p.PoolID, u.Username, ErrNoPaymentHandle)
	}

	receipt, err := c.payments.Send(ctx, u.PaymentHandle, p.PayoutAmount, p.PaymentMemo(), payment.PayoutKey(p.LeagueID, p.PoolID))
	if err != nil {
		return nil, fmt.Errorf("error paying pool %s to %s: %w", p.PoolID, u.Username, err)
	}

	payout := &model.Payout{
		ID:            uuid.NewString(),
		PoolID:        p.PoolID,
		LeagueID:      p.LeagueID,
		Week:          p.Week,
		Season:        season.Season,
		Username:      u.Username,
		PaymentHandle: u.PaymentHandle,
		Amount:        p.PayoutAmount,
	}
	if err := c.db.MarkPoolPaid(ctx, p, payout); err != nil {
		// The money has moved, this needs to be fixed by hand.
		log.Error().
			Err(err).
			Str("league_id", p.LeagueID).
			Str("pool_id", p.PoolID).
			Str("receipt", receipt.ID).
			Msg("payment sent but pool not marked paid")
		return nil, err
	}

	log.Info().
		Str("league_id", p.LeagueID).
		Str("pool_id", p.PoolID).
		Int("week", p.Week).
		Str("winner", u.Username).
		Str("amount", p.PayoutAmount.StringFixed(2)).
		Str("receipt", receipt.ID).
		Msg("pool paid")
	return payout, nil
}

// payResolved pays every resolved and unpaid pool of a season. A failed
// payment does not stop the others.
func (c *controller) payResolved(ctx context.Context, leagueID string) ([]model.Payout, error) {
	all, err := c.db.ListPools(ctx, model.PoolFilter{LeagueID: leagueID})
	if err != nil {
		return nil, err
	}

	payouts := make([]model.Payout, 0, 4)
	var errs []error
	for i := range all {
		p := &all[i]
		if p.Paid || p.Winner == "" {
			continue
		}
		payout, err := c.payPool(ctx, p)
		if err != nil {
			log.Error().Err(err).Str("league_id", leagueID).Str("pool_id", p.PoolID).Msg("error paying pool")
			errs = append(errs, err)
			continue
		}
		payouts = append(payouts, *payout)
	}
	return payouts, errors.Join(errs...)
}
