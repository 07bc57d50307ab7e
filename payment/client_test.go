package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/ryan-gillies/commish/testutils"
	"github.com/shopspring/decimal"
)

func TestSend(t *testing.T) {
	fakePayments := testutils.NewFakePaymentServer()
	defer fakePayments.Close()

	c := New(fakePayments.URL(), testutils.PaymentAccessToken)

	key := PayoutKey("1124831356770058240", "highest_score_of_week_3")
	receipt, err := c.Send(context.Background(), "Greg-Tiller", decimal.RequireFromString("16.67"), "Payout for pool Highest Score Of Week 3, week 3", key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.ID != "pmt_1" || receipt.Status != "completed" || receipt.Handle != "Greg-Tiller" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
	if !receipt.Amount.Equal(decimal.RequireFromString("16.67")) {
		t.Errorf("expected amount 16.67, got %s", receipt.Amount)
	}

	payments := fakePayments.Payments()
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0].IdempotencyKey != key || receipt.IdempotencyKey != key {
		t.Errorf("expected idempotency key %s, got %s", key, payments[0].IdempotencyKey)
	}
	if payments[0].Note != "Payout for pool Highest Score Of Week 3, week 3" {
		t.Errorf("unexpected memo: %s", payments[0].Note)
	}
}

func TestSend_retrySameKey(t *testing.T) {
	fakePayments := testutils.NewFakePaymentServer()
	defer fakePayments.Close()

	c := New(fakePayments.URL(), testutils.PaymentAccessToken)
	for range 2 {
		_, err := c.Send(context.Background(), "Greg-Tiller", decimal.NewFromInt(200), "memo",
			PayoutKey("1124831356770058240", "league_winner"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	payments := fakePayments.Payments()
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
	if payments[0].IdempotencyKey != payments[1].IdempotencyKey {
		t.Errorf("expected both sends to carry the same idempotency key, got %s and %s",
			payments[0].IdempotencyKey, payments[1].IdempotencyKey)
	}
}

func TestPayoutKey(t *testing.T) {
	tests := map[string]struct {
		leagueID string
		poolID   string
		same     bool
	}{
		"same pool":    {leagueID: "L1", poolID: "league_winner", same: true},
		"other pool":   {leagueID: "L1", poolID: "league_runner_up"},
		"other league": {leagueID: "L2", poolID: "league_winner"},
		"joined id":    {leagueID: "L1/league", poolID: "winner"},
	}

	base := PayoutKey("L1", "league_winner")
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := PayoutKey(tc.leagueID, tc.poolID)
			if (got == base) != tc.same {
				t.Errorf("expected same=%v for %s/%s, got key %s vs %s", tc.same, tc.leagueID, tc.poolID, got, base)
			}
		})
	}
}

func TestSendErrors(t *testing.T) {
	fakePayments := testutils.NewFakePaymentServer()
	defer fakePayments.Close()

	tests := map[string]struct {
		token  string
		handle string
		amount decimal.Decimal
		noKey  bool
		err    error
	}{
		"declined":    {token: testutils.PaymentAccessToken, handle: testutils.DeclinedHandle, amount: decimal.NewFromInt(10), err: ErrPaymentFailed},
		"bad token":   {token: "wrong", handle: "Greg-Tiller", amount: decimal.NewFromInt(10), err: ErrPaymentFailed},
		"no handle":   {token: testutils.PaymentAccessToken, handle: "", amount: decimal.NewFromInt(10), err: ErrMissingHandle},
		"zero amount": {token: testutils.PaymentAccessToken, handle: "Greg-Tiller", amount: decimal.Zero, err: ErrInvalidAmount},
		"below zero":  {token: testutils.PaymentAccessToken, handle: "Greg-Tiller", amount: decimal.NewFromInt(-5), err: ErrInvalidAmount},
		"no key":      {token: testutils.PaymentAccessToken, handle: "Greg-Tiller", amount: decimal.NewFromInt(10), noKey: true, err: ErrMissingKey},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			key := PayoutKey("league", "pool")
			if tc.noKey {
				key = ""
			}
			c := New(fakePayments.URL(), tc.token)
			receipt, err := c.Send(context.Background(), tc.handle, tc.amount, "memo", key)
			if !errors.Is(err, tc.err) {
				t.Errorf("expected error '%v', got '%v'", tc.err, err)
			}
			if receipt != nil {
				t.Errorf("expected no receipt, got %+v", receipt)
			}
		})
	}

	if n := len(fakePayments.Payments()); n != 0 {
		t.Errorf("expected no accepted payments, got %d", n)
	}
}
