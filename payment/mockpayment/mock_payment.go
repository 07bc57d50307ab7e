package mockpayment

import (
	"context"

	"github.com/ryan-gillies/commish/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) Send(ctx context.Context, handle string, amount decimal.Decimal, memo, key string) (*payment.Receipt, error) {
	args := c.Called(ctx, handle, amount, memo, key)

	var res *payment.Receipt
	if args.Get(0) != nil {
		res = args.Get(0).(*payment.Receipt)
	}

	return res, args.Error(1)
}
