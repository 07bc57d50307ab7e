package testutils

import (
	"github.com/itbasis/go-clock"
)

// TestController bundles the fake external services a controller talks to.
type TestController struct {
	Clock       clock.Clock
	fakeSleeper *FakeSleeperServer
	fakePayment *FakePaymentServer
}

func (c *TestController) Close() {
	c.fakeSleeper.Close()
	c.fakePayment.Close()
}

func (c *TestController) SleeperURL() string {
	return c.fakeSleeper.URL()
}

func (c *TestController) PaymentURL() string {
	return c.fakePayment.URL()
}

// Payments returns the payments accepted by the fake payment server.
func (c *TestController) Payments() []PaymentRequest {
	return c.fakePayment.Payments()
}

func NewTestController(db *TestDB) *TestController {
	return &TestController{
		Clock:       db.Clock,
		fakeSleeper: NewFakeSleeperServer(),
		fakePayment: NewFakePaymentServer(),
	}
}
