package payment

import (
	"context"
	"time"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
)

// CardDetails is what the mobile form collects. The simulated processor only
// needs enough to pretend.
type CardDetails struct {
	Number   string `json:"number" validate:"required,min=13,max=19"`
	Holder   string `json:"holder" validate:"required"`
	ExpiryMM int    `json:"expiry_mm" validate:"required,min=1,max=12"`
	ExpiryYY int    `json:"expiry_yy" validate:"required"`
	CVV      string `json:"cvv" validate:"required,len=3"`
}

// Processor charges a card. It is an opaque collaborator: success or failure,
// no partial states.
type Processor interface {
	Charge(ctx context.Context, amount int64, card CardDetails) error
}

// simulatedProcessor approves every charge after a fixed delay, matching the
// behavior of the payment stub this service launched with.
type simulatedProcessor struct {
	delay time.Duration
}

func NewSimulatedProcessor(delay time.Duration) Processor {
	return &simulatedProcessor{delay: delay}
}

func (p *simulatedProcessor) Charge(ctx context.Context, amount int64, card CardDetails) error {
	logger.ExternalServiceCall("payment", "Charge", "amount", amount)

	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if card.Number == "" || card.Holder == "" {
		logger.ExternalServiceResult("payment", "Charge", domain.ErrPaymentDeclined)
		return domain.ErrPaymentDeclined
	}

	logger.ExternalServiceResult("payment", "Charge", nil)
	return nil
}
