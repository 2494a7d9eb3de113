package service

import (
	"crypto/rand"
	"fmt"
	mathrand "math/rand"
	"time"
)

// GatewayResult is what the payment processor reports back for one
// charge attempt.
type GatewayResult struct {
	Success       bool
	TransactionID string
	Message       string
}

// PaymentGateway abstracts the payment processor so the sandbox rules
// can be swapped for a deterministic fake in tests.
type PaymentGateway interface {
	Charge(cardNumber string) GatewayResult
}

// SandboxGateway simulates a payment processor. Business rule carried
// over from the sandbox environment: card numbers ending in 0 are always
// declined, everything else succeeds ~90% of the time.
type SandboxGateway struct {
	randFloat func() float64
	now       func() time.Time
}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{
		randFloat: mathrand.Float64,
		now:       time.Now,
	}
}

// NewSandboxGatewayWithSource builds a gateway with an injected
// randomness source and clock, used by tests.
func NewSandboxGatewayWithSource(randFloat func() float64, now func() time.Time) *SandboxGateway {
	return &SandboxGateway{randFloat: randFloat, now: now}
}

func (g *SandboxGateway) Charge(cardNumber string) GatewayResult {
	lastDigit := byte('0')
	if len(cardNumber) > 0 {
		lastDigit = cardNumber[len(cardNumber)-1]
	}

	success := lastDigit != '0' && g.randFloat() > 0.1
	if !success {
		return GatewayResult{
			Success: false,
			Message: "Payment failed - Card declined",
		}
	}

	return GatewayResult{
		Success:       true,
		TransactionID: g.newTransactionID(),
		Message:       "Payment processed successfully",
	}
}

func (g *SandboxGateway) newTransactionID() string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return fmt.Sprintf("TXN_%d_%x", g.now().UnixMilli(), suffix)
}
