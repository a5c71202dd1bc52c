package domain

import (
	"errors"
	"fmt"

	dErrors "registrar/pkg/domain-errors"
)

var ErrNegativeMoneyAmount = errors.New("money amount cannot be negative")

// MoneyAmount is a non-negative amount in integer cents. Integer minor units
// avoid floating-point drift in budget arithmetic.
type MoneyAmount struct {
	cents int64
}

// NewMoneyAmount validates that cents is non-negative.
func NewMoneyAmount(cents int64) (MoneyAmount, error) {
	if cents < 0 {
		return MoneyAmount{}, dErrors.Wrap(ErrNegativeMoneyAmount, dErrors.CodeValidation, "invalid money amount")
	}
	return MoneyAmount{cents: cents}, nil
}

// MustMoneyAmount panics on invalid input; for tests and constants.
func MustMoneyAmount(cents int64) MoneyAmount {
	amount, err := NewMoneyAmount(cents)
	if err != nil {
		panic(err)
	}
	return amount
}

func (m MoneyAmount) Cents() int64 { return m.cents }

// IsPositive reports whether the amount is strictly greater than zero.
// Department budgets must be positive, not merely non-negative.
func (m MoneyAmount) IsPositive() bool { return m.cents > 0 }

func (m MoneyAmount) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
