package domain_test

import (
	"testing"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountRule_AmountFor(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	percent := domain.DiscountRule{Kind: domain.Percentage, Value: decimal.NewFromInt(10)}
	assert.True(t, percent.AmountFor(hundred).Equal(decimal.NewFromInt(10)))

	fixed := domain.DiscountRule{Kind: domain.FixedAmount, Value: decimal.NewFromInt(5)}
	assert.True(t, fixed.AmountFor(hundred).Equal(decimal.NewFromInt(5)))

	// Clamped to the amount it applies against.
	bigFixed := domain.DiscountRule{Kind: domain.FixedAmount, Value: decimal.NewFromInt(500)}
	assert.True(t, bigFixed.AmountFor(hundred).Equal(hundred))

	// Nothing off a non-positive amount.
	assert.True(t, percent.AmountFor(decimal.Zero).IsZero())
	assert.True(t, percent.AmountFor(decimal.NewFromInt(-5)).IsZero())

	negative := domain.DiscountRule{Kind: domain.FixedAmount, Value: decimal.NewFromInt(-5)}
	assert.True(t, negative.AmountFor(hundred).IsZero())
}

func TestDiscountRule_IsActiveAt(t *testing.T) {
	now := time.Now().UTC()

	open := domain.DiscountRule{ValidFrom: now.Add(-time.Hour)}
	assert.True(t, open.IsActiveAt(now))

	bounded := domain.DiscountRule{ValidFrom: now.Add(-time.Hour), ValidUntil: now.Add(time.Hour)}
	assert.True(t, bounded.IsActiveAt(now))
	assert.False(t, bounded.IsActiveAt(now.Add(2*time.Hour)))

	future := domain.DiscountRule{ValidFrom: now.Add(time.Hour)}
	assert.False(t, future.IsActiveAt(now))
}

func TestCartLine_BaseAmount(t *testing.T) {
	line := domain.CartLine{
		Quantity:  decimal.RequireFromString("1.250"),
		UnitPrice: decimal.RequireFromString("4.00"),
	}

	assert.True(t, line.BaseAmount().Equal(decimal.RequireFromString("5.00")))
}
