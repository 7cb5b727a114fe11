package services_test

import (
	"testing"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrecision = int32(2)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func cartLine(lineID, productID, categoryID, qty, unitPrice string) domain.CartLine {
	return domain.CartLine{
		LineID:     lineID,
		ProductID:  productID,
		CategoryID: categoryID,
		Quantity:   dec(qty),
		UnitPrice:  dec(unitPrice),
		Unit:       domain.UnitEach,
	}
}

func TestResolveDiscounts_NoMatchingRules(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{cartLine("l1", "p1", "c1", "1", "10.00")}
	rules := []domain.DiscountRule{
		{RuleID: "r1", Scope: domain.ScopeProduct, TargetID: "other", Kind: domain.Percentage, Value: dec("10")},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	assert.Empty(t, resolved.Line["l1"])
	assert.Empty(t, resolved.Order)
	assert.True(t, resolved.LineDiscountTotal("l1").IsZero())
}

func TestResolveDiscounts_StackableRulesApplySequentially(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{cartLine("l1", "p1", "c1", "1", "100.00")}
	rules := []domain.DiscountRule{
		{RuleID: "r-low", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("10"), Stackable: true, Priority: 1},
		{RuleID: "r-high", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("20"), Stackable: true, Priority: 2},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	applied := resolved.Line["l1"]
	require.Len(t, applied, 2)
	// Higher priority applies first against the full base, the next against
	// the running discounted amount: 20.00, then 10% of 80.00.
	assert.Equal(t, "r-high", applied[0].RuleID)
	assert.True(t, applied[0].Amount.Equal(dec("20.00")), "got %s", applied[0].Amount)
	assert.Equal(t, "r-low", applied[1].RuleID)
	assert.True(t, applied[1].Amount.Equal(dec("8.00")), "got %s", applied[1].Amount)
	assert.True(t, resolved.LineDiscountTotal("l1").Equal(dec("28.00")))
}

func TestResolveDiscounts_NonStackableHighestPriorityWins(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{cartLine("l1", "p1", "c1", "1", "100.00")}
	rules := []domain.DiscountRule{
		{RuleID: "r1", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("50"), Stackable: true, Priority: 1},
		{RuleID: "r2", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.FixedAmount, Value: dec("5.00"), Stackable: false, Priority: 2},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	applied := resolved.Line["l1"]
	require.Len(t, applied, 1)
	assert.Equal(t, "r2", applied[0].RuleID)
	assert.True(t, applied[0].Amount.Equal(dec("5.00")))
}

func TestResolveDiscounts_PriorityTieBreaksOnLargerDiscount(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{cartLine("l1", "p1", "c1", "1", "100.00")}
	rules := []domain.DiscountRule{
		{RuleID: "r-small", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.FixedAmount, Value: dec("5.00"), Priority: 3},
		{RuleID: "r-big", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("10"), Priority: 3},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	applied := resolved.Line["l1"]
	require.Len(t, applied, 1)
	assert.Equal(t, "r-big", applied[0].RuleID)
	assert.True(t, applied[0].Amount.Equal(dec("10.00")))
}

func TestResolveDiscounts_FullTieBreaksOnSmallestRuleID(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{cartLine("l1", "p1", "c1", "1", "100.00")}
	rules := []domain.DiscountRule{
		{RuleID: "rule-b", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.FixedAmount, Value: dec("10.00"), Priority: 1},
		{RuleID: "rule-a", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.FixedAmount, Value: dec("10.00"), Priority: 1},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	applied := resolved.Line["l1"]
	require.Len(t, applied, 1)
	assert.Equal(t, "rule-a", applied[0].RuleID)
}

func TestResolveDiscounts_ManualOverrideReplacesRules(t *testing.T) {
	now := time.Now().UTC()
	manual := dec("3.00")
	line := cartLine("l1", "p1", "c1", "1", "100.00")
	line.ManualDiscount = &manual
	rules := []domain.DiscountRule{
		{RuleID: "r1", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("50"), Priority: 10},
	}

	resolved := services.ResolveDiscounts([]domain.CartLine{line}, rules, now, testPrecision)

	applied := resolved.Line["l1"]
	require.Len(t, applied, 1)
	assert.Empty(t, applied[0].RuleID)
	assert.True(t, applied[0].Amount.Equal(dec("3.00")))
}

func TestResolveDiscounts_ManualOverrideClampedToBase(t *testing.T) {
	now := time.Now().UTC()
	manual := dec("25.00")
	line := cartLine("l1", "p1", "c1", "1", "10.00")
	line.ManualDiscount = &manual

	resolved := services.ResolveDiscounts([]domain.CartLine{line}, nil, now, testPrecision)

	applied := resolved.Line["l1"]
	require.Len(t, applied, 1)
	assert.True(t, applied[0].Amount.Equal(dec("10.00")))
}

func TestResolveDiscounts_ValidityWindowFiltersRules(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{cartLine("l1", "p1", "c1", "1", "100.00")}
	rules := []domain.DiscountRule{
		{RuleID: "r-expired", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("50"),
			ValidFrom: now.Add(-48 * time.Hour), ValidUntil: now.Add(-24 * time.Hour)},
		{RuleID: "r-future", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("40"),
			ValidFrom: now.Add(24 * time.Hour)},
		// Zero ValidUntil means open-ended.
		{RuleID: "r-live", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("10"),
			ValidFrom: now.Add(-time.Hour)},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	applied := resolved.Line["l1"]
	require.Len(t, applied, 1)
	assert.Equal(t, "r-live", applied[0].RuleID)
	assert.True(t, applied[0].Amount.Equal(dec("10.00")))
}

func TestResolveDiscounts_CategoryScopeMatchesLineCategory(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{
		cartLine("l1", "p1", "produce", "1", "10.00"),
		cartLine("l2", "p2", "bakery", "1", "10.00"),
	}
	rules := []domain.DiscountRule{
		{RuleID: "r-produce", Scope: domain.ScopeCategory, TargetID: "produce", Kind: domain.Percentage, Value: dec("10")},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	require.Len(t, resolved.Line["l1"], 1)
	assert.True(t, resolved.Line["l1"][0].Amount.Equal(dec("1.00")))
	assert.Empty(t, resolved.Line["l2"])
}

func TestResolveDiscounts_OrderRulesActOnPostDiscountSubtotal(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{cartLine("l1", "p1", "c1", "1", "100.00")}
	rules := []domain.DiscountRule{
		{RuleID: "r-line", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("10")},
		{RuleID: "r-order", Scope: domain.ScopeOrder, Kind: domain.Percentage, Value: dec("10")},
	}

	resolved := services.ResolveDiscounts(lines, rules, now, testPrecision)

	require.Len(t, resolved.Order, 1)
	// 10% off the 90.00 that remains after the line discount.
	assert.True(t, resolved.Order[0].Amount.Equal(dec("9.00")), "got %s", resolved.Order[0].Amount)
	assert.True(t, resolved.OrderDiscountTotal().Equal(dec("9.00")))
}

func TestResolveDiscounts_DeterministicForIdenticalInput(t *testing.T) {
	now := time.Now().UTC()
	lines := []domain.CartLine{
		cartLine("l1", "p1", "c1", "2", "19.99"),
		cartLine("l2", "p2", "c1", "1", "5.49"),
	}
	rules := []domain.DiscountRule{
		{RuleID: "r1", Scope: domain.ScopeCategory, TargetID: "c1", Kind: domain.Percentage, Value: dec("15"), Stackable: true, Priority: 2},
		{RuleID: "r2", Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.FixedAmount, Value: dec("2.00"), Stackable: true, Priority: 1},
		{RuleID: "r3", Scope: domain.ScopeOrder, Kind: domain.Percentage, Value: dec("5")},
	}

	first := services.ResolveDiscounts(lines, rules, now, testPrecision)
	second := services.ResolveDiscounts(lines, rules, now, testPrecision)

	assert.Equal(t, first.Line, second.Line)
	assert.Equal(t, first.Order, second.Order)
	assert.True(t, first.OrderDiscountTotal().Equal(second.OrderDiscountTotal()))
}
