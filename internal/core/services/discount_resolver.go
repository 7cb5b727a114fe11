package services

import (
	"sort"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/money"
	"github.com/shopspring/decimal"
)

// ResolvedDiscounts is the output of discount resolution: the chosen rules and
// amounts per line (keyed by line ID) and for the order as a whole.
type ResolvedDiscounts struct {
	Line  map[string][]domain.AppliedDiscount
	Order []domain.AppliedDiscount
}

// LineDiscountTotal sums the resolved discounts for one line.
func (r ResolvedDiscounts) LineDiscountTotal(lineID string) decimal.Decimal {
	total := decimal.Zero
	for _, d := range r.Line[lineID] {
		total = total.Add(d.Amount)
	}
	return total
}

// OrderDiscountTotal sums the resolved order-wide discounts.
func (r ResolvedDiscounts) OrderDiscountTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range r.Order {
		total = total.Add(d.Amount)
	}
	return total
}

// ResolveDiscounts selects the best applicable discounts for each cart line
// and for the order. It is a pure function of its inputs: no side effects,
// deterministic and idempotent for identical inputs and rule snapshots, which
// is what makes pricing replayable for audit.
//
// Per line: rules are filtered by scope match and validity window. When every
// matching rule is stackable they all apply in priority order, each computed
// against the running discounted amount (one sequential pass, no compounding
// beyond it). Otherwise a single rule wins: highest priority first, then the
// largest discount computed against the line, then the smallest rule ID.
// A manual cashier override on a line replaces rule resolution entirely.
//
// Order-wide rules resolve last, against the post-discount subtotal.
func ResolveDiscounts(lines []domain.CartLine, rules []domain.DiscountRule, at time.Time, precision int32) ResolvedDiscounts {
	resolved := ResolvedDiscounts{Line: make(map[string][]domain.AppliedDiscount, len(lines))}

	for _, line := range lines {
		base := line.BaseAmount()

		if line.ManualDiscount != nil {
			amount := money.Round(*line.ManualDiscount, precision)
			if amount.GreaterThan(base) {
				amount = base
			}
			if amount.GreaterThan(decimal.Zero) {
				resolved.Line[line.LineID] = []domain.AppliedDiscount{{Amount: amount}}
			}
			continue
		}

		matched := matchLineRules(line, rules, at)
		if len(matched) == 0 {
			continue
		}
		resolved.Line[line.LineID] = applyRules(matched, base, precision)
	}

	// Order-wide rules act on the subtotal that remains after line discounts.
	postDiscountSubtotal := decimal.Zero
	for _, line := range lines {
		postDiscountSubtotal = postDiscountSubtotal.Add(line.BaseAmount().Sub(resolved.LineDiscountTotal(line.LineID)))
	}

	orderRules := make([]domain.DiscountRule, 0)
	for _, rule := range rules {
		if rule.Scope == domain.ScopeOrder && rule.IsActiveAt(at) {
			orderRules = append(orderRules, rule)
		}
	}
	if len(orderRules) > 0 {
		resolved.Order = applyRules(orderRules, postDiscountSubtotal, precision)
	}

	return resolved
}

// matchLineRules filters rules whose scope matches the line and whose
// validity window contains the instant.
func matchLineRules(line domain.CartLine, rules []domain.DiscountRule, at time.Time) []domain.DiscountRule {
	matched := make([]domain.DiscountRule, 0)
	for _, rule := range rules {
		if !rule.IsActiveAt(at) {
			continue
		}
		switch rule.Scope {
		case domain.ScopeProduct:
			if rule.TargetID == line.ProductID {
				matched = append(matched, rule)
			}
		case domain.ScopeCategory:
			if rule.TargetID == line.CategoryID {
				matched = append(matched, rule)
			}
		}
	}
	return matched
}

// applyRules applies the matched rule set against an amount. Stacking applies
// only when every matched rule allows it; otherwise the single best rule wins.
func applyRules(matched []domain.DiscountRule, amount decimal.Decimal, precision int32) []domain.AppliedDiscount {
	allStackable := true
	for _, rule := range matched {
		if !rule.Stackable {
			allStackable = false
			break
		}
	}

	if allStackable {
		sortByPriority(matched)
		applied := make([]domain.AppliedDiscount, 0, len(matched))
		running := amount
		for _, rule := range matched {
			d := money.Round(rule.AmountFor(running), precision)
			if d.LessThanOrEqual(decimal.Zero) {
				continue
			}
			applied = append(applied, domain.AppliedDiscount{RuleID: rule.RuleID, Amount: d})
			running = running.Sub(d)
		}
		return applied
	}

	best := selectBestRule(matched, amount)
	d := money.Round(best.AmountFor(amount), precision)
	if d.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return []domain.AppliedDiscount{{RuleID: best.RuleID, Amount: d}}
}

// selectBestRule picks the winning rule when stacking is disallowed:
// highest priority, tie-break by largest discount against the amount,
// then by rule ID for determinism.
func selectBestRule(matched []domain.DiscountRule, amount decimal.Decimal) domain.DiscountRule {
	best := matched[0]
	bestAmount := best.AmountFor(amount)
	for _, rule := range matched[1:] {
		ruleAmount := rule.AmountFor(amount)
		switch {
		case rule.Priority > best.Priority:
		case rule.Priority == best.Priority && ruleAmount.GreaterThan(bestAmount):
		case rule.Priority == best.Priority && ruleAmount.Equal(bestAmount) && rule.RuleID < best.RuleID:
		default:
			continue
		}
		best = rule
		bestAmount = ruleAmount
	}
	return best
}

// sortByPriority orders rules by priority descending, rule ID ascending.
func sortByPriority(rules []domain.DiscountRule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].RuleID < rules[j].RuleID
	})
}
