package mapping

import (
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product.
// The engine treats the catalog as read-only, so no reverse mapper exists.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:  m.ProductID,
		BusinessID: m.BusinessID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		UnitPrice:  m.UnitPrice,
		Tax: domain.TaxCategory{
			Rate:      m.TaxRate,
			Inclusive: m.TaxInclusive,
		},
		Stock: domain.StockPolicy{
			AllowNegative: m.AllowNegative,
		},
	}
}

// ToDomainDiscountRule converts a model DiscountRule to a domain DiscountRule
func ToDomainDiscountRule(m models.DiscountRule) domain.DiscountRule {
	return domain.DiscountRule{
		RuleID:     m.RuleID,
		BusinessID: m.BusinessID,
		Scope:      domain.DiscountScope(m.Scope),
		TargetID:   m.TargetID,
		Kind:       domain.DiscountKind(m.Kind),
		Value:      m.Value,
		Stackable:  m.Stackable,
		Priority:   m.Priority,
		ValidFrom:  m.ValidFrom,
		ValidUntil: m.ValidUntil,
	}
}
