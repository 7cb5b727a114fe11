package pgsql

import (
	"context"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	"github.com/Sam231221/AuraSwift-sub015/internal/models"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for product and discount rule data.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCatalogRepository implements portsrepo.CatalogRepositoryFacade
var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// FindProductsByIDs retrieves a catalog snapshot for the given product IDs,
// keyed by product ID. Missing products are simply absent from the map; the
// caller decides whether absence is an error.
func (r *PgxCatalogRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `
		SELECT product_id, business_id, category_id, name, unit_price, tax_rate, tax_inclusive, allow_negative_stock
		FROM products
		WHERE product_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		var m models.Product
		if err := rows.Scan(
			&m.ProductID,
			&m.BusinessID,
			&m.CategoryID,
			&m.Name,
			&m.UnitPrice,
			&m.TaxRate,
			&m.TaxInclusive,
			&m.AllowNegative,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return products, nil
}

// ListActiveDiscountRules retrieves the discount rules whose validity window
// contains the given instant. The window filter runs in SQL so the rule set
// handed to the resolver is already the active snapshot.
func (r *PgxCatalogRepository) ListActiveDiscountRules(ctx context.Context, businessID string, at time.Time) ([]domain.DiscountRule, error) {
	query := `
		SELECT rule_id, business_id, scope, target_id, kind, value, stackable, priority, valid_from, valid_until
		FROM discount_rules
		WHERE business_id = $1
		  AND valid_from <= $2
		  AND (valid_until IS NULL OR valid_until >= $2)
		ORDER BY priority DESC, rule_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, at)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query discount rules", err)
	}
	defer rows.Close()

	var rules []domain.DiscountRule
	for rows.Next() {
		var m models.DiscountRule
		var validUntil *time.Time
		if err := rows.Scan(
			&m.RuleID,
			&m.BusinessID,
			&m.Scope,
			&m.TargetID,
			&m.Kind,
			&m.Value,
			&m.Stackable,
			&m.Priority,
			&m.ValidFrom,
			&validUntil,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan discount rule row", err)
		}
		if validUntil != nil {
			m.ValidUntil = *validUntil
		}
		rules = append(rules, mapping.ToDomainDiscountRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating discount rule rows", err)
	}
	return rules, nil
}
