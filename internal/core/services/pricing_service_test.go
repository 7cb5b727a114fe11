package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/apperrors"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/domain"
	portsrepo "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/repositories"
	portssvc "github.com/Sam231221/AuraSwift-sub015/internal/core/ports/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/core/services"
	"github.com/Sam231221/AuraSwift-sub015/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockCatalogRepository is a mock type for the CatalogRepositoryFacade interface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) ListActiveDiscountRules(ctx context.Context, businessID string, at time.Time) ([]domain.DiscountRule, error) {
	args := m.Called(ctx, businessID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountRule), args.Error(1)
}

// Ensure the mock satisfies the interface it stands in for
var _ portsrepo.CatalogRepositoryFacade = (*MockCatalogRepository)(nil)

// --- Test Suite Setup ---

type PricingServiceTestSuite struct {
	suite.Suite
	mockCatalog *MockCatalogRepository
	service     portssvc.PricingSvcFacade
	businessID  string
	now         time.Time
}

func (suite *PricingServiceTestSuite) SetupTest() {
	suite.mockCatalog = new(MockCatalogRepository)
	suite.businessID = "biz-1"
	suite.service = services.NewPricingService(suite.mockCatalog, suite.businessID, testPrecision)
	suite.now = time.Now().UTC()
}

func (suite *PricingServiceTestSuite) product(id, categoryID, unitPrice, taxRate string, inclusive bool) domain.Product {
	return domain.Product{
		ProductID:  id,
		BusinessID: suite.businessID,
		CategoryID: categoryID,
		UnitPrice:  dec(unitPrice),
		Tax:        domain.TaxCategory{Rate: dec(taxRate), Inclusive: inclusive},
	}
}

// --- Test Cases ---

func (suite *PricingServiceTestSuite) TestPriceCart_TaxExclusive() {
	ctx := context.Background()
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("2")},
	}}
	products := map[string]domain.Product{"p1": suite.product("p1", "c1", "10.00", "0.10", false)}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1"}).Return(products, nil).Once()
	suite.mockCatalog.On("ListActiveDiscountRules", ctx, suite.businessID, suite.now).Return([]domain.DiscountRule{}, nil).Once()

	pricing, lines, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().NoError(err)
	suite.Require().Len(pricing.Lines, 1)
	suite.Require().Len(lines, 1)
	lp := pricing.Lines[0]
	suite.True(lp.BaseAmount.Equal(dec("20.00")), "base %s", lp.BaseAmount)
	suite.True(lp.TaxAmount.Equal(dec("2.00")), "tax %s", lp.TaxAmount)
	suite.True(lp.NetAmount.Equal(dec("22.00")), "net %s", lp.NetAmount)
	suite.True(pricing.Subtotal.Equal(dec("20.00")))
	suite.True(pricing.TotalDiscount.IsZero())
	suite.True(pricing.TotalTax.Equal(dec("2.00")))
	suite.True(pricing.GrandTotal.Equal(dec("22.00")), "grand %s", pricing.GrandTotal)
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceCart_InclusiveTaxWithDiscount() {
	ctx := context.Background()
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("1")},
	}}
	products := map[string]domain.Product{"p1": suite.product("p1", "c1", "10.00", "0.20", true)}
	rules := []domain.DiscountRule{
		{RuleID: "half-off", BusinessID: suite.businessID, Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.Percentage, Value: dec("50")},
	}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1"}).Return(products, nil).Once()
	suite.mockCatalog.On("ListActiveDiscountRules", ctx, suite.businessID, suite.now).Return(rules, nil).Once()

	pricing, _, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().NoError(err)
	suite.Require().Len(pricing.Lines, 1)
	lp := pricing.Lines[0]
	suite.True(lp.DiscountAmount.Equal(dec("5.00")))
	suite.True(lp.TaxableAmount.Equal(dec("5.00")))
	// Embedded tax on the discounted price: 5.00 * 0.20 / 1.20 = 0.83.
	suite.True(lp.TaxAmount.Equal(dec("0.83")), "tax %s", lp.TaxAmount)
	suite.True(lp.NetAmount.Equal(dec("5.00")))
	// Embedded tax never enters the order tax total.
	suite.True(pricing.TotalTax.IsZero())
	suite.True(pricing.GrandTotal.Equal(dec("5.00")), "grand %s", pricing.GrandTotal)
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceCart_GrandTotalIdentity() {
	ctx := context.Background()
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("3")},
		{ProductID: "p2", Quantity: dec("1.250")},
	}}
	products := map[string]domain.Product{
		"p1": suite.product("p1", "c1", "19.99", "0.10", false),
		"p2": suite.product("p2", "c2", "4.79", "0.05", true),
	}
	rules := []domain.DiscountRule{
		{RuleID: "r1", BusinessID: suite.businessID, Scope: domain.ScopeCategory, TargetID: "c1", Kind: domain.Percentage, Value: dec("15")},
	}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1", "p2"}).Return(products, nil).Once()
	suite.mockCatalog.On("ListActiveDiscountRules", ctx, suite.businessID, suite.now).Return(rules, nil).Once()

	pricing, _, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().NoError(err)
	identity := pricing.Subtotal.Sub(pricing.TotalDiscount).Add(pricing.TotalTax)
	drift := pricing.GrandTotal.Sub(identity).Abs()
	suite.True(drift.LessThanOrEqual(dec("0.01")), "grand total drifts %s from identity", drift)
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceCart_IdenticalInputsYieldIdenticalPricing() {
	ctx := context.Background()
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("2")},
	}}
	products := map[string]domain.Product{"p1": suite.product("p1", "c1", "10.00", "0.10", false)}
	rules := []domain.DiscountRule{
		{RuleID: "r1", BusinessID: suite.businessID, Scope: domain.ScopeProduct, TargetID: "p1", Kind: domain.FixedAmount, Value: dec("1.00")},
	}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1"}).Return(products, nil).Twice()
	suite.mockCatalog.On("ListActiveDiscountRules", ctx, suite.businessID, suite.now).Return(rules, nil).Twice()

	first, _, err := suite.service.PriceCart(ctx, req, suite.now)
	suite.Require().NoError(err)
	second, _, err := suite.service.PriceCart(ctx, req, suite.now)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceCart_PriceOverrideReplacesSnapshot() {
	ctx := context.Background()
	override := dec("7.50")
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("1"), UnitPrice: &override},
	}}
	products := map[string]domain.Product{"p1": suite.product("p1", "c1", "10.00", "0", false)}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1"}).Return(products, nil).Once()
	suite.mockCatalog.On("ListActiveDiscountRules", ctx, suite.businessID, suite.now).Return([]domain.DiscountRule{}, nil).Once()

	pricing, lines, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().NoError(err)
	suite.True(lines[0].UnitPrice.Equal(override))
	suite.True(pricing.GrandTotal.Equal(dec("7.50")))
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceCart_ZeroOverrideMakesLineFree() {
	ctx := context.Background()
	override := dec("0")
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("1"), UnitPrice: &override},
		{ProductID: "p2", Quantity: dec("1")},
	}}
	products := map[string]domain.Product{
		"p1": suite.product("p1", "c1", "10.00", "0.10", false),
		"p2": suite.product("p2", "c1", "5.00", "0", false),
	}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1", "p2"}).Return(products, nil).Once()
	suite.mockCatalog.On("ListActiveDiscountRules", ctx, suite.businessID, suite.now).Return([]domain.DiscountRule{}, nil).Once()

	pricing, lines, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().NoError(err)
	// An explicit zero override is a free item; the catalog price is not substituted.
	suite.True(lines[0].UnitPrice.IsZero(), "unit price %s", lines[0].UnitPrice)
	suite.True(pricing.Lines[0].BaseAmount.IsZero())
	suite.True(pricing.Lines[0].TaxAmount.IsZero())
	suite.True(pricing.Lines[0].NetAmount.IsZero())
	suite.True(pricing.GrandTotal.Equal(dec("5.00")), "grand %s", pricing.GrandTotal)
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceCart_UnknownProduct() {
	ctx := context.Background()
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "ghost", Quantity: dec("1")},
	}}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"ghost"}).Return(map[string]domain.Product{}, nil).Once()

	_, _, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidPricingInput)
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceCart_NonPositiveQuantity() {
	ctx := context.Background()
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("0")},
	}}

	_, _, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidPricingInput)
	// Validation rejects the cart before any catalog access.
	suite.mockCatalog.AssertNotCalled(suite.T(), "FindProductsByIDs", mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestPriceCart_NegativePriceOverride() {
	ctx := context.Background()
	override := dec("-1.00")
	req := dto.PriceCartRequest{Lines: []dto.CartLineRequest{
		{ProductID: "p1", Quantity: dec("1"), UnitPrice: &override},
	}}
	products := map[string]domain.Product{"p1": suite.product("p1", "c1", "10.00", "0.10", false)}

	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1"}).Return(products, nil).Once()

	_, _, err := suite.service.PriceCart(ctx, req, suite.now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidPricingInput)
	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestPriceLines_EmptyCart() {
	ctx := context.Background()

	_, err := suite.service.PriceLines(ctx, nil, suite.now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidPricingInput)
}

func (suite *PricingServiceTestSuite) TestPriceLines_DuplicateProductLines() {
	ctx := context.Background()
	lines := []domain.CartLine{
		cartLine("l1", "p1", "c1", "1", "10.00"),
		cartLine("l2", "p1", "c1", "2", "10.00"),
	}
	products := map[string]domain.Product{"p1": suite.product("p1", "c1", "10.00", "0", false)}

	// The product lookup deduplicates IDs across lines.
	suite.mockCatalog.On("FindProductsByIDs", ctx, []string{"p1"}).Return(products, nil).Once()
	suite.mockCatalog.On("ListActiveDiscountRules", ctx, suite.businessID, suite.now).Return([]domain.DiscountRule{}, nil).Once()

	pricing, err := suite.service.PriceLines(ctx, lines, suite.now)

	suite.Require().NoError(err)
	suite.Require().Len(pricing.Lines, 2)
	suite.True(pricing.Subtotal.Equal(dec("30.00")))
	suite.True(pricing.GrandTotal.Equal(dec("30.00")))
	suite.mockCatalog.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
