package mapping_test

import (
	"testing"
	"time"

	"github.com/Sam231221/AuraSwift-sub015/internal/models"
	"github.com/Sam231221/AuraSwift-sub015/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainStockLevel(t *testing.T) {
	now := time.Now().UTC()
	m := models.StockLevel{
		ProductID:     "p1",
		OnHand:        decimal.RequireFromString("10"),
		Reserved:      decimal.RequireFromString("12"),
		Backordered:   decimal.RequireFromString("2"),
		LastUpdatedAt: now,
	}

	d := mapping.ToDomainStockLevel(m)

	assert.Equal(t, "p1", d.ProductID)
	assert.True(t, d.OnHand.Equal(decimal.RequireFromString("10")))
	assert.True(t, d.Reserved.Equal(decimal.RequireFromString("12")))
	assert.True(t, d.Backordered.Equal(decimal.RequireFromString("2")), "backordered quantity carries through: %s", d.Backordered)
	assert.True(t, d.Available().Equal(decimal.RequireFromString("-2")))
	assert.Equal(t, now, d.LastUpdatedAt)
}
