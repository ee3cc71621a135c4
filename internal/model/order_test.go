package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
)

func TestSumPrices(t *testing.T) {
	t.Run("Should sum exactly", func(t *testing.T) {
		products := []model.Product{
			{Price: decimal.RequireFromString("0.10")},
			{Price: decimal.RequireFromString("0.20")},
			{Price: decimal.RequireFromString("999.99")},
		}

		total := model.SumPrices(products)
		assert.True(t, total.Equal(decimal.RequireFromString("1000.29")), total.String())
	})

	t.Run("Should be zero for no products", func(t *testing.T) {
		assert.True(t, model.SumPrices(nil).IsZero())
	})
}

func TestSortProducts(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	products := []model.Product{
		{ID: lowID, Name: "late", CreatedAt: late},
		{ID: highID, Name: "early-b", CreatedAt: early},
		{ID: lowID, Name: "early-a", CreatedAt: early},
	}

	sorted := model.SortProducts(products)

	names := make([]string, 0, len(sorted))
	for _, p := range sorted {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"early-a", "early-b", "late"}, names)
	assert.Equal(t, "late", products[0].Name)
}
