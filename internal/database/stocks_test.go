package database

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdrennan/trade-ledger-service/internal/models"
)

func TestStocksRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("CreateStock assigns id and last_updated", func(t *testing.T) {
		testDB.TruncateAll(t)

		stock := &models.Stock{
			Symbol:             "AAPL",
			CompanyName:        "Apple Inc.",
			LastPrice:          decimal.RequireFromString("175.50"),
			DailyChangePercent: decimal.RequireFromString("0.86"),
		}

		err := testDB.CreateStock(stock)
		require.NoError(t, err)
		assert.NotZero(t, stock.ID)
		assert.False(t, stock.LastUpdated.IsZero())
	})

	t.Run("CreateStock rejects duplicate symbol", func(t *testing.T) {
		testDB.TruncateAll(t)

		stock := &models.Stock{Symbol: "AAPL", CompanyName: "Apple Inc."}
		require.NoError(t, testDB.CreateStock(stock))

		dup := &models.Stock{Symbol: "AAPL", CompanyName: "Another Apple"}
		err := testDB.CreateStock(dup)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConflict))
	})

	t.Run("CreateStock rejects empty symbol", func(t *testing.T) {
		testDB.TruncateAll(t)

		stock := &models.Stock{Symbol: "", CompanyName: "Nameless Corp"}
		err := testDB.CreateStock(stock)
		require.Error(t, err)
	})

	t.Run("GetStockByID retrieves stock", func(t *testing.T) {
		testDB.TruncateAll(t)

		stock := &models.Stock{
			Symbol:      "GOOGL",
			CompanyName: "Alphabet Inc.",
			LastPrice:   decimal.RequireFromString("140.00"),
		}
		require.NoError(t, testDB.CreateStock(stock))

		retrieved, err := testDB.GetStockByID(stock.ID)
		require.NoError(t, err)
		assert.Equal(t, "GOOGL", retrieved.Symbol)
		assert.Equal(t, "Alphabet Inc.", retrieved.CompanyName)
		assert.True(t, retrieved.LastPrice.Equal(decimal.RequireFromString("140.00")))
	})

	t.Run("GetStockByID returns ErrNotFound for unknown id", func(t *testing.T) {
		testDB.TruncateAll(t)

		_, err := testDB.GetStockByID(9999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("GetAllStocks orders by symbol", func(t *testing.T) {
		testDB.TruncateAll(t)

		stocks := []*models.Stock{
			{Symbol: "MSFT", CompanyName: "Microsoft"},
			{Symbol: "AAPL", CompanyName: "Apple Inc."},
			{Symbol: "GOOGL", CompanyName: "Alphabet Inc."},
		}
		for _, s := range stocks {
			require.NoError(t, testDB.CreateStock(s))
		}

		retrieved, err := testDB.GetAllStocks()
		require.NoError(t, err)
		require.Len(t, retrieved, 3)
		assert.Equal(t, "AAPL", retrieved[0].Symbol)
		assert.Equal(t, "GOOGL", retrieved[1].Symbol)
		assert.Equal(t, "MSFT", retrieved[2].Symbol)
	})

	t.Run("UpdateStock refreshes last_updated", func(t *testing.T) {
		testDB.TruncateAll(t)

		stock := &models.Stock{Symbol: "TSLA", CompanyName: "Tesla Inc."}
		require.NoError(t, testDB.CreateStock(stock))
		created := stock.LastUpdated

		stock.LastPrice = decimal.RequireFromString("250.00")
		require.NoError(t, testDB.UpdateStock(stock))
		assert.True(t, stock.LastUpdated.After(created) || stock.LastUpdated.Equal(created))

		retrieved, err := testDB.GetStockByID(stock.ID)
		require.NoError(t, err)
		assert.True(t, retrieved.LastPrice.Equal(decimal.RequireFromString("250.00")))
	})

	t.Run("UpdateStock rejects symbol collision", func(t *testing.T) {
		testDB.TruncateAll(t)

		first := &models.Stock{Symbol: "AAPL", CompanyName: "Apple Inc."}
		second := &models.Stock{Symbol: "MSFT", CompanyName: "Microsoft"}
		require.NoError(t, testDB.CreateStock(first))
		require.NoError(t, testDB.CreateStock(second))

		second.Symbol = "AAPL"
		err := testDB.UpdateStock(second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConflict))
	})

	t.Run("UpdateStock returns ErrNotFound for unknown id", func(t *testing.T) {
		testDB.TruncateAll(t)

		stock := &models.Stock{ID: 9999, Symbol: "NVDA", CompanyName: "NVIDIA"}
		err := testDB.UpdateStock(stock)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("DeleteStock removes stock", func(t *testing.T) {
		testDB.TruncateAll(t)

		stock := &models.Stock{Symbol: "NVDA", CompanyName: "NVIDIA Corporation"}
		require.NoError(t, testDB.CreateStock(stock))

		require.NoError(t, testDB.DeleteStock(stock.ID))

		_, err := testDB.GetStockByID(stock.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("DeleteStock returns ErrNotFound for unknown id", func(t *testing.T) {
		testDB.TruncateAll(t)

		err := testDB.DeleteStock(9999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
