package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelog/internal/config"
	"tradelog/internal/errors"
	"tradelog/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath, config.JournalConfig{DefaultAccountSize: 10000, RiskPerTradePercent: 1})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTrade() *models.Trade {
	return &models.Trade{
		AssetType:    models.AssetStocks,
		Symbol:       "AAPL",
		Direction:    models.Long,
		Status:       models.StatusClosed,
		PositionSize: 100,
		EntryPrice:   150.25,
		EntryDate:    time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		ExitPrice:    155.50,
		ExitDate:     time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC),
		Commission:   5,
		StopLoss:     148.00,
		TakeProfit:   155.00,
		Strategy:     "breakout",
		Tags:         []string{"earnings", "gap"},
	}
}

func TestAddAssignsIdentityAndDerivedFields(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade()

	require.NoError(t, s.Add(context.Background(), trade))

	assert.NotEmpty(t, trade.ID)
	assert.False(t, trade.CreatedAt.IsZero())
	assert.InDelta(t, 520.00, trade.ProfitLoss, 1e-9)
	assert.InDelta(t, 225.00, trade.RiskAmount, 1e-9)
	assert.InDelta(t, 475.0/225.0, trade.RiskRewardRatio, 1e-9)
}

func TestAddRejectsInvalidTrade(t *testing.T) {
	s := newTestStore(t)

	err := s.Add(context.Background(), &models.Trade{Symbol: "AAPL"})
	require.Error(t, err)

	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Messages)
}

func TestAddDefaultsStatusToOpen(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade()
	trade.Status = ""
	trade.ExitPrice = 0
	trade.ExitDate = time.Time{}

	require.NoError(t, s.Add(context.Background(), trade))
	assert.Equal(t, models.StatusOpen, trade.Status)
	assert.Zero(t, trade.ProfitLoss, "open trades carry zero P&L")
}

func TestGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade()
	require.NoError(t, s.Add(context.Background(), trade))

	got, err := s.Get(context.Background(), trade.ID)
	require.NoError(t, err)

	assert.Equal(t, trade.ID, got.ID)
	assert.Equal(t, trade.Symbol, got.Symbol)
	assert.Equal(t, models.StatusClosed, got.Status)
	assert.Equal(t, []string{"earnings", "gap"}, got.Tags)
	assert.InDelta(t, 520.00, got.ProfitLoss, 1e-9)
	assert.True(t, trade.ExitDate.Equal(got.ExitDate))
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade()
	trade.Status = models.StatusOpen
	trade.ExitPrice = 0
	trade.ExitDate = time.Time{}
	require.NoError(t, s.Add(context.Background(), trade))
	assert.Zero(t, trade.ProfitLoss)

	trade.Status = models.StatusClosed
	trade.ExitPrice = 155.50
	trade.ExitDate = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	require.NoError(t, s.Update(context.Background(), trade))

	got, err := s.Get(context.Background(), trade.ID)
	require.NoError(t, err)
	assert.InDelta(t, 520.00, got.ProfitLoss, 1e-9, "derived fields recomputed on every write")
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade()
	trade.ID = "ghost"

	assert.ErrorIs(t, s.Update(context.Background(), trade), errors.ErrTradeNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade()
	require.NoError(t, s.Add(context.Background(), trade))

	require.NoError(t, s.Delete(context.Background(), trade.ID))

	_, err := s.Get(context.Background(), trade.ID)
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), trade.ID), errors.ErrTradeNotFound)
}

func TestAddBatchPersistsAll(t *testing.T) {
	s := newTestStore(t)

	batch := []*models.Trade{sampleTrade(), sampleTrade(), sampleTrade()}
	for i, trade := range batch {
		trade.EntryDate = trade.EntryDate.AddDate(0, 0, i)
	}
	require.NoError(t, s.AddBatch(context.Background(), batch))

	trades, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, trades, 3)
}

func TestAddBatchRejectsWholeBatch(t *testing.T) {
	s := newTestStore(t)

	bad := sampleTrade()
	bad.EntryPrice = -1
	batch := []*models.Trade{sampleTrade(), bad}

	err := s.AddBatch(context.Background(), batch)
	require.Error(t, err)

	trades, lerr := s.Load(context.Background())
	require.NoError(t, lerr)
	assert.Empty(t, trades, "a single invalid trade rejects the batch")
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	aapl := sampleTrade()
	require.NoError(t, s.Add(ctx, aapl))

	eur := sampleTrade()
	eur.Symbol = "EURUSD"
	eur.AssetType = models.AssetForex
	eur.Status = models.StatusOpen
	eur.ExitPrice = 0
	eur.ExitDate = time.Time{}
	eur.Strategy = "news fade"
	eur.EntryDate = aapl.EntryDate.AddDate(0, 0, 7)
	require.NoError(t, s.Add(ctx, eur))

	bySymbol, err := s.List(ctx, TradeFilter{Symbol: "AAPL"})
	require.NoError(t, err)
	require.Len(t, bySymbol, 1)
	assert.Equal(t, "AAPL", bySymbol[0].Symbol)

	byStatus, err := s.List(ctx, TradeFilter{Status: models.StatusOpen})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "EURUSD", byStatus[0].Symbol)

	byAsset, err := s.List(ctx, TradeFilter{AssetType: models.AssetForex})
	require.NoError(t, err)
	assert.Len(t, byAsset, 1)

	byStrategy, err := s.List(ctx, TradeFilter{Strategy: "news fade"})
	require.NoError(t, err)
	assert.Len(t, byStrategy, 1)

	byDate, err := s.List(ctx, TradeFilter{StartDate: aapl.EntryDate.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "EURUSD", byDate[0].Symbol)

	limited, err := s.List(ctx, TradeFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "EURUSD", limited[0].Symbol, "newest entry first")
}
