package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradelog/internal/calc"
	"tradelog/internal/config"
	"tradelog/internal/errors"
	"tradelog/internal/models"
	"tradelog/internal/validate"
	"tradelog/pkg/id"
)

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	journal config.JournalConfig
	mu      sync.RWMutex
	now     func() time.Time
}

// NewSQLiteStore opens (or creates) the journal database at dbPath. The
// journal configuration supplies the account-size fallback used when
// recomputing derived fields on write.
func NewSQLiteStore(dbPath string, journal config.JournalConfig) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db, journal: journal, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		asset_type TEXT NOT NULL,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		status TEXT NOT NULL,
		position_size REAL NOT NULL,
		entry_price REAL NOT NULL,
		entry_date DATETIME NOT NULL,
		exit_price REAL NOT NULL DEFAULT 0,
		exit_date DATETIME,
		commission REAL NOT NULL DEFAULT 0,
		stop_loss REAL NOT NULL DEFAULT 0,
		take_profit REAL NOT NULL DEFAULT 0,
		account_size REAL NOT NULL DEFAULT 0,
		strategy TEXT,
		emotional_state TEXT,
		market_conditions TEXT,
		rationale TEXT,
		lessons_learned TEXT,
		tags TEXT,
		rating INTEGER NOT NULL DEFAULT 0,
		profit_loss REAL NOT NULL DEFAULT 0,
		profit_loss_percent REAL NOT NULL DEFAULT 0,
		risk_amount REAL NOT NULL DEFAULT 0,
		reward_amount REAL NOT NULL DEFAULT 0,
		risk_reward_ratio REAL NOT NULL DEFAULT 0,
		risk_percent REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
	CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// prepare applies the write-path contract shared by Add and Update:
// normalize, validate, and recompute every derived field.
func (s *SQLiteStore) prepare(t *models.Trade) error {
	if t.Status == "" {
		t.Status = models.StatusOpen
	}
	if msgs := validate.Trade(t); len(msgs) > 0 {
		return errors.NewValidationError(t.ID, msgs)
	}
	calc.Recompute(t, s.journal)
	return nil
}

const tradeColumns = `id, asset_type, symbol, direction, status, position_size, entry_price, entry_date,
	exit_price, exit_date, commission, stop_loss, take_profit, account_size,
	strategy, emotional_state, market_conditions, rationale, lessons_learned, tags, rating,
	profit_loss, profit_loss_percent, risk_amount, reward_amount, risk_reward_ratio, risk_percent,
	created_at, updated_at`

func insertArgs(t *models.Trade) []interface{} {
	tagsJSON, _ := json.Marshal(t.Tags)
	var exitDate interface{}
	if !t.ExitDate.IsZero() {
		exitDate = t.ExitDate
	}
	return []interface{}{
		t.ID, string(t.AssetType), t.Symbol, string(t.Direction), string(t.Status),
		t.PositionSize, t.EntryPrice, t.EntryDate,
		t.ExitPrice, exitDate, t.Commission, t.StopLoss, t.TakeProfit, t.AccountSize,
		t.Strategy, t.EmotionalState, t.MarketConditions, t.Rationale, t.LessonsLearned, string(tagsJSON), t.Rating,
		t.ProfitLoss, t.ProfitLossPercent, t.RiskAmount, t.RewardAmount, t.RiskRewardRatio, t.RiskPercent,
		t.CreatedAt, t.UpdatedAt,
	}
}

// Add validates the trade, assigns identity and timestamps, recomputes the
// derived fields, and persists the record.
func (s *SQLiteStore) Add(ctx context.Context, t *models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prepare(t); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = id.New()
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO trades (`+tradeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		insertArgs(t)...); err != nil {
		return errors.NewStoreError("add", err)
	}
	return nil
}

// AddBatch persists new trades inside a single transaction so a batch
// import is all-or-nothing.
func (s *SQLiteStore) AddBatch(ctx context.Context, trades []*models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, t := range trades {
		if err := s.prepare(t); err != nil {
			return err
		}
		if t.ID == "" {
			t.ID = id.New()
		}
		t.CreatedAt = now
		t.UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("add batch", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trades (`+tradeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStoreError("add batch", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx, insertArgs(t)...); err != nil {
			return errors.NewStoreError("add batch", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("add batch", err)
	}
	return nil
}

// Update re-validates and re-derives the trade, then rewrites the row.
func (s *SQLiteStore) Update(ctx context.Context, t *models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prepare(t); err != nil {
		return err
	}
	t.UpdatedAt = s.now()

	tagsJSON, _ := json.Marshal(t.Tags)
	var exitDate interface{}
	if !t.ExitDate.IsZero() {
		exitDate = t.ExitDate
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET
			asset_type = ?, symbol = ?, direction = ?, status = ?,
			position_size = ?, entry_price = ?, entry_date = ?,
			exit_price = ?, exit_date = ?, commission = ?, stop_loss = ?, take_profit = ?, account_size = ?,
			strategy = ?, emotional_state = ?, market_conditions = ?, rationale = ?, lessons_learned = ?, tags = ?, rating = ?,
			profit_loss = ?, profit_loss_percent = ?, risk_amount = ?, reward_amount = ?, risk_reward_ratio = ?, risk_percent = ?,
			updated_at = ?
		WHERE id = ?`,
		string(t.AssetType), t.Symbol, string(t.Direction), string(t.Status),
		t.PositionSize, t.EntryPrice, t.EntryDate,
		t.ExitPrice, exitDate, t.Commission, t.StopLoss, t.TakeProfit, t.AccountSize,
		t.Strategy, t.EmotionalState, t.MarketConditions, t.Rationale, t.LessonsLearned, string(tagsJSON), t.Rating,
		t.ProfitLoss, t.ProfitLossPercent, t.RiskAmount, t.RewardAmount, t.RiskRewardRatio, t.RiskPercent,
		t.UpdatedAt, t.ID)
	if err != nil {
		return errors.NewStoreError("update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// Delete removes a trade by ID.
func (s *SQLiteStore) Delete(ctx context.Context, tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return errors.NewStoreError("delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// Get fetches one trade by ID.
func (s *SQLiteStore) Get(ctx context.Context, tradeID string) (*models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, tradeID)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, errors.NewStoreError("get", err)
	}
	return t, nil
}

// List fetches trades matching the filter, newest entry first.
func (s *SQLiteStore) List(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + tradeColumns + ` FROM trades WHERE 1=1`
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.AssetType != "" {
		query += " AND asset_type = ?"
		args = append(args, string(filter.AssetType))
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}
	if !filter.StartDate.IsZero() {
		query += " AND entry_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND entry_date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY entry_date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("list", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, errors.NewStoreError("list", err)
		}
		trades = append(trades, *t)
	}
	return trades, rows.Err()
}

// Load returns the full collection for aggregation. The analytics engine
// never assumes ordering and sorts defensive copies itself.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Trade, error) {
	return s.List(ctx, TradeFilter{})
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row scanner) (*models.Trade, error) {
	var t models.Trade
	var assetType, direction, status, tagsJSON string
	var strategy, emotionalState, marketConditions, rationale, lessonsLearned sql.NullString
	var exitDate sql.NullTime

	err := row.Scan(
		&t.ID, &assetType, &t.Symbol, &direction, &status,
		&t.PositionSize, &t.EntryPrice, &t.EntryDate,
		&t.ExitPrice, &exitDate, &t.Commission, &t.StopLoss, &t.TakeProfit, &t.AccountSize,
		&strategy, &emotionalState, &marketConditions, &rationale, &lessonsLearned, &tagsJSON, &t.Rating,
		&t.ProfitLoss, &t.ProfitLossPercent, &t.RiskAmount, &t.RewardAmount, &t.RiskRewardRatio, &t.RiskPercent,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.AssetType = models.AssetType(assetType)
	t.Direction = models.Direction(direction)
	t.Status = models.Status(status)
	t.Strategy = strategy.String
	t.EmotionalState = emotionalState.String
	t.MarketConditions = marketConditions.String
	t.Rationale = rationale.String
	t.LessonsLearned = lessonsLearned.String
	if exitDate.Valid {
		t.ExitDate = exitDate.Time
	}
	if tagsJSON != "" && tagsJSON != "null" {
		json.Unmarshal([]byte(tagsJSON), &t.Tags)
	}
	return &t, nil
}
