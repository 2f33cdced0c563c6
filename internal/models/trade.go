// Package models defines the core data types for the trade journal.
package models

import "time"

// AssetType identifies the market a trade was taken in.
type AssetType string

const (
	AssetStocks  AssetType = "stocks"
	AssetForex   AssetType = "forex"
	AssetCrypto  AssetType = "crypto"
	AssetOptions AssetType = "options"
)

// AssetTypes lists every asset type in display order. Grouped reports
// iterate this slice so that empty groups still appear with zero counts.
var AssetTypes = []AssetType{AssetStocks, AssetForex, AssetCrypto, AssetOptions}

// Valid reports whether the asset type is one of the known values.
func (a AssetType) Valid() bool {
	switch a {
	case AssetStocks, AssetForex, AssetCrypto, AssetOptions:
		return true
	}
	return false
}

// Direction is the side of a trade.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Valid reports whether the direction is long or short.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// Status is the lifecycle state of a trade.
type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// Trade represents one discrete position, open or closed.
//
// Optional numeric fields (ExitPrice, StopLoss, TakeProfit, AccountSize,
// Commission) use the zero value to mean "not set"; prices are required to
// be positive, so zero is never a legal present value. ExitDate is absent
// when it is the zero time.
//
// The six derived fields are a pure function of the source fields and are
// recomputed together on every write; see calc.Recompute.
type Trade struct {
	ID        string    `json:"id" csv:"id"`
	AssetType AssetType `json:"asset_type" csv:"asset_type"`
	Symbol    string    `json:"symbol" csv:"symbol"`
	Direction Direction `json:"direction" csv:"direction"`
	Status    Status    `json:"status" csv:"status"`

	PositionSize float64   `json:"position_size" csv:"position_size"`
	EntryPrice   float64   `json:"entry_price" csv:"entry_price"`
	EntryDate    time.Time `json:"entry_date" csv:"entry_date"`
	ExitPrice    float64   `json:"exit_price,omitempty" csv:"exit_price"`
	ExitDate     time.Time `json:"exit_date,omitempty" csv:"exit_date"`
	Commission   float64   `json:"commission,omitempty" csv:"commission"`
	StopLoss     float64   `json:"stop_loss,omitempty" csv:"stop_loss"`
	TakeProfit   float64   `json:"take_profit,omitempty" csv:"take_profit"`
	AccountSize  float64   `json:"account_size,omitempty" csv:"account_size"`

	Strategy         string   `json:"strategy,omitempty" csv:"strategy"`
	EmotionalState   string   `json:"emotional_state,omitempty" csv:"emotional_state"`
	MarketConditions string   `json:"market_conditions,omitempty" csv:"market_conditions"`
	Rationale        string   `json:"rationale,omitempty" csv:"rationale"`
	LessonsLearned   string   `json:"lessons_learned,omitempty" csv:"lessons_learned"`
	Tags             []string `json:"tags,omitempty" csv:"-"`
	Rating           int      `json:"rating,omitempty" csv:"rating"`

	// Derived fields, recomputed on every create/update.
	ProfitLoss        float64 `json:"profit_loss" csv:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent" csv:"profit_loss_percent"`
	RiskAmount        float64 `json:"risk_amount" csv:"risk_amount"`
	RewardAmount      float64 `json:"reward_amount" csv:"reward_amount"`
	RiskRewardRatio   float64 `json:"risk_reward_ratio" csv:"risk_reward_ratio"`
	RiskPercent       float64 `json:"risk_percent" csv:"risk_percent"`

	CreatedAt time.Time `json:"created_at" csv:"created_at"`
	UpdatedAt time.Time `json:"updated_at" csv:"updated_at"`
}

// IsClosed reports whether the trade counts toward win/loss statistics:
// status closed with a recorded exit price.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed && t.ExitPrice != 0
}

// HasExit reports whether an exit price has been recorded.
func (t *Trade) HasExit() bool {
	return t.ExitPrice != 0
}
