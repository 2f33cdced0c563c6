// Package csvio round-trips the journal through CSV files.
//
// Export writes every trade with its current derived values. Import is
// all-or-nothing: each row is parsed and run through the validation rules,
// and a single bad row rejects the whole batch with an itemized per-row
// error report.
package csvio

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"tradelog/internal/errors"
	"tradelog/internal/models"
	"tradelog/internal/validate"
)

const dateFormat = time.RFC3339

// row is the CSV projection of a trade. Dates travel as RFC 3339 strings
// and tags as a pipe-joined list so the file stays a flat table.
type row struct {
	ID               string  `csv:"id"`
	AssetType        string  `csv:"asset_type"`
	Symbol           string  `csv:"symbol"`
	Direction        string  `csv:"direction"`
	Status           string  `csv:"status"`
	PositionSize     float64 `csv:"position_size"`
	EntryPrice       float64 `csv:"entry_price"`
	EntryDate        string  `csv:"entry_date"`
	ExitPrice        float64 `csv:"exit_price"`
	ExitDate         string  `csv:"exit_date"`
	Commission       float64 `csv:"commission"`
	StopLoss         float64 `csv:"stop_loss"`
	TakeProfit       float64 `csv:"take_profit"`
	AccountSize      float64 `csv:"account_size"`
	Strategy         string  `csv:"strategy"`
	EmotionalState   string  `csv:"emotional_state"`
	MarketConditions string  `csv:"market_conditions"`
	Rationale        string  `csv:"rationale"`
	LessonsLearned   string  `csv:"lessons_learned"`
	Tags             string  `csv:"tags"`
	Rating           int     `csv:"rating"`

	ProfitLoss        float64 `csv:"profit_loss"`
	ProfitLossPercent float64 `csv:"profit_loss_percent"`
	RiskAmount        float64 `csv:"risk_amount"`
	RewardAmount      float64 `csv:"reward_amount"`
	RiskRewardRatio   float64 `csv:"risk_reward_ratio"`
	RiskPercent       float64 `csv:"risk_percent"`
}

func toRow(t *models.Trade) *row {
	r := &row{
		ID:               t.ID,
		AssetType:        string(t.AssetType),
		Symbol:           t.Symbol,
		Direction:        string(t.Direction),
		Status:           string(t.Status),
		PositionSize:     t.PositionSize,
		EntryPrice:       t.EntryPrice,
		EntryDate:        t.EntryDate.Format(dateFormat),
		ExitPrice:        t.ExitPrice,
		Commission:       t.Commission,
		StopLoss:         t.StopLoss,
		TakeProfit:       t.TakeProfit,
		AccountSize:      t.AccountSize,
		Strategy:         t.Strategy,
		EmotionalState:   t.EmotionalState,
		MarketConditions: t.MarketConditions,
		Rationale:        t.Rationale,
		LessonsLearned:   t.LessonsLearned,
		Tags:             strings.Join(t.Tags, "|"),
		Rating:           t.Rating,

		ProfitLoss:        t.ProfitLoss,
		ProfitLossPercent: t.ProfitLossPercent,
		RiskAmount:        t.RiskAmount,
		RewardAmount:      t.RewardAmount,
		RiskRewardRatio:   t.RiskRewardRatio,
		RiskPercent:       t.RiskPercent,
	}
	if !t.ExitDate.IsZero() {
		r.ExitDate = t.ExitDate.Format(dateFormat)
	}
	return r
}

func (r *row) toTrade() (*models.Trade, []string) {
	var parseErrs []string

	t := &models.Trade{
		ID:               r.ID,
		AssetType:        models.AssetType(strings.TrimSpace(r.AssetType)),
		Symbol:           strings.TrimSpace(r.Symbol),
		Direction:        models.Direction(strings.TrimSpace(r.Direction)),
		Status:           models.Status(strings.TrimSpace(r.Status)),
		PositionSize:     r.PositionSize,
		EntryPrice:       r.EntryPrice,
		ExitPrice:        r.ExitPrice,
		Commission:       r.Commission,
		StopLoss:         r.StopLoss,
		TakeProfit:       r.TakeProfit,
		AccountSize:      r.AccountSize,
		Strategy:         strings.TrimSpace(r.Strategy),
		EmotionalState:   strings.TrimSpace(r.EmotionalState),
		MarketConditions: strings.TrimSpace(r.MarketConditions),
		Rationale:        r.Rationale,
		LessonsLearned:   r.LessonsLearned,
		Rating:           r.Rating,
	}

	if r.Tags != "" {
		for _, tag := range strings.Split(r.Tags, "|") {
			if tag = strings.TrimSpace(tag); tag != "" {
				t.Tags = append(t.Tags, tag)
			}
		}
	}

	if r.EntryDate != "" {
		entry, err := time.Parse(dateFormat, r.EntryDate)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("invalid entry date %q", r.EntryDate))
		} else {
			t.EntryDate = entry
		}
	}
	if r.ExitDate != "" {
		exit, err := time.Parse(dateFormat, r.ExitDate)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("invalid exit date %q", r.ExitDate))
		} else {
			t.ExitDate = exit
		}
	}

	return t, parseErrs
}

// Export writes the trades as CSV, derived fields included at their
// current computed values.
func Export(w io.Writer, trades []models.Trade) error {
	rows := make([]*row, len(trades))
	for i := range trades {
		rows[i] = toRow(&trades[i])
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "writing csv")
	}
	return nil
}

// Import parses the CSV and validates every row. On success it returns
// the trades ready for the store's batch write (derived fields are left
// for the store to compute). On any row failure it returns an ImportError
// itemizing each bad row and no trades at all.
func Import(r io.Reader) ([]*models.Trade, error) {
	var rows []*row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "parsing csv")
	}
	if len(rows) == 0 {
		return nil, errors.ErrEmptyImport
	}

	var rowErrs []errors.RowError
	trades := make([]*models.Trade, 0, len(rows))
	for i, rec := range rows {
		t, msgs := rec.toTrade()
		msgs = append(msgs, validate.Trade(t)...)
		if len(msgs) > 0 {
			// Row 1 is the header line.
			rowErrs = append(rowErrs, errors.RowError{Row: i + 2, Messages: msgs})
			continue
		}
		trades = append(trades, t)
	}

	if len(rowErrs) > 0 {
		return nil, &errors.ImportError{Rows: rowErrs}
	}
	return trades, nil
}
