// Package validate applies the business rules a trade must satisfy before
// it is accepted into the journal.
package validate

import (
	"fmt"
	"strings"

	"tradelog/internal/calc"
	"tradelog/internal/models"
)

// Trade checks every rule and returns the full list of human-readable
// violations; an empty list means the trade is valid. Rules are
// independent, a failure in one never suppresses the others.
func Trade(t *models.Trade) []string {
	var msgs []string

	if t.AssetType == "" {
		msgs = append(msgs, "asset type is required")
	} else if !t.AssetType.Valid() {
		msgs = append(msgs, fmt.Sprintf("unknown asset type %q", t.AssetType))
	}

	if strings.TrimSpace(t.Symbol) == "" {
		msgs = append(msgs, "symbol is required")
	}

	if t.Direction == "" {
		msgs = append(msgs, "direction is required")
	} else if !t.Direction.Valid() {
		msgs = append(msgs, fmt.Sprintf("unknown direction %q", t.Direction))
	}

	if t.Status != "" && !t.Status.Valid() {
		msgs = append(msgs, fmt.Sprintf("unknown status %q", t.Status))
	}

	if t.PositionSize <= 0 {
		msgs = append(msgs, "position size must be greater than 0")
	}

	if t.EntryPrice <= 0 {
		msgs = append(msgs, "entry price must be greater than 0")
	}

	if t.EntryDate.IsZero() {
		msgs = append(msgs, "entry date is required")
	}

	if t.ExitPrice < 0 {
		msgs = append(msgs, "exit price must be greater than 0")
	}
	if t.StopLoss < 0 {
		msgs = append(msgs, "stop loss must be greater than 0")
	}
	if t.TakeProfit < 0 {
		msgs = append(msgs, "take profit must be greater than 0")
	}

	if !t.ExitDate.IsZero() && !t.EntryDate.IsZero() && t.ExitDate.Before(t.EntryDate) {
		msgs = append(msgs, "exit date must not be before entry date")
	}

	if t.StopLoss > 0 && t.EntryPrice > 0 && t.Direction.Valid() {
		if t.Direction == models.Long && t.StopLoss >= t.EntryPrice {
			msgs = append(msgs, "stop loss must be below entry price for a long trade")
		}
		if t.Direction == models.Short && t.StopLoss <= t.EntryPrice {
			msgs = append(msgs, "stop loss must be above entry price for a short trade")
		}
	}

	if t.TakeProfit > 0 && t.EntryPrice > 0 && t.Direction.Valid() {
		if t.Direction == models.Long && t.TakeProfit <= t.EntryPrice {
			msgs = append(msgs, "take profit must be above entry price for a long trade")
		}
		if t.Direction == models.Short && t.TakeProfit >= t.EntryPrice {
			msgs = append(msgs, "take profit must be below entry price for a short trade")
		}
	}

	if t.Rating < 0 || t.Rating > 5 {
		msgs = append(msgs, "rating must be between 0 and 5")
	}

	if t.AccountSize > 0 {
		if risk := calc.RiskAmount(t); risk > t.AccountSize {
			msgs = append(msgs, "risk amount exceeds account size")
		}
		if notional := t.PositionSize * t.EntryPrice; notional > t.AccountSize {
			msgs = append(msgs, "position value exceeds account size")
		}
	}

	return msgs
}
