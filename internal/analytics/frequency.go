package analytics

import (
	"time"

	"tradelog/internal/models"
)

// DayOfWeekStat is the trade count and share for one weekday.
type DayOfWeekStat struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Frequency describes how often and on which days trades are taken.
type Frequency struct {
	TotalClosed int       `json:"total_closed"`
	FirstEntry  time.Time `json:"first_entry,omitempty"`
	LastEntry   time.Time `json:"last_entry,omitempty"`
	SpanDays    float64   `json:"span_days"`

	TradesPerWeek  float64 `json:"trades_per_week"`
	TradesPerMonth float64 `json:"trades_per_month"`

	// ByDayOfWeek is indexed time.Weekday style: 0=Sunday .. 6=Saturday.
	ByDayOfWeek [7]DayOfWeekStat `json:"by_day_of_week"`

	MostActiveDay  time.Weekday `json:"most_active_day"`
	LeastActiveDay time.Weekday `json:"least_active_day"`

	TradingDaysPerWeek float64 `json:"trading_days_per_week"`
}

// daysPerMonth is the mean length of a calendar month.
const daysPerMonth = 30.44

// TradeFrequency analyses the entry-date distribution of closed trades.
// Averages are taken over the calendar span between the first and last
// entry; a zero span (no trades, or all on one instant) leaves every ratio
// at 0. Ties for most and least active day go to the lowest day index.
func TradeFrequency(trades []models.Trade) Frequency {
	closed := closedTrades(trades)
	sortByEntryAsc(closed)

	f := Frequency{TotalClosed: len(closed)}
	if len(closed) == 0 {
		return f
	}

	f.FirstEntry = closed[0].EntryDate
	f.LastEntry = closed[len(closed)-1].EntryDate
	f.SpanDays = f.LastEntry.Sub(f.FirstEntry).Hours() / 24

	distinctDates := make(map[string]struct{}, len(closed))
	for i := range closed {
		day := closed[i].EntryDate.Weekday()
		f.ByDayOfWeek[day].Count++
		distinctDates[closed[i].EntryDate.Format("2006-01-02")] = struct{}{}
	}
	for day := range f.ByDayOfWeek {
		f.ByDayOfWeek[day].Percent = float64(f.ByDayOfWeek[day].Count) / float64(len(closed)) * 100
	}

	// Left fold with strict comparisons: the first day encountered in
	// index order wins ties.
	for day := 1; day < 7; day++ {
		if f.ByDayOfWeek[day].Count > f.ByDayOfWeek[f.MostActiveDay].Count {
			f.MostActiveDay = time.Weekday(day)
		}
		if f.ByDayOfWeek[day].Count < f.ByDayOfWeek[f.LeastActiveDay].Count {
			f.LeastActiveDay = time.Weekday(day)
		}
	}

	if f.SpanDays > 0 {
		weeks := f.SpanDays / 7
		months := f.SpanDays / daysPerMonth
		f.TradesPerWeek = float64(len(closed)) / weeks
		f.TradesPerMonth = float64(len(closed)) / months
		f.TradingDaysPerWeek = float64(len(distinctDates)) / weeks
	}

	return f
}
