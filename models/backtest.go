package models

import "time"

// TradeRecord is one append-only ledger entry, emitted on every transition
// between holding states.
type TradeRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	FromToken  string    `json:"from_token"`
	FromAmount float64   `json:"from_amount"`
	ToToken    string    `json:"to_token"`
	ToAmount   float64   `json:"to_amount"`
	Price      float64   `json:"price"`
}

// TradeMetrics covers one completed (buy,sell) round trip.
type TradeMetrics struct {
	PnL                float64 `json:"pnl"`
	CumulativePnL      float64 `json:"cumulative_pnl"`
	CumulativePnLPct   float64 `json:"cumulative_pnl_percent"`
	MaxRunUp           float64 `json:"max_run_up"`
	MaxDrawdownValue   float64 `json:"max_drawdown_value"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
}

// BacktestResult is the recommendation for one token/timeframe.
type BacktestResult struct {
	RunID         string  `json:"run_id"`
	Token         string  `json:"token"`
	Timeframe     string  `json:"timeframe"`
	StrategyName  string  `json:"recommended_strategy_name"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profit_percent"`
	UseCase       string  `json:"use_case,omitempty"`
}
