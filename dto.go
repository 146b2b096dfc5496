package main

import (
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

type loadCandlesRequest struct {
	Token     string                  `json:"token"`
	Timeframe string                  `json:"timeframe"`
	Append    bool                    `json:"append"`
	Candles   []models.FrontEndCandle `json:"candles"`
}

// tickRequest carries one live price observation; Time is unix seconds.
type tickRequest struct {
	Token     string  `json:"token"`
	Timeframe string  `json:"timeframe"`
	Time      int64   `json:"time"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
}

type loadCandlesResponse struct {
	Token     string `json:"token"`
	Timeframe string `json:"timeframe"`
	Stored    int    `json:"stored"`
}

// backtestRequest runs one strategy over either inline candles or a stored
// series. The strategy is either a pair of registered template names or a
// buy/sell expression pair; the two forms are mutually exclusive.
type backtestRequest struct {
	Token          string                  `json:"token"`
	Timeframe      string                  `json:"timeframe"`
	Candles        []models.FrontEndCandle `json:"candles,omitempty"`
	TemplateA      string                  `json:"template_a,omitempty"`
	TemplateB      string                  `json:"template_b,omitempty"`
	BuyExpression  string                  `json:"buy_expression,omitempty"`
	SellExpression string                  `json:"sell_expression,omitempty"`
	StopLoss       float64                 `json:"stop_loss,omitempty"`
	TakeProfit     float64                 `json:"take_profit,omitempty"`
	MaxTrades      int                     `json:"max_trades,omitempty"`
	EchoOHLC       bool                    `json:"echo_ohlc,omitempty"`
}

type backtestResponse struct {
	Token           string                  `json:"token"`
	Timeframe       string                  `json:"timeframe"`
	BuyResults      []int                   `json:"buy_results"`
	SellResults     []int                   `json:"sell_results"`
	FinalCapital    float64                 `json:"final_capital"`
	Profit          float64                 `json:"profit"`
	ProfitPercent   float64                 `json:"profit_percent"`
	CompletedTrades int                     `json:"completed_trades"`
	StopReason      string                  `json:"stop_reason,omitempty"`
	Signals         []models.Signal         `json:"signals"`
	Trades          []models.TradeRecord    `json:"trades"`
	Metrics         []models.TradeMetrics   `json:"metrics"`
	OHLC            []models.FrontEndCandle `json:"ohlc,omitempty"`
}

type recommendRequest struct {
	Token     string                  `json:"token"`
	Timeframe string                  `json:"timeframe"`
	Candles   []models.FrontEndCandle `json:"candles,omitempty"`
}

type templateInfo struct {
	Name string `json:"name"`
}

type indicatorInfo struct {
	Name        string           `json:"name"`
	Params      []indicatorParam `json:"params"`
	Limits      []indicatorLimit `json:"limits"`
	NeedsVolume bool             `json:"needs_volume"`
}

type indicatorParam struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
}

type indicatorLimit struct {
	Variable  string    `json:"variable"`
	Operation string    `json:"operation"`
	Value     float64   `json:"value"`
	Set       []float64 `json:"set,omitempty"`
}

type walletMutationRequest struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

// walletTradeRequest settles one executed conversion against a user's held
// funds.
type walletTradeRequest struct {
	FromToken  string `json:"from_token"`
	FromAmount string `json:"from_amount"`
	ToToken    string `json:"to_token"`
	ToAmount   string `json:"to_amount"`
}

type walletTradeResponse struct {
	SettlementID string            `json:"settlement_id"`
	Balances     map[string]string `json:"balances"`
}

type errorResponse struct {
	Error string `json:"error"`
}
