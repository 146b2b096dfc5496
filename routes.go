package main

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/api_helper"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/candlestore"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/backtester"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/indicator"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/signaler"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/wallet"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

type Server struct {
	cfg     Config
	store   *candlestore.Store
	toggles *api_helper.ToggleStore

	walletMutex sync.Mutex
	wallets     map[string]*wallet.Wallet

	progressFeed chan ProgressEvent

	frontendMutex     sync.Mutex
	frontendConnected bool
}

func NewServer(cfg Config) *Server {
	return &Server{
		cfg:          cfg,
		store:        candlestore.NewStore(),
		toggles:      api_helper.NewToggleStore(cfg.Tokens),
		wallets:      map[string]*wallet.Wallet{},
		progressFeed: make(chan ProgressEvent, 256),
	}
}

// walletFor lazily creates a per-user ledger.
func (s *Server) walletFor(user string) *wallet.Wallet {
	s.walletMutex.Lock()
	defer s.walletMutex.Unlock()
	w, ok := s.wallets[user]
	if !ok {
		w = wallet.NewWallet()
		s.wallets[user] = w
	}
	return w
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/candles", s.loadCandlesHandler)
	mux.HandleFunc("GET /api/v1/candles", s.candleHistoryHandler)
	mux.HandleFunc("POST /api/v1/candles/tick", s.tickHandler)
	mux.HandleFunc("POST /api/v1/backtest", s.backtestHandler)
	mux.HandleFunc("POST /api/v1/recommend", s.recommendHandler)
	mux.HandleFunc("POST /api/v1/recommend/all", s.recommendAllHandler)
	mux.HandleFunc("GET /api/v1/templates", s.templatesHandler)
	mux.HandleFunc("GET /api/v1/indicators", s.indicatorsHandler)
	mux.HandleFunc("POST /api/v1/toggleToken", s.toggleTokenHandler)
	mux.HandleFunc("GET /api/v1/wallet/{user}", s.walletHandler)
	mux.HandleFunc("POST /api/v1/wallet/{user}/deposit", s.walletDepositHandler)
	mux.HandleFunc("POST /api/v1/wallet/{user}/withdraw", s.walletWithdrawHandler)
	mux.HandleFunc("POST /api/v1/wallet/{user}/trade", s.walletTradeHandler)
	mux.HandleFunc("/ws", s.wsHandler)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) loadCandlesHandler(w http.ResponseWriter, r *http.Request) {
	var req loadCandlesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tf, err := enum.GetCandleSizeFromShort(req.Timeframe)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	candles := make([]models.Candle, len(req.Candles))
	for i, fc := range req.Candles {
		candles[i] = fc.ToCandle()
		candles[i].Token = req.Token
	}
	if req.Append {
		err = s.store.Append(req.Token, tf, candles)
	} else {
		err = s.store.Put(req.Token, tf, candles)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	hist, _ := s.store.Get(req.Token, tf)
	writeJSON(w, http.StatusOK, loadCandlesResponse{
		Token:     req.Token,
		Timeframe: tf.Short(),
		Stored:    hist.Len(),
	})
}

// tickHandler folds one live price into the stored series, updating or
// rolling the latest bar.
func (s *Server) tickHandler(w http.ResponseWriter, r *http.Request) {
	var req tickRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tf, err := enum.GetCandleSizeFromShort(req.Timeframe)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := s.store.Tick(req.Token, tf, time.Unix(req.Time, 0).UTC(), req.Price, req.Volume)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     req.Token,
		"timeframe": tf.Short(),
		"candle":    c.GetFrontEndCandle(),
	})
}

func (s *Server) candleHistoryHandler(w http.ResponseWriter, r *http.Request) {
	hist, tf, ok := s.storedSeries(w, r.URL.Query().Get("token"), r.URL.Query().Get("timeframe"))
	if !ok {
		return
	}
	out := make([]models.FrontEndCandle, hist.Len())
	for i, c := range hist.Candles {
		out[i] = c.GetFrontEndCandle()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     r.URL.Query().Get("token"),
		"timeframe": tf.Short(),
		"candles":   out,
	})
}

// seriesFor resolves a request to a candle history: inline candles win,
// otherwise the stored series for token/timeframe is used.
func (s *Server) seriesFor(w http.ResponseWriter, token, timeframe string, inline []models.FrontEndCandle) (*models.CandleHistory, enum.CandleSize, bool) {
	tf, err := enum.GetCandleSizeFromShort(timeframe)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, 0, false
	}
	if len(inline) > 0 {
		candles := make([]models.Candle, len(inline))
		for i, fc := range inline {
			candles[i] = fc.ToCandle()
			candles[i].Token = token
		}
		hist := models.NewCandleHistory(candles)
		if err := hist.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, 0, false
		}
		return hist, tf, true
	}
	hist, err := s.store.Get(token, tf)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, 0, false
	}
	return hist, tf, true
}

func (s *Server) storedSeries(w http.ResponseWriter, token, timeframe string) (*models.CandleHistory, enum.CandleSize, bool) {
	return s.seriesFor(w, token, timeframe, nil)
}

// strategySignals resolves the request's strategy form. Template pairs are
// combined under AND agreement; expression pairs evaluate independently. The
// returned buy/sell arrays are the per-side views the frontend plots.
func strategySignals(req backtestRequest, hist *models.CandleHistory, tf enum.CandleSize) (signals models.SignalArray, buyVals, sellVals []float64, err error) {
	usesTemplates := req.TemplateA != "" || req.TemplateB != ""
	usesExpressions := req.BuyExpression != "" || req.SellExpression != ""
	if usesTemplates == usesExpressions {
		return nil, nil, nil, fmt.Errorf("supply either template_a/template_b or buy_expression/sell_expression")
	}

	if usesTemplates {
		a, ok := signaler.GetTemplate(req.TemplateA)
		if !ok {
			return nil, nil, nil, fmt.Errorf("unknown template %q", req.TemplateA)
		}
		b, ok := signaler.GetTemplate(req.TemplateB)
		if !ok {
			return nil, nil, nil, fmt.Errorf("unknown template %q", req.TemplateB)
		}
		signals = signaler.Combine(a.Compute(hist), b.Compute(hist))
		buyVals = make([]float64, len(signals))
		sellVals = make([]float64, len(signals))
		for i, v := range signals {
			if v > 0 {
				buyVals[i] = 1
			} else if v < 0 {
				sellVals[i] = 1
			}
		}
		return signals, buyVals, sellVals, nil
	}

	buy, err := signaler.Compile(req.BuyExpression)
	if err != nil {
		return nil, nil, nil, err
	}
	sell, err := signaler.Compile(req.SellExpression)
	if err != nil {
		return nil, nil, nil, err
	}
	if buyVals, err = buy.Run(hist, tf); err != nil {
		return nil, nil, nil, err
	}
	if sellVals, err = sell.Run(hist, tf); err != nil {
		return nil, nil, nil, err
	}
	if signals, err = signaler.Signals(buy, sell, hist, tf); err != nil {
		return nil, nil, nil, err
	}
	return signals, buyVals, sellVals, nil
}

func (s *Server) backtestHandler(w http.ResponseWriter, r *http.Request) {
	var req backtestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hist, tf, ok := s.seriesFor(w, req.Token, req.Timeframe, req.Candles)
	if !ok {
		return
	}
	signals, buyVals, sellVals, err := strategySignals(req, hist, tf)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sim := backtester.Simulate(hist, signals, backtester.SimulationConfig{
		StartingCapital: s.cfg.StartingCapital,
		BaseToken:       "USD",
		StopLoss:        req.StopLoss,
		TakeProfit:      req.TakeProfit,
		MaxTrades:       req.MaxTrades,
	})

	resp := backtestResponse{
		Token:           req.Token,
		Timeframe:       tf.Short(),
		BuyResults:      toBuyResults(buyVals),
		SellResults:     toSellResults(sellVals),
		FinalCapital:    sim.FinalCapital,
		Profit:          sim.FinalCapital - s.cfg.StartingCapital,
		ProfitPercent:   100 * (sim.FinalCapital - s.cfg.StartingCapital) / s.cfg.StartingCapital,
		CompletedTrades: sim.CompletedTrades,
		StopReason:      string(sim.StopReason),
		Signals:         emittedSignals(req.Token, hist, signals),
		Trades:          sim.Trades,
		Metrics:         sim.Metrics,
	}
	if req.EchoOHLC {
		resp.OHLC = make([]models.FrontEndCandle, hist.Len())
		for i, c := range hist.Candles {
			resp.OHLC[i] = c.GetFrontEndCandle()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// emittedSignals flattens a signal array into the decision list the frontend
// plots: one entry per non-hold bar, with the bar's percent move attached.
func emittedSignals(token string, hist *models.CandleHistory, signals models.SignalArray) []models.Signal {
	var out []models.Signal
	for i, v := range signals {
		if v == 0 {
			continue
		}
		c := hist.Candles[i]
		percent := 0.0
		if c.Open != 0 {
			percent = 100 * (c.Close - c.Open) / c.Open
		}
		out = append(out, models.Signal{
			Token:   token,
			Type:    enum.SignalTypeFromDirection(v),
			Percent: percent,
			Time:    c.Start,
			Price:   c.Close,
		})
	}
	return out
}

func toBuyResults(vals []float64) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) && v != 0 {
			out[i] = 1
		}
	}
	return out
}

func toSellResults(vals []float64) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) && v != 0 {
			out[i] = -1
		}
	}
	return out
}

func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hist, tf, ok := s.seriesFor(w, req.Token, req.Timeframe, req.Candles)
	if !ok {
		return
	}
	result := s.runRecommendation(hist, req.Token, tf)
	writeJSON(w, http.StatusOK, result)
}

// recommendAllHandler sweeps every enabled token that has a stored series at
// the requested timeframe. Disabled tokens are skipped, not failed.
func (s *Server) recommendAllHandler(w http.ResponseWriter, r *http.Request) {
	tf, err := enum.GetCandleSizeFromShort(r.URL.Query().Get("timeframe"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var results []models.BacktestResult
	for _, token := range s.store.Tokens() {
		if enabled, known := s.toggles.Get(token); known && !enabled {
			continue
		}
		hist, err := s.store.Get(token, tf)
		if err != nil {
			continue
		}
		results = append(results, s.runRecommendation(hist, token, tf))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"timeframe": tf.Short(),
		"results":   results,
	})
}

func (s *Server) runRecommendation(hist *models.CandleHistory, token string, tf enum.CandleSize) models.BacktestResult {
	result := backtester.Recommend(hist, token, tf, backtester.Options{
		StartingCapital: s.cfg.StartingCapital,
		Workers:         s.cfg.Workers,
		Progress: func(done, total int) {
			s.publishProgress(ProgressEvent{
				Type:      "progress",
				Token:     token,
				Timeframe: tf.Short(),
				Done:      done,
				Total:     total,
			})
		},
	})
	s.publishProgress(ProgressEvent{
		Type:      "result",
		Token:     token,
		Timeframe: tf.Short(),
		Result:    &result,
	})
	return result
}

func (s *Server) templatesHandler(w http.ResponseWriter, _ *http.Request) {
	ts := signaler.Templates()
	out := make([]templateInfo, len(ts))
	for i, t := range ts {
		out[i] = templateInfo{Name: t.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) indicatorsHandler(w http.ResponseWriter, _ *http.Request) {
	names := indicator.Names()
	out := make([]indicatorInfo, 0, len(names))
	for _, name := range names {
		def, _ := indicator.Get(name)
		info := indicatorInfo{Name: name, NeedsVolume: def.NeedsVolume}
		for _, p := range def.Params {
			info.Params = append(info.Params, indicatorParam{Name: p.Name, Default: p.Default})
		}
		for _, l := range def.Limits {
			info.Limits = append(info.Limits, indicatorLimit{
				Variable:  l.Variable,
				Operation: l.Operation.String(),
				Value:     l.Value,
				Set:       l.Set,
			})
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) toggleTokenHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	state, err := s.toggles.Toggle(token)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	LoggerFrom(r).Printf("token %s is now enabled=%t", token, state)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"enabled": state,
		"toggles": s.toggles.Snapshot(),
	})
}

func balancesAsStrings(w *wallet.Wallet) map[string]string {
	balances := w.Balances()
	out := make(map[string]string, len(balances))
	for token, amt := range balances {
		out[token] = amt.String()
	}
	return out
}

func (s *Server) walletHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, balancesAsStrings(s.walletFor(r.PathValue("user"))))
}

func (s *Server) walletDepositHandler(w http.ResponseWriter, r *http.Request) {
	s.walletMutation(w, r, (*wallet.Wallet).Deposit)
}

func (s *Server) walletWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	s.walletMutation(w, r, (*wallet.Wallet).Withdraw)
}

func (s *Server) walletMutation(w http.ResponseWriter, r *http.Request, op func(*wallet.Wallet, string, decimal.Decimal) error) {
	var req walletMutationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	userWallet := s.walletFor(r.PathValue("user"))
	if err := op(userWallet, req.Token, amount); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	available, held := userWallet.Balance(req.Token)
	writeJSON(w, http.StatusOK, map[string]string{
		"token":     req.Token,
		"available": available.String(),
		"held":      held.String(),
	})
}

// walletTradeHandler applies one executed conversion: the from-leg is placed
// on hold, then both legs settle atomically. A failed settlement releases
// the hold so no funds are stranded.
func (s *Server) walletTradeHandler(w http.ResponseWriter, r *http.Request) {
	var req walletTradeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fromAmount, err := decimal.NewFromString(req.FromAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	toAmount, err := decimal.NewFromString(req.ToAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	userWallet := s.walletFor(r.PathValue("user"))
	if err := userWallet.Hold(req.FromToken, fromAmount); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := userWallet.SettleTrade(req.FromToken, fromAmount, req.ToToken, toAmount); err != nil {
		_ = userWallet.ReleaseHold(req.FromToken, fromAmount)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, walletTradeResponse{
		SettlementID: uuid.NewString(),
		Balances:     balancesAsStrings(userWallet),
	})
}
