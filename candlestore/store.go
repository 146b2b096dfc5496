package candlestore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

// Store keeps candle series in memory, keyed by token and timeframe. Every
// query returns an immutable snapshot; callers never share a handle that a
// later write could mutate under them, and there is no notion of a "current"
// pair on the store itself.
type Store struct {
	mu     sync.RWMutex
	series map[key]*models.CandleHistory
}

type key struct {
	token     string
	timeframe enum.CandleSize
}

func NewStore() *Store {
	return &Store{series: map[key]*models.CandleHistory{}}
}

// Put replaces the series for a token/timeframe. The candles must be
// strictly ascending by start time with no duplicates; anything else is
// rejected before the store is touched.
func (s *Store) Put(token string, timeframe enum.CandleSize, candles []models.Candle) error {
	owned := make([]models.Candle, len(candles))
	copy(owned, candles)
	hist := models.NewCandleHistory(owned)
	if err := hist.Validate(); err != nil {
		return fmt.Errorf("series %s/%s: %w", token, timeframe.Short(), err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[key{token, timeframe}] = hist
	return nil
}

// Append adds newer candles to an existing series, enforcing the same
// ordering contract across the seam.
func (s *Store) Append(token string, timeframe enum.CandleSize, candles []models.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{token, timeframe}
	existing := s.series[k]
	var merged []models.Candle
	if existing != nil {
		merged = make([]models.Candle, 0, existing.Len()+len(candles))
		merged = append(merged, existing.Candles...)
	}
	merged = append(merged, candles...)
	hist := models.NewCandleHistory(merged)
	if err := hist.Validate(); err != nil {
		return fmt.Errorf("series %s/%s: %w", token, timeframe.Short(), err)
	}
	s.series[k] = hist
	return nil
}

// Get returns a snapshot of the series, or an error naming the missing key.
// The snapshot is a deep copy; the caller owns it outright.
func (s *Store) Get(token string, timeframe enum.CandleSize) (*models.CandleHistory, error) {
	s.mu.RLock()
	hist, ok := s.series[key{token, timeframe}]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no candle series stored for %s/%s", token, timeframe.Short())
	}
	snapshot := make([]models.Candle, hist.Len())
	copy(snapshot, hist.Candles)
	return models.NewCandleHistory(snapshot), nil
}

// Tick applies one live price to a series. A tick inside the latest bar's
// window updates that bar; a tick past it rolls new bars forward until one
// covers it. Ticks before the latest bar are stale and rejected. Snapshots
// handed out earlier never see the mutation.
func (s *Store) Tick(token string, timeframe enum.CandleSize, at time.Time, price, volume float64) (models.Candle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist, ok := s.series[key{token, timeframe}]
	if !ok || hist.Len() == 0 {
		return models.Candle{}, fmt.Errorf("no candle series stored for %s/%s", token, timeframe.Short())
	}
	last := hist.Candles[hist.Len()-1]
	if at.Before(last.Start) {
		return models.Candle{}, fmt.Errorf("stale tick for %s/%s: %s is before the latest bar at %s",
			token, timeframe.Short(), at, last.Start)
	}
	dur := enum.GetTimeDurationFromCandleSize(timeframe)
	for !at.Before(last.Start.Add(dur)) {
		last = models.NewCandle(token, last.Start, timeframe, price, volume)
		hist.Candles = append(hist.Candles, last)
	}
	cur := &hist.Candles[hist.Len()-1]
	cur.UpdateCandle(price, volume)
	return *cur, nil
}

// Tokens lists every stored token, sorted, for the discovery endpoints.
func (s *Store) Tokens() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]bool{}
	for k := range s.series {
		seen[k.token] = true
	}
	out := make([]string, 0, len(seen))
	for token := range seen {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Timeframes lists the stored timeframes for one token, in enum order.
func (s *Store) Timeframes(token string) []enum.CandleSize {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []enum.CandleSize
	for k := range s.series {
		if k.token == token {
			out = append(out, k.timeframe)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
