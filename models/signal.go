package models

import (
	"time"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
)

// SignalArray is aligned index-for-index with its source CandleHistory:
// +1 buy, -1 sell, 0 hold.
type SignalArray []int

// Signal is a single emitted decision, the form the API layer reports.
type Signal struct {
	Token   string          `json:"token"`
	Type    enum.SignalType `json:"type"`
	Percent float64         `json:"percent"`
	Time    time.Time       `json:"time"`
	Price   float64         `json:"price"`
}
