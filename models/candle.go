package models

import (
	"time"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
)

type Candle struct {
	Start  time.Time `json:"start"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
	Token  string    `json:"token"`
}

func NewCandle(token string, previousCandleStart time.Time, candleSize enum.CandleSize, startPrice float64, volume float64) Candle {
	return Candle{
		Start:  previousCandleStart.Add(enum.GetTimeDurationFromCandleSize(candleSize)),
		High:   startPrice,
		Low:    startPrice,
		Open:   startPrice,
		Close:  startPrice,
		Volume: volume,
		Token:  token,
	}
}

func (c *Candle) UpdateCandle(price float64, volume float64) {
	c.Close = price
	if price > c.High {
		c.High = price
	}
	if price < c.Low {
		c.Low = price
	}
	c.Volume = volume
}

// FrontEndCandle is the flat wire form with unix-second timestamps.
type FrontEndCandle struct {
	Start  int64   `json:"start"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
	Token  string  `json:"token"`
}

func (c Candle) GetFrontEndCandle() FrontEndCandle {
	return FrontEndCandle{
		Start:  c.Start.Unix(),
		High:   c.High,
		Low:    c.Low,
		Open:   c.Open,
		Close:  c.Close,
		Volume: c.Volume,
		Token:  c.Token,
	}
}

func (fc FrontEndCandle) ToCandle() Candle {
	return Candle{
		Start:  time.Unix(fc.Start, 0).UTC(),
		High:   fc.High,
		Low:    fc.Low,
		Open:   fc.Open,
		Close:  fc.Close,
		Volume: fc.Volume,
		Token:  fc.Token,
	}
}

type HeikenAshiCandle struct {
	Start  time.Time
	High   float64
	Low    float64
	Open   float64
	Close  float64
	Volume float64
}
