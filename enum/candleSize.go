package enum

import (
	"fmt"
	"time"
)

type CandleSize int

const (
	CandleSize1m CandleSize = iota
	CandleSize5m
	CandleSize15m
	CandleSize30m
	CandleSize1h
	CandleSize2h
	CandleSize4h
	CandleSize6h
	CandleSize1d
)

func (c CandleSize) String() string {
	switch c {
	case CandleSize1m:
		return "CandleSize1m"
	case CandleSize5m:
		return "CandleSize5m"
	case CandleSize15m:
		return "CandleSize15m"
	case CandleSize30m:
		return "CandleSize30m"
	case CandleSize1h:
		return "CandleSize1h"
	case CandleSize2h:
		return "CandleSize2h"
	case CandleSize4h:
		return "CandleSize4h"
	case CandleSize6h:
		return "CandleSize6h"
	case CandleSize1d:
		return "CandleSize1d"
	default:
		panic(fmt.Sprintf("Unknown CandleSize (%d)", c))
	}
}

// Short returns the compact form used in expression strings and API payloads.
func (c CandleSize) Short() string {
	switch c {
	case CandleSize1m:
		return "1m"
	case CandleSize5m:
		return "5m"
	case CandleSize15m:
		return "15m"
	case CandleSize30m:
		return "30m"
	case CandleSize1h:
		return "1h"
	case CandleSize2h:
		return "2h"
	case CandleSize4h:
		return "4h"
	case CandleSize6h:
		return "6h"
	case CandleSize1d:
		return "1d"
	default:
		panic(fmt.Sprintf("Unknown CandleSize (%d)", c))
	}
}

func GetCandleSizeFromString(s string) CandleSize {
	switch s {
	case "CandleSize1m":
		return CandleSize1m
	case "CandleSize5m":
		return CandleSize5m
	case "CandleSize15m":
		return CandleSize15m
	case "CandleSize30m":
		return CandleSize30m
	case "CandleSize1h":
		return CandleSize1h
	case "CandleSize2h":
		return CandleSize2h
	case "CandleSize4h":
		return CandleSize4h
	case "CandleSize6h":
		return CandleSize6h
	case "CandleSize1d":
		return CandleSize1d
	default:
		panic(fmt.Sprintf("Unknown CandleSize (%s)", s))
	}
}

// GetCandleSizeFromShort parses the compact form ("1m", "4h", ...). Unlike
// GetCandleSizeFromString it reports failure instead of panicking, since the
// input comes from user expressions and request payloads.
func GetCandleSizeFromShort(s string) (CandleSize, error) {
	switch s {
	case "1m":
		return CandleSize1m, nil
	case "5m":
		return CandleSize5m, nil
	case "15m":
		return CandleSize15m, nil
	case "30m":
		return CandleSize30m, nil
	case "1h":
		return CandleSize1h, nil
	case "2h":
		return CandleSize2h, nil
	case "4h":
		return CandleSize4h, nil
	case "6h":
		return CandleSize6h, nil
	case "1d":
		return CandleSize1d, nil
	default:
		return 0, fmt.Errorf("unknown candle size %q", s)
	}
}

func GetTimeDurationFromCandleSize(tf CandleSize) time.Duration {
	switch tf {
	case CandleSize1m:
		return time.Minute
	case CandleSize5m:
		return 5 * time.Minute
	case CandleSize15m:
		return 15 * time.Minute
	case CandleSize30m:
		return 30 * time.Minute
	case CandleSize1h:
		return time.Hour
	case CandleSize2h:
		return 2 * time.Hour
	case CandleSize4h:
		return 4 * time.Hour
	case CandleSize6h:
		return 6 * time.Hour
	case CandleSize1d:
		return 24 * time.Hour
	default:
		return time.Microsecond
	}
}

// GetBucketRatio is the number of fine candles aggregated into one coarse
// candle when resampling. The coarse size must be a multiple of the fine one.
func GetBucketRatio(fine, coarse CandleSize) (int, error) {
	fd := GetTimeDurationFromCandleSize(fine)
	cd := GetTimeDurationFromCandleSize(coarse)
	if cd <= fd {
		return 0, fmt.Errorf("coarse candle size %s is not larger than %s", coarse.Short(), fine.Short())
	}
	if cd%fd != 0 {
		return 0, fmt.Errorf("candle size %s is not a multiple of %s", coarse.Short(), fine.Short())
	}
	return int(cd / fd), nil
}

// GetUseCaseFromCandleSize labels a timeframe with the trading use case its
// recommendations target.
func GetUseCaseFromCandleSize(tf CandleSize) string {
	switch tf {
	case CandleSize1m, CandleSize5m, CandleSize15m, CandleSize30m, CandleSize1h:
		return "scalp"
	case CandleSize2h, CandleSize4h, CandleSize6h:
		return "swing"
	case CandleSize1d:
		return "position"
	default:
		panic(fmt.Sprintf("Unknown CandleSize (%d)", tf))
	}
}
