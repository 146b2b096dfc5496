package enum

import "testing"

var allCandleSizes = []CandleSize{
	CandleSize1m, CandleSize5m, CandleSize15m, CandleSize30m,
	CandleSize1h, CandleSize2h, CandleSize4h, CandleSize6h, CandleSize1d,
}

func TestCandleSizeStringRoundTrip(t *testing.T) {
	for _, tf := range allCandleSizes {
		if got := GetCandleSizeFromString(tf.String()); got != tf {
			t.Fatalf("GetCandleSizeFromString(%q) = %v, want %v", tf.String(), got, tf)
		}
		short, err := GetCandleSizeFromShort(tf.Short())
		if err != nil || short != tf {
			t.Fatalf("GetCandleSizeFromShort(%q) = %v, %v, want %v", tf.Short(), short, err, tf)
		}
	}
}

func TestGetCandleSizeFromStringPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown candle size string")
		}
	}()
	GetCandleSizeFromString("CandleSize3h")
}

func TestSignalTypeDirectionRoundTrip(t *testing.T) {
	for _, s := range []SignalType{SignalBuy, SignalSell, SignalHold} {
		if got := SignalTypeFromDirection(s.Direction()); got != s {
			t.Fatalf("SignalTypeFromDirection(%v.Direction()) = %v", s, got)
		}
		if got := GetSignalType(s.String()); got != s {
			t.Fatalf("GetSignalType(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if SignalTypeFromDirection(3) != SignalBuy || SignalTypeFromDirection(-3) != SignalSell {
		t.Fatal("any positive direction is a buy, any negative a sell")
	}
}

func TestOperationRoundTrip(t *testing.T) {
	for _, op := range []Operation{OpGreater, OpLess, OpGreaterEqual, OpLessEqual, OpEqual, OpNotEqual, OpIn} {
		if got := GetOperation(op.String()); got != op {
			t.Fatalf("GetOperation(%q) = %v, want %v", op.String(), got, op)
		}
	}
}

func TestGetOperationPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown operation")
		}
	}()
	GetOperation("<>")
}
