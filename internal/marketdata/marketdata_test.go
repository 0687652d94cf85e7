package marketdata

import (
	"testing"
	"time"
)

var testDay = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestFileCacheRoundTrip(t *testing.T) {
	c := NewFileCache(t.TempDir())

	if _, ok := c.Get("BTCUSDC", testDay); ok {
		t.Fatal("Expected miss on empty cache")
	}

	payload := []byte(`[[1704067200000,"42000","42500","41800","42100","123.4"]]`)
	if err := c.Put("BTCUSDC", testDay, payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := c.Get("BTCUSDC", testDay)
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if string(got) != string(payload) {
		t.Errorf("Payload mismatch: %s", got)
	}

	// A different day of the same symbol is a separate entry.
	if _, ok := c.Get("BTCUSDC", testDay.AddDate(0, 0, 1)); ok {
		t.Error("Expected miss for a different day")
	}
}

func TestParseKlines(t *testing.T) {
	raw := []byte(`[
		[1704067200000,"42000.5","42500.1","41800.2","42100.9","123.4",1704081599999,"0",6,"0","0","0"],
		[1704081600000,"42100.9","42600.0","42000.0","42550.0","98.7",1704095999999,"0",6,"0","0","0"]
	]`)
	bars, err := parseKlines(raw)
	if err != nil {
		t.Fatalf("parseKlines failed: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("Expected 2 bars, got %d", len(bars))
	}
	b := bars[0]
	if b.Ts != 1704067200000 {
		t.Errorf("Expected Ts 1704067200000, got %d", b.Ts)
	}
	if b.Open != 42000.5 || b.High != 42500.1 || b.Low != 41800.2 || b.Close != 42100.9 || b.Vol != 123.4 {
		t.Errorf("Unexpected OHLCV: %+v", b)
	}
	if !b.Day().Equal(testDay) {
		t.Errorf("Expected bar on %v, got %v", testDay, b.Day())
	}
}

func TestParseKlinesRejectsBadRows(t *testing.T) {
	cases := []string{
		`not json`,
		`[["notanumber","1","2","3","4","5"]]`,
		`[[1704067200000,"1","2","3"]]`,
		`[[1704067200000,"x","2","3","4","5"]]`,
	}
	for _, raw := range cases {
		if _, err := parseKlines([]byte(raw)); err == nil {
			t.Errorf("Expected error for %s", raw)
		}
	}
}
