package format

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNumberify(t *testing.T) {
	tests := []struct {
		value int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := Numberify(tt.value); got != tt.want {
			t.Errorf("Numberify(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDecimalify(t *testing.T) {
	if got := Decimalify(decimal.NewFromFloat(12.5)); got != "12.50" {
		t.Errorf("Decimalify(12.5) = %q, want %q", got, "12.50")
	}
	if got := Decimalify(decimal.NewFromInt(1000)); got != "1,000.00" {
		t.Errorf("Decimalify(1000) = %q, want %q", got, "1,000.00")
	}
}

func TestCurrencify(t *testing.T) {
	if got := Currencify(29); got != "$29" {
		t.Errorf("Currencify(29) = %q, want %q", got, "$29")
	}
	if got := CurrencifyDecimal(decimal.NewFromFloat(10.5)); got != "$10.5" {
		t.Errorf("CurrencifyDecimal(10.5) = %q, want %q", got, "$10.5")
	}
}

func TestAgeify(t *testing.T) {
	if got := Ageify(time.Now()); got != "now" {
		t.Errorf("Ageify(now) = %q, want %q", got, "now")
	}
	if got := Ageify(time.Now().Add(-48 * time.Hour)); !strings.Contains(got, "ago") {
		t.Errorf("Ageify(2 days back) = %q, want a relative phrase", got)
	}
}
