package domain

import (
	"math"
	"testing"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
)

func TestParseCoins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Coins
	}{
		{"0", 0},
		{"0.1", 100_000},
		{"0.01", 10_000},
		{"0.02", 20_000},
		{"0.5", 500_000},
		{"1", MicroPerCoin},
		{"2.25", 2_250_000},
		{".5", 500_000},
		{"3.", 3 * MicroPerCoin},
		{" 0.1 ", 100_000},
		{"0.000001", 1},
	}
	for _, tc := range tests {
		got, err := ParseCoins(tc.in)
		if err != nil {
			t.Fatalf("ParseCoins(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCoins(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCoinsRejectsInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", ".", "-1", "1,5", "0.1234567", "abc", "1e3"} {
		_, err := ParseCoins(in)
		if err == nil {
			t.Fatalf("ParseCoins(%q) accepted", in)
		}
		if got := apperrors.GetCode(err); got != apperrors.CodePaymentInvalid {
			t.Fatalf("ParseCoins(%q) code = %q", in, got)
		}
	}
}

func TestParseCoinsRejectsOverflow(t *testing.T) {
	t.Parallel()

	// The largest representable amount is math.MaxInt64 micro-coins.
	got, err := ParseCoins("9223372036854.775807")
	if err != nil {
		t.Fatalf("parse max amount: %v", err)
	}
	if got != Coins(math.MaxInt64) {
		t.Fatalf("max amount = %d, want %d", got, int64(math.MaxInt64))
	}

	for _, in := range []string{
		"9223372036855",        // whole part one coin past the limit
		"9223372036854.775808", // fraction pushes past the limit
		"10000000000000",
		"20000000000000",
		"99999999999999999999",
	} {
		parsed, err := ParseCoins(in)
		if err == nil {
			t.Fatalf("ParseCoins(%q) accepted as %d", in, parsed)
		}
		if got := apperrors.GetCode(err); got != apperrors.CodePaymentInvalid {
			t.Fatalf("ParseCoins(%q) code = %q", in, got)
		}
	}
}

func TestCoinsString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Coins
		want string
	}{
		{0, "0"},
		{100_000, "0.1"},
		{10_000, "0.01"},
		{20_000, "0.02"},
		{500_000, "0.5"},
		{MicroPerCoin, "1"},
		{2_250_000, "2.25"},
		{1, "0.000001"},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("%d.String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseCoinsRoundTripsString(t *testing.T) {
	t.Parallel()

	for _, amount := range []Coins{0, 1, 10_000, 100_000, 2_250_000, 42 * MicroPerCoin} {
		parsed, err := ParseCoins(amount.String())
		if err != nil {
			t.Fatalf("parse %s: %v", amount, err)
		}
		if parsed != amount {
			t.Fatalf("round trip %d → %q → %d", amount, amount.String(), parsed)
		}
	}
}
