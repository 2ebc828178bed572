// Package domain holds the story ledger's word, pricing, and money rules.
package domain

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
)

// Coins is a native-value amount in micro-coin minor units.
// One coin equals 1_000_000 micro-coins; amounts are never negative.
type Coins int64

// MicroPerCoin is the number of minor units in one coin.
const MicroPerCoin = 1_000_000

const maxFractionDigits = 6

// ParseCoins parses a non-negative decimal coin amount such as "0.1" or "2".
// At most six fraction digits are accepted.
func ParseCoins(value string) (Coins, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, apperrors.New(apperrors.CodePaymentInvalid, "payment amount is required")
	}

	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, invalidAmount(value)
	}
	if hasFrac && len(frac) > maxFractionDigits {
		return 0, invalidAmount(value)
	}

	var total int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, invalidAmount(value)
		}
		total = total*10 + int64(r-'0')
		// Keep the whole part small enough that converting to micro-coins
		// cannot wrap int64.
		if total > math.MaxInt64/MicroPerCoin {
			return 0, invalidAmount(value)
		}
	}
	total *= MicroPerCoin

	if hasFrac {
		scale := int64(MicroPerCoin / 10)
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0, invalidAmount(value)
			}
			add := int64(r-'0') * scale
			if total > math.MaxInt64-add {
				return 0, invalidAmount(value)
			}
			total += add
			scale /= 10
		}
	}
	return Coins(total), nil
}

func invalidAmount(value string) error {
	return apperrors.WithMetadata(
		apperrors.CodePaymentInvalid,
		fmt.Sprintf("payment amount %q is not a valid decimal", value),
		map[string]string{"Amount": value},
	)
}

// String renders the amount as a decimal coin value with trailing zeros trimmed.
func (c Coins) String() string {
	whole := int64(c) / MicroPerCoin
	frac := int64(c) % MicroPerCoin
	if frac < 0 {
		frac = -frac
	}
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	fracText := strings.TrimRight(fmt.Sprintf("%06d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, fracText)
}
