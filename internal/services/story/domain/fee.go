package domain

import (
	"fmt"
	"strconv"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
)

// FreeCharThreshold is the word length above which per-character pricing kicks in.
const FreeCharThreshold = 9

// FeeSchedule prices one kind of paid word contribution. Words up to
// FreeCharThreshold characters cost Base; every character beyond it adds
// PerChar.
type FeeSchedule struct {
	// Base is the flat fee charged for any word.
	Base Coins
	// PerChar is the surcharge per character beyond FreeCharThreshold.
	PerChar Coins
	// Action names the operation in insufficient-payment errors.
	Action string
}

// Fee schedules for the three paid ledger mutations.
var (
	CreateStoryFees = FeeSchedule{Base: MicroPerCoin / 10, PerChar: MicroPerCoin / 10, Action: "create a story"}
	BodyWordFees    = FeeSchedule{Base: MicroPerCoin / 100, PerChar: MicroPerCoin / 100, Action: "add a word to the story"}
	TitleWordFees   = FeeSchedule{Base: MicroPerCoin / 50, PerChar: MicroPerCoin / 50, Action: "add a word to the title"}
)

// Required returns the fee owed for contributing the given word.
func (f FeeSchedule) Required(word string) Coins {
	extra := len(word) - FreeCharThreshold
	if extra < 0 {
		extra = 0
	}
	return f.Base + f.PerChar*Coins(extra)
}

// CheckPayment verifies the attached payment covers the word's fee.
func (f FeeSchedule) CheckPayment(word string, payment Coins) error {
	required := f.Required(word)
	if payment >= required {
		return nil
	}
	return apperrors.WithMetadata(
		apperrors.CodePaymentInsufficient,
		fmt.Sprintf("insufficient payment to %s: base fee %s plus %s per character beyond %d characters",
			f.Action, f.Base, f.PerChar, FreeCharThreshold),
		map[string]string{
			"Action":    f.Action,
			"Base":      f.Base.String(),
			"PerChar":   f.PerChar.String(),
			"Threshold": strconv.Itoa(FreeCharThreshold),
			"Required":  required.String(),
			"Payment":   payment.String(),
		},
	)
}
