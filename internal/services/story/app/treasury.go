package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/domain"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Treasury restricts balance inspection and withdrawal to the administrator
// recorded at ledger initialization.
type Treasury struct {
	store  storage.LedgerStore
	tracer trace.Tracer
}

// NewTreasury creates a treasury guard over the given store.
func NewTreasury(store storage.LedgerStore) *Treasury {
	return &Treasury{
		store:  store,
		tracer: otel.Tracer("story/app"),
	}
}

// Balance returns the current treasury balance to the administrator.
func (t *Treasury) Balance(ctx context.Context, callerID string) (domain.Coins, error) {
	ctx, span := t.tracer.Start(ctx, "treasury.balance")
	defer span.End()

	if err := t.requireAdmin(ctx, callerID); err != nil {
		return 0, err
	}
	balance, err := t.store.TreasuryBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("get treasury balance: %w", err)
	}
	return domain.Coins(balance), nil
}

// Withdraw drains the full treasury balance to the administrator and resets
// it to zero. The balance read and the drain are one store transaction.
func (t *Treasury) Withdraw(ctx context.Context, callerID string) (domain.Coins, error) {
	ctx, span := t.tracer.Start(ctx, "treasury.withdraw")
	defer span.End()

	if err := t.requireAdmin(ctx, callerID); err != nil {
		return 0, err
	}
	amount, err := t.store.WithdrawTreasury(ctx, strings.TrimSpace(callerID))
	if err != nil {
		return 0, fmt.Errorf("withdraw treasury: %w", err)
	}
	return domain.Coins(amount), nil
}

func (t *Treasury) requireAdmin(ctx context.Context, callerID string) error {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return apperrors.New(apperrors.CodeContributorRequired, "contributor identity is required")
	}
	meta, err := t.store.LedgerMeta(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeLedgerNotInitialized, "ledger is not initialized")
		}
		return fmt.Errorf("get ledger meta: %w", err)
	}
	if callerID != meta.AdminID {
		return apperrors.New(apperrors.CodeTreasuryUnauthorized, "only the ledger administrator may access the treasury")
	}
	return nil
}
