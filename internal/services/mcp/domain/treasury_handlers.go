package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Jdubedition/dapp-owaat/internal/services/story/app"
	storydomain "github.com/Jdubedition/dapp-owaat/internal/services/story/domain"
)

// TreasuryDepositHandler credits the treasury without touching any story.
func TreasuryDepositHandler(ledger *app.Ledger) mcp.ToolHandlerFor[TreasuryDepositInput, TreasuryDepositResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TreasuryDepositInput) (*mcp.CallToolResult, TreasuryDepositResult, error) {
		payment, err := storydomain.ParseCoins(input.Payment)
		if err != nil {
			return nil, TreasuryDepositResult{}, err
		}
		if err := ledger.Deposit(ctx, payment); err != nil {
			return nil, TreasuryDepositResult{}, err
		}
		return nil, TreasuryDepositResult{Deposited: payment.String()}, nil
	}
}

// TreasuryBalanceHandler reads the treasury balance for the administrator.
func TreasuryBalanceHandler(treasury *app.Treasury) mcp.ToolHandlerFor[TreasuryBalanceInput, TreasuryBalanceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TreasuryBalanceInput) (*mcp.CallToolResult, TreasuryBalanceResult, error) {
		balance, err := treasury.Balance(ctx, input.AdminID)
		if err != nil {
			return nil, TreasuryBalanceResult{}, err
		}
		return nil, TreasuryBalanceResult{Balance: balance.String()}, nil
	}
}

// TreasuryWithdrawHandler drains the full treasury balance for the administrator.
func TreasuryWithdrawHandler(treasury *app.Treasury) mcp.ToolHandlerFor[TreasuryWithdrawInput, TreasuryWithdrawResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TreasuryWithdrawInput) (*mcp.CallToolResult, TreasuryWithdrawResult, error) {
		amount, err := treasury.Withdraw(ctx, input.AdminID)
		if err != nil {
			return nil, TreasuryWithdrawResult{}, err
		}
		return nil, TreasuryWithdrawResult{Amount: amount.String()}, nil
	}
}
