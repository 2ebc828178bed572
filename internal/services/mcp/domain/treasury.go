package domain

import "github.com/modelcontextprotocol/go-sdk/mcp"

// TreasuryDepositInput represents the MCP tool input for treasury deposits.
type TreasuryDepositInput struct {
	Payment string `json:"payment" jsonschema:"amount to deposit as a decimal coin amount"`
}

// TreasuryDepositResult represents the MCP tool output for treasury deposits.
type TreasuryDepositResult struct {
	Deposited string `json:"deposited" jsonschema:"amount credited to the treasury"`
}

// TreasuryBalanceInput represents the MCP tool input for reading the balance.
type TreasuryBalanceInput struct {
	AdminID string `json:"admin_id" jsonschema:"ledger administrator identifier"`
}

// TreasuryBalanceResult represents the MCP tool output for the balance read.
type TreasuryBalanceResult struct {
	Balance string `json:"balance" jsonschema:"accumulated treasury balance as a decimal coin amount"`
}

// TreasuryWithdrawInput represents the MCP tool input for draining the treasury.
type TreasuryWithdrawInput struct {
	AdminID string `json:"admin_id" jsonschema:"ledger administrator identifier"`
}

// TreasuryWithdrawResult represents the MCP tool output for the drain.
type TreasuryWithdrawResult struct {
	Amount string `json:"amount" jsonschema:"amount drained from the treasury"`
}

// TreasuryDepositTool defines the MCP tool schema for treasury deposits.
func TreasuryDepositTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "treasury_deposit",
		Description: "Deposits coins into the ledger treasury",
	}
}

// TreasuryBalanceTool defines the MCP tool schema for reading the balance.
func TreasuryBalanceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "treasury_balance",
		Description: "Reads the treasury balance (administrator only)",
	}
}

// TreasuryWithdrawTool defines the MCP tool schema for draining the treasury.
func TreasuryWithdrawTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "treasury_withdraw",
		Description: "Drains the full treasury balance (administrator only)",
	}
}
