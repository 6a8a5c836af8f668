package services

import (
	"context"

	"github.com/vicdotun/payvault/internal/dto"
)

// TransactionSvcFacade is the transaction orchestrator surface consumed by
// HTTP handlers. It owns the transaction state machine and is the only caller
// of the ledger's settlement primitives.
type TransactionSvcFacade interface {
	// InitiateDeposit opens a payment intent with the gateway selected by the
	// payment method and persists a PENDING transaction on success. No balance
	// moves until verification.
	InitiateDeposit(ctx context.Context, userID string, req dto.InitiateDepositRequest) (*dto.InitiateDepositResponse, error)

	// VerifyDeposit confirms a pending deposit with its gateway and, on
	// confirmed success, settles it exactly once.
	VerifyDeposit(ctx context.Context, reference string) (*dto.SettlementResponse, error)

	// InitiateWithdrawal checks funds, persists a PENDING withdrawal, executes
	// the payout, and settles synchronously on payout success.
	InitiateWithdrawal(ctx context.Context, userID string, req dto.InitiateWithdrawalRequest) (*dto.SettlementResponse, error)

	// ListTransactions returns a page of the user's transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
