package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vicdotun/payvault/internal/apperrors"
	"github.com/vicdotun/payvault/internal/core/domain"
	"github.com/vicdotun/payvault/internal/core/ports/gateways"
	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/dto"
	"github.com/vicdotun/payvault/internal/middleware"
)

var (
	ErrUnsupportedGateway    = errors.New("no gateway adapter registered for this payment method type")
	ErrInactivePaymentMethod = errors.New("payment method is inactive")
	ErrAmountNotPositive     = errors.New("transaction amount must be positive")
	ErrInsufficientBalance   = errors.New("insufficient balance for withdrawal")
	ErrGatewayInitiation     = errors.New("gateway rejected the payment initiation")
	ErrVerificationFailed    = errors.New("gateway reported the payment as unsuccessful")
	ErrGatewayPayout         = errors.New("gateway rejected the payout")
	ErrAlreadySettled        = errors.New("transaction already reached a terminal state")
	ErrWrongTransactionType  = errors.New("operation does not apply to this transaction type")
)

// transactionService orchestrates the transaction state machine. It is the
// only component that calls the settlement primitives; gateway network calls
// happen strictly outside any database lock.
type transactionService struct {
	txnRepo         portsrepo.TransactionRepositoryFacade
	userRepo        portsrepo.UserReader
	paymentMethods  portsrepo.PaymentMethodReader
	bankAccounts    portsrepo.BankAccountReader
	currencies      portsrepo.CurrencyReader
	gateways        map[domain.GatewayName]gateways.PaymentGateway
	refGen          *ReferenceGenerator
	defaultCurrency string
	callbackBaseURL string
}

// NewTransactionService creates the transaction orchestrator. The gateway map
// is keyed by provider name; a payment method whose type has no entry is
// rejected at initiation.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	userRepo portsrepo.UserReader,
	paymentMethods portsrepo.PaymentMethodReader,
	bankAccounts portsrepo.BankAccountReader,
	currencies portsrepo.CurrencyReader,
	gatewayAdapters map[domain.GatewayName]gateways.PaymentGateway,
	refGen *ReferenceGenerator,
	defaultCurrency string,
	callbackBaseURL string,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:         txnRepo,
		userRepo:        userRepo,
		paymentMethods:  paymentMethods,
		bankAccounts:    bankAccounts,
		currencies:      currencies,
		gateways:        gatewayAdapters,
		refGen:          refGen,
		defaultCurrency: defaultCurrency,
		callbackBaseURL: callbackBaseURL,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resolvePaymentMethod loads and validates the payment method for userID and
// returns it together with its gateway adapter.
func (s *transactionService) resolvePaymentMethod(ctx context.Context, userID, paymentMethodID string) (*domain.PaymentMethod, gateways.PaymentGateway, error) {
	pm, err := s.paymentMethods.FindPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		return nil, nil, err
	}
	if pm.UserID != userID {
		// Ownership failures read as not-found so method ids don't leak.
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("payment method %s not found", paymentMethodID))
	}
	if !pm.IsActive {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInactivePaymentMethod)
	}
	gw, ok := s.gateways[pm.Type]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrUnsupportedGateway, pm.Type)
	}
	return pm, gw, nil
}

// resolveCurrency applies the default currency and checks the code is supported.
func (s *transactionService) resolveCurrency(ctx context.Context, code string) (string, error) {
	if code == "" {
		code = s.defaultCurrency
	}
	if _, err := s.currencies.FindCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, code)
		}
		return "", err
	}
	return code, nil
}

// resolveBankAccount validates an optional bank account attachment.
func (s *transactionService) resolveBankAccount(ctx context.Context, userID string, bankAccountID *string) (*domain.BankAccount, error) {
	if bankAccountID == nil || *bankAccountID == "" {
		return nil, nil
	}
	account, err := s.bankAccounts.FindBankAccountByID(ctx, *bankAccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bank account %s not found", *bankAccountID))
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: bank account %s is inactive", apperrors.ErrValidation, *bankAccountID)
	}
	return account, nil
}

// InitiateDeposit opens a payment intent with the selected gateway. Nothing
// is persisted until the gateway accepts: a rejected or failed initiation
// leaves no transaction row behind.
func (s *transactionService) InitiateDeposit(ctx context.Context, userID string, req dto.InitiateDepositRequest) (*dto.InitiateDepositResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pm, gw, err := s.resolvePaymentMethod(ctx, userID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	currencyCode, err := s.resolveCurrency(ctx, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	bankAccount, err := s.resolveBankAccount(ctx, userID, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	reference, err := s.refGen.Generate(ctx)
	if err != nil {
		logger.Error("Failed to generate deposit reference", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Reference:       reference,
		UserID:          userID,
		PaymentMethodID: &pm.PaymentMethodID,
		Type:            domain.Deposit,
		Amount:          req.Amount.Round(2),
		CurrencyCode:    currencyCode,
		Status:          domain.Initiated,
		Gateway:         pm.Type,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if bankAccount != nil {
		txn.BankAccountID = &bankAccount.BankAccountID
	}

	result, err := gw.Initiate(ctx, gateways.InitiateRequest{
		Amount:       txn.Amount,
		CurrencyCode: txn.CurrencyCode,
		Email:        user.Email,
		Reference:    reference,
		CallbackURL:  fmt.Sprintf("%s/api/v1/transactions/verify/%s", s.callbackBaseURL, reference),
	})
	if err != nil {
		logger.Error("Gateway initiation call failed", slog.String("gateway", string(pm.Type)), slog.String("reference", reference), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrGatewayInitiation, err)
	}
	if !result.Success {
		logger.Warn("Gateway declined deposit initiation", slog.String("gateway", string(pm.Type)), slog.String("reference", reference), slog.String("message", result.Message))
		return nil, fmt.Errorf("%w: %s", ErrGatewayInitiation, result.Message)
	}

	// The gateway accepted: PENDING is the first durable state.
	txn.Status = domain.Pending
	txn.GatewayReference = result.Reference
	if err := s.txnRepo.CreateTransaction(ctx, txn); err != nil {
		logger.Error("Failed to persist pending deposit", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Deposit initiated",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference", reference),
		slog.String("gateway", string(pm.Type)),
		slog.String("amount", txn.Amount.String()),
	)

	return &dto.InitiateDepositResponse{
		TransactionID:  txn.TransactionID,
		Reference:      reference,
		GatewayPayload: result.Payload,
	}, nil
}

// VerifyDeposit confirms a pending deposit with its gateway and settles it
// exactly once. A transport fault counts the same as a gateway-reported
// failure: both flip the transaction to FAILED, leaving the balance untouched.
func (s *transactionService) VerifyDeposit(ctx context.Context, reference string) (*dto.SettlementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if txn.Type != domain.Deposit {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrWrongTransactionType)
	}
	// Cheap pre-check. The settlement primitive re-checks under lock, so a
	// race that slips past here still cannot settle twice.
	if txn.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %w (%s)", apperrors.ErrConflict, ErrAlreadySettled, txn.Status)
	}

	gw, ok := s.gateways[txn.Gateway]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, txn.Gateway)
	}

	result, err := gw.Verify(ctx, gateways.VerifyRequest{
		Reference:         txn.Reference,
		ProviderReference: txn.GatewayReference,
	})
	if err != nil {
		// Outcome unknown, but the charge was never confirmed. Fail the
		// transaction so money state stays deterministic.
		logger.Error("Gateway verification call failed", slog.String("reference", reference), slog.String("error", err.Error()))
		if markErr := s.txnRepo.MarkTransactionFailed(ctx, txn.TransactionID, txn.UserID, time.Now()); markErr != nil {
			if errors.Is(markErr, apperrors.ErrConflict) {
				return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadySettled)
			}
			return nil, markErr
		}
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	now := time.Now()
	if !result.Success {
		logger.Warn("Gateway reported deposit unsuccessful", slog.String("reference", reference), slog.String("status", result.Status))
		if err := s.txnRepo.MarkTransactionFailed(ctx, txn.TransactionID, txn.UserID, now); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadySettled)
			}
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, result.Status)
	}

	settled, newBalance, err := s.txnRepo.SettleTransaction(ctx, txn.TransactionID, result.Reference, txn.UserID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Deposit settlement lost status race", slog.String("reference", reference))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadySettled)
		}
		logger.Error("Deposit settlement failed", slog.String("reference", reference), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Deposit settled",
		slog.String("transaction_id", settled.TransactionID),
		slog.String("reference", reference),
		slog.String("new_balance", newBalance.String()),
	)

	return &dto.SettlementResponse{
		TransactionID: settled.TransactionID,
		Reference:     settled.Reference,
		NewBalance:    newBalance,
	}, nil
}

// InitiateWithdrawal persists a PENDING withdrawal, executes the payout, and
// settles synchronously on payout success. The balance pre-check here is
// advisory; the settlement primitive rejects a negative result under lock.
func (s *transactionService) InitiateWithdrawal(ctx context.Context, userID string, req dto.InitiateWithdrawalRequest) (*dto.SettlementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	amount := req.Amount.Round(2)
	if user.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInsufficientBalance)
	}

	pm, gw, err := s.resolvePaymentMethod(ctx, userID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	currencyCode, err := s.resolveCurrency(ctx, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	bankAccount, err := s.resolveBankAccount(ctx, userID, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	reference, err := s.refGen.Generate(ctx)
	if err != nil {
		logger.Error("Failed to generate withdrawal reference", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	startBalance := user.Balance
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Reference:       reference,
		UserID:          userID,
		PaymentMethodID: &pm.PaymentMethodID,
		Type:            domain.Withdrawal,
		Amount:          amount,
		CurrencyCode:    currencyCode,
		Status:          domain.Pending,
		Gateway:         pm.Type,
		StartBalance:    &startBalance,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if bankAccount != nil {
		txn.BankAccountID = &bankAccount.BankAccountID
	}

	// Unlike deposits, the withdrawal row goes down before the payout so the
	// attempt is auditable even when the provider call never returns.
	if err := s.txnRepo.CreateTransaction(ctx, txn); err != nil {
		logger.Error("Failed to persist pending withdrawal", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}

	result, err := gw.Payout(ctx, gateways.PayoutRequest{
		Amount:       amount,
		CurrencyCode: currencyCode,
		Reference:    reference,
		Destination: gateways.PayoutDestination{
			AccountNumber: req.Destination.AccountNumber,
			BankCode:      req.Destination.BankCode,
			AccountName:   req.Destination.AccountName,
			Email:         req.Destination.Email,
			AccountID:     req.Destination.AccountID,
		},
		Narration: req.Description,
	})
	if err != nil {
		logger.Error("Gateway payout call failed", slog.String("reference", reference), slog.String("error", err.Error()))
		if markErr := s.txnRepo.MarkTransactionFailed(ctx, txn.TransactionID, userID, time.Now()); markErr != nil {
			logger.Error("Failed to mark withdrawal failed after payout fault", slog.String("transaction_id", txn.TransactionID), slog.String("error", markErr.Error()))
		}
		return nil, fmt.Errorf("%w: %w", ErrGatewayPayout, err)
	}
	if !result.Success {
		logger.Warn("Gateway declined payout", slog.String("reference", reference), slog.String("message", result.Message))
		if markErr := s.txnRepo.MarkTransactionFailed(ctx, txn.TransactionID, userID, time.Now()); markErr != nil {
			logger.Error("Failed to mark withdrawal failed after decline", slog.String("transaction_id", txn.TransactionID), slog.String("error", markErr.Error()))
		}
		return nil, fmt.Errorf("%w: %s", ErrGatewayPayout, result.Message)
	}

	settled, newBalance, err := s.txnRepo.SettleTransaction(ctx, txn.TransactionID, result.Reference, userID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadySettled)
		}
		logger.Error("Withdrawal settlement failed", slog.String("reference", reference), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Withdrawal settled",
		slog.String("transaction_id", settled.TransactionID),
		slog.String("reference", reference),
		slog.String("new_balance", newBalance.String()),
	)

	return &dto.SettlementResponse{
		TransactionID: settled.TransactionID,
		Reference:     settled.Reference,
		NewBalance:    newBalance,
	}, nil
}

// ListTransactions returns a page of the user's transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
