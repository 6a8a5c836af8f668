package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vicdotun/payvault/internal/apperrors"
	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/core/services"
	"github.com/vicdotun/payvault/internal/dto"
	"github.com/vicdotun/payvault/internal/middleware"
)

// transactionHandler handles deposit, verification, withdrawal and listing.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// RegisterTransactionRoutes registers routes related to transactions. The
// settlement-triggering routes carry the idempotency middleware so client
// retries replay instead of re-executing.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, idempotency gin.HandlerFunc) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/deposit", h.initiateDeposit)
		transactions.GET("", h.listTransactions)
		if idempotency != nil {
			transactions.GET("/verify/:reference", idempotency, h.verifyDeposit)
			transactions.POST("/withdraw", idempotency, h.initiateWithdrawal)
		} else {
			transactions.GET("/verify/:reference", h.verifyDeposit)
			transactions.POST("/withdraw", h.initiateWithdrawal)
		}
	}
}

// writeTransactionError maps service errors onto HTTP statuses. Gateway
// declines and status races are client errors: the provider's message (or the
// state the transaction is stuck in) comes back in the 400 body.
func writeTransactionError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrGatewayInitiation),
		errors.Is(err, services.ErrVerificationFailed),
		errors.Is(err, services.ErrGatewayPayout):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// initiateDeposit godoc
// @Summary Initiate a deposit
// @Description Opens a payment intent with the gateway behind the chosen payment method
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.InitiateDepositRequest true "Deposit details"
// @Success 201 {object} dto.InitiateDepositResponse
// @Failure 400 {object} map[string]string "Invalid input or gateway declined"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions/deposit [post]
func (h *transactionHandler) initiateDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.InitiateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.transactionService.InitiateDeposit(c.Request.Context(), userID, req)
	if err != nil {
		writeTransactionError(c, logger, err, "initiate deposit")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// verifyDeposit godoc
// @Summary Verify a deposit
// @Description Confirms a pending deposit with its gateway and settles it exactly once
// @Tags transactions
// @Produce  json
// @Param   reference path string true "Transaction reference"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Gateway reported failure or transaction already settled"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/verify/{reference} [get]
func (h *transactionHandler) verifyDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reference := c.Param("reference")

	resp, err := h.transactionService.VerifyDeposit(c.Request.Context(), reference)
	if err != nil {
		writeTransactionError(c, logger, err, "verify deposit")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// initiateWithdrawal godoc
// @Summary Initiate a withdrawal
// @Description Executes a payout and settles the withdrawal synchronously on success
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.InitiateWithdrawalRequest true "Withdrawal details"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input, insufficient balance, or gateway declined payout"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions/withdraw [post]
func (h *transactionHandler) initiateWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.InitiateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.transactionService.InitiateWithdrawal(c.Request.Context(), userID, req)
	if err != nil {
		writeTransactionError(c, logger, err, "initiate withdrawal")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List the current user's transactions
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid cursor"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		writeTransactionError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}
