// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/realtytrack/backend/internal/application/usecase/transaction"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
	"github.com/realtytrack/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listTransactionsUseCase   *transaction.ListTransactionsUseCase
	createTransactionUseCase  *transaction.CreateTransactionUseCase
	deleteTransactionUseCase  *transaction.DeleteTransactionUseCase
	exportTransactionsUseCase *transaction.ExportTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listTransactionsUseCase *transaction.ListTransactionsUseCase,
	createTransactionUseCase *transaction.CreateTransactionUseCase,
	deleteTransactionUseCase *transaction.DeleteTransactionUseCase,
	exportTransactionsUseCase *transaction.ExportTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listTransactionsUseCase:   listTransactionsUseCase,
		createTransactionUseCase:  createTransactionUseCase,
		deleteTransactionUseCase:  deleteTransactionUseCase,
		exportTransactionsUseCase: exportTransactionsUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	output, err := c.listTransactionsUseCase.Execute(ctx.Request.Context(), listInput(ctx))
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
			Details: err.Error(),
		})
		return
	}

	input := transaction.CreateTransactionInput{
		Date:        req.Date,
		Amount:      *req.Amount,
		Type:        entity.TransactionType(req.Type),
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Notes:       req.Notes,
	}

	output, err := c.createTransactionUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransactionMutationResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Persisted:   output.Persisted,
	})
}

// Delete handles DELETE /transactions/:id requests. The deletion is only
// carried out with confirm=true.
func (c *TransactionController) Delete(ctx *gin.Context) {
	confirmed, err := strconv.ParseBool(ctx.DefaultQuery("confirm", "false"))
	if err != nil {
		confirmed = false
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
			Code:  string(domainerror.ErrCodeInvalidTransactionID),
		})
		return
	}

	input := transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		Confirmed:     confirmed,
	}

	output, err := c.deleteTransactionUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionMutationResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Persisted:   output.Persisted,
	})
}

// Export handles GET /transactions/export requests. It serves the filtered
// list as a CSV attachment.
func (c *TransactionController) Export(ctx *gin.Context) {
	output, err := c.exportTransactionsUseCase.Execute(ctx.Request.Context(), listInput(ctx))
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+output.Filename)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", output.Content)
}

func listInput(ctx *gin.Context) transaction.ListTransactionsInput {
	return transaction.ListTransactionsInput{
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
	}
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := c.getStatusCodeForTransactionError(txnErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	slog.Error("Transaction request failed", "path", ctx.FullPath(), "error", err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDeletionNotConfirmed:
		return http.StatusPreconditionRequired
	case domainerror.ErrCodeInvalidTransactionID,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeMissingCategory:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
