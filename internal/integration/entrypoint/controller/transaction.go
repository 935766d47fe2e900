// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/application/usecase/transaction"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
	"github.com/fianzas-manager/backend/internal/integration/entrypoint/dto"
	"github.com/fianzas-manager/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase               *transaction.CreateTransactionUseCase
	listUseCase                 *transaction.ListTransactionsUseCase
	updateUseCase               *transaction.UpdateTransactionUseCase
	deleteUseCase               *transaction.DeleteTransactionUseCase
	calendarUseCase             *transaction.GetCalendarUseCase
	listMaterializationsUseCase *transaction.ListMaterializationsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	calendarUseCase *transaction.GetCalendarUseCase,
	listMaterializationsUseCase *transaction.ListMaterializationsUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:               createUseCase,
		listUseCase:                 listUseCase,
		updateUseCase:               updateUseCase,
		deleteUseCase:               deleteUseCase,
		calendarUseCase:             calendarUseCase,
		listMaterializationsUseCase: listMaterializationsUseCase,
	}
}

// parseCivilDate splits a YYYY-MM-DD string into its numeric parts without
// calendar validation. Impossible dates like February 30th must reach the
// normalizer so they fail with the scheduling error code.
func parseCivilDate(value string) (year, month, day int, ok bool) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// Create handles POST /transactions requests. A recurring frequency expands
// into one row per occurrence; when only a prefix of the occurrences could
// be persisted, the response still carries that prefix next to the failure
// report.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	year, month, day, ok := parseCivilDate(req.Date)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Date must use the YYYY-MM-DD format",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
		})
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		CategoryID:  categoryID,
		Description: req.Description,
		Amount:      req.Amount,
		Kind:        entity.TransactionKind(req.Kind),
		Frequency:   entity.Frequency(req.Frequency),
		Year:        year,
		Month:       month,
		Day:         day,
		Notes:       req.Notes,
	}
	if req.AccountID != nil {
		accountID, err := uuid.Parse(*req.AccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid account ID format",
				Code:  string(domainerror.ErrCodeTxnAccountNotFound),
			})
			return
		}
		input.AccountID = &accountID
	}
	if req.RecurrenceCount != nil {
		input.RecurrenceCount = *req.RecurrenceCount
	}
	if req.Status != nil {
		status := entity.ExpenseStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var matErr *domainerror.MaterializationError
		if errors.As(err, &matErr) && output != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error":     matErr.Error(),
				"code":      string(domainerror.ErrCodePartialMaterialization),
				"requested": matErr.Total,
				"succeeded": matErr.Succeeded,
				"failed_at": matErr.FailedAt,
				"result":    c.toCreateResponse(output),
			})
			return
		}
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, c.toCreateResponse(output))
}

func (c *TransactionController) toCreateResponse(output *transaction.CreateTransactionOutput) dto.CreateTransactionResponse {
	transactions := make([]dto.TransactionResponse, 0, len(output.Transactions))
	for _, txn := range output.Transactions {
		transactions = append(transactions, dto.ToTransactionResponse(txn))
	}
	return dto.CreateTransactionResponse{
		Transactions: transactions,
		Requested:    output.Batch.RequestedCount,
		Succeeded:    output.Batch.SucceededCount,
		BatchID:      output.Batch.ID.String(),
	}
}

// List handles GET /transactions requests with optional kind, category,
// status and date range filters plus pagination.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	filter := adapter.TransactionFilter{}
	if kind := ctx.Query("kind"); kind != "" {
		k := entity.TransactionKind(kind)
		filter.Kind = &k
	}
	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err == nil {
			filter.CategoryID = &categoryID
		}
	}
	if status := ctx.Query("status"); status != "" {
		s := entity.ExpenseStatus(status)
		filter.Status = &s
	}
	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err == nil {
			filter.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err == nil {
			filter.EndDate = &endDate
		}
	}
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		Filter: filter,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve transactions",
		})
		return
	}

	transactions := make([]dto.TransactionResponse, 0, len(output.Result.Transactions))
	for _, twc := range output.Result.Transactions {
		transactions = append(transactions, dto.ToTransactionWithCategoryResponse(twc))
	}
	ctx.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        output.Result.Total,
		Page:         output.Result.Page,
		Limit:        output.Result.Limit,
		TotalPages:   output.Result.TotalPages,
	})
}

// Update handles PATCH /transactions/:id requests. Kind and frequency are
// immutable; a date change re-runs normalization for the single occurrence.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Description:   req.Description,
		Amount:        req.Amount,
		Notes:         req.Notes,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
				Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.AccountID != nil {
		accountID, err := uuid.Parse(*req.AccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid account ID format",
				Code:  string(domainerror.ErrCodeTxnAccountNotFound),
			})
			return
		}
		input.AccountID = &accountID
	}
	if req.Status != nil {
		status := entity.ExpenseStatus(*req.Status)
		input.Status = &status
	}
	if req.Date != nil {
		year, month, day, ok := parseCivilDate(*req.Date)
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Date must use the YYYY-MM-DD format",
				Code:  string(domainerror.ErrCodeInvalidDate),
			})
			return
		}
		input.Date = &transaction.CivilDate{Year: year, Month: month, Day: day}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests. Only the addressed
// occurrence goes away; siblings from the same batch stay.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Calendar handles GET /transactions/calendar requests.
func (c *TransactionController) Calendar(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	now := time.Now()
	year, _ := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	output, err := c.calendarUseCase.Execute(ctx.Request.Context(), transaction.GetCalendarInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	days := make([]dto.CalendarDayResponse, 0, len(output.Days))
	for _, day := range output.Days {
		transactions := make([]dto.TransactionResponse, 0, len(day.Transactions))
		for _, txn := range day.Transactions {
			transactions = append(transactions, dto.ToTransactionResponse(txn))
		}
		days = append(days, dto.CalendarDayResponse{
			Date:         day.Date.UTC().Format("2006-01-02"),
			Transactions: transactions,
		})
	}
	ctx.JSON(http.StatusOK, dto.CalendarResponse{
		Year:  year,
		Month: month,
		Days:  days,
	})
}

// ListMaterializations handles GET /transactions/materializations requests.
func (c *TransactionController) ListMaterializations(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	output, err := c.listMaterializationsUseCase.Execute(ctx.Request.Context(), transaction.ListMaterializationsInput{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve materialization history",
		})
		return
	}

	batches := make([]dto.MaterializationBatchResponse, 0, len(output.Batches))
	for _, batch := range output.Batches {
		batches = append(batches, dto.ToMaterializationBatchResponse(batch))
	}
	ctx.JSON(http.StatusOK, dto.MaterializationListResponse{Batches: batches})
}

// handleTransactionError handles transaction and scheduling errors and
// returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var schErr *domainerror.ScheduleError
	if errors.As(err, &schErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: schErr.Message,
			Code:  string(schErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeTxnAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction,
		domainerror.ErrCodeTxnCategoryNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTransactionKind,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidExpenseStatus,
		domainerror.ErrCodeTxnCategoryKindMismatch,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
