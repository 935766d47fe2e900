// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fianzas-manager/backend/internal/application/usecase/dashboard"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
	"github.com/fianzas-manager/backend/internal/integration/entrypoint/dto"
	"github.com/fianzas-manager/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard aggregation endpoints.
type DashboardController struct {
	summaryUseCase   *dashboard.GetSummaryUseCase
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	summaryUseCase *dashboard.GetSummaryUseCase,
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
) *DashboardController {
	return &DashboardController{
		summaryUseCase:   summaryUseCase,
		breakdownUseCase: breakdownUseCase,
	}
}

// monthParams reads the year and month query parameters, defaulting to the
// current calendar month.
func monthParams(ctx *gin.Context) (int, int) {
	now := time.Now()
	year, _ := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	return year, month
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	year, month := monthParams(ctx)

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SummaryResponse{
		Year:         year,
		Month:        month,
		IncomeTotal:  output.Totals.IncomeTotal,
		ExpenseTotal: output.Totals.ExpenseTotal,
		NetTotal:     output.Totals.NetTotal,
	})
}

// CategoryBreakdown handles GET /dashboard/category-breakdown requests.
func (c *DashboardController) CategoryBreakdown(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	year, month := monthParams(ctx)

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	items := make([]dto.CategoryBreakdownItemResponse, 0, len(output.Items))
	for _, item := range output.Items {
		responseItem := dto.CategoryBreakdownItemResponse{
			CategoryID: item.Row.CategoryID.String(),
			Kind:       string(item.Row.Kind),
			Count:      item.Row.Count,
			Total:      item.Row.Total,
		}
		if item.Category != nil {
			responseItem.CategoryName = item.Category.Name
			responseItem.Color = item.Category.Color
		}
		items = append(items, responseItem)
	}
	ctx.JSON(http.StatusOK, dto.CategoryBreakdownResponse{
		Year:  year,
		Month: month,
		Items: items,
	})
}

// handleDashboardError maps scheduling errors to a 400 and everything else
// to a generic 500.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
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
