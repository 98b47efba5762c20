// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granabot/backend/internal/application/usecase/recurrence"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
	"github.com/granabot/backend/internal/integration/entrypoint/dto"
	"github.com/granabot/backend/internal/integration/entrypoint/middleware"
)

const dateLayout = "2006-01-02"

// RecurrenceController handles recurrence rule endpoints.
type RecurrenceController struct {
	createUseCase *recurrence.CreateRecurrenceUseCase
	updateUseCase *recurrence.UpdateRecurrenceUseCase
	deleteUseCase *recurrence.DeleteRecurrenceUseCase
	listUseCase   *recurrence.ListRecurrencesUseCase
}

// NewRecurrenceController creates a new recurrence controller instance.
func NewRecurrenceController(
	createUseCase *recurrence.CreateRecurrenceUseCase,
	updateUseCase *recurrence.UpdateRecurrenceUseCase,
	deleteUseCase *recurrence.DeleteRecurrenceUseCase,
	listUseCase *recurrence.ListRecurrencesUseCase,
) *RecurrenceController {
	return &RecurrenceController{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
	}
}

// List handles GET /recurrences requests.
func (c *RecurrenceController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurrence.ListRecurrencesInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve recurrences",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurrenceListResponse(output.Rules))
}

// Create handles POST /recurrences requests.
func (c *RecurrenceController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateRecurrenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecurrenceFields),
		})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateRange),
		})
		return
	}

	input := recurrence.CreateRecurrenceInput{
		UserID:      userID,
		Kind:        entity.RecurrenceKind(req.Kind),
		Amount:      decimal.NewFromFloat(req.Amount),
		Category:    req.Category,
		Frequency:   entity.Frequency(req.Frequency),
		Interval:    req.Interval,
		DayOfMonth:  req.DayOfMonth,
		StartDate:   startDate,
		Description: req.Description,
	}
	if req.Weekday != nil {
		weekday := entity.Weekday(*req.Weekday)
		input.Weekday = &weekday
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateRange),
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurrenceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecurrenceMutationResponse{
		Rule:            dto.ToRecurrenceResponse(output.Rule),
		AlertsGenerated: output.AlertsGenerated,
		LimitReached:    output.LimitReached,
	})
}

// Update handles PATCH /recurrences/:id requests.
func (c *RecurrenceController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurrence ID format",
		})
		return
	}

	var req dto.UpdateRecurrenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRecurrenceFields),
		})
		return
	}

	input := recurrence.UpdateRecurrenceInput{
		RuleID:       ruleID,
		UserID:       userID,
		Interval:     req.Interval,
		DayOfMonth:   req.DayOfMonth,
		ClearEndDate: req.ClearEndDate,
		Category:     req.Category,
		Description:  req.Description,
	}
	if req.Kind != nil {
		kind := entity.RecurrenceKind(*req.Kind)
		input.Kind = &kind
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Frequency != nil {
		frequency := entity.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}
	if req.Weekday != nil {
		weekday := entity.Weekday(*req.Weekday)
		input.Weekday = &weekday
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateRange),
			})
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateRange),
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurrenceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RecurrenceMutationResponse{
		Rule:            dto.ToRecurrenceResponse(output.Rule),
		AlertsGenerated: output.AlertsGenerated,
		Regenerated:     output.Regenerated,
		LimitReached:    output.LimitReached,
	})
}

// Delete handles DELETE /recurrences/:id requests.
func (c *RecurrenceController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurrence ID format",
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), recurrence.DeleteRecurrenceInput{
		RuleID: ruleID,
		UserID: userID,
	})
	if err != nil {
		c.handleRecurrenceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteRecurrenceResponse{
		Success:       output.Success,
		AlertsDeleted: output.AlertsDeleted,
	})
}

// handleRecurrenceError maps recurrence errors to HTTP responses.
func (c *RecurrenceController) handleRecurrenceError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurrenceError
	if errors.As(err, &recErr) {
		ctx.JSON(c.getStatusCodeForRecurrenceError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurrenceError maps recurrence error codes to HTTP status codes.
func (c *RecurrenceController) getStatusCodeForRecurrenceError(code domainerror.RecurrenceErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurrenceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidRecurrenceKind,
		domainerror.ErrCodeInvalidRecurrenceAmount,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidInterval,
		domainerror.ErrCodeMissingDayOfMonth,
		domainerror.ErrCodeInvalidDayOfMonth,
		domainerror.ErrCodeMissingWeekday,
		domainerror.ErrCodeInvalidWeekday,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeMissingRecurrenceFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
