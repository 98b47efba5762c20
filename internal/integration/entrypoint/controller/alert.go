package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/granabot/backend/internal/application/usecase/alert"
	"github.com/granabot/backend/internal/domain/entity"
	domainerror "github.com/granabot/backend/internal/domain/error"
	"github.com/granabot/backend/internal/integration/entrypoint/dto"
	"github.com/granabot/backend/internal/integration/entrypoint/middleware"
)

// AlertController handles alert endpoints.
type AlertController struct {
	listUseCase     *alert.ListAlertsUseCase
	markPaidUseCase *alert.MarkAlertPaidUseCase
}

// NewAlertController creates a new alert controller instance.
func NewAlertController(
	listUseCase *alert.ListAlertsUseCase,
	markPaidUseCase *alert.MarkAlertPaidUseCase,
) *AlertController {
	return &AlertController{
		listUseCase:     listUseCase,
		markPaidUseCase: markPaidUseCase,
	}
}

// List handles GET /alerts requests. An optional ?status= query filters
// by alert status.
func (c *AlertController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := alert.ListAlertsInput{UserID: userID}
	if status := ctx.Query("status"); status != "" {
		alertStatus := entity.AlertStatus(status)
		input.Status = &alertStatus
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAlertError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAlertListResponse(output.Alerts))
}

// MarkPaid handles POST /alerts/:code/pay requests.
func (c *AlertController) MarkPaid(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	code := ctx.Param("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Alert code is required",
		})
		return
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), alert.MarkAlertPaidInput{
		Code:   code,
		UserID: userID,
	})
	if err != nil {
		c.handleAlertError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAlertResponse(output.Alert))
}

// handleAlertError maps alert errors to HTTP responses.
func (c *AlertController) handleAlertError(ctx *gin.Context, err error) {
	var alertErr *domainerror.AlertError
	if errors.As(err, &alertErr) {
		ctx.JSON(c.getStatusCodeForAlertError(alertErr.Code), dto.ErrorResponse{
			Error: alertErr.Message,
			Code:  string(alertErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAlertError maps alert error codes to HTTP status codes.
func (c *AlertController) getStatusCodeForAlertError(code domainerror.AlertErrorCode) int {
	switch code {
	case domainerror.ErrCodeAlertNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAlertAlreadyPaid:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedAlert:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidAlertStatus:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
