package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	request "github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/dto/request"
	response "github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/dto/response"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/middleware"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	domainsync "github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase"
	"github.com/gabrielauvo/auvoautonomo-sub005/pkg"
)

var (
	errInvalidWorkOrderPayload = pkg.NewDomainErrorSimple("INVALID_WORK_ORDER_INPUT", "Invalid work order payload", http.StatusBadRequest)
)

// WorkOrderHandler is the interactive CRUD surface used by the app when it
// is online; the sync endpoints cover the offline queue.

type WorkOrderHandler struct {
	usecase usecase.IWorkOrderUseCase
}

func NewWorkOrderHandler(uc usecase.IWorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{usecase: uc}
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var payload request.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.Create(c.Request.Context(), middleware.UserIDFromContext(c), payload.ToInput())
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) GetByID(c *gin.Context) {
	wo, err := h.usecase.GetByID(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) ListByUser(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	wos, err := h.usecase.ListByUser(c.Request.Context(), middleware.UserIDFromContext(c), limit)
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": response.FromWorkOrders(wos)})
}

func (h *WorkOrderHandler) Update(c *gin.Context) {
	var payload request.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.UpdateStatus(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), entities.WorkOrderStatus(payload.Status))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func mapWorkOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidWorkOrderID), errors.Is(err, usecase.ErrInvalidWorkOrderData):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "Work order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWorkOrderTerminal), errors.Is(err, usecase.ErrWorkOrderNotDeletable):
		return pkg.NewDomainError("WORK_ORDER_LOCKED", err.Error(), err, http.StatusConflict)
	case errors.Is(err, domainsync.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Unknown work order status", http.StatusBadRequest)
	case errors.Is(err, domainsync.ErrTransitionNotAllowed):
		return pkg.NewDomainError("INVALID_TRANSITION", err.Error(), err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
