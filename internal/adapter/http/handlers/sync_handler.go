package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	request "github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/dto/request"
	response "github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/dto/response"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/adapter/http/middleware"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase"
	"github.com/gabrielauvo/auvoautonomo-sub005/pkg"
)

var (
	errInvalidPullPayload = pkg.NewDomainErrorSimple("INVALID_PULL_INPUT", "Invalid pull payload", http.StatusBadRequest)
	errInvalidPushPayload = pkg.NewDomainErrorSimple("INVALID_PUSH_INPUT", "Invalid push payload", http.StatusBadRequest)
)

// SyncHandler exposes the offline-first sync protocol: Pull streams server
// deltas down, Push applies the client's queued mutations.

type SyncHandler struct {
	pull usecase.ISyncPullUseCase
	push usecase.ISyncPushUseCase
}

func NewSyncHandler(pull usecase.ISyncPullUseCase, push usecase.ISyncPushUseCase) *SyncHandler {
	return &SyncHandler{pull: pull, push: push}
}

// Pull returns the work orders changed since the client's last sync, paged
// by an opaque cursor. An empty body is a valid first full sync.
func (h *SyncHandler) Pull(c *gin.Context) {
	var payload request.PullRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(errInvalidPullPayload.HTTPStatus, errInvalidPullPayload.ToHTTPError())
		return
	}

	out, err := h.pull.Pull(c.Request.Context(), middleware.UserIDFromContext(c), payload.ToInput())
	if err != nil {
		appErr := mapSyncError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPullOutput(out))
}

// Push applies queued mutations in order and always answers 200 with a
// per-mutation verdict; individual rejections are results, not HTTP errors.
func (h *SyncHandler) Push(c *gin.Context) {
	var payload request.PushRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPushPayload.HTTPStatus, errInvalidPushPayload.ToHTTPError())
		return
	}

	out, err := h.push.Push(c.Request.Context(), middleware.UserIDFromContext(c), payload.ToMutations())
	if err != nil {
		appErr := mapSyncError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPushOutput(out))
}

func mapSyncError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing technician identity", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidSyncScope):
		return pkg.NewDomainErrorSimple("INVALID_SCOPE", "Invalid sync scope", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
