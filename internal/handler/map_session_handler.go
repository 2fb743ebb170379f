package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geoquiz/geoquiz-backend/internal/middleware"
	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/response"
	"github.com/geoquiz/geoquiz-backend/internal/service"
	"github.com/geoquiz/geoquiz-backend/internal/validator"
)

// MapSessionHandler handles map quiz session endpoints. These are open
// to anonymous players; authentication only changes score submission.
type MapSessionHandler struct {
	sessionService *service.MapSessionService
}

// NewMapSessionHandler creates a new MapSessionHandler.
func NewMapSessionHandler(sessionService *service.MapSessionService) *MapSessionHandler {
	return &MapSessionHandler{sessionService: sessionService}
}

// StartSession godoc
// POST /api/v1/map-sessions
// Opens a map session over a region, optionally in flags mode.
func (h *MapSessionHandler) StartSession(c *gin.Context) {
	var req model.StartMapSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.sessionService.Start(c.Request.Context(), middleware.GetActor(c), req.Region, req.Flags)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRegion) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownRegion)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": view})
}

// Attempt godoc
// POST /api/v1/map-sessions/:session_id/attempts
// Resolves the current target against the attempted entity.
func (h *MapSessionHandler) Attempt(c *gin.Context) {
	var req model.AttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.sessionService.Attempt(c.Request.Context(), middleware.GetActor(c), c.Param("session_id"), req.Code)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// GetSession godoc
// GET /api/v1/map-sessions/:session_id
// Returns the current snapshot of a session.
func (h *MapSessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessionService.Get(c.Request.Context(), middleware.GetActor(c), c.Param("session_id"))
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

func (h *MapSessionHandler) failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, service.ErrSessionOwner):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrSessionFinished):
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
