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

// QuizSessionHandler handles sequential quiz session endpoints.
type QuizSessionHandler struct {
	sessionService *service.QuizSessionService
}

// NewQuizSessionHandler creates a new QuizSessionHandler.
func NewQuizSessionHandler(sessionService *service.QuizSessionService) *QuizSessionHandler {
	return &QuizSessionHandler{sessionService: sessionService}
}

// StartSession godoc
// POST /api/v1/quiz-sessions
// Opens a session for a quiz and returns the first question.
func (h *QuizSessionHandler) StartSession(c *gin.Context) {
	var req model.StartQuizSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.sessionService.Start(c.Request.Context(), middleware.GetActor(c), req.QuizID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": view})
}

// SubmitAnswer godoc
// POST /api/v1/quiz-sessions/:session_id/answers
// Applies one answer to the session and returns the next snapshot.
func (h *QuizSessionHandler) SubmitAnswer(c *gin.Context) {
	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.sessionService.Answer(c.Request.Context(), middleware.GetActor(c), c.Param("session_id"), req.Answer)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// GetSession godoc
// GET /api/v1/quiz-sessions/:session_id
// Returns the current snapshot of a session.
func (h *QuizSessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessionService.Get(c.Request.Context(), middleware.GetActor(c), c.Param("session_id"))
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

func (h *QuizSessionHandler) failSession(c *gin.Context, err error) {
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
