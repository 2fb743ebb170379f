package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geoquiz/geoquiz-backend/internal/middleware"
	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/response"
	"github.com/geoquiz/geoquiz-backend/internal/service"
	"github.com/geoquiz/geoquiz-backend/internal/validator"
)

// ScoreHandler handles quiz score endpoints.
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// ListUserScores godoc
// GET /api/v1/users/:username/scores?best=true
// Returns a user's recorded scores with quiz info. With ?best=true the
// history is folded down to the best attempt per quiz.
func (h *ScoreHandler) ListUserScores(c *gin.Context) {
	username := c.Param("username")

	var (
		scores []model.QuizScoreWithQuiz
		err    error
	)
	if c.Query("best") == "true" {
		scores, err = h.scoreService.BestByQuiz(c.Request.Context(), username)
	} else {
		scores, err = h.scoreService.ListByUsername(c.Request.Context(), username)
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scores": scores})
}

// ListQuizScores godoc
// GET /api/v1/quizzes/:quiz_id/scores
// Returns every recorded score on a quiz, best first.
func (h *ScoreHandler) ListQuizScores(c *gin.Context) {
	quizID, err := strconv.Atoi(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	scores, err := h.scoreService.ListByQuiz(c.Request.Context(), quizID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scores": scores})
}

// GetUserQuizScore godoc
// GET /api/v1/quizzes/:quiz_id/scores/:username
// Returns one user's first recorded score on a quiz.
func (h *ScoreHandler) GetUserQuizScore(c *gin.Context) {
	quizID, err := strconv.Atoi(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	score, err := h.scoreService.GetByUserAndQuiz(c.Request.Context(), c.Param("username"), quizID)
	if err != nil {
		if errors.Is(err, service.ErrScoreNotRecorded) {
			response.Fail(c, http.StatusNotFound, response.ErrScoreNotRecorded)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"score": score})
}

// SubmitScore godoc
// POST /api/v1/scores
// Records a score for the authenticated user directly, bypassing the
// session flow. The username in the payload must match the caller.
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitScoreRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if req.Username != claims.Username {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	score := &model.QuizScore{
		Username: req.Username,
		QuizID:   req.QuizID,
		Score:    req.Score,
		MaxScore: req.MaxScore,
	}
	if err := h.scoreService.Submit(c.Request.Context(), score); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"score": score})
}

// UpdateScore godoc
// PUT /api/v1/scores
// Edits the authenticated user's first recorded score on a quiz.
func (h *ScoreHandler) UpdateScore(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdateScoreRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if req.Username != claims.Username {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	if err := h.scoreService.Update(c.Request.Context(), req.Username, req.QuizID, req.Score); err != nil {
		if errors.Is(err, service.ErrScoreNotRecorded) {
			response.Fail(c, http.StatusNotFound, response.ErrScoreNotRecorded)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// DeleteScores godoc
// DELETE /api/v1/quizzes/:quiz_id/scores
// Removes the authenticated user's scores on a quiz.
func (h *ScoreHandler) DeleteScores(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := strconv.Atoi(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.scoreService.Delete(c.Request.Context(), claims.Username, quizID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
