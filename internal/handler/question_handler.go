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

// QuestionHandler handles question CRUD endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// GET /api/v1/quizzes/:quiz_id/questions
// Returns a quiz's questions in play order.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	quizID, err := strconv.Atoi(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.ListByQuiz(c.Request.Context(), quizID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// AddQuestion godoc
// POST /api/v1/questions
// Adds one question to a quiz. Quiz author only.
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Add(c.Request.Context(), claims.Username, &req)
	if err != nil {
		h.failQuestionWrite(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// AddManyQuestions godoc
// POST /api/v1/questions/batch
// Adds a batch of questions to one quiz. Quiz author only.
func (h *QuestionHandler) AddManyQuestions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AddManyQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.questionService.AddMany(c.Request.Context(), claims.Username, req.Questions); err != nil {
		h.failQuestionWrite(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"count": len(req.Questions)})
}

// DeleteQuestion godoc
// DELETE /api/v1/questions/:question_id
// Removes a single question. Quiz author only.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), claims.Username, id); err != nil {
		h.failQuestionWrite(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// DeleteQuizQuestions godoc
// DELETE /api/v1/quizzes/:quiz_id/questions
// Removes all questions of a quiz. Quiz author only.
func (h *QuestionHandler) DeleteQuizQuestions(c *gin.Context) {
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

	if err := h.questionService.DeleteByQuiz(c.Request.Context(), claims.Username, quizID); err != nil {
		h.failQuestionWrite(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func (h *QuestionHandler) failQuestionWrite(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotQuizAuthor):
		response.Fail(c, http.StatusForbidden, response.ErrNotQuizAuthor)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
