package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/repository"
)

// QuestionService handles question business logic.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	quizService  *QuizService
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, quizService *QuizService) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, quizService: quizService}
}

// ListByQuiz returns the questions of a quiz in play order.
func (s *QuestionService) ListByQuiz(ctx context.Context, quizID int) ([]model.Question, error) {
	if _, err := s.quizService.GetByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByQuiz(ctx, quizID)
}

// Add appends a question to a quiz. Only the author may add questions.
func (s *QuestionService) Add(ctx context.Context, username string, req *model.AddQuestionRequest) (*model.Question, error) {
	if err := s.requireAuthor(ctx, username, req.QuizID); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:   req.QuizID,
		Question: req.Question,
		Answer:   req.Answer,
		Options:  req.Options,
		Score:    req.Score,
		Order:    req.Order,
	}
	if question.Options == nil {
		question.Options = []string{}
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// AddMany appends a batch of questions to a quiz in one round trip.
// All questions must belong to the same quiz.
func (s *QuestionService) AddMany(ctx context.Context, username string, reqs []model.AddQuestionRequest) error {
	if len(reqs) == 0 {
		return errors.New("empty question batch")
	}

	quizID := reqs[0].QuizID
	for _, req := range reqs {
		if req.QuizID != quizID {
			return errors.New("mixed quiz ids in batch")
		}
	}
	if err := s.requireAuthor(ctx, username, quizID); err != nil {
		return err
	}

	questions := make([]model.Question, 0, len(reqs))
	for _, req := range reqs {
		q := model.Question{
			QuizID:   req.QuizID,
			Question: req.Question,
			Answer:   req.Answer,
			Options:  req.Options,
			Score:    req.Score,
			Order:    req.Order,
		}
		if q.Options == nil {
			q.Options = []string{}
		}
		questions = append(questions, q)
	}

	if err := s.questionRepo.CreateMany(ctx, questions); err != nil {
		return fmt.Errorf("create questions: %w", err)
	}
	return nil
}

// Delete removes a single question. Only the quiz author may delete it.
func (s *QuestionService) Delete(ctx context.Context, username string, id int) error {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get question: %w", err)
	}
	if err := s.requireAuthor(ctx, username, question.QuizID); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

// DeleteByQuiz removes all questions of a quiz. Author only.
func (s *QuestionService) DeleteByQuiz(ctx context.Context, username string, quizID int) error {
	if err := s.requireAuthor(ctx, username, quizID); err != nil {
		return err
	}
	if err := s.questionRepo.DeleteByQuiz(ctx, quizID); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	return nil
}

func (s *QuestionService) requireAuthor(ctx context.Context, username string, quizID int) error {
	quiz, err := s.quizService.GetByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.Username != username {
		return ErrNotQuizAuthor
	}
	return nil
}
