package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/repository"
)

// Resource errors shared across services.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrNotQuizAuthor = errors.New("not the quiz author")
)

// QuizService handles quiz business logic.
type QuizService struct {
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo, questionRepo: questionRepo}
}

// Create records a new quiz owned by the acting user.
func (s *QuizService) Create(ctx context.Context, username string, req *model.CreateQuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Name:        req.Name,
		Description: req.Description,
		Username:    username,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// GetByID returns a single quiz.
func (s *QuizService) GetByID(ctx context.Context, id int) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

// List returns all quizzes.
func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	return s.quizRepo.List(ctx)
}

// ListByUsername returns all quizzes created by a user.
func (s *QuizService) ListByUsername(ctx context.Context, username string) ([]model.Quiz, error) {
	return s.quizRepo.ListByUsername(ctx, username)
}

// ListWithPlayerScores returns quizzes annotated with the player's best
// score on each, optionally restricted to a single author's quizzes.
func (s *QuizService) ListWithPlayerScores(ctx context.Context, player, author string) ([]model.QuizWithScore, error) {
	return s.quizRepo.ListWithPlayerScores(ctx, player, author)
}

// Delete removes a quiz. Only the author may delete their quiz.
func (s *QuizService) Delete(ctx context.Context, username string, id int) error {
	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quiz.Username != username {
		return ErrNotQuizAuthor
	}
	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}
