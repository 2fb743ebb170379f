package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/repository"
)

// ErrScoreNotRecorded indicates an update targeted a score row that does
// not exist.
var ErrScoreNotRecorded = errors.New("score not recorded")

// ScoreService handles quiz score business logic. Writes can go through
// the persistence queue so finished sessions are not blocked on Postgres.
type ScoreService struct {
	scoreRepo *repository.ScoreRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewScoreService creates a new ScoreService.
func NewScoreService(scoreRepo *repository.ScoreRepository, rdb *redis.Client, log zerolog.Logger) *ScoreService {
	return &ScoreService{
		scoreRepo: scoreRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "score_service").Logger(),
	}
}

// Submit records a score synchronously and broadcasts it to the quiz
// leaderboard channel.
func (s *ScoreService) Submit(ctx context.Context, score *model.QuizScore) error {
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	s.publish(ctx, score)
	return nil
}

// SubmitAsync pushes a score onto the persistence queue for the score
// worker to drain. Falls back to a synchronous insert if Redis is down.
func (s *ScoreService) SubmitAsync(ctx context.Context, score *model.QuizScore) error {
	payload, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistScoresQueue(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Score queue unavailable, inserting directly")
		return s.Submit(ctx, score)
	}
	return nil
}

// Update changes the score value of a user's first recorded score on a
// quiz. Returns ErrScoreNotRecorded when no score row exists yet.
func (s *ScoreService) Update(ctx context.Context, username string, quizID, score int) error {
	affected, err := s.scoreRepo.UpdateScore(ctx, username, quizID, score)
	if err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	if affected == 0 {
		return ErrScoreNotRecorded
	}
	return nil
}

// ListByUsername returns all of a user's recorded scores with quiz info.
func (s *ScoreService) ListByUsername(ctx context.Context, username string) ([]model.QuizScoreWithQuiz, error) {
	return s.scoreRepo.ListByUsername(ctx, username)
}

// BestByQuiz folds a user's score history down to their single best
// attempt per quiz.
func (s *ScoreService) BestByQuiz(ctx context.Context, username string) ([]model.QuizScoreWithQuiz, error) {
	scores, err := s.scoreRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	best := make(map[int]model.QuizScoreWithQuiz)
	order := make([]int, 0, len(scores))
	for _, sc := range scores {
		current, seen := best[sc.QuizID]
		if !seen {
			order = append(order, sc.QuizID)
		}
		if !seen || sc.Score > current.Score {
			best[sc.QuizID] = sc
		}
	}

	result := make([]model.QuizScoreWithQuiz, 0, len(order))
	for _, quizID := range order {
		result = append(result, best[quizID])
	}
	return result, nil
}

// GetByUserAndQuiz returns a user's first recorded score on a quiz, or
// ErrScoreNotRecorded when none exists.
func (s *ScoreService) GetByUserAndQuiz(ctx context.Context, username string, quizID int) (*model.QuizScore, error) {
	score, err := s.scoreRepo.GetByUserAndQuiz(ctx, username, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScoreNotRecorded
		}
		return nil, fmt.Errorf("get score: %w", err)
	}
	return score, nil
}

// ListByQuiz returns every recorded score on a quiz, best first.
func (s *ScoreService) ListByQuiz(ctx context.Context, quizID int) ([]model.QuizScore, error) {
	return s.scoreRepo.ListByQuiz(ctx, quizID)
}

// Delete removes a user's scores on a quiz.
func (s *ScoreService) Delete(ctx context.Context, username string, quizID int) error {
	return s.scoreRepo.DeleteByUserAndQuiz(ctx, username, quizID)
}

func (s *ScoreService) publish(ctx context.Context, score *model.QuizScore) {
	payload, err := json.Marshal(score)
	if err != nil {
		return
	}
	channel := config.CacheKey.QuizLeaderboardChannel(score.QuizID)
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).
			Int("quiz_id", score.QuizID).
			Msg("Failed to publish leaderboard event")
	}
}
