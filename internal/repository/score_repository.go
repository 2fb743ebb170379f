package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geoquiz/geoquiz-backend/internal/model"
)

// ScoreRepository handles quiz score data access.
type ScoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository creates a new ScoreRepository.
func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

// Create inserts a new quiz score row.
func (r *ScoreRepository) Create(ctx context.Context, s *model.QuizScore) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizscores (username, quizid, score, maxscore)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		s.Username, s.QuizID, s.Score, s.MaxScore,
	).Scan(&s.ID)
}

// UpdateScore changes the score value of the first recorded score for a
// user on a quiz. Returns the number of rows touched.
func (r *ScoreRepository) UpdateScore(ctx context.Context, username string, quizID, score int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quizscores SET score = $1
		 WHERE id = (
			SELECT id FROM quizscores
			WHERE username = $2 AND quizid = $3
			ORDER BY id LIMIT 1
		 )`,
		score, username, quizID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListByUsername retrieves all of a user's scores joined with quiz info.
func (r *ScoreRepository) ListByUsername(ctx context.Context, username string) ([]model.QuizScoreWithQuiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.username, s.quizid, s.score, s.maxscore,
		        q.id, q.name, q.description, q.username, q.pregenerated
		 FROM quizscores s
		 JOIN quizzes q ON q.id = s.quizid
		 WHERE s.username = $1
		 ORDER BY s.id`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []model.QuizScoreWithQuiz
	for rows.Next() {
		var s model.QuizScoreWithQuiz
		if err := rows.Scan(
			&s.ID, &s.Username, &s.QuizID, &s.Score, &s.MaxScore,
			&s.Quiz.ID, &s.Quiz.Name, &s.Quiz.Description, &s.Quiz.Username, &s.Quiz.Pregenerated,
		); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// GetByUserAndQuiz retrieves the first recorded score for a user on a quiz.
func (r *ScoreRepository) GetByUserAndQuiz(ctx context.Context, username string, quizID int) (*model.QuizScore, error) {
	var s model.QuizScore
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, quizid, score, maxscore
		 FROM quizscores
		 WHERE username = $1 AND quizid = $2
		 ORDER BY id LIMIT 1`,
		username, quizID,
	).Scan(&s.ID, &s.Username, &s.QuizID, &s.Score, &s.MaxScore)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByQuiz retrieves all recorded scores on a quiz.
func (r *ScoreRepository) ListByQuiz(ctx context.Context, quizID int) ([]model.QuizScore, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, quizid, score, maxscore
		 FROM quizscores WHERE quizid = $1
		 ORDER BY score DESC, id`,
		quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []model.QuizScore
	for rows.Next() {
		var s model.QuizScore
		if err := rows.Scan(&s.ID, &s.Username, &s.QuizID, &s.Score, &s.MaxScore); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// DeleteByUserAndQuiz removes a user's scores on a quiz.
func (r *ScoreRepository) DeleteByUserAndQuiz(ctx context.Context, username string, quizID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM quizscores WHERE username = $1 AND quizid = $2`,
		username, quizID,
	)
	return err
}
