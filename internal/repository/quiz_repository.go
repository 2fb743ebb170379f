package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geoquiz/geoquiz-backend/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// Create inserts a new quiz.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (name, description, username, pregenerated)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		q.Name, q.Description, q.Username, q.Pregenerated,
	).Scan(&q.ID)
}

// GetByID retrieves a quiz by its identifier.
func (r *QuizRepository) GetByID(ctx context.Context, id int) (*model.Quiz, error) {
	var q model.Quiz
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, username, pregenerated
		 FROM quizzes WHERE id = $1`,
		id,
	).Scan(&q.ID, &q.Name, &q.Description, &q.Username, &q.Pregenerated)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List retrieves all quizzes.
func (r *QuizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	return r.scanQuizzes(ctx,
		`SELECT id, name, description, username, pregenerated
		 FROM quizzes ORDER BY id`,
	)
}

// ListByUsername retrieves all quizzes created by a user.
func (r *QuizRepository) ListByUsername(ctx context.Context, username string) ([]model.Quiz, error) {
	return r.scanQuizzes(ctx,
		`SELECT id, name, description, username, pregenerated
		 FROM quizzes WHERE username = $1 ORDER BY id`,
		username,
	)
}

// ListWithPlayerScores retrieves all quizzes together with the given
// player's best recorded score on each, nil where the player has none.
// When author is non-empty the listing is restricted to that author's
// quizzes.
func (r *QuizRepository) ListWithPlayerScores(ctx context.Context, player, author string) ([]model.QuizWithScore, error) {
	query := `
		SELECT q.id, q.name, q.description, q.pregenerated, s.score, s.maxscore
		FROM quizzes q
		LEFT JOIN LATERAL (
			SELECT score, maxscore FROM quizscores
			WHERE quizid = q.id AND username = $1
			ORDER BY score DESC
			LIMIT 1
		) s ON TRUE
		WHERE ($2 = '' OR q.username = $2)
		ORDER BY q.id`

	rows, err := r.pool.Query(ctx, query, player, author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.QuizWithScore
	for rows.Next() {
		var q model.QuizWithScore
		if err := rows.Scan(&q.ID, &q.Name, &q.Description, &q.Pregenerated, &q.Score, &q.MaxScore); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// Delete removes a quiz. Questions and scores cascade via FK.
func (r *QuizRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}

func (r *QuizRepository) scanQuizzes(ctx context.Context, query string, args ...any) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Name, &q.Description, &q.Username, &q.Pregenerated); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}
