package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geoquiz/geoquiz-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByQuiz retrieves all questions for a quiz, ordered by order_num.
// Downstream session code trusts this ordering as authoritative.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quizid, question, answer, options, score, order_num
		 FROM questions WHERE quizid = $1
		 ORDER BY order_num`, quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Question, &q.Answer, &q.Options, &q.Score, &q.Order); err != nil {
			return nil, err
		}
		if q.Options == nil {
			q.Options = []string{}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (quizid, question, answer, options, score, order_num)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		q.QuizID, q.Question, q.Answer, q.Options, q.Score, q.Order,
	).Scan(&q.ID)
}

// CreateMany inserts a batch of questions in one round trip.
func (r *QuestionRepository) CreateMany(ctx context.Context, questions []model.Question) error {
	batch := &pgx.Batch{}
	for _, q := range questions {
		batch.Queue(
			`INSERT INTO questions (quizid, question, answer, options, score, order_num)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			q.QuizID, q.Question, q.Answer, q.Options, q.Score, q.Order,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range questions {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*model.Question, error) {
	var q model.Question
	err := r.pool.QueryRow(ctx,
		`SELECT id, quizid, question, answer, options, score, order_num
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuizID, &q.Question, &q.Answer, &q.Options, &q.Score, &q.Order)
	if err != nil {
		return nil, err
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	return &q, nil
}

// Delete removes a single question.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// DeleteByQuiz removes all questions of a quiz.
func (r *QuestionRepository) DeleteByQuiz(ctx context.Context, quizID int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE quizid = $1`, quizID)
	return err
}
