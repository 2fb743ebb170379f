package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/model"
)

const (
	ScoreBatchSize    = 50
	ScoreBatchTimeout = 2 * time.Second
	ScorePollTimeout  = 1 * time.Second
)

// ScoreWorker drains the persistence queue into the quizscores table so
// finished sessions never block on Postgres. Every persisted score is
// broadcast to its quiz's leaderboard channel.
type ScoreWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewScoreWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ScoreWorker {
	return &ScoreWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "score_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ScoreWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ScoreWorker started")

	batch := make([]*model.QuizScore, 0, ScoreBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ScoreBatchSize || time.Since(lastFlush) >= ScoreBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ScorePollTimeout, config.WorkerKey.PersistScoresQueue()).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var s model.QuizScore
			if err := json.Unmarshal([]byte(item[1]), &s); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &s)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper
// ----------------------------------------------------------------

func (w *ScoreWorker) flushSafe(ctx context.Context, batch []*model.QuizScore) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsertScores(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk score insert failed, using fallback")

		for _, s := range batch {
			if err := w.persistSingle(ctx, s); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed — requeueing")
				raw, _ := json.Marshal(s)
				w.rdb.RPush(ctx, config.WorkerKey.PersistScoresQueue(), raw)
				continue
			}
			w.publish(ctx, s)
		}
		return
	}

	for _, s := range batch {
		w.publish(ctx, s)
	}
}

// ----------------------------------------------------------------
// BULK PostgreSQL INSERT using UNNEST
// ----------------------------------------------------------------

func (w *ScoreWorker) bulkInsertScores(ctx context.Context, batch []*model.QuizScore) error {
	n := len(batch)

	usernames := make([]string, 0, n)
	quizIDs := make([]int, 0, n)
	scores := make([]int, 0, n)
	maxScores := make([]int, 0, n)

	for _, s := range batch {
		usernames = append(usernames, s.Username)
		quizIDs = append(quizIDs, s.QuizID)
		scores = append(scores, s.Score)
		maxScores = append(maxScores, s.MaxScore)
	}

	query := `
		INSERT INTO quizscores (username, quizid, score, maxscore)
		SELECT u.username, u.quizid, u.score, u.maxscore
		FROM UNNEST(
			$1::text[],
			$2::int[],
			$3::int[],
			$4::int[]
		) AS u (username, quizid, score, maxscore)`

	_, err := w.pool.Exec(ctx, query, usernames, quizIDs, scores, maxScores)
	return err
}

func (w *ScoreWorker) persistSingle(ctx context.Context, s *model.QuizScore) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO quizscores (username, quizid, score, maxscore)
		 VALUES ($1, $2, $3, $4)`,
		s.Username, s.QuizID, s.Score, s.MaxScore,
	)
	return err
}

func (w *ScoreWorker) publish(ctx context.Context, s *model.QuizScore) {
	payload, err := json.Marshal(s)
	if err != nil {
		return
	}
	channel := config.CacheKey.QuizLeaderboardChannel(s.QuizID)
	if err := w.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		w.log.Warn().Err(err).Int("quiz_id", s.QuizID).Msg("Leaderboard publish failed")
	}
}
