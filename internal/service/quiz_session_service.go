package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/repository"
	"github.com/geoquiz/geoquiz-backend/internal/session"
)

// Session errors shared by both session services.
var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrSessionOwner    = errors.New("session belongs to another user")
	ErrSessionFinished = errors.New("session already finished")
	ErrNoQuestions     = errors.New("quiz has no questions")
)

// QuestionView is a question as presented to the player. The answer is
// deliberately absent.
type QuestionView struct {
	Index    int                `json:"index"`
	Total    int                `json:"total"`
	Question string             `json:"question"`
	Options  []string           `json:"options"`
	Score    int                `json:"score"`
	Mode     session.AnswerMode `json:"mode"`
}

// QuizSummary is the terminal result of a sequential quiz session.
type QuizSummary struct {
	Score      int     `json:"score"`
	MaxScore   int     `json:"maxscore"`
	Percentage float64 `json:"percentage"`
	Feedback   string  `json:"feedback"`
	Submitted  bool    `json:"submitted"`
}

// QuizSessionView is the player-facing snapshot of a session. Exactly one
// of Question and Summary is set depending on the phase.
type QuizSessionView struct {
	SessionID string        `json:"sessionId"`
	QuizID    int           `json:"quizid"`
	Phase     session.Phase `json:"phase"`
	Question  *QuestionView `json:"question,omitempty"`
	Summary   *QuizSummary  `json:"summary,omitempty"`
}

type quizSessionDoc struct {
	ID        string            `json:"id"`
	Actor     session.Actor     `json:"actor"`
	State     session.QuizState `json:"state"`
	Submitted bool              `json:"submitted"`
}

// QuizSessionService orchestrates sequential quiz sessions. Session state
// lives in Redis as a JSON document and all transitions go through the
// pure reducer.
type QuizSessionService struct {
	questionRepo *repository.QuestionRepository
	quizService  *QuizService
	scoreService *ScoreService
	rdb          *redis.Client
	cfg          *config.Config
	log          zerolog.Logger
}

// NewQuizSessionService creates a new QuizSessionService.
func NewQuizSessionService(
	questionRepo *repository.QuestionRepository,
	quizService *QuizService,
	scoreService *ScoreService,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *QuizSessionService {
	return &QuizSessionService{
		questionRepo: questionRepo,
		quizService:  quizService,
		scoreService: scoreService,
		rdb:          rdb,
		cfg:          cfg,
		log:          log.With().Str("component", "quiz_session").Logger(),
	}
}

// Start creates a session for a quiz, loading its question set in play
// order. A quiz without questions cannot be played.
func (s *QuizSessionService) Start(ctx context.Context, actor session.Actor, quizID int) (*QuizSessionView, error) {
	if _, err := s.quizService.GetByID(ctx, quizID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	state := session.ReduceQuiz(session.NewQuizState(quizID), session.QuestionsLoaded{Questions: questions})

	doc := quizSessionDoc{
		ID:    uuid.New().String(),
		Actor: actor,
		State: state,
	}
	if err := s.store(ctx, &doc); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("session_id", doc.ID).
		Int("quiz_id", quizID).
		Int("questions", len(questions)).
		Msg("Quiz session started")

	return s.view(&doc), nil
}

// Answer applies one submitted answer to the session. When the last
// question is answered the achieved score is submitted exactly once.
func (s *QuizSessionService) Answer(ctx context.Context, actor session.Actor, sessionID, answer string) (*QuizSessionView, error) {
	doc, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if doc.Actor.Username != actor.Username {
		return nil, ErrSessionOwner
	}
	if doc.State.Phase() == session.PhaseFinished {
		return nil, ErrSessionFinished
	}

	doc.State = session.ReduceQuiz(doc.State, session.AnswerSubmitted{Answer: answer})

	if doc.State.Phase() == session.PhaseFinished && !doc.Submitted && doc.Actor.Authenticated {
		score := &model.QuizScore{
			Username: doc.Actor.Username,
			QuizID:   doc.State.QuizID,
			Score:    doc.State.Achieved(),
			MaxScore: doc.State.MaxScore(),
		}
		if err := s.scoreService.SubmitAsync(ctx, score); err != nil {
			s.log.Error().Err(err).
				Str("session_id", doc.ID).
				Msg("Failed to submit session score")
		} else {
			doc.Submitted = true
		}
	}

	if err := s.store(ctx, doc); err != nil {
		return nil, err
	}
	return s.view(doc), nil
}

// Get returns the current snapshot of a session.
func (s *QuizSessionService) Get(ctx context.Context, actor session.Actor, sessionID string) (*QuizSessionView, error) {
	doc, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if doc.Actor.Username != actor.Username {
		return nil, ErrSessionOwner
	}
	return s.view(doc), nil
}

func (s *QuizSessionService) view(doc *quizSessionDoc) *QuizSessionView {
	v := &QuizSessionView{
		SessionID: doc.ID,
		QuizID:    doc.State.QuizID,
		Phase:     doc.State.Phase(),
	}

	if q, ok := doc.State.Current(); ok {
		v.Question = &QuestionView{
			Index:    doc.State.Index,
			Total:    len(doc.State.Questions),
			Question: q.Question,
			Options:  q.Options,
			Score:    q.Score,
			Mode:     session.ModeFor(q),
		}
	}

	if doc.State.Phase() == session.PhaseFinished {
		pct := doc.State.Percentage()
		v.Summary = &QuizSummary{
			Score:      doc.State.Achieved(),
			MaxScore:   doc.State.MaxScore(),
			Percentage: pct,
			Feedback:   session.Feedback(pct),
			Submitted:  doc.Submitted,
		}
	}
	return v
}

func (s *QuizSessionService) store(ctx context.Context, doc *quizSessionDoc) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	key := config.CacheKey.QuizSessionKey(doc.ID)
	if err := s.rdb.Set(ctx, key, payload, s.cfg.SessionTTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *QuizSessionService) load(ctx context.Context, sessionID string) (*quizSessionDoc, error) {
	key := config.CacheKey.QuizSessionKey(sessionID)
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var doc quizSessionDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &doc, nil
}
