package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/flagapi"
	"github.com/geoquiz/geoquiz-backend/internal/geodata"
	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/session"
)

// ErrUnknownRegion indicates a region outside the supported catalog.
var ErrUnknownRegion = errors.New("unknown region")

// AttemptResult describes the outcome of a single scoring attempt: which
// entity was resolved and how it was marked.
type AttemptResult struct {
	Target string         `json:"target"`
	Marker session.Marker `json:"marker"`
}

// MapSessionView is the player-facing snapshot of a map quiz session. The
// prompt is the target name in name mode, or its flag image in flags mode
// — never both.
type MapSessionView struct {
	SessionID  string                    `json:"sessionId"`
	Region     string                    `json:"region"`
	Flags      bool                      `json:"flags"`
	TargetName string                    `json:"targetName,omitempty"`
	FlagURL    string                    `json:"flagUrl,omitempty"`
	Score      int                       `json:"score"`
	MaxScore   int                       `json:"maxscore"`
	Remaining  int                       `json:"remaining"`
	Markers    map[string]session.Marker `json:"markers"`
	Finished   bool                      `json:"finished"`
	Submitted  bool                      `json:"submitted"`
	Result     *AttemptResult            `json:"result,omitempty"`
}

type mapSessionDoc struct {
	ID        string           `json:"id"`
	Actor     session.Actor    `json:"actor"`
	State     session.MapState `json:"state"`
	Submitted bool             `json:"submitted"`
}

// MapSessionService orchestrates map quiz sessions. Anonymous players may
// play; only authenticated players get their result submitted.
type MapSessionService struct {
	scoreService *ScoreService
	flagClient   *flagapi.Client
	rdb          *redis.Client
	cfg          *config.Config
	log          zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMapSessionService creates a new MapSessionService.
func NewMapSessionService(scoreService *ScoreService, flagClient *flagapi.Client, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *MapSessionService {
	return &MapSessionService{
		scoreService: scoreService,
		flagClient:   flagClient,
		rdb:          rdb,
		cfg:          cfg,
		log:          log.With().Str("component", "map_session").Logger(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start creates a session over a region of the catalog, optionally in
// flags mode.
func (s *MapSessionService) Start(ctx context.Context, actor session.Actor, region string, flags bool) (*MapSessionView, error) {
	if !geodata.ValidRegion(region) {
		return nil, ErrUnknownRegion
	}

	s.mu.Lock()
	state := session.NewMapState(geodata.Catalog(), region, flags, s.rng)
	s.mu.Unlock()

	doc := mapSessionDoc{
		ID:    uuid.New().String(),
		Actor: actor,
		State: state,
	}
	if err := s.store(ctx, &doc); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("session_id", doc.ID).
		Str("region", region).
		Bool("flags", flags).
		Int("entities", state.MaxScore).
		Msg("Map session started")

	return s.view(ctx, &doc, nil), nil
}

// Attempt resolves the front-of-queue target against the attempted
// entity. When the queue drains, an authenticated player's score is
// submitted exactly once against the region's pregenerated quiz.
func (s *MapSessionService) Attempt(ctx context.Context, actor session.Actor, sessionID, code string) (*MapSessionView, error) {
	doc, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if doc.Actor.Username != actor.Username {
		return nil, ErrSessionOwner
	}
	if doc.State.Finished() {
		return nil, ErrSessionFinished
	}

	target, _ := doc.State.Target()
	doc.State = session.ReduceMap(doc.State, session.AttemptMade{Code: code})

	result := &AttemptResult{
		Target: target.Name,
		Marker: doc.State.Markers[target.Name],
	}

	if doc.State.Finished() && !doc.Submitted && doc.Actor.Authenticated {
		if quizID, ok := geodata.QuizID(doc.State.Region, doc.State.Flags); ok {
			score := &model.QuizScore{
				Username: doc.Actor.Username,
				QuizID:   quizID,
				Score:    doc.State.Score,
				MaxScore: doc.State.MaxScore,
			}
			if err := s.scoreService.SubmitAsync(ctx, score); err != nil {
				s.log.Error().Err(err).
					Str("session_id", doc.ID).
					Msg("Failed to submit session score")
			} else {
				doc.Submitted = true
			}
		}
	}

	if err := s.store(ctx, doc); err != nil {
		return nil, err
	}
	return s.view(ctx, doc, result), nil
}

// Get returns the current snapshot of a session.
func (s *MapSessionService) Get(ctx context.Context, actor session.Actor, sessionID string) (*MapSessionView, error) {
	doc, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if doc.Actor.Username != actor.Username {
		return nil, ErrSessionOwner
	}
	return s.view(ctx, doc, nil), nil
}

func (s *MapSessionService) view(ctx context.Context, doc *mapSessionDoc, result *AttemptResult) *MapSessionView {
	v := &MapSessionView{
		SessionID: doc.ID,
		Region:    doc.State.Region,
		Flags:     doc.State.Flags,
		Score:     doc.State.Score,
		MaxScore:  doc.State.MaxScore,
		Remaining: doc.State.Remaining(),
		Markers:   doc.State.Markers,
		Finished:  doc.State.Finished(),
		Submitted: doc.Submitted,
		Result:    result,
	}

	if target, ok := doc.State.Target(); ok {
		if doc.State.Flags {
			// Flag lookups are best-effort: a failed lookup degrades the
			// prompt, it does not break the session.
			url, err := s.flagClient.FlagURL(ctx, target.Code)
			if err != nil {
				s.log.Warn().Err(err).
					Str("code", target.Code).
					Msg("Flag lookup failed")
			}
			v.FlagURL = url
		} else {
			v.TargetName = target.Name
		}
	}
	return v
}

func (s *MapSessionService) store(ctx context.Context, doc *mapSessionDoc) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	key := config.CacheKey.MapSessionKey(doc.ID)
	if err := s.rdb.Set(ctx, key, payload, s.cfg.SessionTTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *MapSessionService) load(ctx context.Context, sessionID string) (*mapSessionDoc, error) {
	key := config.CacheKey.MapSessionKey(sessionID)
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var doc mapSessionDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &doc, nil
}
