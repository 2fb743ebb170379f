package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/model"
	ws "github.com/geoquiz/geoquiz-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live leaderboard updates over WebSocket.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// LeaderboardStream godoc
// WS /ws/v1/quizzes/:quiz_id/leaderboard
// Upgrades to WebSocket and pushes every new score recorded on the quiz
// for as long as the client stays connected.
func (h *WSHandler) LeaderboardStream(c *gin.Context) {
	quizID, err := strconv.Atoi(c.Param("quiz_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("quiz_id", quizID).Logger()
	wsLog.Info().Msg("Leaderboard subscriber connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.QuizLeaderboardChannel(quizID))
	defer sub.Close()

	// Reader goroutine: answers pings and unblocks the writer loop when
	// the client goes away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Leaderboard subscriber disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var score model.QuizScore
			if err := json.Unmarshal([]byte(msg.Payload), &score); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed leaderboard payload")
				continue
			}
			event := ws.ScoreEvent{
				Event:    ws.EventScore,
				Username: score.Username,
				QuizID:   score.QuizID,
				Score:    score.Score,
				MaxScore: score.MaxScore,
			}
			if err := ws.WriteTyped(conn, event); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping subscriber")
				return
			}
		}
	}
}
