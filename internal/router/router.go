package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/handler"
	"github.com/geoquiz/geoquiz-backend/internal/middleware"
	"github.com/geoquiz/geoquiz-backend/internal/response"
	"github.com/geoquiz/geoquiz-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Quiz        *handler.QuizHandler
	Question    *handler.QuestionHandler
	Score       *handler.ScoreHandler
	QuizSession *handler.QuizSessionHandler
	MapSession  *handler.MapSessionHandler
	Geo         *handler.GeoHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout",
			middleware.RequireUserJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Auth.Logout,
		)
		auth.GET("/me",
			middleware.RequireUserJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Auth.Me,
		)
	}

	// ─── 2. Geo Catalog (Public, Cacheable) ────────────────────────────
	// The embedded catalog never changes at runtime, cache for a day.
	geo := router.Group("/api/v1/geo")
	geo.Use(middleware.CacheControl(86400))
	{
		geo.GET("/regions", handlers.Geo.ListRegions)
		geo.GET("/countries", handlers.Geo.ListCountries)
	}

	// ─── 3. Public Reads ───────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/users", handlers.User.ListUsers)
		api.GET("/users/:username", handlers.User.GetUser)
		api.GET("/users/:username/scores", handlers.Score.ListUserScores)

		api.GET("/quizzes", handlers.Quiz.ListQuizzes)
		api.GET("/quizzes/:quiz_id", handlers.Quiz.GetQuiz)
		api.GET("/quizzes/:quiz_id/questions", handlers.Question.ListQuestions)
		api.GET("/quizzes/:quiz_id/scores", handlers.Score.ListQuizScores)
		api.GET("/quizzes/:quiz_id/scores/:username", handlers.Score.GetUserQuizScore)
	}

	// ─── 4. Map Sessions (Anonymous Allowed) ───────────────────────────
	// Anyone may play; a valid token upgrades the session so the final
	// score is submitted.
	mapSessions := router.Group("/api/v1/map-sessions")
	mapSessions.Use(
		middleware.OptionalUserJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		mapSessions.POST("", handlers.MapSession.StartSession)
		mapSessions.GET("/:session_id", handlers.MapSession.GetSession)
		mapSessions.POST("/:session_id/attempts", handlers.MapSession.Attempt)
	}

	// ─── 5. Authenticated Writes (JWT + Single Device) ─────────────────
	authed := router.Group("/api/v1")
	authed.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		authed.POST("/quizzes", handlers.Quiz.CreateQuiz)
		authed.DELETE("/quizzes/:quiz_id", handlers.Quiz.DeleteQuiz)

		authed.POST("/questions", handlers.Question.AddQuestion)
		authed.POST("/questions/batch", handlers.Question.AddManyQuestions)
		authed.DELETE("/questions/:question_id", handlers.Question.DeleteQuestion)
		authed.DELETE("/quizzes/:quiz_id/questions", handlers.Question.DeleteQuizQuestions)

		authed.POST("/scores", handlers.Score.SubmitScore)
		authed.PUT("/scores", handlers.Score.UpdateScore)
		authed.DELETE("/quizzes/:quiz_id/scores", handlers.Score.DeleteScores)

		authed.POST("/quiz-sessions", handlers.QuizSession.StartSession)
		authed.GET("/quiz-sessions/:session_id", handlers.QuizSession.GetSession)
		authed.POST("/quiz-sessions/:session_id/answers", handlers.QuizSession.SubmitAnswer)
	}

	// ─── 6. WebSocket Group (Public) ───────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/quizzes/:quiz_id/leaderboard", handlers.WS.LeaderboardStream)
	}

	return router
}
