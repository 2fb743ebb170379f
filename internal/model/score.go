package model

// QuizScore is a recorded quiz result. This is the only session artifact
// that crosses into persistence.
type QuizScore struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	QuizID   int    `json:"quizid"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxscore"`
}

// QuizScoreWithQuiz is a score joined with its quiz for profile views.
type QuizScoreWithQuiz struct {
	QuizScore
	Quiz Quiz `json:"quiz"`
}

// SubmitScoreRequest is the payload for recording a quiz score directly.
type SubmitScoreRequest struct {
	Username string `json:"username" binding:"required"`
	QuizID   int    `json:"quizid" binding:"required"`
	Score    int    `json:"score" binding:"min=0"`
	MaxScore int    `json:"maxscore" binding:"required,min=1"`
}

// UpdateScoreRequest is the payload for editing an existing quiz score.
type UpdateScoreRequest struct {
	Username string `json:"username" binding:"required"`
	QuizID   int    `json:"quizid" binding:"required"`
	Score    int    `json:"score" binding:"min=0"`
}
