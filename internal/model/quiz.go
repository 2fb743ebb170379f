package model

// Quiz is a user-authored (or pregenerated) quiz.
type Quiz struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Username    string `json:"username"`
	// Pregenerated marks quizzes shipped with the platform (map quizzes
	// and seeded sets) as opposed to user-authored ones.
	Pregenerated bool `json:"pregenerated"`
}

// CreateQuizRequest is the payload for creating a quiz.
type CreateQuizRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=500"`
}

// QuizWithScore is a quiz joined with a single player's best recorded
// score, if any. Score fields are nil when the player never finished it.
type QuizWithScore struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Pregenerated bool   `json:"pregenerated"`
	Score        *int   `json:"score"`
	MaxScore     *int   `json:"maxscore"`
}
