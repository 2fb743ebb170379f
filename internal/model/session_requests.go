package model

// StartQuizSessionRequest is the payload for opening a sequential quiz
// session.
type StartQuizSessionRequest struct {
	QuizID int `json:"quizid" binding:"required"`
}

// AnswerRequest carries one submitted answer. An empty string is a legal
// free-text submission, so the field is not required.
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// StartMapSessionRequest is the payload for opening a map quiz session.
type StartMapSessionRequest struct {
	Region string `json:"region" binding:"required"`
	Flags  bool   `json:"flags"`
}

// AttemptRequest carries the country code of the entity the player
// interacted with on the map.
type AttemptRequest struct {
	Code string `json:"code" binding:"required"`
}
