package model

// Question is a single quiz question. Options shape drives presentation:
// an empty option set means free-text input, exactly ["True","False"]
// means a binary choice, anything else is one button per option. Scoring
// only ever compares the submitted answer against Answer by exact string
// equality.
type Question struct {
	ID       int      `json:"id"`
	QuizID   int      `json:"quizid"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
	Score    int      `json:"score"`
	Order    int      `json:"order"`
}

// AddQuestionRequest is the payload for adding a question to a quiz.
type AddQuestionRequest struct {
	Question string   `json:"question" binding:"required,min=1,max=2000"`
	Answer   string   `json:"answer" binding:"required,max=500"`
	Options  []string `json:"options"`
	QuizID   int      `json:"quizId" binding:"required"`
	Score    int      `json:"score" binding:"required,min=1"`
	Order    int      `json:"order" binding:"min=0"`
}

// AddManyQuestionsRequest is the payload for bulk question creation.
type AddManyQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
