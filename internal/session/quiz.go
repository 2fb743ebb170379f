package session

import (
	"github.com/geoquiz/geoquiz-backend/internal/model"
)

// Phase is the lifecycle stage of a sequential quiz session.
type Phase string

const (
	PhaseLoading   Phase = "LOADING"
	PhaseAnswering Phase = "ANSWERING"
	PhaseFinished  Phase = "FINISHED"
)

// AnswerMode is the presentation policy for a question, derived purely
// from the shape of its option set. The authored question type is never
// consulted.
type AnswerMode string

const (
	ModeFreeText AnswerMode = "free_text"
	ModeBinary   AnswerMode = "binary"
	ModeChoices  AnswerMode = "choices"
)

// ModeFor returns the presentation mode for a question: no options means
// free-text input, exactly ["True","False"] in that order means a binary
// choice, anything else is one choice per option.
func ModeFor(q model.Question) AnswerMode {
	if len(q.Options) == 0 {
		return ModeFreeText
	}
	if len(q.Options) == 2 && q.Options[0] == "True" && q.Options[1] == "False" {
		return ModeBinary
	}
	return ModeChoices
}

// QuizState is the full state of one sequential quiz session. Index is -1
// until the question set arrives, then walks 0..len(Questions). Awarded
// gets exactly one entry appended per answered question (0 if incorrect).
type QuizState struct {
	QuizID    int              `json:"quizid"`
	Questions []model.Question `json:"questions"`
	Index     int              `json:"index"`
	Awarded   []int            `json:"awarded"`
}

// NewQuizState returns the initial Loading state for a quiz.
func NewQuizState(quizID int) QuizState {
	return QuizState{QuizID: quizID, Index: -1}
}

// QuizEvent is a discrete external event driving the sequential session.
type QuizEvent interface{ quizEvent() }

// QuestionsLoaded carries the fetched, order-sorted question set.
// Ordering is a collaborator precondition: the repository sorts by the
// order column and the reducer trusts it.
type QuestionsLoaded struct {
	Questions []model.Question
}

// AnswerSubmitted carries one submitted answer value.
type AnswerSubmitted struct {
	Answer string
}

func (QuestionsLoaded) quizEvent() {}
func (AnswerSubmitted) quizEvent() {}

// ReduceQuiz applies one event to the session state. Unknown or
// out-of-phase events leave the state unchanged.
func ReduceQuiz(st QuizState, ev QuizEvent) QuizState {
	switch e := ev.(type) {
	case QuestionsLoaded:
		if st.Index != -1 {
			return st // questions load exactly once
		}
		next := st
		next.Questions = e.Questions
		next.Index = 0
		return next

	case AnswerSubmitted:
		if st.Phase() != PhaseAnswering {
			return st
		}
		q := st.Questions[st.Index]
		awarded := 0
		if e.Answer == q.Answer {
			awarded = q.Score
		}
		next := st
		next.Awarded = append(append([]int(nil), st.Awarded...), awarded)
		// The pointer always advances — there is no retry of a question.
		next.Index = st.Index + 1
		return next
	}
	return st
}

// Phase reports the current lifecycle stage.
func (s QuizState) Phase() Phase {
	switch {
	case s.Index < 0:
		return PhaseLoading
	case s.Index < len(s.Questions):
		return PhaseAnswering
	default:
		return PhaseFinished
	}
}

// Current returns the question under the pointer, or false outside the
// Answering phase.
func (s QuizState) Current() (model.Question, bool) {
	if s.Phase() != PhaseAnswering {
		return model.Question{}, false
	}
	return s.Questions[s.Index], true
}

// Achieved sums the per-question awarded points.
func (s QuizState) Achieved() int {
	total := 0
	for _, a := range s.Awarded {
		total += a
	}
	return total
}

// MaxScore sums all questions' point values.
func (s QuizState) MaxScore() int {
	total := 0
	for _, q := range s.Questions {
		total += q.Score
	}
	return total
}

// Percentage is achieved/max, guarded to 0 when the maximum is 0 so the
// result is always finite.
func (s QuizState) Percentage() float64 {
	max := s.MaxScore()
	if max == 0 {
		return 0
	}
	return float64(s.Achieved()) / float64(max)
}

// Feedback returns the result message for a score percentage. Tiers are
// non-overlapping and evaluated in order.
func Feedback(percentage float64) string {
	switch {
	case percentage < 0.5:
		return "That was terrible, sorry. Try again!"
	case percentage < 0.75:
		return "Eh, that wasn't too bad. You should definitely brush up on the topic!"
	case percentage < 0.90:
		return "Nice try! You'll get even better next time!"
	case percentage < 1:
		return "Wow, almost perfect!"
	default:
		return "Wow, a perfect score! Congratulations, that's impressive!"
	}
}
