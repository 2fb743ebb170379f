package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoquiz/geoquiz-backend/internal/model"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{ID: 1, QuizID: 7, Question: "2+2?", Answer: "4", Options: []string{}, Score: 5, Order: 0},
		{ID: 2, QuizID: 7, Question: "Sky color?", Answer: "Blue", Options: []string{"Blue", "Red"}, Score: 3, Order: 1},
	}
}

func TestQuizSession_Lifecycle(t *testing.T) {
	st := NewQuizState(7)
	assert.Equal(t, PhaseLoading, st.Phase())
	assert.Equal(t, -1, st.Index)

	t.Run("AnswerBeforeLoadIsNoop", func(t *testing.T) {
		next := ReduceQuiz(st, AnswerSubmitted{Answer: "4"})
		assert.Equal(t, st, next)
	})

	st = ReduceQuiz(st, QuestionsLoaded{Questions: sampleQuestions()})
	require.Equal(t, PhaseAnswering, st.Phase())
	assert.Equal(t, 0, st.Index)

	t.Run("QuestionsLoadExactlyOnce", func(t *testing.T) {
		next := ReduceQuiz(st, QuestionsLoaded{Questions: nil})
		assert.Equal(t, st, next)
	})

	q, ok := st.Current()
	require.True(t, ok)
	assert.Equal(t, "2+2?", q.Question)

	st = ReduceQuiz(st, AnswerSubmitted{Answer: "4"})
	require.Equal(t, PhaseAnswering, st.Phase())
	q, ok = st.Current()
	require.True(t, ok)
	assert.Equal(t, "Sky color?", q.Question)

	st = ReduceQuiz(st, AnswerSubmitted{Answer: "Red"})
	require.Equal(t, PhaseFinished, st.Phase())
	_, ok = st.Current()
	assert.False(t, ok)

	// Worked example: answering "4" then "Red" gives 5/8 = 62.5%.
	assert.Equal(t, []int{5, 0}, st.Awarded)
	assert.Equal(t, 5, st.Achieved())
	assert.Equal(t, 8, st.MaxScore())
	assert.InDelta(t, 0.625, st.Percentage(), 1e-9)

	t.Run("AnswerAfterFinishIsNoop", func(t *testing.T) {
		next := ReduceQuiz(st, AnswerSubmitted{Answer: "Blue"})
		assert.Equal(t, st, next)
	})
}

func TestQuizSession_VisitsEachQuestionOnce(t *testing.T) {
	questions := []model.Question{
		{ID: 1, Question: "a", Answer: "a", Score: 1, Order: 0},
		{ID: 2, Question: "b", Answer: "b", Score: 1, Order: 1},
		{ID: 3, Question: "c", Answer: "c", Score: 1, Order: 2},
		{ID: 4, Question: "d", Answer: "d", Score: 1, Order: 3},
	}

	st := ReduceQuiz(NewQuizState(1), QuestionsLoaded{Questions: questions})

	var visited []int
	for st.Phase() == PhaseAnswering {
		q, ok := st.Current()
		require.True(t, ok)
		visited = append(visited, q.ID)
		st = ReduceQuiz(st, AnswerSubmitted{Answer: "wrong"})
	}

	assert.Equal(t, []int{1, 2, 3, 4}, visited)
	assert.Len(t, st.Awarded, len(questions))
	assert.Equal(t, PhaseFinished, st.Phase())
}

func TestQuizSession_ExactStringEquality(t *testing.T) {
	questions := []model.Question{
		{ID: 1, Question: "capital of France?", Answer: "Paris", Score: 10, Order: 0},
	}
	base := ReduceQuiz(NewQuizState(1), QuestionsLoaded{Questions: questions})

	cases := []struct {
		name    string
		answer  string
		awarded int
	}{
		{"ExactMatch", "Paris", 10},
		{"CaseMismatch", "paris", 0},
		{"TrailingSpace", "Paris ", 0},
		{"Empty", "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := ReduceQuiz(base, AnswerSubmitted{Answer: tc.answer})
			assert.Equal(t, []int{tc.awarded}, st.Awarded)
		})
	}
}

func TestQuizSession_ReducerDoesNotMutateInput(t *testing.T) {
	st := ReduceQuiz(NewQuizState(1), QuestionsLoaded{Questions: sampleQuestions()})
	st = ReduceQuiz(st, AnswerSubmitted{Answer: "4"})

	before := append([]int(nil), st.Awarded...)
	_ = ReduceQuiz(st, AnswerSubmitted{Answer: "Blue"})

	assert.Equal(t, before, st.Awarded)
	assert.Equal(t, 1, st.Index)
}

func TestQuizSession_ZeroMaxScoreGuard(t *testing.T) {
	questions := []model.Question{
		{ID: 1, Question: "freebie", Answer: "x", Score: 0, Order: 0},
	}
	st := ReduceQuiz(NewQuizState(1), QuestionsLoaded{Questions: questions})
	st = ReduceQuiz(st, AnswerSubmitted{Answer: "x"})

	require.Equal(t, PhaseFinished, st.Phase())
	assert.Equal(t, 0, st.MaxScore())
	assert.Equal(t, 0.0, st.Percentage())
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeFreeText, ModeFor(model.Question{Options: nil}))
	assert.Equal(t, ModeFreeText, ModeFor(model.Question{Options: []string{}}))
	assert.Equal(t, ModeBinary, ModeFor(model.Question{Options: []string{"True", "False"}}))
	// Order matters for the binary shape.
	assert.Equal(t, ModeChoices, ModeFor(model.Question{Options: []string{"False", "True"}}))
	assert.Equal(t, ModeChoices, ModeFor(model.Question{Options: []string{"Blue", "Red"}}))
}

func TestFeedbackTiers(t *testing.T) {
	cases := []struct {
		percentage float64
		contains   string
	}{
		{0.0, "Try again"},
		{0.49, "Try again"},
		{0.5, "brush up"},
		{0.625, "brush up"},
		{0.74, "brush up"},
		{0.75, "Nice try"},
		{0.89, "Nice try"},
		{0.90, "almost perfect"},
		{0.99, "almost perfect"},
		{1.0, "perfect score"},
	}
	for _, tc := range cases {
		assert.Contains(t, Feedback(tc.percentage), tc.contains, "percentage %v", tc.percentage)
	}
}
