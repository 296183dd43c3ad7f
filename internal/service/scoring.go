package service

import (
	"math"
	"sort"
	"strings"

	"github.com/prafuldivani/quiz-app/internal/model"
)

// AnswerResult is the per-question grading detail shown on a result page.
// It is recomputed from (question, stored raw answer) on every read and
// never persisted, so option text edited after an attempt renders
// consistently with the regenerated state.
type AnswerResult struct {
	QuestionID    string `json:"questionId"`
	Submitted     string `json:"submitted"`
	SubmittedText string `json:"submittedText"`
	CorrectAnswer string `json:"correctAnswer"`
	CorrectText   string `json:"correctText"`
	IsCorrect     bool   `json:"isCorrect"`
}

// ScoreResult is the outcome of grading one submission against one quiz.
type ScoreResult struct {
	Score       int            `json:"score"`
	TotalPoints int            `json:"totalPoints"`
	Percentage  int            `json:"percentage"`
	Answers     []AnswerResult `json:"answers"`
}

// Score grades a submission. It is a pure function: no I/O, no clock, no
// randomness, so result pages can be re-rendered from stored state at any
// time and grading the same input twice yields identical output.
//
// Every question is worth exactly one point regardless of type, so
// TotalPoints always equals the question count. Missing answer-map keys
// grade as unanswered rather than erroring, and unknown question ids in the
// map are ignored. Output order follows question display order with id as
// the tie-break, independent of answer-map iteration order.
func Score(questions []model.Question, answers map[string]string) ScoreResult {
	ordered := make([]model.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].ID < ordered[j].ID
	})

	result := ScoreResult{
		Answers: make([]AnswerResult, 0, len(ordered)),
	}

	for _, q := range ordered {
		submitted := answers[q.ID]
		detail := AnswerResult{
			QuestionID: q.ID,
			Submitted:  submitted,
		}

		switch q.Type {
		case model.QuestionMCQ, model.QuestionTrueFalse:
			correct := correctOption(q.Options)
			if correct != nil {
				detail.CorrectAnswer = correct.ID
				detail.CorrectText = correct.Text
				detail.IsCorrect = submitted == correct.ID
			}
			detail.SubmittedText = optionText(q.Options, submitted)
		case model.QuestionText:
			detail.SubmittedText = submitted
			if q.CorrectAnswer != nil {
				detail.CorrectAnswer = *q.CorrectAnswer
				detail.CorrectText = *q.CorrectAnswer
			}
			detail.IsCorrect = textMatches(q.CorrectAnswer, submitted)
		}

		// Ungradable TEXT questions (no expected answer) still consume a
		// point, so a quiz containing one can never reach 100%. Observable
		// behavior, kept on purpose.
		result.TotalPoints++
		if detail.IsCorrect {
			result.Score++
		}
		result.Answers = append(result.Answers, detail)
	}

	result.Percentage = percentage(result.Score, result.TotalPoints)
	return result
}

// correctOption returns the option flagged correct. Validation guarantees
// exactly one for MCQ and TRUE_FALSE; nil only on malformed stored data, in
// which case the question is simply ungradable.
func correctOption(options []model.Option) *model.Option {
	for i := range options {
		if options[i].IsCorrect {
			return &options[i]
		}
	}
	return nil
}

// optionText resolves a submitted option id to its display text, falling
// back to the raw submission when it matches no option.
func optionText(options []model.Option, submitted string) string {
	if submitted == "" {
		return ""
	}
	for i := range options {
		if options[i].ID == submitted {
			return options[i].Text
		}
	}
	return submitted
}

// textMatches compares a TEXT submission against the expected answer,
// ignoring case and surrounding whitespace. An empty (or whitespace-only)
// expected answer never matches anything, not even an empty submission.
func textMatches(expected *string, submitted string) bool {
	if expected == nil {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(*expected))
	if want == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(submitted)) == want
}

// percentage rounds half away from zero; 2 of 3 is 67, not 66. Zero
// questions is defined as 0 rather than a division error.
func percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}
