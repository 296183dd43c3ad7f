package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/prafuldivani/quiz-app/internal/model"
	"github.com/prafuldivani/quiz-app/internal/util"
)

func TestSubmitAndGetResult(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	mcq := quiz.Questions[0]
	text := quiz.Questions[1]
	var correctOptionID string
	for _, o := range mcq.Options {
		if o.IsCorrect {
			correctOptionID = o.ID
		}
	}

	submitted, err := svc.attempt.Submit(quiz.ID, SubmitReq{
		ParticipantName: "Alice",
		Answers: map[string]string{
			mcq.ID:  correctOptionID,
			text.ID: " berlin ",
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Score != 2 || submitted.TotalPoints != 2 || submitted.Percentage != 100 {
		t.Fatalf("got %d/%d/%d%%, want 2/2/100%%", submitted.Score, submitted.TotalPoints, submitted.Percentage)
	}

	// The result endpoint regenerates the identical breakdown from stored
	// raw answers.
	result, err := svc.attempt.GetResult(quiz.ID, submitted.AttemptID)
	if err != nil {
		t.Fatalf("get result: %v", err)
	}
	if result.Score != submitted.Score || result.TotalPoints != submitted.TotalPoints {
		t.Fatalf("stored summary diverges: %d/%d vs %d/%d",
			result.Score, result.TotalPoints, submitted.Score, submitted.TotalPoints)
	}
	if len(result.Answers) != len(submitted.Answers) {
		t.Fatalf("breakdown length diverges: %d vs %d", len(result.Answers), len(submitted.Answers))
	}
	for i := range result.Answers {
		if result.Answers[i] != submitted.Answers[i] {
			t.Fatalf("breakdown row %d diverges: %+v vs %+v", i, result.Answers[i], submitted.Answers[i])
		}
	}
	if result.ParticipantName != "Alice" {
		t.Fatalf("participant = %q, want Alice", result.ParticipantName)
	}
	if result.CompletedAt.IsZero() {
		t.Fatal("completedAt should be set from the attempt's creation time")
	}
}

func TestSubmitPartialAnswers(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	// No answers at all: accepted, graded all wrong.
	submitted, err := svc.attempt.Submit(quiz.ID, SubmitReq{ParticipantName: "Bob"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Score != 0 || submitted.TotalPoints != 2 || submitted.Percentage != 0 {
		t.Fatalf("got %d/%d/%d%%, want 0/2/0%%", submitted.Score, submitted.TotalPoints, submitted.Percentage)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if _, err := svc.attempt.Submit(quiz.ID, SubmitReq{ParticipantName: "   "}); !util.IsValidation(err) {
		t.Fatalf("blank name: got %v, want a validation error", err)
	}
	if _, err := svc.attempt.Submit(quiz.ID, SubmitReq{ParticipantName: strings.Repeat("x", 101)}); !util.IsValidation(err) {
		t.Fatalf("101-char name: got %v, want a validation error", err)
	}
}

func TestSubmitUnpublishedQuiz(t *testing.T) {
	svc := newTestServices(t)

	req := sampleQuizReq()
	req.IsPublished = boolptr(false)
	quiz, err := svc.quiz.CreateQuiz(1, req)
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if _, err := svc.attempt.Submit(quiz.ID, SubmitReq{ParticipantName: "Eve"}); !errors.Is(err, util.ErrQuizNotPublished) {
		t.Fatalf("got %v, want ErrQuizNotPublished", err)
	}
	if _, err := svc.attempt.Submit("no-such-quiz", SubmitReq{ParticipantName: "Eve"}); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("got %v, want ErrQuizNotFound", err)
	}
}

func TestResultNotFoundCases(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	other, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	submitted, err := svc.attempt.Submit(quiz.ID, SubmitReq{ParticipantName: "Alice"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.attempt.GetResult(quiz.ID, "no-such-attempt"); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("got %v, want ErrAttemptNotFound", err)
	}
	// Valid attempt id through the wrong quiz's URL must not resolve.
	if _, err := svc.attempt.GetResult(other.ID, submitted.AttemptID); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("got %v, want ErrAttemptNotFound", err)
	}
}

func TestDeleteQuizCascadesToAttempts(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	attemptIDs := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		submitted, err := svc.attempt.Submit(quiz.ID, SubmitReq{ParticipantName: "Runner"})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		attemptIDs = append(attemptIDs, submitted.AttemptID)
	}

	attempts, err := svc.attempt.ListAttempts(quiz.ID, 1)
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 5 {
		t.Fatalf("expected 5 attempts, got %d", len(attempts))
	}

	if err := svc.quiz.DeleteQuiz(quiz.ID, 1); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}

	for _, id := range attemptIDs {
		if _, err := svc.attempt.GetResult(quiz.ID, id); !errors.Is(err, util.ErrAttemptNotFound) {
			t.Fatalf("attempt %s should be gone, got %v", id, err)
		}
	}
	if _, err := svc.quiz.GetQuiz(quiz.ID, 1); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("quiz should be gone, got %v", err)
	}
}

func TestGetResultCorruptStoredAnswers(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	submitted, err := svc.attempt.Submit(quiz.ID, SubmitReq{ParticipantName: "Alice"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// A corrupt answers column must surface an error, not grade as an
	// entirely unanswered attempt.
	if err := svc.db.Model(&model.Attempt{}).
		Where("id = ?", submitted.AttemptID).
		Update("answers", []byte("{not json")).Error; err != nil {
		t.Fatalf("corrupt stored answers: %v", err)
	}

	if _, err := svc.attempt.GetResult(quiz.ID, submitted.AttemptID); err == nil {
		t.Fatal("expected an error for a corrupt stored answer map")
	}
}

func TestResultRecomputedAfterQuizEdit(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	mcq := quiz.Questions[0]
	var correctOptionID string
	for _, o := range mcq.Options {
		if o.IsCorrect {
			correctOptionID = o.ID
		}
	}

	submitted, err := svc.attempt.Submit(quiz.ID, SubmitReq{
		ParticipantName: "Alice",
		Answers:         map[string]string{mcq.ID: correctOptionID},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Score != 1 || submitted.TotalPoints != 2 {
		t.Fatalf("got %d/%d, want 1/2", submitted.Score, submitted.TotalPoints)
	}

	// Replacing the question set orphans the stored answer map; the
	// regenerated breakdown reflects the quiz as it is now, so the old
	// option ids no longer score.
	if _, err := svc.quiz.UpdateQuiz(quiz.ID, 1, QuizReq{
		Questions: &[]QuestionReq{
			{Text: "Capital of Spain?", Type: "TEXT", CorrectAnswer: strptr("Madrid")},
		},
	}); err != nil {
		t.Fatalf("update quiz: %v", err)
	}

	result, err := svc.attempt.GetResult(quiz.ID, submitted.AttemptID)
	if err != nil {
		t.Fatalf("get result: %v", err)
	}
	if result.Score != 0 || result.TotalPoints != 1 {
		t.Fatalf("recomputed result = %d/%d, want 0/1", result.Score, result.TotalPoints)
	}
}

func TestListAttemptsGuarded(t *testing.T) {
	svc := newTestServices(t)

	quiz, err := svc.quiz.CreateQuiz(1, sampleQuizReq())
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if _, err := svc.attempt.ListAttempts(quiz.ID, 2); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if _, err := svc.attempt.ListAttempts("no-such-quiz", 1); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("got %v, want ErrQuizNotFound", err)
	}
}
