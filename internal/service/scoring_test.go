package service

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/prafuldivani/quiz-app/internal/model"
)

func strptr(s string) *string { return &s }

func mcqQuestion(id string, order int, opts ...model.Option) model.Question {
	return model.Question{
		UUIDBase: model.UUIDBase{ID: id},
		Type:     model.QuestionMCQ,
		Order:    order,
		Options:  opts,
	}
}

func option(id, text string, correct bool) model.Option {
	return model.Option{
		UUIDBase:  model.UUIDBase{ID: id},
		Text:      text,
		IsCorrect: correct,
	}
}

func textQuestion(id string, order int, correctAnswer *string) model.Question {
	return model.Question{
		UUIDBase:      model.UUIDBase{ID: id},
		Type:          model.QuestionText,
		Order:         order,
		CorrectAnswer: correctAnswer,
	}
}

func TestScoreEmptyQuiz(t *testing.T) {
	result := Score(nil, map[string]string{"q1": "a"})
	if result.Score != 0 || result.TotalPoints != 0 || result.Percentage != 0 {
		t.Fatalf("empty quiz should score 0/0/0%%, got %d/%d/%d%%", result.Score, result.TotalPoints, result.Percentage)
	}
	if len(result.Answers) != 0 {
		t.Fatalf("expected no answer details, got %d", len(result.Answers))
	}
}

func TestScoreMCQ(t *testing.T) {
	paris := mcqQuestion("q1", 0,
		option("a", "Paris", true),
		option("b", "London", false),
	)

	tests := []struct {
		name        string
		answers     map[string]string
		wantScore   int
		wantPct     int
		wantCorrect bool
	}{
		{"correct option id", map[string]string{"q1": "a"}, 1, 100, true},
		{"wrong option id", map[string]string{"q1": "b"}, 0, 0, false},
		{"unknown option id", map[string]string{"q1": "zzz"}, 0, 0, false},
		{"empty submission", map[string]string{"q1": ""}, 0, 0, false},
		{"omitted answer", map[string]string{}, 0, 0, false},
		{"option text instead of id", map[string]string{"q1": "Paris"}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score([]model.Question{paris}, tt.answers)
			if result.TotalPoints != 1 {
				t.Fatalf("MCQ must always contribute 1 point, got total %d", result.TotalPoints)
			}
			if result.Score != tt.wantScore {
				t.Fatalf("score = %d, want %d", result.Score, tt.wantScore)
			}
			if result.Percentage != tt.wantPct {
				t.Fatalf("percentage = %d, want %d", result.Percentage, tt.wantPct)
			}
			if result.Answers[0].IsCorrect != tt.wantCorrect {
				t.Fatalf("isCorrect = %v, want %v", result.Answers[0].IsCorrect, tt.wantCorrect)
			}
		})
	}
}

func TestScoreMCQDetailTexts(t *testing.T) {
	q := mcqQuestion("q1", 0,
		option("a", "Paris", true),
		option("b", "London", false),
	)

	result := Score([]model.Question{q}, map[string]string{"q1": "b"})
	detail := result.Answers[0]
	if detail.SubmittedText != "London" {
		t.Fatalf("submitted text = %q, want London", detail.SubmittedText)
	}
	if detail.CorrectAnswer != "a" || detail.CorrectText != "Paris" {
		t.Fatalf("correct answer = %q/%q, want a/Paris", detail.CorrectAnswer, detail.CorrectText)
	}

	// Unknown submitted ids fall back to the raw string.
	result = Score([]model.Question{q}, map[string]string{"q1": "zzz"})
	if result.Answers[0].SubmittedText != "zzz" {
		t.Fatalf("submitted text = %q, want zzz", result.Answers[0].SubmittedText)
	}
}

func TestScoreTrueFalse(t *testing.T) {
	q := model.Question{
		UUIDBase: model.UUIDBase{ID: "q1"},
		Type:     model.QuestionTrueFalse,
		Options: []model.Option{
			option("t", "True", true),
			option("f", "False", false),
		},
	}

	result := Score([]model.Question{q}, map[string]string{"q1": "t"})
	if result.Score != 1 || result.TotalPoints != 1 {
		t.Fatalf("got %d/%d, want 1/1", result.Score, result.TotalPoints)
	}

	result = Score([]model.Question{q}, map[string]string{"q1": "f"})
	if result.Score != 0 || result.TotalPoints != 1 {
		t.Fatalf("got %d/%d, want 0/1", result.Score, result.TotalPoints)
	}
}

func TestScoreText(t *testing.T) {
	tests := []struct {
		name          string
		correctAnswer *string
		submitted     string
		want          bool
	}{
		{"exact match", strptr("Paris"), "Paris", true},
		{"case insensitive", strptr("Paris"), "pARIs", true},
		{"surrounding whitespace", strptr("Paris"), "  paris  ", true},
		{"near miss", strptr("Paris"), "pariss", false},
		{"internal whitespace differs", strptr("New York"), "NewYork", false},
		{"empty submission", strptr("Paris"), "", false},
		{"nil correct answer", nil, "anything", false},
		{"empty correct answer never matches", strptr(""), "", false},
		{"whitespace-only correct answer never matches", strptr("   "), "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := textQuestion("q1", 0, tt.correctAnswer)
			result := Score([]model.Question{q}, map[string]string{"q1": tt.submitted})
			if result.TotalPoints != 1 {
				t.Fatalf("TEXT must always contribute 1 point, got total %d", result.TotalPoints)
			}
			if result.Answers[0].IsCorrect != tt.want {
				t.Fatalf("isCorrect = %v, want %v", result.Answers[0].IsCorrect, tt.want)
			}
		})
	}
}

func TestScorePercentageRounding(t *testing.T) {
	// 2 of 3 is 66.67, which rounds up to 67.
	questions := []model.Question{
		mcqQuestion("q1", 0, option("a1", "A", true), option("b1", "B", false)),
		mcqQuestion("q2", 1, option("a2", "A", true), option("b2", "B", false)),
		textQuestion("q3", 2, strptr("Paris")),
	}
	answers := map[string]string{"q1": "a1", "q2": "a2", "q3": "wrong"}

	result := Score(questions, answers)
	if result.Score != 2 || result.TotalPoints != 3 {
		t.Fatalf("got %d/%d, want 2/3", result.Score, result.TotalPoints)
	}
	if result.Percentage != 67 {
		t.Fatalf("percentage = %d, want 67", result.Percentage)
	}

	// 1 of 3 is 33.33, which rounds down.
	result = Score(questions, map[string]string{"q1": "a1"})
	if result.Percentage != 33 {
		t.Fatalf("percentage = %d, want 33", result.Percentage)
	}
}

func TestScoreOutputOrder(t *testing.T) {
	questions := []model.Question{
		mcqQuestion("qc", 2, option("c1", "C", true), option("c2", "D", false)),
		mcqQuestion("qa", 0, option("a1", "A", true), option("a2", "B", false)),
		mcqQuestion("qb", 1, option("b1", "A", true), option("b2", "B", false)),
	}
	answers := map[string]string{"qc": "c1", "qb": "b2", "qa": "a1"}

	result := Score(questions, answers)
	got := []string{result.Answers[0].QuestionID, result.Answers[1].QuestionID, result.Answers[2].QuestionID}
	want := []string{"qa", "qb", "qc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("answer order = %v, want %v", got, want)
	}
}

func TestScoreOrderTieBreaksOnID(t *testing.T) {
	questions := []model.Question{
		textQuestion("qb", 0, strptr("x")),
		textQuestion("qa", 0, strptr("x")),
	}
	result := Score(questions, nil)
	if result.Answers[0].QuestionID != "qa" || result.Answers[1].QuestionID != "qb" {
		t.Fatalf("tie on order must break on id, got %s then %s",
			result.Answers[0].QuestionID, result.Answers[1].QuestionID)
	}
}

func TestScoreIgnoresUnknownQuestionIDs(t *testing.T) {
	q := mcqQuestion("q1", 0, option("a", "A", true), option("b", "B", false))
	result := Score([]model.Question{q}, map[string]string{"q1": "a", "ghost": "a"})
	if result.Score != 1 || result.TotalPoints != 1 || len(result.Answers) != 1 {
		t.Fatalf("unknown ids must be ignored, got %+v", result)
	}
}

func TestScoreIdempotent(t *testing.T) {
	questions := []model.Question{
		mcqQuestion("q1", 0, option("a", "Paris", true), option("b", "London", false)),
		textQuestion("q2", 1, strptr("Berlin")),
		textQuestion("q3", 2, nil),
	}
	answers := map[string]string{"q1": "b", "q2": " berlin "}

	first := Score(questions, answers)
	second := Score(questions, answers)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("scoring is not deterministic:\n%s\n%s", a, b)
	}
}

func TestScoreSpecScenarios(t *testing.T) {
	// One MCQ: Paris correct, London not.
	q := mcqQuestion("q1", 0, option("a", "Paris", true), option("b", "London", false))

	result := Score([]model.Question{q}, map[string]string{"q1": "a"})
	if result.Score != 1 || result.TotalPoints != 1 || result.Percentage != 100 {
		t.Fatalf("got %d/%d/%d%%, want 1/1/100%%", result.Score, result.TotalPoints, result.Percentage)
	}

	result = Score([]model.Question{q}, map[string]string{})
	if result.Score != 0 || result.TotalPoints != 1 || result.Percentage != 0 {
		t.Fatalf("got %d/%d/%d%%, want 0/1/0%%", result.Score, result.TotalPoints, result.Percentage)
	}
}
