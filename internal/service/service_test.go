package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prafuldivani/quiz-app/internal/repository"
	"github.com/prafuldivani/quiz-app/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database per test. cache=shared
// keeps all pooled connections on the same database; the unique name keeps
// tests isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testServices struct {
	db      *gorm.DB
	quiz    *QuizService
	attempt *AttemptService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	db := newTestDB(t)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	quizSvc := NewQuizService(quizRepo)
	return testServices{
		db:      db,
		quiz:    quizSvc,
		attempt: NewAttemptService(quizRepo, attemptRepo, quizSvc),
	}
}

func boolptr(b bool) *bool { return &b }

// sampleQuizReq builds a published 2-question quiz: one MCQ with Paris
// correct, one TEXT expecting "Berlin".
func sampleQuizReq() QuizReq {
	title := "Capitals"
	return QuizReq{
		Title:       &title,
		IsPublished: boolptr(true),
		Questions: &[]QuestionReq{
			{
				Text:  "Capital of France?",
				Type:  "MCQ",
				Order: 0,
				Options: []OptionReq{
					{Text: "Paris", IsCorrect: true},
					{Text: "London", IsCorrect: false},
				},
			},
			{
				Text:          "Capital of Germany?",
				Type:          "TEXT",
				Order:         1,
				CorrectAnswer: strptr("Berlin"),
			},
		},
	}
}
