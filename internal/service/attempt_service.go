package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/prafuldivani/quiz-app/internal/model"
	"github.com/prafuldivani/quiz-app/internal/repository"
	"github.com/prafuldivani/quiz-app/internal/util"

	"gorm.io/gorm"
)

type AttemptService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	QuizSvc     *QuizService
}

func NewAttemptService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, quizSvc *QuizService) *AttemptService {
	return &AttemptService{QuizRepo: quizRepo, AttemptRepo: attemptRepo, QuizSvc: quizSvc}
}

type SubmitReq struct {
	ParticipantName string            `json:"participantName" binding:"required,max=100"`
	Answers         map[string]string `json:"answers"`
}

// SubmitResult is the immediate feedback after grading: summary plus the
// full per-question breakdown, and the attempt id for the shareable result
// URL.
type SubmitResult struct {
	AttemptID   string         `json:"attemptId"`
	Score       int            `json:"score"`
	TotalPoints int            `json:"totalPoints"`
	Percentage  int            `json:"percentage"`
	Answers     []AnswerResult `json:"answers"`
}

// AttemptResult is the stored-result view: the same breakdown regenerated
// from the raw answer map, plus who took it and when.
type AttemptResult struct {
	AttemptID       string         `json:"attemptId"`
	QuizID          string         `json:"quizId"`
	QuizTitle       string         `json:"quizTitle"`
	ParticipantName string         `json:"participantName"`
	CompletedAt     time.Time      `json:"completedAt"`
	Score           int            `json:"score"`
	TotalPoints     int            `json:"totalPoints"`
	Percentage      int            `json:"percentage"`
	Answers         []AnswerResult `json:"answers"`
}

// Submit grades a public submission against a published quiz and persists
// the attempt in a single insert. Partial answer maps are accepted; missing
// questions grade as unanswered.
func (s *AttemptService) Submit(quizID string, req SubmitReq) (*SubmitResult, error) {
	name := strings.TrimSpace(req.ParticipantName)
	if name == "" || len(name) > 100 {
		return nil, util.NewValidationError("participant name must be 1-100 characters")
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	answers := req.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	result := Score(quiz.Questions, answers)

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.Attempt{
		QuizID:          quizID,
		ParticipantName: name,
		Answers:         raw,
		Score:           result.Score,
		TotalPoints:     result.TotalPoints,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	return &SubmitResult{
		AttemptID:   attempt.ID,
		Score:       result.Score,
		TotalPoints: result.TotalPoints,
		Percentage:  result.Percentage,
		Answers:     result.Answers,
	}, nil
}

// GetResult reloads the attempt and its quiz and re-runs the scorer on the
// stored raw answers. The breakdown is never persisted, so a question whose
// text changed after the attempt renders with the current text.
func (s *AttemptService) GetResult(quizID, attemptID string) (*AttemptResult, error) {
	attempt, err := s.AttemptRepo.FindByQuizAndID(quizID, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	answers, err := attempt.AnswerMap()
	if err != nil {
		return nil, err
	}
	result := Score(quiz.Questions, answers)

	return &AttemptResult{
		AttemptID:       attempt.ID,
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		ParticipantName: attempt.ParticipantName,
		CompletedAt:     attempt.CreatedAt,
		Score:           result.Score,
		TotalPoints:     result.TotalPoints,
		Percentage:      result.Percentage,
		Answers:         result.Answers,
	}, nil
}

// ListAttempts is owner-only; the guard runs first.
func (s *AttemptService) ListAttempts(quizID string, userID uint) ([]model.Attempt, error) {
	if _, err := s.QuizSvc.VerifyOwnership(quizID, userID); err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByQuiz(quizID)
}
