package service

import (
	"errors"
	"fmt"

	"github.com/prafuldivani/quiz-app/internal/model"
	"github.com/prafuldivani/quiz-app/internal/repository"
	"github.com/prafuldivani/quiz-app/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	Repo *repository.QuizRepository
}

func NewQuizService(repo *repository.QuizRepository) *QuizService {
	return &QuizService{Repo: repo}
}

type OptionReq struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionReq struct {
	Text          string             `json:"text" binding:"required"`
	Type          model.QuestionType `json:"type" binding:"required"`
	Order         int                `json:"order"`
	Options       []OptionReq        `json:"options"`
	CorrectAnswer *string            `json:"correctAnswer"`
}

type QuizReq struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	IsPublished *bool          `json:"isPublished"`
	Questions   *[]QuestionReq `json:"questions"`
}

// VerifyOwnership is the guard in front of every admin operation on a quiz.
// It loads minimal metadata only and distinguishes a missing quiz
// (ErrQuizNotFound) from someone else's quiz (ErrForbidden); see
// util/errors.go for why the two stay distinguishable.
func (s *QuizService) VerifyOwnership(quizID string, userID uint) (*model.Quiz, error) {
	quiz, err := s.Repo.FindMetaByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.CreatedByID != userID {
		return nil, util.ErrForbidden
	}
	return quiz, nil
}

func (s *QuizService) CreateQuiz(creatorID uint, req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.NewValidationError("title is required")
	}

	quiz := &model.Quiz{
		Title:       *req.Title,
		CreatedByID: creatorID,
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.IsPublished != nil {
		quiz.IsPublished = *req.IsPublished
	}

	if req.Questions != nil {
		questions, err := buildQuestions(*req.Questions)
		if err != nil {
			return nil, err
		}
		quiz.Questions = questions
	}

	if err := s.Repo.Create(quiz); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(quiz.ID)
}

// GetQuiz is the owner view: full quiz with answers, guarded.
func (s *QuizService) GetQuiz(quizID string, userID uint) (*model.Quiz, error) {
	if _, err := s.VerifyOwnership(quizID, userID); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(quizID)
}

// UpdateQuiz replaces metadata and, when Questions is present, the whole
// question set in one transaction. An omitted Questions field leaves the
// existing set untouched. Ownership never changes here.
func (s *QuizService) UpdateQuiz(quizID string, userID uint, req QuizReq) (*model.Quiz, error) {
	meta, err := s.VerifyOwnership(quizID, userID)
	if err != nil {
		return nil, err
	}

	current, err := s.Repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		UUIDBase:    model.UUIDBase{ID: meta.ID},
		Title:       current.Title,
		Description: current.Description,
		IsPublished: current.IsPublished,
		CoverImage:  current.CoverImage,
	}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title is required")
		}
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.IsPublished != nil {
		quiz.IsPublished = *req.IsPublished
	}

	if req.Questions == nil {
		if err := s.Repo.UpdateMeta(quiz); err != nil {
			return nil, err
		}
		return s.Repo.FindByID(quizID)
	}

	questions, err := buildQuestions(*req.Questions)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateReplacingQuestions(quiz, questions); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(quizID)
}

func (s *QuizService) DeleteQuiz(quizID string, userID uint) error {
	if _, err := s.VerifyOwnership(quizID, userID); err != nil {
		return err
	}
	return s.Repo.Delete(quizID)
}

func (s *QuizService) SetCoverImage(quizID string, userID uint, url string) error {
	if _, err := s.VerifyOwnership(quizID, userID); err != nil {
		return err
	}
	return s.Repo.UpdateCoverImage(quizID, url)
}

func (s *QuizService) ListQuizzes(userID uint) ([]repository.QuizListRow, error) {
	return s.Repo.ListByUser(userID)
}

func (s *QuizService) ListPublished() ([]repository.QuizListRow, error) {
	return s.Repo.ListPublished()
}

// PublicOption and PublicQuestion are the sanitized quiz-taking view:
// no isCorrect flags, no expected TEXT answers.
type PublicOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type PublicQuestion struct {
	ID      string             `json:"id"`
	Text    string             `json:"text"`
	Type    model.QuestionType `json:"type"`
	Order   int                `json:"order"`
	Options []PublicOption     `json:"options"`
}

type PublicQuiz struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CoverImage  string           `json:"coverImage,omitempty"`
	Questions   []PublicQuestion `json:"questions"`
}

// GetPublicQuiz returns the quiz-taking view of a published quiz. Unpublished
// quizzes answer ErrQuizNotPublished regardless of who asks; the public
// surface has no identity to check against.
func (s *QuizService) GetPublicQuiz(quizID string) (*PublicQuiz, error) {
	quiz, err := s.Repo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	public := &PublicQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		CoverImage:  quiz.CoverImage,
		Questions:   make([]PublicQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		pq := PublicQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Order:   q.Order,
			Options: make([]PublicOption, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			pq.Options = append(pq.Options, PublicOption{ID: o.ID, Text: o.Text})
		}
		public.Questions = append(public.Questions, pq)
	}
	return public, nil
}

// buildQuestions validates the question payload against the shape rules and
// converts it to models. Checked before any persistence.
func buildQuestions(reqs []QuestionReq) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	for i, qr := range reqs {
		if err := validateQuestion(i, qr); err != nil {
			return nil, err
		}

		q := model.Question{
			Text:  qr.Text,
			Type:  qr.Type,
			Order: qr.Order,
		}
		if qr.Type == model.QuestionText {
			q.CorrectAnswer = qr.CorrectAnswer
		} else {
			for _, or := range qr.Options {
				q.Options = append(q.Options, model.Option{
					Text:      or.Text,
					IsCorrect: or.IsCorrect,
				})
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func validateQuestion(idx int, qr QuestionReq) error {
	correctCount := 0
	for _, or := range qr.Options {
		if or.IsCorrect {
			correctCount++
		}
	}

	switch qr.Type {
	case model.QuestionMCQ:
		if len(qr.Options) < 2 {
			return util.NewValidationError(fmt.Sprintf("question %d: MCQ needs at least 2 options", idx+1))
		}
		if correctCount != 1 {
			return util.NewValidationError(fmt.Sprintf("question %d: MCQ needs exactly one correct option", idx+1))
		}
	case model.QuestionTrueFalse:
		if len(qr.Options) != 2 {
			return util.NewValidationError(fmt.Sprintf("question %d: TRUE_FALSE needs exactly 2 options", idx+1))
		}
		if correctCount != 1 {
			return util.NewValidationError(fmt.Sprintf("question %d: TRUE_FALSE needs exactly one correct option", idx+1))
		}
	case model.QuestionText:
		if len(qr.Options) > 0 {
			return util.NewValidationError(fmt.Sprintf("question %d: TEXT questions cannot have options", idx+1))
		}
	default:
		return util.NewValidationError(fmt.Sprintf("question %d: unknown question type %q", idx+1, qr.Type))
	}
	return nil
}
