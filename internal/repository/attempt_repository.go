package repository

import (
	"github.com/prafuldivani/quiz-app/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create is the single atomic insert per submission. Attempts are never
// updated afterwards.
func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

// FindByQuizAndID scopes the lookup to the quiz so an attempt id cannot be
// fetched through another quiz's result URL.
func (r *AttemptRepository) FindByQuizAndID(quizID, attemptID string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.Where("quiz_id = ? AND id = ?", quizID, attemptID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByQuiz(quizID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("quiz_id = ?", quizID).Order("created_at desc").Find(&attempts).Error
	return attempts, err
}
