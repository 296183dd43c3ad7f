package repository

import (
	"github.com/prafuldivani/quiz-app/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// Create persists the quiz together with its nested questions and options in
// one transaction.
func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

// FindByID loads the full quiz with questions in display order and their
// options. Callers that must not see correct answers sanitize the result
// themselves; the repository always returns the complete record.
func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc, id asc")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc")
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindMetaByID reads only the columns the ownership guard needs.
func (r *QuizRepository) FindMetaByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Select("id", "title", "created_by_id", "is_published").
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// updateQuizColumns writes the quiz's own fields. CreatedByID is excluded;
// ownership never changes after creation.
func updateQuizColumns(tx *gorm.DB, quiz *model.Quiz) error {
	return tx.Model(&model.Quiz{}).
		Where("id = ?", quiz.ID).
		Select("title", "description", "is_published", "cover_image").
		Updates(map[string]interface{}{
			"title":        quiz.Title,
			"description":  quiz.Description,
			"is_published": quiz.IsPublished,
			"cover_image":  quiz.CoverImage,
		}).Error
}

// UpdateMeta updates the quiz's own fields only, leaving the question set
// untouched. Used for metadata-only edits such as a retitle or a publish
// toggle.
func (r *QuizRepository) UpdateMeta(quiz *model.Quiz) error {
	return updateQuizColumns(r.DB, quiz)
}

// UpdateReplacingQuestions updates the quiz's own fields and swaps the whole
// question set in a single transaction, so no concurrent read ever observes
// the quiz with its questions half-deleted. Callers pass freshly built
// questions without ids; the old rows are deleted before the new ones are
// created.
func (r *QuizRepository) UpdateReplacingQuestions(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := updateQuizColumns(tx, quiz); err != nil {
			return err
		}

		var questionIDs []string
		if err := tx.Model(&model.Question{}).
			Where("quiz_id = ?", quiz.ID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuizRepository) UpdateCoverImage(id, coverImage string) error {
	return r.DB.Model(&model.Quiz{}).Where("id = ?", id).Update("cover_image", coverImage).Error
}

// Delete removes the quiz and everything under it: options, questions and
// attempts. The cascade is a hard requirement, orphaned attempts must not
// survive their quiz.
func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.Question{}).
			Where("quiz_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Attempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

type QuizListRow struct {
	model.Quiz
	QuestionCount int `json:"questionCount"`
	AttemptCount  int `json:"attemptCount"`
}

// ListByUser returns the caller's quizzes newest first, with question and
// attempt counts for the admin overview.
func (r *QuizRepository) ListByUser(userID uint) ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.Table("quizzes q").
		Select("q.*, " +
			"(SELECT COUNT(*) FROM questions qu WHERE qu.quiz_id = q.id AND qu.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM attempts a WHERE a.quiz_id = q.id AND a.deleted_at IS NULL) as attempt_count").
		Where("q.created_by_id = ? AND q.deleted_at IS NULL", userID).
		Order("q.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// ListPublished returns publicly listable quizzes.
func (r *QuizRepository) ListPublished() ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.Table("quizzes q").
		Select("q.*, " +
			"(SELECT COUNT(*) FROM questions qu WHERE qu.quiz_id = q.id AND qu.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM attempts a WHERE a.quiz_id = q.id AND a.deleted_at IS NULL) as attempt_count").
		Where("q.is_published = ? AND q.deleted_at IS NULL", true).
		Order("q.created_at desc").
		Scan(&rows).Error
	return rows, err
}
