package model

// QuestionType is a closed set. There is deliberately no extension point:
// the scorer switches over these three values and anything else is rejected
// at validation time.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "MCQ"
	QuestionTrueFalse QuestionType = "TRUE_FALSE"
	QuestionText      QuestionType = "TEXT"
)

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	CoverImage  string `gorm:"size:255" json:"coverImage,omitempty"`
	// CreatedByID is immutable after creation; updates never touch it.
	CreatedByID uint       `gorm:"index;not null" json:"createdById"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	UUIDBase
	QuizID string       `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Text   string       `gorm:"type:text;not null" json:"text"`
	Type   QuestionType `gorm:"size:20;not null" json:"type"`
	Order  int          `gorm:"column:display_order;default:0" json:"order"`
	// CorrectAnswer is set for TEXT questions only. Nil means the question is
	// recorded but ungradable; it still counts toward total points.
	CorrectAnswer *string  `gorm:"type:text" json:"correctAnswer,omitempty"`
	Options       []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}
