package model

import (
	"encoding/json"
	"fmt"
)

// Attempt is one graded public submission. It stores the raw answer map and
// the summary score only; the per-question breakdown is recomputed from the
// quiz's current questions on every read, never persisted. Attempts are
// immutable once created and disappear only when their quiz is deleted.
// swagger:model Attempt
type Attempt struct {
	UUIDBase
	QuizID          string          `gorm:"index;type:varchar(36);not null" json:"quizId"`
	ParticipantName string          `gorm:"size:100;not null" json:"participantName"`
	Answers         json.RawMessage `gorm:"type:json" json:"answers"`
	Score           int             `gorm:"default:0" json:"score"`
	TotalPoints     int             `gorm:"default:0" json:"totalPoints"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// AnswerMap decodes the stored raw submission. A nil or empty column decodes
// to an empty map, which the scorer treats as an entirely unanswered attempt.
// The column is written once by the submit path; a decode failure means the
// stored row is corrupt and must surface rather than grade as unanswered.
func (a *Attempt) AnswerMap() (map[string]string, error) {
	answers := make(map[string]string)
	if len(a.Answers) > 0 {
		if err := json.Unmarshal(a.Answers, &answers); err != nil {
			return nil, fmt.Errorf("attempt %s: decode stored answers: %w", a.ID, err)
		}
	}
	return answers, nil
}
