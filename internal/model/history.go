package model

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

const (
	AnonymousUserID = "anonymous"

	TestTypeRandom = "random"
	TestTypeCustom = "custom"
)

// History is one scored test attempt. It is immutable after creation apart
// from deletion, and carries its own snapshot of every scored question.
type History struct {
	ID             uint                        `gorm:"primarykey" json:"id"`
	UserID         string                      `json:"user_id" gorm:"size:64;not null;index:idx_histories_user_date,priority:1"`
	Date           time.Time                   `json:"date" gorm:"not null;index:idx_histories_user_date,priority:2;index"`
	Score          int                         `json:"score" gorm:"not null;index"`
	TotalQuestions int                         `json:"total_questions" gorm:"not null"`
	CorrectAnswers int                         `json:"correct_answers" gorm:"not null"`
	TimeSpent      int                         `json:"time_spent" gorm:"not null"` // seconds
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	TestType       string                      `json:"test_type" gorm:"size:16;not null"`
	Details        []HistoryDetail             `json:"details,omitempty" gorm:"foreignKey:HistoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (h *History) Accuracy() int {
	if h.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(h.CorrectAnswers) / float64(h.TotalQuestions) * 100))
}

type HistoryDetail struct {
	ID            uint                        `gorm:"primarykey" json:"id"`
	HistoryID     uint                        `json:"history_id" gorm:"not null;index"`
	Position      int                         `json:"position" gorm:"not null"`
	QuestionID    uint                        `json:"question_id" gorm:"not null"`
	UserAnswer    string                      `json:"user_answer" gorm:"type:text;not null"`
	CorrectAnswer string                      `json:"correct_answer" gorm:"type:text;not null"`
	IsCorrect     bool                        `json:"is_correct" gorm:"not null"`
	QuestionType  string                      `json:"question_type" gorm:"size:16;not null"`
	QuestionTitle string                      `json:"question_title" gorm:"type:text;not null"`
	Options       datatypes.JSONSlice[string] `json:"options"`
}
