package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuestionTypeChoice = "choice"
	QuestionTypeFill   = "fill"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	ChoiceOptionCount = 4
	MaxQuestionTags   = 10
)

// Question is soft-deleted through IsActive; rows are never removed.
type Question struct {
	ID         uint                        `gorm:"primarykey" json:"id"`
	Type       string                      `json:"type" gorm:"size:16;not null;index"` // "choice", "fill"
	Title      string                      `json:"title" gorm:"type:text;not null"`
	Options    datatypes.JSONSlice[string] `json:"options"`
	Answer     string                      `json:"answer" gorm:"type:text;not null"`
	Difficulty string                      `json:"difficulty" gorm:"size:16;not null;index"`
	IsActive   bool                        `json:"is_active" gorm:"not null;default:true;index"`
	Tags       []QuestionTag               `json:"tags,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time                   `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// TagIDs returns the referenced tag ids in their stored order.
func (q *Question) TagIDs() []uint {
	ids := make([]uint, 0, len(q.Tags))
	for _, t := range q.Tags {
		ids = append(ids, t.TagID)
	}
	return ids
}

func (q *Question) SetTagIDs(ids []uint) {
	q.Tags = make([]QuestionTag, 0, len(ids))
	for i, id := range ids {
		q.Tags = append(q.Tags, QuestionTag{QuestionID: q.ID, TagID: id, Position: i})
	}
}

// QuestionTag links a question to a tag id. There is deliberately no foreign
// key to tags: deleting a tag leaves the reference dangling.
type QuestionTag struct {
	QuestionID uint `json:"question_id" gorm:"primaryKey;autoIncrement:false"`
	TagID      uint `json:"tag_id" gorm:"primaryKey;autoIncrement:false;index"`
	Position   int  `json:"position" gorm:"not null;default:0"`
}
