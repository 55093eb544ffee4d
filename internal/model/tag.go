package model

import "time"

const (
	DefaultTagColor   = "#4361ee"
	MaxTagNameLength  = 32
	MaxTagDescLength  = 128
	MaxTagColorLength = 16
)

// Tag names are unique. The unique index is the real guarantee; service-level
// existence checks only produce a friendlier message.
type Tag struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `json:"name" gorm:"size:32;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"size:128"`
	Color       string    `json:"color" gorm:"size:16"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}
