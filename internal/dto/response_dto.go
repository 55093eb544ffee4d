package dto

import "time"

// Envelope wraps every response body.
type Envelope struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// TagRef is a resolved tag reference on a question. Missing is set when the
// tag was deleted; Name then falls back to the raw id.
type TagRef struct {
	ID      uint   `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty"`
	Missing bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

type QuestionResponse struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Options    []string  `json:"options"`
	Answer     string    `json:"answer"`
	Tags       []TagRef  `json:"tags"`
	Difficulty string    `json:"difficulty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type QuestionListResponse struct {
	Questions  []QuestionResponse `json:"questions"`
	Pagination Pagination         `json:"pagination"`
}

type ImportQuestionsResponse struct {
	Imported  int                `json:"imported"`
	Questions []QuestionResponse `json:"questions"`
}

type ExportQuestionDTO struct {
	ID         uint     `json:"id" yaml:"id"`
	Type       string   `json:"type" yaml:"type"`
	Title      string   `json:"title" yaml:"title"`
	Options    []string `json:"options" yaml:"options,omitempty"`
	Answer     string   `json:"answer" yaml:"answer"`
	Tags       []TagRef `json:"tags" yaml:"tags,omitempty"`
	Difficulty string   `json:"difficulty" yaml:"difficulty"`
}

type ExportQuestionsResponse struct {
	Questions  []ExportQuestionDTO `json:"questions" yaml:"questions"`
	ExportTime time.Time           `json:"exportTime" yaml:"exportTime"`
	Total      int                 `json:"total" yaml:"total"`
}

type TagCountDTO struct {
	TagID uint   `json:"tagId" yaml:"tagId"`
	Name  string `json:"name" yaml:"name"`
	Count int64  `json:"count" yaml:"count"`
}

type QuestionStatsResponse struct {
	Total       int64         `json:"total" yaml:"total"`
	ChoiceCount int64         `json:"choiceCount" yaml:"choiceCount"`
	FillCount   int64         `json:"fillCount" yaml:"fillCount"`
	EasyCount   int64         `json:"easyCount" yaml:"easyCount"`
	MediumCount int64         `json:"mediumCount" yaml:"mediumCount"`
	HardCount   int64         `json:"hardCount" yaml:"hardCount"`
	TagStats    []TagCountDTO `json:"tagStats" yaml:"tagStats"`
}

type TagResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HealthResponse is written bare, outside the Envelope, so probes can read
// the database status at the top level.
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}
