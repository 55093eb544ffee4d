package dto

// QuestionRequest is used for creating and updating questions, and for each
// record of a bulk import.
type QuestionRequest struct {
	Type       string   `json:"type" yaml:"type" binding:"required,oneof=choice fill"`
	Title      string   `json:"title" yaml:"title" binding:"required"`
	Options    []string `json:"options" yaml:"options"`
	Answer     string   `json:"answer" yaml:"answer" binding:"required"`
	Tags       []uint   `json:"tags" yaml:"tags" binding:"max=10"`
	Difficulty string   `json:"difficulty" yaml:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// ImportQuestionsRequest mirrors the bulk import file format.
type ImportQuestionsRequest struct {
	Questions []QuestionRequest `json:"questions" yaml:"questions" binding:"required"`
}

type QuestionListQuery struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	Type       string `form:"type" binding:"omitempty,oneof=choice fill"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Tags       string `form:"tags"` // comma-separated tag ids
	Search     string `form:"search"`
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

type QuestionExportQuery struct {
	Type       string `form:"type" binding:"omitempty,oneof=choice fill"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Tags       string `form:"tags"`
	Format     string `form:"format" binding:"omitempty,oneof=json yaml"`
}

type TagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"max=128"`
	Color       string `json:"color" binding:"max=16"`
}

type HistoryListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	UserID    string `form:"userId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

type ScoreStatsQuery struct {
	UserID string `form:"userId"`
	Days   int    `form:"days" binding:"omitempty,min=1,max=3650"`
}

// CreateHistoryRequest records an already-scored attempt.
type CreateHistoryRequest struct {
	UserID         string                 `json:"userId"`
	Score          *int                   `json:"score" binding:"required,min=0,max=100"`
	TotalQuestions *int                   `json:"totalQuestions" binding:"required,min=1"`
	CorrectAnswers *int                   `json:"correctAnswers" binding:"required,min=0"`
	TimeSpent      *int                   `json:"timeSpent" binding:"required,min=0"`
	Details        []HistoryDetailRequest `json:"details" binding:"required,min=1,dive"`
	Tags           []string               `json:"tags"`
	TestType       string                 `json:"testType" binding:"omitempty,oneof=random custom"`
}

type HistoryDetailRequest struct {
	QuestionID    uint     `json:"questionId" binding:"required"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	IsCorrect     bool     `json:"isCorrect"`
	QuestionType  string   `json:"questionType" binding:"required,oneof=choice fill"`
	QuestionTitle string   `json:"questionTitle" binding:"required"`
	Options       []string `json:"options"`
}
