package dto

import "time"

// GenerateTestRequest configures a random test. Omitted fields fall back to
// 10 questions of any type.
type GenerateTestRequest struct {
	QuestionCount *int     `json:"questionCount"`
	Types         []string `json:"types"`
	Tags          []uint   `json:"tags"`
	Difficulty    string   `json:"difficulty"`
}

// TestQuestionDTO is a question as shipped to the test-taker: no answer.
type TestQuestionDTO struct {
	ID         uint     `json:"id"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Options    []string `json:"options"`
	Tags       []uint   `json:"tags"`
	Difficulty string   `json:"difficulty"`
}

type TestInfoDTO struct {
	QuestionCount int       `json:"questionCount"`
	Types         []string  `json:"types"`
	Tags          []uint    `json:"tags,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

type GenerateTestResponse struct {
	Questions []TestQuestionDTO `json:"questions"`
	TestInfo  TestInfoDTO       `json:"testInfo"`
}

// SubmittedQuestionDTO is the client's echo of a generated question.
type SubmittedQuestionDTO struct {
	ID      uint     `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// SubmitTestRequest carries answers aligned by position with Questions.
type SubmitTestRequest struct {
	UserID    string                 `json:"userId"`
	Questions []SubmittedQuestionDTO `json:"questions"`
	Answers   []string               `json:"answers"`
	TimeSpent *int                   `json:"timeSpent"`
	Tags      []string               `json:"tags"`
	TestType  string                 `json:"testType"`
}

type TestResultDTO struct {
	Score            int `json:"score"`
	CorrectAnswers   int `json:"correctAnswers"`
	TotalQuestions   int `json:"totalQuestions"`
	Accuracy         int `json:"accuracy"`
	TimeSpent        int `json:"timeSpent"`
	SkippedQuestions int `json:"skippedQuestions"`
}

type SubmitTestResponse struct {
	History HistoryResponse `json:"history"`
	Result  TestResultDTO   `json:"result"`
}
