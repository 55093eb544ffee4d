package dto

import "time"

type HistoryDetailDTO struct {
	QuestionID    uint     `json:"questionId"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	QuestionType  string   `json:"questionType"`
	QuestionTitle string   `json:"questionTitle"`
	Options       []string `json:"options"`
}

type HistoryResponse struct {
	ID             uint               `json:"id"`
	UserID         string             `json:"userId"`
	Date           time.Time          `json:"date"`
	Score          int                `json:"score"`
	TotalQuestions int                `json:"totalQuestions"`
	CorrectAnswers int                `json:"correctAnswers"`
	Accuracy       int                `json:"accuracy"`
	TimeSpent      int                `json:"timeSpent"`
	Details        []HistoryDetailDTO `json:"details,omitempty"`
	Tags           []string           `json:"tags"`
	TestType       string             `json:"testType"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type HistoryListResponse struct {
	Histories  []HistoryResponse `json:"histories"`
	Pagination Pagination        `json:"pagination"`
}

// ScoreStats summarizes a user's attempts within a lookback window.
// WorstScore is 100 when there are no attempts; it is a "no data" sentinel,
// not an observed score.
type ScoreStats struct {
	TotalTests     int `json:"totalTests"`
	AverageScore   int `json:"averageScore"`
	BestScore      int `json:"bestScore"`
	WorstScore     int `json:"worstScore"`
	TotalQuestions int `json:"totalQuestions"`
	TotalCorrect   int `json:"totalCorrect"`
	AverageTime    int `json:"averageTime"`
}

type ChartPoint struct {
	Date         string `json:"date"` // YYYY-MM-DD, UTC
	AverageScore int    `json:"averageScore"`
	TestCount    int    `json:"testCount"`
	Accuracy     int    `json:"accuracy"`
}

type ScoreStatsResponse struct {
	Stats     ScoreStats   `json:"stats"`
	ChartData []ChartPoint `json:"chartData"`
}
