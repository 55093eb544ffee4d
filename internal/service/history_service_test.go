package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history(date string, score, total, correct, timeSpent int) model.History {
	d, _ := time.Parse(time.RFC3339, date)
	return model.History{Date: d, Score: score, TotalQuestions: total, CorrectAnswers: correct, TimeSpent: timeSpent}
}

func TestAggregateStatsEmpty(t *testing.T) {
	stats, chart := aggregateStats(nil)

	assert.Equal(t, dto.ScoreStats{WorstScore: 100}, stats)
	assert.NotNil(t, chart)
	assert.Empty(t, chart)
}

func TestAggregateStatsGroupsByUTCDate(t *testing.T) {
	histories := []model.History{
		history("2024-03-01T09:00:00Z", 80, 10, 8, 100),
		history("2024-03-01T23:30:00Z", 61, 10, 6, 50),
		history("2024-03-02T00:10:00+02:00", 90, 10, 9, 70), // 2024-03-01 22:10 UTC
		history("2024-03-03T12:00:00Z", 40, 5, 2, 30),
	}

	stats, chart := aggregateStats(histories)

	assert.Equal(t, 4, stats.TotalTests)
	assert.Equal(t, 68, stats.AverageScore) // 271/4 = 67.75
	assert.Equal(t, 90, stats.BestScore)
	assert.Equal(t, 40, stats.WorstScore)
	assert.Equal(t, 35, stats.TotalQuestions)
	assert.Equal(t, 25, stats.TotalCorrect)
	assert.Equal(t, 63, stats.AverageTime) // 250/4 = 62.5

	require.Len(t, chart, 2)
	assert.Equal(t, dto.ChartPoint{Date: "2024-03-01", AverageScore: 77, TestCount: 3, Accuracy: 77}, chart[0])
	assert.Equal(t, dto.ChartPoint{Date: "2024-03-03", AverageScore: 40, TestCount: 1, Accuracy: 40}, chart[1])
}

func TestGetScoreStatsUsesWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	svc := s.history.(*historyService)

	record := func(at time.Time, score int) {
		svc.now = func() time.Time { return at }
		_, err := s.history.CreateHistory(ctx, dto.CreateHistoryRequest{
			Score:          intPtr(score),
			TotalQuestions: intPtr(4),
			CorrectAnswers: intPtr(score / 25),
			TimeSpent:      intPtr(10),
			Details: []dto.HistoryDetailRequest{
				{QuestionID: 1, CorrectAnswer: "a", QuestionType: "fill", QuestionTitle: "t"},
			},
		})
		require.NoError(t, err)
	}

	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	record(now.AddDate(0, 0, -40), 0)
	record(now.AddDate(0, 0, -5), 50)
	record(now.AddDate(0, 0, -1), 100)
	svc.now = func() time.Time { return now }

	resp, err := s.history.GetScoreStats(ctx, dto.ScoreStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stats.TotalTests)
	assert.Equal(t, 75, resp.Stats.AverageScore)
	require.Len(t, resp.ChartData, 2)
	assert.Equal(t, "2024-06-25", resp.ChartData[0].Date)

	all, err := s.history.GetScoreStats(ctx, dto.ScoreStatsQuery{Days: 60})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Stats.TotalTests)
	assert.Equal(t, 0, all.Stats.WorstScore)

	other, err := s.history.GetScoreStats(ctx, dto.ScoreStatsQuery{UserID: "someone-else"})
	require.NoError(t, err)
	assert.Zero(t, other.Stats.TotalTests)
	assert.Equal(t, 100, other.Stats.WorstScore)
}

func TestCreateHistoryValidation(t *testing.T) {
	s := newTestServices(t)
	detail := []dto.HistoryDetailRequest{{QuestionID: 1, CorrectAnswer: "a", QuestionType: "fill", QuestionTitle: "t"}}

	tests := []struct {
		name string
		req  dto.CreateHistoryRequest
	}{
		{"missing score", dto.CreateHistoryRequest{TotalQuestions: intPtr(1), CorrectAnswers: intPtr(0), TimeSpent: intPtr(1), Details: detail}},
		{"no details", dto.CreateHistoryRequest{Score: intPtr(0), TotalQuestions: intPtr(1), CorrectAnswers: intPtr(0), TimeSpent: intPtr(1)}},
		{"correct above total", dto.CreateHistoryRequest{Score: intPtr(100), TotalQuestions: intPtr(1), CorrectAnswers: intPtr(2), TimeSpent: intPtr(1), Details: detail}},
		{"score above 100", dto.CreateHistoryRequest{Score: intPtr(101), TotalQuestions: intPtr(1), CorrectAnswers: intPtr(1), TimeSpent: intPtr(1), Details: detail}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.history.CreateHistory(context.Background(), tt.req)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation), "got %v", err)
		})
	}
}

func TestListAndDeleteHistories(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	q := mustCreateQuestion(t, s.questions, fillQuestion("x", "y"))

	var ids []uint
	for _, answer := range []string{"y", "n", "y"} {
		resp, err := s.tests.SubmitTest(ctx, dto.SubmitTestRequest{
			Questions: []dto.SubmittedQuestionDTO{{ID: q.ID}},
			Answers:   []string{answer},
			TimeSpent: intPtr(1),
		})
		require.NoError(t, err)
		ids = append(ids, resp.History.ID)
	}

	list, err := s.history.ListHistories(ctx, dto.HistoryListQuery{SortBy: "score", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, list.Histories, 3)
	assert.Equal(t, 0, list.Histories[0].Score)

	_, err = s.history.ListHistories(ctx, dto.HistoryListQuery{StartDate: "yesterday"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	require.NoError(t, s.history.DeleteHistory(ctx, ids[0]))
	_, err = s.history.GetHistory(ctx, ids[0])
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.True(t, apperror.IsKind(s.history.DeleteHistory(ctx, ids[0]), apperror.KindNotFound))
}

func TestParseDate(t *testing.T) {
	start, err := parseDate("2024-05-01", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), start)

	end, err := parseDate("2024-05-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 999999999, time.UTC), end)

	ts, err := parseDate("2024-05-01T10:00:00+02:00", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), ts)
}

func TestCreateHistoryMapsDetails(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	created, err := s.history.CreateHistory(ctx, dto.CreateHistoryRequest{
		UserID:         "u1",
		Score:          intPtr(50),
		TotalQuestions: intPtr(2),
		CorrectAnswers: intPtr(1),
		TimeSpent:      intPtr(40),
		TestType:       "custom",
		Details: []dto.HistoryDetailRequest{
			{QuestionID: 3, UserAnswer: "b", CorrectAnswer: "a", QuestionType: "choice", QuestionTitle: "first", Options: []string{"a", "b", "c", "d"}},
			{QuestionID: 4, UserAnswer: "x", CorrectAnswer: "x", IsCorrect: true, QuestionType: "fill", QuestionTitle: "second"},
		},
	})
	require.NoError(t, err)

	got, err := s.history.GetHistory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, model.TestTypeCustom, got.TestType)
	assert.Equal(t, 50, got.Accuracy)
	require.Len(t, got.Details, 2)
	assert.Equal(t, dto.HistoryDetailDTO{
		QuestionID:    3,
		UserAnswer:    "b",
		CorrectAnswer: "a",
		QuestionType:  "choice",
		QuestionTitle: "first",
		Options:       []string{"a", "b", "c", "d"},
	}, got.Details[0])
	assert.True(t, got.Details[1].IsCorrect)
	assert.Equal(t, []string{}, got.Details[1].Options)
}
