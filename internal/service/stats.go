package service

import (
	"math"

	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
)

const noDataWorstScore = 100

// aggregateStats summarizes histories, which must be ordered by date
// ascending. Chart points follow the first occurrence of each UTC calendar
// date, so they come out ascending as well.
//
// With no histories, BestScore is 0 and WorstScore is 100. The pair is a
// "no data" sentinel, not a record of real attempts.
func aggregateStats(histories []model.History) (dto.ScoreStats, []dto.ChartPoint) {
	stats := dto.ScoreStats{WorstScore: noDataWorstScore}
	chart := []dto.ChartPoint{}
	if len(histories) == 0 {
		return stats, chart
	}

	type day struct {
		score, count, questions, correct int
	}
	var order []string
	days := map[string]*day{}

	totalScore, totalTime := 0, 0
	stats.BestScore = histories[0].Score
	stats.WorstScore = histories[0].Score
	for _, h := range histories {
		totalScore += h.Score
		totalTime += h.TimeSpent
		stats.TotalQuestions += h.TotalQuestions
		stats.TotalCorrect += h.CorrectAnswers
		stats.BestScore = max(stats.BestScore, h.Score)
		stats.WorstScore = min(stats.WorstScore, h.Score)

		key := h.Date.UTC().Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &day{}
			days[key] = d
			order = append(order, key)
		}
		d.score += h.Score
		d.count++
		d.questions += h.TotalQuestions
		d.correct += h.CorrectAnswers
	}

	stats.TotalTests = len(histories)
	stats.AverageScore = roundedMean(totalScore, len(histories))
	stats.AverageTime = roundedMean(totalTime, len(histories))

	for _, key := range order {
		d := days[key]
		chart = append(chart, dto.ChartPoint{
			Date:         key,
			AverageScore: roundedMean(d.score, d.count),
			TestCount:    d.count,
			Accuracy:     percentage(d.correct, d.questions),
		})
	}
	return stats, chart
}

// roundedMean is round(sum/n), or 0 for an empty set.
func roundedMean(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
