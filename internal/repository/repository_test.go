package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/qbank/internal/model"
	"github.com/lshigami/qbank/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestion(title, qType string, tags ...uint) *model.Question {
	q := &model.Question{
		Type:       qType,
		Title:      title,
		Options:    []string{},
		Answer:     "a",
		Difficulty: model.DifficultyMedium,
		IsActive:   true,
	}
	if qType == model.QuestionTypeChoice {
		q.Options = []string{"a", "b", "c", "d"}
	}
	q.SetTagIDs(tags)
	return q
}

func TestQuestionPoolFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(testdb.New(t))

	require.NoError(t, repo.Create(ctx, newQuestion("c1", model.QuestionTypeChoice, 1, 2)))
	require.NoError(t, repo.Create(ctx, newQuestion("c2", model.QuestionTypeChoice, 2)))
	require.NoError(t, repo.Create(ctx, newQuestion("f1", model.QuestionTypeFill, 1)))
	inactive := newQuestion("f2", model.QuestionTypeFill, 1)
	require.NoError(t, repo.Create(ctx, inactive))
	affected, err := repo.Deactivate(ctx, inactive.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	n, err := repo.CountPool(ctx, QuestionFilter{TagIDs: []uint{1}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// any of the listed tags matches
	n, err = repo.CountPool(ctx, QuestionFilter{Types: []string{model.QuestionTypeChoice}, TagIDs: []uint{1, 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	sample, err := repo.SamplePool(ctx, QuestionFilter{TagIDs: []uint{1}}, 5)
	require.NoError(t, err)
	require.Len(t, sample, 2)
	for _, q := range sample {
		assert.True(t, q.IsActive)
		assert.Contains(t, q.TagIDs(), uint(1))
	}

	all, err := repo.FindByIDs(ctx, []uint{inactive.ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestQuestionUpdateReplacesTags(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(testdb.New(t))

	q := newQuestion("before", model.QuestionTypeFill, 1, 2, 3)
	require.NoError(t, repo.Create(ctx, q))

	update := newQuestion("after", model.QuestionTypeFill, 3, 1)
	update.ID = q.ID
	require.NoError(t, repo.Update(ctx, update))

	got, err := repo.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, []uint{3, 1}, got.TagIDs())
}

func TestHistoryCreateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(testdb.New(t))

	h := &model.History{
		UserID:         model.AnonymousUserID,
		Date:           time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Score:          50,
		TotalQuestions: 2,
		CorrectAnswers: 1,
		Tags:           []string{},
		TestType:       model.TestTypeRandom,
		Details: []model.HistoryDetail{
			{Position: 0, QuestionID: 7, CorrectAnswer: "a", QuestionType: model.QuestionTypeFill, QuestionTitle: "q7", Options: []string{}},
			{Position: 1, QuestionID: 8, CorrectAnswer: "b", QuestionType: model.QuestionTypeFill, QuestionTitle: "q8", Options: []string{}},
		},
	}
	require.NoError(t, repo.Create(ctx, h))

	got, err := repo.FindByIDWithDetails(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, got.Details, 2)
	assert.Equal(t, uint(7), got.Details[0].QuestionID)

	since, err := repo.FindByUserSince(ctx, model.AnonymousUserID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, since, 1)

	affected, err := repo.Delete(ctx, h.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = repo.FindByIDWithDetails(ctx, h.ID)
	assert.Error(t, err)
}

func TestQuestionReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(testdb.New(t))

	require.NoError(t, repo.Create(ctx, newQuestion("a", model.QuestionTypeFill)))
	require.NoError(t, repo.Create(ctx, newQuestion("b", model.QuestionTypeFill)))

	replacement := []model.Question{*newQuestion("c", model.QuestionTypeChoice, 5)}
	deactivated, err := repo.ReplaceAll(ctx, replacement)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deactivated)
	assert.NotZero(t, replacement[0].ID)

	active, err := repo.FindAll(ctx, QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "c", active[0].Title)
	assert.Equal(t, []uint{5}, active[0].TagIDs())
}
