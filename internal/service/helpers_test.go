package service

import (
	"context"
	"testing"

	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/repository"
	"github.com/lshigami/qbank/internal/testdb"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	questions QuestionService
	tags      TagService
	tests     TestService
	history   HistoryService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	db := testdb.New(t)

	questionRepo := repository.NewQuestionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	return testServices{
		questions: NewQuestionService(questionRepo, tagRepo),
		tags:      NewTagService(tagRepo),
		tests:     NewTestService(questionRepo, historyRepo),
		history:   NewHistoryService(historyRepo, 30),
	}
}

func intPtr(v int) *int { return &v }

func choiceQuestion(title, answer string, tags ...uint) dto.QuestionRequest {
	return dto.QuestionRequest{
		Type:       "choice",
		Title:      title,
		Options:    []string{"1", "2", "3", "4"},
		Answer:     answer,
		Tags:       tags,
		Difficulty: "easy",
	}
}

func fillQuestion(title, answer string, tags ...uint) dto.QuestionRequest {
	return dto.QuestionRequest{Type: "fill", Title: title, Answer: answer, Tags: tags, Difficulty: "hard"}
}

func mustCreateQuestion(t *testing.T, svc QuestionService, req dto.QuestionRequest) *dto.QuestionResponse {
	t.Helper()
	q, err := svc.CreateQuestion(context.Background(), req)
	require.NoError(t, err)
	return q
}

func mustCreateTag(t *testing.T, svc TagService, name string) *dto.TagResponse {
	t.Helper()
	tag, err := svc.CreateTag(context.Background(), dto.TagRequest{Name: name})
	require.NoError(t, err)
	return tag
}
