package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
	"github.com/lshigami/qbank/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTestQuestionCount = 10
	MinTestQuestionCount     = 1
	MaxTestQuestionCount     = 50
)

// TestService generates random tests and scores submitted ones.
type TestService interface {
	GenerateTest(ctx context.Context, req dto.GenerateTestRequest) (*dto.GenerateTestResponse, error)
	SubmitTest(ctx context.Context, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error)
}

type testService struct {
	questionRepo repository.QuestionRepository
	historyRepo  repository.HistoryRepository
	now          func() time.Time
}

func NewTestService(questionRepo repository.QuestionRepository, historyRepo repository.HistoryRepository) TestService {
	return &testService{
		questionRepo: questionRepo,
		historyRepo:  historyRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

type testConfig struct {
	count      int
	types      []string
	tags       []uint
	difficulty string
}

func normalizeTestConfig(req dto.GenerateTestRequest) (testConfig, error) {
	cfg := testConfig{count: DefaultTestQuestionCount}
	if req.QuestionCount != nil {
		cfg.count = *req.QuestionCount
	}
	if cfg.count < MinTestQuestionCount || cfg.count > MaxTestQuestionCount {
		return cfg, apperror.Validation("questionCount must be between %d and %d", MinTestQuestionCount, MaxTestQuestionCount)
	}

	seen := map[string]bool{}
	for _, t := range req.Types {
		t = strings.TrimSpace(t)
		if t != model.QuestionTypeChoice && t != model.QuestionTypeFill {
			return cfg, apperror.Validation("unknown question type %q", t)
		}
		if !seen[t] {
			seen[t] = true
			cfg.types = append(cfg.types, t)
		}
	}
	if len(cfg.types) == 0 {
		cfg.types = []string{model.QuestionTypeChoice, model.QuestionTypeFill}
	}

	switch d := strings.TrimSpace(req.Difficulty); d {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		cfg.difficulty = d
	default:
		return cfg, apperror.Validation("difficulty must be one of easy, medium, hard")
	}

	cfg.tags = dedupeIDs(req.Tags)
	return cfg, nil
}

// GenerateTest draws exactly the requested number of distinct active
// questions from the matching pool. It never returns a partial test and
// writes nothing.
func (s *testService) GenerateTest(ctx context.Context, req dto.GenerateTestRequest) (*dto.GenerateTestResponse, error) {
	cfg, err := normalizeTestConfig(req)
	if err != nil {
		return nil, err
	}
	filter := repository.QuestionFilter{Types: cfg.types, TagIDs: cfg.tags, Difficulty: cfg.difficulty}

	available, err := s.questionRepo.CountPool(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting question pool: %w", err)
	}
	if available < int64(cfg.count) {
		log.Info().Int("requested", cfg.count).Int64("available", available).Msg("GenerateTest: pool too small")
		return nil, apperror.InsufficientPool(cfg.count, available)
	}

	questions, err := s.questionRepo.SamplePool(ctx, filter, cfg.count)
	if err != nil {
		return nil, fmt.Errorf("error sampling questions: %w", err)
	}
	if len(questions) < cfg.count {
		// The pool shrank between the count and the sample.
		return nil, apperror.InsufficientPool(cfg.count, int64(len(questions)))
	}

	items := make([]dto.TestQuestionDTO, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		items = append(items, dto.TestQuestionDTO{
			ID:         q.ID,
			Type:       q.Type,
			Title:      q.Title,
			Options:    append([]string{}, q.Options...),
			Tags:       q.TagIDs(),
			Difficulty: q.Difficulty,
		})
	}

	return &dto.GenerateTestResponse{
		Questions: items,
		TestInfo: dto.TestInfoDTO{
			QuestionCount: len(items),
			Types:         cfg.types,
			Tags:          cfg.tags,
			Difficulty:    cfg.difficulty,
			GeneratedAt:   s.now(),
		},
	}, nil
}

// scoredAttempt is the outcome of comparing answers with stored questions.
type scoredAttempt struct {
	details []model.HistoryDetail
	correct int
	skipped int
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func answersMatch(given, expected string) bool {
	return normalizeAnswer(given) == normalizeAnswer(expected)
}

// percentage returns round(part/total*100), or 0 when total is 0.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// scoreAnswers compares each answer with the authoritative question. A
// position whose id no longer resolves is skipped: it gets no detail entry
// and no credit, but the caller still counts it in the total.
func scoreAnswers(submitted []dto.SubmittedQuestionDTO, answers []string, stored map[uint]model.Question) scoredAttempt {
	var out scoredAttempt
	for i, sq := range submitted {
		question, ok := stored[sq.ID]
		if !ok {
			out.skipped++
			continue
		}
		correct := answersMatch(answers[i], question.Answer)
		if correct {
			out.correct++
		}
		out.details = append(out.details, model.HistoryDetail{
			Position:      i,
			QuestionID:    question.ID,
			UserAnswer:    answers[i],
			CorrectAnswer: question.Answer,
			IsCorrect:     correct,
			QuestionType:  question.Type,
			QuestionTitle: question.Title,
			Options:       append([]string{}, question.Options...),
		})
	}
	return out
}

// SubmitTest scores a submission against the stored answers and persists
// exactly one History record for it.
func (s *testService) SubmitTest(ctx context.Context, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error) {
	if req.Questions == nil || req.Answers == nil || req.TimeSpent == nil {
		return nil, apperror.Validation("missing required submission data: questions, answers and timeSpent are required")
	}
	if len(req.Questions) == 0 {
		return nil, apperror.Validation("a submission must contain at least one question")
	}
	if len(req.Questions) != len(req.Answers) {
		return nil, apperror.Validation("answer count %d does not match question count %d", len(req.Answers), len(req.Questions))
	}
	if *req.TimeSpent < 0 {
		return nil, apperror.Validation("timeSpent must not be negative")
	}
	testType, err := normalizeTestType(req.TestType)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(req.Questions))
	for _, q := range req.Questions {
		ids = append(ids, q.ID)
	}
	stored, err := s.questionRepo.FindByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("error loading questions for scoring: %w", err)
	}
	byID := make(map[uint]model.Question, len(stored))
	for _, q := range stored {
		byID[q.ID] = q
	}

	outcome := scoreAnswers(req.Questions, req.Answers, byID)
	total := len(req.Questions)
	score := percentage(outcome.correct, total)
	if outcome.skipped > 0 {
		log.Warn().Int("skipped", outcome.skipped).Int("total", total).Msg("SubmitTest: some question ids no longer resolve and were not scored")
	}

	history := model.History{
		UserID:         normalizeUserID(req.UserID),
		Date:           s.now(),
		Score:          score,
		TotalQuestions: total,
		CorrectAnswers: outcome.correct,
		TimeSpent:      *req.TimeSpent,
		Tags:           nonNilStrings(req.Tags),
		TestType:       testType,
		Details:        outcome.details,
	}
	if err := s.historyRepo.Create(ctx, &history); err != nil {
		log.Error().Err(err).Msg("SubmitTest: failed to persist history")
		return nil, fmt.Errorf("error saving test result: %w", err)
	}
	log.Info().Uint("historyID", history.ID).Int("score", score).Int("correct", outcome.correct).Int("total", total).Msg("Test submitted")

	recorded, err := toHistoryResponse(&history)
	if err != nil {
		return nil, err
	}
	return &dto.SubmitTestResponse{
		History: *recorded,
		Result: dto.TestResultDTO{
			Score:            score,
			CorrectAnswers:   outcome.correct,
			TotalQuestions:   total,
			Accuracy:         percentage(outcome.correct, total),
			TimeSpent:        *req.TimeSpent,
			SkippedQuestions: outcome.skipped,
		},
	}, nil
}

func normalizeTestType(raw string) (string, error) {
	switch t := strings.TrimSpace(raw); t {
	case "":
		return model.TestTypeRandom, nil
	case model.TestTypeRandom, model.TestTypeCustom:
		return t, nil
	default:
		return "", apperror.Validation("testType must be %q or %q", model.TestTypeRandom, model.TestTypeCustom)
	}
}

func normalizeUserID(raw string) string {
	if id := strings.TrimSpace(raw); id != "" {
		return id
	}
	return model.AnonymousUserID
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
