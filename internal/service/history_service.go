package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
	"github.com/lshigami/qbank/internal/repository"
	"github.com/rs/zerolog/log"
)

var historySortColumns = map[string]string{
	"date":           "date",
	"score":          "score",
	"timeSpent":      "time_spent",
	"totalQuestions": "total_questions",
	"correctAnswers": "correct_answers",
	"createdAt":      "created_at",
}

type HistoryService interface {
	ListHistories(ctx context.Context, query dto.HistoryListQuery) (*dto.HistoryListResponse, error)
	GetHistory(ctx context.Context, id uint) (*dto.HistoryResponse, error)
	CreateHistory(ctx context.Context, req dto.CreateHistoryRequest) (*dto.HistoryResponse, error)
	DeleteHistory(ctx context.Context, id uint) error
	GetScoreStats(ctx context.Context, query dto.ScoreStatsQuery) (*dto.ScoreStatsResponse, error)
}

type historyService struct {
	repo        repository.HistoryRepository
	defaultDays int
	now         func() time.Time
}

func NewHistoryService(repo repository.HistoryRepository, defaultDays int) HistoryService {
	if defaultDays <= 0 {
		defaultDays = 30
	}
	return &historyService{
		repo:        repo,
		defaultDays: defaultDays,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *historyService) ListHistories(ctx context.Context, query dto.HistoryListQuery) (*dto.HistoryListResponse, error) {
	filter := repository.HistoryFilter{UserID: normalizeUserID(query.UserID)}
	if query.StartDate != "" {
		from, err := parseDate(query.StartDate, false)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if query.EndDate != "" {
		to, err := parseDate(query.EndDate, true)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}
	page, limit, window := pageOf(query.Page, query.Limit)
	sort := sortOf(query.SortBy, query.SortOrder, historySortColumns, "date")

	histories, total, err := s.repo.List(ctx, filter, sort, window)
	if err != nil {
		log.Error().Err(err).Msg("ListHistories: repository error")
		return nil, fmt.Errorf("error listing histories: %w", err)
	}
	items := make([]dto.HistoryResponse, 0, len(histories))
	for i := range histories {
		item, err := toHistoryResponse(&histories[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return &dto.HistoryListResponse{Histories: items, Pagination: dto.NewPagination(page, limit, total)}, nil
}

func (s *historyService) GetHistory(ctx context.Context, id uint) (*dto.HistoryResponse, error) {
	history, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("history record %d not found", id)
		}
		return nil, fmt.Errorf("error fetching history %d: %w", id, err)
	}
	return toHistoryResponse(history)
}

// CreateHistory stores an attempt that was scored elsewhere.
func (s *historyService) CreateHistory(ctx context.Context, req dto.CreateHistoryRequest) (*dto.HistoryResponse, error) {
	if req.Score == nil || req.TotalQuestions == nil || req.CorrectAnswers == nil || req.TimeSpent == nil || len(req.Details) == 0 {
		return nil, apperror.Validation("missing required history data")
	}
	if *req.Score < 0 || *req.Score > 100 {
		return nil, apperror.Validation("score must be between 0 and 100")
	}
	if *req.TotalQuestions < 1 {
		return nil, apperror.Validation("totalQuestions must be at least 1")
	}
	if *req.CorrectAnswers < 0 || *req.CorrectAnswers > *req.TotalQuestions {
		return nil, apperror.Validation("correctAnswers must be between 0 and totalQuestions")
	}
	if *req.TimeSpent < 0 {
		return nil, apperror.Validation("timeSpent must not be negative")
	}
	testType, err := normalizeTestType(req.TestType)
	if err != nil {
		return nil, err
	}

	details := make([]model.HistoryDetail, 0, len(req.Details))
	for i, d := range req.Details {
		var detail model.HistoryDetail
		if err := copier.Copy(&detail, &d); err != nil {
			return nil, fmt.Errorf("error preparing history detail: %w", err)
		}
		detail.Position = i
		detail.Options = nonNilStrings(d.Options)
		details = append(details, detail)
	}

	history := model.History{
		UserID:         normalizeUserID(req.UserID),
		Date:           s.now(),
		Score:          *req.Score,
		TotalQuestions: *req.TotalQuestions,
		CorrectAnswers: *req.CorrectAnswers,
		TimeSpent:      *req.TimeSpent,
		Tags:           nonNilStrings(req.Tags),
		TestType:       testType,
		Details:        details,
	}
	if err := s.repo.Create(ctx, &history); err != nil {
		return nil, fmt.Errorf("error creating history: %w", err)
	}
	return toHistoryResponse(&history)
}

func (s *historyService) DeleteHistory(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting history %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("history record %d not found", id)
	}
	return nil
}

// GetScoreStats aggregates the user's attempts over the last `days` days.
func (s *historyService) GetScoreStats(ctx context.Context, query dto.ScoreStatsQuery) (*dto.ScoreStatsResponse, error) {
	days := query.Days
	if days <= 0 {
		days = s.defaultDays
	}
	userID := normalizeUserID(query.UserID)
	since := s.now().AddDate(0, 0, -days)

	histories, err := s.repo.FindByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("error loading histories for stats: %w", err)
	}
	stats, chart := aggregateStats(histories)
	return &dto.ScoreStatsResponse{Stats: stats, ChartData: chart}, nil
}

// parseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates. A plain
// end date covers the whole day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid date %q, expected YYYY-MM-DD or RFC3339", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func toHistoryResponse(h *model.History) (*dto.HistoryResponse, error) {
	resp := dto.HistoryResponse{
		ID:             h.ID,
		UserID:         h.UserID,
		Date:           h.Date,
		Score:          h.Score,
		TotalQuestions: h.TotalQuestions,
		CorrectAnswers: h.CorrectAnswers,
		Accuracy:       h.Accuracy(),
		TimeSpent:      h.TimeSpent,
		Tags:           nonNilStrings(h.Tags),
		TestType:       h.TestType,
		CreatedAt:      h.CreatedAt,
	}
	resp.Details = make([]dto.HistoryDetailDTO, 0, len(h.Details))
	for _, d := range h.Details {
		var detail dto.HistoryDetailDTO
		if err := copier.Copy(&detail, &d); err != nil {
			return nil, fmt.Errorf("error preparing history response: %w", err)
		}
		detail.Options = nonNilStrings(d.Options)
		resp.Details = append(resp.Details, detail)
	}
	return &resp, nil
}
