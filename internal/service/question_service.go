package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
	"github.com/lshigami/qbank/internal/repository"
	"github.com/rs/zerolog/log"
)

const topTagStatsLimit = 10

var questionSortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"type":       "type",
	"difficulty": "difficulty",
	"id":         "id",
}

type QuestionService interface {
	ListQuestions(ctx context.Context, query dto.QuestionListQuery) (*dto.QuestionListResponse, error)
	GetQuestion(ctx context.Context, id uint) (*dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id uint) error
	ImportQuestions(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error)
	ExportQuestions(ctx context.Context, query dto.QuestionExportQuery) (*dto.ExportQuestionsResponse, error)
	GetStats(ctx context.Context) (*dto.QuestionStatsResponse, error)
	ReplaceQuestions(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error)
}

type questionService struct {
	repo    repository.QuestionRepository
	tagRepo repository.TagRepository
}

func NewQuestionService(repo repository.QuestionRepository, tagRepo repository.TagRepository) QuestionService {
	return &questionService{repo: repo, tagRepo: tagRepo}
}

func (s *questionService) ListQuestions(ctx context.Context, query dto.QuestionListQuery) (*dto.QuestionListResponse, error) {
	tagIDs, err := parseIDList(query.Tags)
	if err != nil {
		return nil, err
	}
	filter := repository.QuestionFilter{
		Difficulty: query.Difficulty,
		TagIDs:     tagIDs,
		Search:     query.Search,
	}
	if query.Type != "" {
		filter.Types = []string{query.Type}
	}
	page, limit, window := pageOf(query.Page, query.Limit)
	sort := sortOf(query.SortBy, query.SortOrder, questionSortColumns, "createdAt")

	questions, total, err := s.repo.List(ctx, filter, sort, window)
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: repository error")
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	responses, err := s.toResponses(ctx, questions)
	if err != nil {
		return nil, err
	}
	return &dto.QuestionListResponse{
		Questions:  responses,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*dto.QuestionResponse, error) {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("question %d not found", id)
		}
		return nil, fmt.Errorf("error fetching question %d: %w", id, err)
	}
	responses, err := s.toResponses(ctx, []model.Question{*question})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *questionService) CreateQuestion(ctx context.Context, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: failed to persist question")
		return nil, fmt.Errorf("error creating question: %w", err)
	}
	log.Info().Uint("questionID", question.ID).Str("type", question.Type).Msg("Question created")
	return s.GetQuestion(ctx, question.ID)
}

func (s *questionService) UpdateQuestion(ctx context.Context, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("question %d not found", id)
		}
		return nil, fmt.Errorf("error fetching question %d: %w", id, err)
	}
	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.ID = id

	if err := s.repo.Update(ctx, question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: failed to persist question")
		return nil, fmt.Errorf("error updating question %d: %w", id, err)
	}
	return s.GetQuestion(ctx, id)
}

// DeleteQuestion only clears the active flag.
func (s *questionService) DeleteQuestion(ctx context.Context, id uint) error {
	affected, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting question %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("question %d not found", id)
	}
	log.Info().Uint("questionID", id).Msg("Question soft-deleted")
	return nil
}

// ImportQuestions validates every record before writing any of them and then
// inserts the batch in a single transaction.
func (s *questionService) ImportQuestions(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error) {
	questions, err := buildImport(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateBatch(ctx, questions); err != nil {
		log.Error().Err(err).Int("count", len(questions)).Msg("ImportQuestions: batch insert failed")
		return nil, fmt.Errorf("error importing questions: %w", err)
	}
	log.Info().Int("count", len(questions)).Msg("Questions imported")

	responses, err := s.toResponses(ctx, questions)
	if err != nil {
		return nil, err
	}
	return &dto.ImportQuestionsResponse{Imported: len(responses), Questions: responses}, nil
}

func (s *questionService) ExportQuestions(ctx context.Context, query dto.QuestionExportQuery) (*dto.ExportQuestionsResponse, error) {
	tagIDs, err := parseIDList(query.Tags)
	if err != nil {
		return nil, err
	}
	filter := repository.QuestionFilter{Difficulty: query.Difficulty, TagIDs: tagIDs}
	if query.Type != "" {
		filter.Types = []string{query.Type}
	}

	questions, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error exporting questions: %w", err)
	}
	tags, err := s.lookupTags(ctx, questions)
	if err != nil {
		return nil, err
	}

	exported := make([]dto.ExportQuestionDTO, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		exported = append(exported, dto.ExportQuestionDTO{
			ID:         q.ID,
			Type:       q.Type,
			Title:      q.Title,
			Options:    []string(q.Options),
			Answer:     q.Answer,
			Tags:       tagRefs(q.TagIDs(), tags),
			Difficulty: q.Difficulty,
		})
	}
	return &dto.ExportQuestionsResponse{
		Questions:  exported,
		ExportTime: time.Now().UTC(),
		Total:      len(exported),
	}, nil
}

func (s *questionService) GetStats(ctx context.Context) (*dto.QuestionStatsResponse, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting questions: %w", err)
	}
	top, err := s.repo.TopTags(ctx, topTagStatsLimit)
	if err != nil {
		return nil, fmt.Errorf("error counting tag usage: %w", err)
	}

	ids := make([]uint, 0, len(top))
	for _, tc := range top {
		ids = append(ids, tc.TagID)
	}
	tags, err := s.tagsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	var resp dto.QuestionStatsResponse
	if err := copier.Copy(&resp, counts); err != nil {
		return nil, fmt.Errorf("error preparing question stats: %w", err)
	}
	resp.TagStats = make([]dto.TagCountDTO, 0, len(top))
	for _, tc := range top {
		ref := tagRef(tc.TagID, tags)
		resp.TagStats = append(resp.TagStats, dto.TagCountDTO{TagID: tc.TagID, Name: ref.Name, Count: tc.Total})
	}
	return &resp, nil
}

// ReplaceQuestions validates the whole batch, then soft-deletes every active
// question and inserts the batch in one transaction. An invalid batch leaves
// the bank untouched.
func (s *questionService) ReplaceQuestions(ctx context.Context, req dto.ImportQuestionsRequest) (*dto.ImportQuestionsResponse, error) {
	questions, err := buildImport(req)
	if err != nil {
		return nil, err
	}

	deactivated, err := s.repo.ReplaceAll(ctx, questions)
	if err != nil {
		log.Error().Err(err).Int("count", len(questions)).Msg("ReplaceQuestions: replace failed")
		return nil, fmt.Errorf("error replacing questions: %w", err)
	}
	log.Warn().Int64("deactivated", deactivated).Int("imported", len(questions)).Msg("Question bank replaced")

	responses, err := s.toResponses(ctx, questions)
	if err != nil {
		return nil, err
	}
	return &dto.ImportQuestionsResponse{Imported: len(responses), Questions: responses}, nil
}

func (s *questionService) toResponses(ctx context.Context, questions []model.Question) ([]dto.QuestionResponse, error) {
	tags, err := s.lookupTags(ctx, questions)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		var resp dto.QuestionResponse
		if err := copier.Copy(&resp, q); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		resp.Options = append([]string{}, q.Options...)
		resp.Tags = tagRefs(q.TagIDs(), tags)
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *questionService) lookupTags(ctx context.Context, questions []model.Question) (map[uint]model.Tag, error) {
	var ids []uint
	for i := range questions {
		ids = append(ids, questions[i].TagIDs()...)
	}
	return s.tagsByID(ctx, dedupeIDs(ids))
}

func (s *questionService) tagsByID(ctx context.Context, ids []uint) (map[uint]model.Tag, error) {
	tags, err := s.tagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving tags: %w", err)
	}
	byID := make(map[uint]model.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	return byID, nil
}

func tagRefs(ids []uint, tags map[uint]model.Tag) []dto.TagRef {
	refs := make([]dto.TagRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, tagRef(id, tags))
	}
	return refs
}

// tagRef renders a reference; a deleted tag falls back to its raw id.
func tagRef(id uint, tags map[uint]model.Tag) dto.TagRef {
	tag, ok := tags[id]
	if !ok {
		return dto.TagRef{ID: id, Name: strconv.FormatUint(uint64(id), 10), Missing: true}
	}
	return dto.TagRef{ID: id, Name: tag.Name, Color: tag.Color}
}
