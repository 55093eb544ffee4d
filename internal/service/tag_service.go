package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
	"github.com/lshigami/qbank/internal/repository"
	"github.com/rs/zerolog/log"
)

const duplicateTagMessage = "tag name already exists"

type TagService interface {
	ListTags(ctx context.Context) ([]dto.TagResponse, error)
	CreateTag(ctx context.Context, req dto.TagRequest) (*dto.TagResponse, error)
	UpdateTag(ctx context.Context, id uint, req dto.TagRequest) (*dto.TagResponse, error)
	DeleteTag(ctx context.Context, id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) ListTags(ctx context.Context) ([]dto.TagResponse, error) {
	tags, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}
	resp := make([]dto.TagResponse, 0, len(tags))
	if err := copier.Copy(&resp, &tags); err != nil {
		return nil, fmt.Errorf("error preparing tag list: %w", err)
	}
	return resp, nil
}

// CreateTag checks the trimmed name for duplicates before inserting.
// Known race: two concurrent creates can both pass the check; the unique
// index then rejects the loser, which is reported with the same message.
func (s *tagService) CreateTag(ctx context.Context, req dto.TagRequest) (*dto.TagResponse, error) {
	fields, err := buildTag(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, fields.name, 0); err != nil {
		return nil, err
	}

	tag := model.Tag{Name: fields.name, Description: fields.description, Color: fields.color}
	if err := s.repo.Create(ctx, &tag); err != nil {
		if isDuplicateKey(err) {
			log.Warn().Str("name", tag.Name).Msg("CreateTag: unique index rejected a name that passed the pre-check")
			return nil, apperror.Validation(duplicateTagMessage)
		}
		return nil, fmt.Errorf("error creating tag: %w", err)
	}
	return toTagResponse(&tag)
}

func (s *tagService) UpdateTag(ctx context.Context, id uint, req dto.TagRequest) (*dto.TagResponse, error) {
	fields, err := buildTag(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, fields.name, id); err != nil {
		return nil, err
	}

	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("tag %d not found", id)
		}
		return nil, fmt.Errorf("error fetching tag %d: %w", id, err)
	}
	tag.Name = fields.name
	tag.Description = fields.description
	tag.Color = fields.color

	if err := s.repo.Update(ctx, tag); err != nil {
		if isDuplicateKey(err) {
			return nil, apperror.Validation(duplicateTagMessage)
		}
		return nil, fmt.Errorf("error updating tag %d: %w", id, err)
	}
	return toTagResponse(tag)
}

// DeleteTag hard-deletes the tag. Questions keep their now-dangling reference.
func (s *tagService) DeleteTag(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting tag %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("tag %d not found", id)
	}
	log.Info().Uint("tagID", id).Msg("Tag deleted")
	return nil
}

func (s *tagService) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("error checking tag name: %w", err)
	}
	if exists {
		return apperror.Validation(duplicateTagMessage)
	}
	return nil
}

func toTagResponse(tag *model.Tag) (*dto.TagResponse, error) {
	var resp dto.TagResponse
	if err := copier.Copy(&resp, tag); err != nil {
		return nil, fmt.Errorf("error preparing tag response: %w", err)
	}
	return &resp, nil
}
