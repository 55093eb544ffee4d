package service

import (
	"context"
	"testing"

	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTagDefaultsAndTrims(t *testing.T) {
	s := newTestServices(t)
	tag, err := s.tags.CreateTag(context.Background(), dto.TagRequest{Name: "  algebra  "})
	require.NoError(t, err)
	assert.Equal(t, "algebra", tag.Name)
	assert.Equal(t, model.DefaultTagColor, tag.Color)
}

func TestCreateTagRejectsDuplicateAfterTrim(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	mustCreateTag(t, s.tags, "x")

	_, err := s.tags.CreateTag(ctx, dto.TagRequest{Name: " x "})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, "tag name already exists", apperror.From(err).Message)

	// names are case-sensitive
	_, err = s.tags.CreateTag(ctx, dto.TagRequest{Name: "X"})
	assert.NoError(t, err)
}

func TestUpdateTag(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	a := mustCreateTag(t, s.tags, "a")
	mustCreateTag(t, s.tags, "b")

	updated, err := s.tags.UpdateTag(ctx, a.ID, dto.TagRequest{Name: "a", Color: "#000"})
	require.NoError(t, err)
	assert.Equal(t, "#000", updated.Color)

	_, err = s.tags.UpdateTag(ctx, a.ID, dto.TagRequest{Name: "b"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = s.tags.UpdateTag(ctx, 999, dto.TagRequest{Name: "c"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestTagValidation(t *testing.T) {
	s := newTestServices(t)
	tests := []dto.TagRequest{
		{Name: "   "},
		{Name: "abcdefghijklmnopqrstuvwxyz0123456789"},
		{Name: "ok", Color: "#0123456789abcdefg"},
	}
	for _, req := range tests {
		_, err := s.tags.CreateTag(context.Background(), req)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "request %+v: %v", req, err)
	}
}

func TestDeleteTagIsHard(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	tag := mustCreateTag(t, s.tags, "gone")

	require.NoError(t, s.tags.DeleteTag(ctx, tag.ID))
	assert.True(t, apperror.IsKind(s.tags.DeleteTag(ctx, tag.ID), apperror.KindNotFound))

	tags, err := s.tags.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	// the name is free again
	mustCreateTag(t, s.tags, "gone")
}
