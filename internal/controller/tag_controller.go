package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/service"
	"github.com/rs/zerolog/log"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// ListTags godoc
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.TagResponse}
// @Router /tags [get]
func (ctrl *TagController) ListTags(c *gin.Context) {
	tags, err := ctrl.tagService.ListTags(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, tags)
}

// CreateTag godoc
// @Summary Create a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tag body dto.TagRequest true "Tag data"
// @Success 201 {object} dto.Envelope{data=dto.TagResponse}
// @Failure 400 {object} dto.Envelope "Invalid input or duplicate name"
// @Router /tags [post]
func (ctrl *TagController) CreateTag(c *gin.Context) {
	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTag: failed to bind JSON")
		c.Error(invalidBody(err))
		return
	}
	tag, err := ctrl.tagService.CreateTag(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, tag)
}

// UpdateTag godoc
// @Summary Update a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param tag body dto.TagRequest true "Tag data"
// @Success 200 {object} dto.Envelope{data=dto.TagResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /tags/{id} [put]
func (ctrl *TagController) UpdateTag(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidBody(err))
		return
	}
	tag, err := ctrl.tagService.UpdateTag(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Questions keep their reference to the deleted tag.
// @Tags Tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /tags/{id} [delete]
func (ctrl *TagController) DeleteTag(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := ctrl.tagService.DeleteTag(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, http.StatusOK, "tag deleted")
}
