package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary List questions
// @Description Active questions filtered by type, difficulty, tags and title search, with pagination.
// @Tags Questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param type query string false "choice or fill"
// @Param difficulty query string false "easy, medium or hard"
// @Param tags query string false "Comma-separated tag ids"
// @Param search query string false "Case-insensitive title substring"
// @Param sortBy query string false "createdAt, updatedAt, title, type, difficulty or id"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Success 200 {object} dto.Envelope{data=dto.QuestionListResponse}
// @Failure 400 {object} dto.Envelope
// @Router /questions [get]
func (ctrl *QuestionController) ListQuestions(c *gin.Context) {
	var query dto.QuestionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn().Err(err).Msg("ListQuestions: failed to bind query")
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.questionService.ListQuestions(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.Envelope{data=dto.QuestionResponse}
// @Failure 404 {object} dto.Envelope
// @Router /questions/{id} [get]
func (ctrl *QuestionController) GetQuestion(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	resp, err := ctrl.questionService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Choice questions need exactly 4 options and an answer equal to one of them.
// @Tags Questions
// @Accept json
// @Produce json
// @Param question body dto.QuestionRequest true "Question data"
// @Success 201 {object} dto.Envelope{data=dto.QuestionResponse}
// @Failure 400 {object} dto.Envelope
// @Router /questions [post]
func (ctrl *QuestionController) CreateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: failed to bind JSON")
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.questionService.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary Replace a question
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.QuestionRequest true "Question data"
// @Success 200 {object} dto.Envelope{data=dto.QuestionResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /questions/{id} [put]
func (ctrl *QuestionController) UpdateQuestion(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("questionID", id).Msg("UpdateQuestion: failed to bind JSON")
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.questionService.UpdateQuestion(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary Soft-delete a question
// @Tags Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /questions/{id} [delete]
func (ctrl *QuestionController) DeleteQuestion(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := ctrl.questionService.DeleteQuestion(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, http.StatusOK, "question deleted")
}

// ImportQuestions godoc
// @Summary Bulk import questions
// @Description The whole batch is rejected if any question is invalid.
// @Tags Questions
// @Accept json
// @Produce json
// @Param payload body dto.ImportQuestionsRequest true "Questions to import"
// @Success 201 {object} dto.Envelope{data=dto.ImportQuestionsResponse}
// @Failure 400 {object} dto.Envelope
// @Router /questions/import [post]
func (ctrl *QuestionController) ImportQuestions(c *gin.Context) {
	var req dto.ImportQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ImportQuestions: failed to bind JSON")
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.questionService.ImportQuestions(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// ExportQuestions godoc
// @Summary Export active questions
// @Tags Questions
// @Produce json
// @Produce x-yaml
// @Param type query string false "choice or fill"
// @Param difficulty query string false "easy, medium or hard"
// @Param tags query string false "Comma-separated tag ids"
// @Param format query string false "json or yaml" default(json)
// @Success 200 {object} dto.Envelope{data=dto.ExportQuestionsResponse}
// @Failure 400 {object} dto.Envelope
// @Router /questions/export [get]
func (ctrl *QuestionController) ExportQuestions(c *gin.Context) {
	var query dto.QuestionExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.questionService.ExportQuestions(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	if query.Format == "yaml" {
		out, err := yaml.Marshal(resp)
		if err != nil {
			c.Error(err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="questions.yaml"`)
		c.Data(http.StatusOK, "application/x-yaml; charset=utf-8", out)
		return
	}
	respond(c, http.StatusOK, resp)
}

// GetStats godoc
// @Summary Question bank statistics
// @Description Counts by type and difficulty plus the ten most used tags.
// @Tags Questions
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.QuestionStatsResponse}
// @Router /questions/stats [get]
func (ctrl *QuestionController) GetStats(c *gin.Context) {
	resp, err := ctrl.questionService.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}
