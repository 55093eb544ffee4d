package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/service"
	"github.com/rs/zerolog/log"
)

// HistoryController serves test attempts: generating and scoring tests as
// well as browsing and aggregating past results.
type HistoryController struct {
	historyService service.HistoryService
	testService    service.TestService
}

func NewHistoryController(historyService service.HistoryService, testService service.TestService) *HistoryController {
	return &HistoryController{historyService: historyService, testService: testService}
}

// GenerateTest godoc
// @Summary Generate a random test
// @Description Draws distinct active questions matching the filter. Answers are not included.
// @Tags History
// @Accept json
// @Produce json
// @Param config body dto.GenerateTestRequest false "Test configuration"
// @Success 200 {object} dto.Envelope{data=dto.GenerateTestResponse}
// @Failure 400 {object} dto.Envelope "Invalid configuration or not enough matching questions"
// @Router /history/generate-test [post]
func (ctrl *HistoryController) GenerateTest(c *gin.Context) {
	var req dto.GenerateTestRequest
	// An empty body means "use the defaults".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn().Err(err).Msg("GenerateTest: failed to bind JSON")
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.testService.GenerateTest(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// SubmitTest godoc
// @Summary Score a test and record it
// @Description answers[i] is the response to questions[i]. Correct answers are looked up from the bank.
// @Tags History
// @Accept json
// @Produce json
// @Param submission body dto.SubmitTestRequest true "Questions and answers"
// @Success 201 {object} dto.Envelope{data=dto.SubmitTestResponse}
// @Failure 400 {object} dto.Envelope
// @Router /history/submit-test [post]
func (ctrl *HistoryController) SubmitTest(c *gin.Context) {
	var req dto.SubmitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitTest: failed to bind JSON")
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.testService.SubmitTest(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// ListHistories godoc
// @Summary List test attempts
// @Tags History
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param userId query string false "User id" default(anonymous)
// @Param startDate query string false "RFC3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC3339 or YYYY-MM-DD, inclusive"
// @Param sortBy query string false "date, score, timeSpent, createdAt, totalQuestions or correctAnswers"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Success 200 {object} dto.Envelope{data=dto.HistoryListResponse}
// @Failure 400 {object} dto.Envelope
// @Router /history [get]
func (ctrl *HistoryController) ListHistories(c *gin.Context) {
	var query dto.HistoryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.historyService.ListHistories(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// GetHistory godoc
// @Summary Get a test attempt with its details
// @Tags History
// @Produce json
// @Param id path int true "History ID"
// @Success 200 {object} dto.Envelope{data=dto.HistoryResponse}
// @Failure 404 {object} dto.Envelope
// @Router /history/{id} [get]
func (ctrl *HistoryController) GetHistory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	resp, err := ctrl.historyService.GetHistory(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// CreateHistory godoc
// @Summary Record an already scored attempt
// @Tags History
// @Accept json
// @Produce json
// @Param history body dto.CreateHistoryRequest true "Attempt data"
// @Success 201 {object} dto.Envelope{data=dto.HistoryResponse}
// @Failure 400 {object} dto.Envelope
// @Router /history [post]
func (ctrl *HistoryController) CreateHistory(c *gin.Context) {
	var req dto.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateHistory: failed to bind JSON")
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.historyService.CreateHistory(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// DeleteHistory godoc
// @Summary Delete a test attempt
// @Tags History
// @Produce json
// @Param id path int true "History ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /history/{id} [delete]
func (ctrl *HistoryController) DeleteHistory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := ctrl.historyService.DeleteHistory(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, http.StatusOK, "history deleted")
}

// GetScoreStats godoc
// @Summary Score statistics over a lookback window
// @Tags History
// @Produce json
// @Param userId query string false "User id" default(anonymous)
// @Param days query int false "Lookback window in days" default(30)
// @Success 200 {object} dto.Envelope{data=dto.ScoreStatsResponse}
// @Failure 400 {object} dto.Envelope
// @Router /history/stats [get]
func (ctrl *HistoryController) GetScoreStats(c *gin.Context) {
	var query dto.ScoreStatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(invalidBody(err))
		return
	}
	resp, err := ctrl.historyService.GetScoreStats(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, resp)
}
