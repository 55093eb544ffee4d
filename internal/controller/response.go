package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
)

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, dto.Envelope{Success: true, Data: data, Timestamp: time.Now().UTC()})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Envelope{Success: true, Message: message, Timestamp: time.Now().UTC()})
}

func invalidBody(err error) error {
	return apperror.Validation("invalid request: %s", err.Error())
}

func parseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid id %q", raw)
	}
	return uint(id), nil
}
