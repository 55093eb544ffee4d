package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientPoolMessage(t *testing.T) {
	err := InsufficientPool(5, 2)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Contains(t, err.Message, "requested 5")
	assert.Contains(t, err.Message, "only 2 available")
	assert.True(t, err.Operational())
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NotFound("question %d not found", 7))

	got := From(wrapped)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.True(t, IsKind(wrapped, KindNotFound))

	cause := errors.New("connection reset")
	internal := From(cause)
	assert.Equal(t, KindInternal, internal.Kind)
	assert.False(t, internal.Operational())
	assert.ErrorIs(t, internal, cause)
	assert.Equal(t, "internal server error: connection reset", internal.Error())
}
