package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappersClassify(t *testing.T) {
	assert.True(t, errors.Is(NotFound("no job: %d", 7), ErrNotFound))
	assert.True(t, errors.Is(BadRequest("no data"), ErrBadRequest))
	assert.True(t, errors.Is(Unauthorized("login required"), ErrUnauthorized))
}

func TestWrappersKeepDetail(t *testing.T) {
	err := NotFound("no job: %d", 7)
	assert.Contains(t, err.Error(), "7")
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, Status(nil))
	assert.Equal(t, http.StatusBadRequest, Status(BadRequest("x")))
	assert.Equal(t, http.StatusUnauthorized, Status(Unauthorized("x")))
	assert.Equal(t, http.StatusNotFound, Status(NotFound("x")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
	// classification survives further wrapping
	assert.Equal(t, http.StatusNotFound, Status(fmt.Errorf("query: %w", NotFound("x"))))
}
