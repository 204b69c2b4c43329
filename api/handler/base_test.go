package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskmaster/backend/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUsernameTaken, http.StatusConflict, "CONFLICT"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.NewError(domain.ErrCodeInvalid, "title is required"), http.StatusBadRequest, "INVALID"},
		{errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		status, code := mapError(tt.err)
		assert.Equal(t, tt.wantStatus, status, "err=%v", tt.err)
		assert.Equal(t, tt.wantCode, code, "err=%v", tt.err)
	}
}

func TestParseSort(t *testing.T) {
	sort, order := parseSort("")
	assert.Equal(t, domain.SortCreatedAt, sort)
	assert.Equal(t, domain.OrderDesc, order)

	sort, order = parseSort("due_date,asc")
	assert.Equal(t, "due_date", sort)
	assert.Equal(t, "asc", order)

	sort, order = parseSort("title")
	assert.Equal(t, "title", sort)
	assert.Equal(t, domain.OrderDesc, order)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, parseInt("3", 0))
	assert.Equal(t, 7, parseInt("", 7))
	assert.Equal(t, 7, parseInt("x", 7))
}
