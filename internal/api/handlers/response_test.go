package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrConfigurationInvalid), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrValidationFailed), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrSlotUnavailable), http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrInvalidTransition), http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", domain.ErrRemoteUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRespondDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("db: %w", domain.ErrRemoteUnavailable), "secret detail")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Retryable)
	assert.NotContains(t, body.Error, "secret detail")
}

func TestRespondDomainError_ClientErrorCarriesReason(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("calendar: %w: slot duration must be positive", domain.ErrConfigurationInvalid), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "slot duration must be positive")
	assert.False(t, body.Retryable)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","admin":true}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestPathID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathID(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "0"})
	_, err = PathID(r, "id")
	assert.Error(t, err)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "abc"})
	_, err = PathID(r, "id")
	assert.Error(t, err)
}

func TestRequestLanguage(t *testing.T) {
	tests := []struct {
		query, header, want string
	}{
		{"", "", "en"},
		{"", "ru-RU,ru;q=0.9,en;q=0.8", "ru"},
		{"", "*", "en"},
		{"de", "ru", "de"},
		{"", "FR;q=0.5", "fr"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?lang="+tt.query, nil)
		if tt.header != "" {
			r.Header.Set("Accept-Language", tt.header)
		}
		assert.Equal(t, tt.want, RequestLanguage(r), "query=%q header=%q", tt.query, tt.header)
	}
}
