package response

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var envelope Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]string{"key": "value"}, testLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	envelope := decode(t, w)
	assert.True(t, envelope.Success)
	assert.Empty(t, envelope.Error)
	assert.NotNil(t, envelope.Data)
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, "product not found", testLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decode(t, w)
	assert.False(t, envelope.Success)
	assert.Equal(t, "product not found", envelope.Error)
}

func TestHandleErrorMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errors.NotFound("missing"), http.StatusNotFound},
		{errors.Forbidden("nope"), http.StatusForbidden},
		{errors.InvalidCredentials("bad login"), http.StatusUnauthorized},
		{errors.Validation("bad input"), http.StatusBadRequest},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		HandleError(w, tc.err, testLogger())
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestHandleErrorIncludesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, errors.ValidationWithDetails("validation failed", map[string]string{"name": "is required"}), testLogger())

	envelope := decode(t, w)
	assert.False(t, envelope.Success)
	assert.NotNil(t, envelope.Details)
}
