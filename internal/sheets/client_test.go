package sheets

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/logger"
)

func testLogger() *slog.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Format: "json", Level: slog.LevelError}).Logger
}

func TestQueryRows(t *testing.T) {
	payload := `/*O_o*/
google.visualization.Query.setResponse({"table":{
  "cols":[{"label":"Name"},{"label":" Price "},{"label":""}],
  "rows":[
    {"c":[{"v":"Bánh Kem"},{"v":100000},{"v":true}]},
    {"c":[{"v":"Tiramisu"},null,null]},
    {"c":[null,null,null]}
  ]}});`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gviz/tq", r.URL.Path)
		assert.Equal(t, "out:json", r.URL.Query().Get("tqx"))
		assert.Equal(t, "7", r.URL.Query().Get("gid"))
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, testLogger())
	defer c.Close()

	rows, err := c.QueryRows(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, rows, 2, "all-blank row is skipped")

	assert.Equal(t, "Bánh Kem", rows[0]["name"])
	assert.Equal(t, "100000", rows[0]["price"])
	assert.Equal(t, "true", rows[0]["col2"], "blank label falls back to positional name")
	assert.Equal(t, "", rows[1]["price"], "null cell is an empty string")
}

func TestCSVRows(t *testing.T) {
	body := "\uFEFFName,Description,Tags\n" +
		"\"Bánh, Kem\",\"line one\nline two\",\"sweet\"\n" +
		"\"He said \"\"hi\"\"\",,\n" +
		",,\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, testLogger())
	defer c.Close()

	rows, err := c.CSVRows(context.Background(), "0")
	require.NoError(t, err)
	require.Len(t, rows, 2, "all-blank row is skipped")

	assert.Equal(t, "Bánh, Kem", rows[0]["name"], "embedded comma survives")
	assert.Equal(t, "line one\nline two", rows[0]["description"], "embedded newline survives")
	assert.Equal(t, `He said "hi"`, rows[1]["name"], "doubled quotes collapse")
	assert.Equal(t, "", rows[1]["tags"])
}

func TestDoGetErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrServer},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))

		c := NewWithBaseURL(srv.URL, testLogger())
		_, err := c.CSVRows(context.Background(), "0")
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)

		c.Close()
		srv.Close()
	}
}

func TestQueryRowsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, testLogger())
	defer c.Close()

	_, err := c.QueryRows(context.Background(), "0")
	assert.ErrorIs(t, err, ErrMalformed)
}
