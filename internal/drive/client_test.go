package drive

import (
	"context"
	"encoding/json/v2"
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

// folderFixture serves canned per-folder listings, with optional
// pagination for the root folder.
type folderFixture map[string][]map[string]string

func (f folderFixture) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.NotEmpty(t, q.Get("key"))
		assert.Equal(t, "name", q.Get("orderBy"))

		// q looks like '<folderID>' in parents and trashed=false
		folderID := q.Get("q")
		folderID = folderID[1:]
		folderID = folderID[:len(folderID)-len("' in parents and trashed=false")]

		files, ok := f[folderID]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// Page of 1 when a pageToken namespace exists for this folder.
		resp := map[string]any{"files": files}
		if token := q.Get("pageToken"); folderID == "paged" {
			switch token {
			case "":
				resp = map[string]any{"files": files[:1], "nextPageToken": "page2"}
			case "page2":
				resp = map[string]any{"files": files[1:]}
			}
		}

		body, err := json.Marshal(resp)
		require.NoError(t, err)
		_, _ = w.Write(body)
	}
}

func TestListImagesBreadthFirst(t *testing.T) {
	fixture := folderFixture{
		"root": {
			{"id": "f-sub1", "name": "Cakes", "mimeType": "application/vnd.google-apps.folder"},
			{"id": "img-a", "name": "a.jpg", "mimeType": "image/jpeg", "modifiedTime": "2026-01-02T00:00:00Z"},
			{"id": "f-sub2", "name": "Pies", "mimeType": "application/vnd.google-apps.folder"},
			{"id": "doc", "name": "notes.txt", "mimeType": "text/plain"},
		},
		"f-sub1": {
			{"id": "img-b", "name": "b.png", "mimeType": "image/png", "modifiedTime": "2026-01-03T00:00:00Z"},
		},
		"f-sub2": {
			{"id": "img-c", "name": "c.webp", "mimeType": "image/webp", "modifiedTime": "2026-01-04T00:00:00Z"},
		},
	}

	srv := httptest.NewServer(fixture.handler(t))
	defer srv.Close()

	c := New("test-key", testLogger())
	c.baseURL = srv.URL
	defer c.Close()

	images, err := c.ListImages(context.Background(), "root")
	require.NoError(t, err)

	// Root images first, then first subfolder, then second; non-image
	// files are ignored.
	ids := make([]string, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}
	assert.Equal(t, []string{"img-a", "img-b", "img-c"}, ids)
}

func TestListImagesPagination(t *testing.T) {
	fixture := folderFixture{
		"paged": {
			{"id": "img-1", "name": "1.jpg", "mimeType": "image/jpeg", "modifiedTime": "2026-01-01T00:00:00Z"},
			{"id": "img-2", "name": "2.jpg", "mimeType": "image/jpeg", "modifiedTime": "2026-01-01T00:00:00Z"},
		},
	}

	srv := httptest.NewServer(fixture.handler(t))
	defer srv.Close()

	c := New("test-key", testLogger())
	c.baseURL = srv.URL
	defer c.Close()

	images, err := c.ListImages(context.Background(), "paged")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "img-1", images[0].ID)
	assert.Equal(t, "img-2", images[1].ID)
}

func TestListImagesNotFound(t *testing.T) {
	srv := httptest.NewServer(folderFixture{}.handler(t))
	defer srv.Close()

	c := New("test-key", testLogger())
	c.baseURL = srv.URL
	defer c.Close()

	_, err := c.ListImages(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
