// Package drive lists a shared Google Drive folder tree and builds the
// image index used to attach pictures to products by file name.
package drive

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/storefrontapp/storefront-server/internal/ratelimit"
)

const (
	defaultRPS   = 2.0
	defaultBurst = 4

	defaultTimeout = 30 * time.Second

	driveHost      = "www.googleapis.com"
	filesPath      = "/drive/v3/files"
	pageSize       = 1000
	folderMimeType = "application/vnd.google-apps.folder"
)

// File is one Drive file surviving the listing filter.
type File struct {
	ID           string
	Name         string
	MimeType     string
	ModifiedTime time.Time
}

// Client is a rate-limited, API-key authenticated Drive lister.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	apiKey  string
	baseURL string // test override
}

// New creates a Drive client.
func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		apiKey:  apiKey,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// ListImages walks the folder tree breadth-first starting at the root
// folder and returns every image file in discovery order: all files of
// a folder (name-ordered by the API) before any file of a subfolder.
// Subfolders are visited in the order they were discovered.
func (c *Client) ListImages(ctx context.Context, rootFolderID string) ([]File, error) {
	queue := []string{rootFolderID}
	var images []File

	for len(queue) > 0 {
		folderID := queue[0]
		queue = queue[1:]

		files, err := c.listFolder(ctx, folderID)
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", folderID, err)
		}

		for _, f := range files {
			switch {
			case f.MimeType == folderMimeType:
				queue = append(queue, f.ID)
			case strings.HasPrefix(f.MimeType, "image/"):
				modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
				images = append(images, File{
					ID:           f.ID,
					Name:         f.Name,
					MimeType:     f.MimeType,
					ModifiedTime: modified,
				})
			}
		}
	}

	c.logger.Debug("drive listing complete", "root", rootFolderID, "images", len(images))
	return images, nil
}

// listFolder pages through the direct children of one folder.
func (c *Client) listFolder(ctx context.Context, folderID string) ([]rawFile, error) {
	var files []rawFile
	pageToken := ""

	for {
		query := url.Values{
			"key":      {c.apiKey},
			"q":        {fmt.Sprintf("'%s' in parents and trashed=false", folderID)},
			"pageSize": {strconv.Itoa(pageSize)},
			"fields":   {"nextPageToken,files(id,name,mimeType,parents,modifiedTime)"},
			"orderBy":  {"name"},
		}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		body, err := c.doGet(ctx, c.listURL(query))
		if err != nil {
			return nil, err
		}

		var page listResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}

		files = append(files, page.Files...)
		if page.NextPageToken == "" {
			return files, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) listURL(query url.Values) string {
	if c.baseURL != "" {
		return c.baseURL + filesPath + "?" + query.Encode()
	}
	u := url.URL{
		Scheme:   "https",
		Host:     driveHost,
		Path:     filesPath,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// doGet executes a rate-limited GET and maps error statuses to
// sentinel errors.
func (c *Client) doGet(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, driveHost); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Storefront/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrForbidden
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

type listResponse struct {
	NextPageToken string    `json:"nextPageToken"`
	Files         []rawFile `json:"files"`
}

type rawFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
}
