package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
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
	// Rate limit: 1 request per second per host, burst of 3. Sync
	// passes fetch several tabs at once; the burst absorbs that.
	defaultRPS   = 1.0
	defaultBurst = 3

	defaultTimeout = 30 * time.Second

	sheetHost = "docs.google.com"
)

// Row is one spreadsheet row keyed by lowercased, trimmed column
// header. Blank cells are present as empty strings.
type Row map[string]string

// Client is a rate-limited reader for published Google Sheets tabs.
// It supports two transports: the gviz query endpoint (richer typing,
// used for the products tab) and plain CSV export (used for the
// optional tabs).
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	sheetID string
	baseURL string // test override
}

// New creates a sheets client for one spreadsheet.
func New(sheetID string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		sheetID: sheetID,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// QueryRows fetches a tab through the gviz query endpoint. The payload
// is JSONP-ish; the JSON object between the first "{" and the last "}"
// is the actual response.
func (c *Client) QueryRows(ctx context.Context, gid string) ([]Row, error) {
	u := c.tabURL("/gviz/tq", url.Values{
		"tqx": {"out:json"},
		"gid": {gid},
	})

	body, err := c.doGet(ctx, u)
	if err != nil {
		return nil, err
	}

	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in gviz payload", ErrMalformed)
	}

	var payload gvizResponse
	if err := json.Unmarshal(body[start:end+1], &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cols := make([]string, len(payload.Table.Cols))
	for i, col := range payload.Table.Cols {
		label := strings.ToLower(strings.TrimSpace(col.Label))
		if label == "" {
			label = "col" + strconv.Itoa(i)
		}
		cols[i] = label
	}

	rows := make([]Row, 0, len(payload.Table.Rows))
	for _, raw := range payload.Table.Rows {
		row := make(Row, len(cols))
		empty := true
		for i, name := range cols {
			var value string
			if i < len(raw.C) && raw.C[i] != nil {
				value = strings.TrimSpace(cellString(raw.C[i].V))
			}
			if value != "" {
				empty = false
			}
			row[name] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	c.logger.Debug("sheet query fetched", "gid", gid, "rows", len(rows))
	return rows, nil
}

// CSVRows fetches a tab through the CSV export endpoint. Quoted cells
// with embedded commas, newlines and doubled quotes are honored; rows
// where every cell is blank are skipped.
func (c *Client) CSVRows(ctx context.Context, gid string) ([]Row, error) {
	u := c.tabURL("/export", url.Values{
		"format": {"csv"},
		"gid":    {gid},
	})

	body, err := c.doGet(ctx, u)
	if err != nil {
		return nil, err
	}

	rows, err := ParseCSV(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sheet csv fetched", "gid", gid, "rows", len(rows))
	return rows, nil
}

// ParseCSV parses raw CSV bytes into header-keyed rows. The first
// record is the header: lowercased and trimmed, with blank headers
// falling back to positional colN names.
func ParseCSV(body []byte) ([]Row, error) {
	body = bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			name = "col" + strconv.Itoa(i)
		}
		headers[i] = name
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, name := range headers {
			var value string
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[name] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// tabURL builds a spreadsheet tab URL for the given endpoint suffix.
func (c *Client) tabURL(suffix string, query url.Values) string {
	if c.baseURL != "" {
		return c.baseURL + suffix + "?" + query.Encode()
	}
	u := url.URL{
		Scheme:   "https",
		Host:     sheetHost,
		Path:     "/spreadsheets/d/" + c.sheetID + suffix,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// doGet executes a rate-limited GET and maps error statuses to
// sentinel errors.
func (c *Client) doGet(ctx context.Context, fullURL string) ([]byte, error) {
	key := sheetHost
	if u, err := url.Parse(fullURL); err == nil && u.Host != "" {
		key = u.Host
	}
	if err := c.limiter.Wait(ctx, key); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/json, text/plain")
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

// cellString renders a gviz cell value the way a spreadsheet displays
// it: numbers without exponent notation, booleans as true/false.
func cellString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}

// gviz response envelope. Cells may be null for blank values.
type gvizResponse struct {
	Table gvizTable `json:"table"`
}

type gvizTable struct {
	Cols []gvizCol `json:"cols"`
	Rows []gvizRow `json:"rows"`
}

type gvizCol struct {
	Label string `json:"label"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V any `json:"v"`
}
