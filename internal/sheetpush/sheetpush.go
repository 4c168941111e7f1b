// Package sheetpush mirrors admin catalog edits back to the
// spreadsheet through an Apps Script web endpoint, so the sheet stays
// the editable source of truth.
package sheetpush

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Operations the web endpoint accepts.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

const pushTimeout = 12 * time.Second

// Pusher posts catalog mutations to the configured web endpoint. A
// zero endpoint disables pushing entirely.
type Pusher struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// New creates a pusher. endpoint may be empty, in which case every
// push is a silent no-op.
func New(endpoint string, logger *slog.Logger) *Pusher {
	return &Pusher{
		endpoint: endpoint,
		http:     &http.Client{Timeout: pushTimeout},
		logger:   logger,
	}
}

// Enabled reports whether a web endpoint is configured.
func (p *Pusher) Enabled() bool {
	return p.endpoint != ""
}

// Push mirrors one mutation asynchronously. The admin write has
// already committed locally; a failed mirror is logged and the next
// sync pass reconciles. Callers never wait on it.
func (p *Pusher) Push(op, kind, id string, row any) {
	if !p.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := p.push(ctx, op, kind, id, row); err != nil {
			p.logger.Warn("sheet mirror push failed", "op", op, "kind", kind, "id", id, "error", err)
			return
		}
		p.logger.Debug("sheet mirror push sent", "op", op, "kind", kind, "id", id)
	}()
}

func (p *Pusher) push(ctx context.Context, op, kind, id string, row any) error {
	form := url.Values{
		"op":   {op},
		"kind": {kind},
		"id":   {id},
	}
	if row != nil {
		encoded, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
		form.Set("row", string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint,
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Apps Script answers a redirect on success; anything below 400 is
	// treated as accepted.
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
