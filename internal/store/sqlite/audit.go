package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storefrontapp/storefront-server/internal/domain"
)

// AppendAudit inserts an audit entry and trims the log to the retention
// cap, dropping the oldest entries first.
func (s *Store) AppendAudit(ctx context.Context, e *domain.AuditEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		"INSERT INTO audit_log (id, at, actor, event, payload) VALUES (?, ?, ?, ?, ?)",
		e.ID, formatTime(e.At), e.Actor, e.Event, nullString(e.Payload),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM audit_log WHERE id NOT IN (
			SELECT id FROM audit_log ORDER BY at DESC, id DESC LIMIT ?
		)`, domain.MaxAuditEntries,
	)
	if err != nil {
		return fmt.Errorf("trim audit log: %w", err)
	}

	return tx.Commit()
}

// ListAudit returns up to limit entries, newest first. A non-positive
// limit returns the full retained log.
func (s *Store) ListAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	if limit <= 0 || limit > domain.MaxAuditEntries {
		limit = domain.MaxAuditEntries
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, at, actor, event, payload FROM audit_log ORDER BY at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var (
			e       domain.AuditEntry
			at      string
			payload sql.NullString
		)
		if err := rows.Scan(&e.ID, &at, &e.Actor, &e.Event, &payload); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if e.At, err = parseTime(at); err != nil {
			return nil, fmt.Errorf("parse audit time: %w", err)
		}
		e.Payload = payload.String
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
