package domain

import "time"

// MaxAuditEntries caps the retained audit log; older entries are
// dropped as new ones arrive.
const MaxAuditEntries = 500

// AuditEntry records one admin mutation, newest first.
type AuditEntry struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Actor   string    `json:"actor"`
	Event   string    `json:"event"`
	Payload string    `json:"payload,omitempty"`
}
