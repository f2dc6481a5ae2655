// internal/db/leads.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/inteligenciarte/luxurystudio/internal/booking"
)

// Lead is a booking request that was handed to WhatsApp.
type Lead struct {
	ID             int64
	CreatedAt      time.Time
	Name           string
	IsClient       bool
	Procedures     []string
	TimePreference string
	Link           string
}

// NewLead captures a submission for the lead log.
func NewLead(submission booking.Submission, at time.Time) Lead {
	r := submission.Request
	return Lead{
		CreatedAt:      at.UTC(),
		Name:           strings.TrimSpace(r.Name),
		IsClient:       r.IsClient,
		Procedures:     append([]string(nil), r.SelectedProcedures...),
		TimePreference: strings.Join(booking.TimePreferenceLines(r), "; "),
		Link:           submission.URL,
	}
}

func (db *DB) InsertLead(ctx context.Context, lead Lead) (int64, error) {
	procedures, err := json.Marshal(lead.Procedures)
	if err != nil {
		return 0, fmt.Errorf("encode procedures: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO leads (created_at, name, is_client, procedures, time_preference, link)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		lead.CreatedAt.UTC(),
		lead.Name,
		lead.IsClient,
		string(procedures),
		lead.TimePreference,
		lead.Link,
	)
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return result.LastInsertId()
}

// ListRecentLeads returns up to limit leads, newest first.
func (db *DB) ListRecentLeads(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, created_at, name, is_client, procedures, time_preference, link
		 FROM leads
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var lead Lead
		var procedures string
		if err := rows.Scan(&lead.ID, &lead.CreatedAt, &lead.Name, &lead.IsClient, &procedures, &lead.TimePreference, &lead.Link); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		if err := json.Unmarshal([]byte(procedures), &lead.Procedures); err != nil {
			return nil, fmt.Errorf("decode procedures for lead %d: %w", lead.ID, err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

// DeleteLeadsBefore removes leads created before cutoff.
func (db *DB) DeleteLeadsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM leads WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete leads: %w", err)
	}
	return result.RowsAffected()
}
