package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/trknhr/cardlog/internal/logger"
	"github.com/trknhr/cardlog/internal/model/entity"
)

type EntryStore interface {
	SaveEntry(ctx context.Context, e entity.Entry) error
	RecentEligibleEntries(ctx context.Context, limit int, excluded []entity.Kind) ([]entity.Entry, error)
	RecentEntries(ctx context.Context, limit int) ([]entity.Entry, error)
}

type SQLEntryStore struct {
	db *sql.DB
}

func NewSQLEntryStore(db *sql.DB) EntryStore {
	return &SQLEntryStore{db: db}
}

func (s *SQLEntryStore) SaveEntry(ctx context.Context, e entity.Entry) error {
	if e.ID == uuid.Nil {
		return fmt.Errorf("entry has no id")
	}
	parent := ""
	if e.ParentID != uuid.Nil {
		parent = e.ParentID.String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, parent_id, kind, title, body, done, geo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			parent_id = excluded.parent_id,
			kind      = excluded.kind,
			title     = excluded.title,
			body      = excluded.body,
			done      = excluded.done,
			geo       = excluded.geo
	`, e.ID.String(), parent, string(e.Kind), e.Title, e.Body, boolToInt(e.Done), e.Geo, e.CreatedAt().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", e.ID, err)
	}
	return nil
}

// RecentEligibleEntries returns up to limit entries, newest first, skipping
// the excluded kinds.
func (s *SQLEntryStore) RecentEligibleEntries(ctx context.Context, limit int, excluded []entity.Kind) ([]entity.Entry, error) {
	query := `SELECT id, parent_id, kind, title, body, done, geo FROM entries`
	args := make([]any, 0, len(excluded)+1)
	if len(excluded) > 0 {
		placeholders := make([]string, len(excluded))
		for i, k := range excluded {
			placeholders[i] = "?"
			args = append(args, string(k))
		}
		query += ` WHERE kind NOT IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	return s.query(ctx, query, args...)
}

func (s *SQLEntryStore) RecentEntries(ctx context.Context, limit int) ([]entity.Entry, error) {
	return s.query(ctx, `
		SELECT id, parent_id, kind, title, body, done, geo
		FROM entries
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
}

func (s *SQLEntryStore) query(ctx context.Context, query string, args ...any) ([]entity.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []entity.Entry
	for rows.Next() {
		var (
			id, parent, kind, title, body, geo string
			done                               int
		)
		if err := rows.Scan(&id, &parent, &kind, &title, &body, &done, &geo); err != nil {
			logger.Warn("failed to scan entry row: %v", err)
			continue
		}
		e, err := toEntry(id, parent, kind, title, body, geo, done)
		if err != nil {
			logger.Warn("skipping malformed entry %q: %v", id, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

func toEntry(id, parent, kind, title, body, geo string, done int) (entity.Entry, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return entity.Entry{}, err
	}
	e := entity.Entry{
		ID:    uid,
		Kind:  entity.Kind(kind),
		Title: title,
		Body:  body,
		Done:  done != 0,
		Geo:   geo,
	}
	if parent != "" {
		pid, err := uuid.Parse(parent)
		if err != nil {
			return entity.Entry{}, err
		}
		e.ParentID = pid
	}
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
