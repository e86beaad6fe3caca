package store

import (
	"fmt"
	"time"

	"github.com/kilupskalvis/gitnav/internal/models"
)

// RecordNavigation appends a navigation to the journal and sets its ID
func (s *Store) RecordNavigation(nav *models.Navigation) error {
	if nav.Timestamp.IsZero() {
		nav.Timestamp = time.Now()
	}
	res, err := s.db.Exec(`
		INSERT INTO navigations (timestamp, token, from_hash, to_hash, to_index)
		VALUES (?, ?, ?, ?, ?)`,
		nav.Timestamp.UTC().Format(time.RFC3339Nano), nav.Token, nav.FromHash, nav.ToHash, nav.ToIndex,
	)
	if err != nil {
		return fmt.Errorf("failed to record navigation: %w", err)
	}
	nav.ID, err = res.LastInsertId()
	return err
}

// ListNavigations returns journal entries newest first. limit <= 0 returns all.
func (s *Store) ListNavigations(limit int) ([]*models.Navigation, error) {
	query := `
		SELECT id, timestamp, token, from_hash, to_hash, to_index
		FROM navigations ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var navs []*models.Navigation
	for rows.Next() {
		var nav models.Navigation
		var timestamp string
		if err := rows.Scan(&nav.ID, &timestamp, &nav.Token, &nav.FromHash, &nav.ToHash, &nav.ToIndex); err != nil {
			return nil, err
		}
		nav.Timestamp = parseTimestamp(timestamp)
		navs = append(navs, &nav)
	}
	return navs, rows.Err()
}

// LastNavigation returns the most recent journal entry, or nil if empty
func (s *Store) LastNavigation() (*models.Navigation, error) {
	navs, err := s.ListNavigations(1)
	if err != nil {
		return nil, err
	}
	if len(navs) == 0 {
		return nil, nil
	}
	return navs[0], nil
}
