package store

import (
	"context"
	"crypto/md5" //nolint:gosec // hash keys the dedup index, not a security boundary
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/feedpulse/pkg/domain"
)

// itemSQL mirrors the items table layout
type itemSQL struct {
	ID           int64     `db:"id"`
	URLHash      string    `db:"url_hash"`
	Source       string    `db:"source"`
	Title        string    `db:"title"`
	Content      string    `db:"content"`
	URL          string    `db:"url"`
	Published    time.Time `db:"published"`
	ContentType  string    `db:"content_type"`
	Priority     int       `db:"priority"`
	Significance float64   `db:"significance"`
	Summary      string    `db:"summary"`
	Processed    bool      `db:"processed"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func fromDomain(item *domain.ScoredItem) *itemSQL {
	return &itemSQL{
		URLHash:      urlHash(item.URL),
		Source:       item.Source,
		Title:        item.Title,
		Content:      item.Content,
		URL:          item.URL,
		Published:    item.Published.UTC(),
		ContentType:  item.ContentType,
		Priority:     item.Priority,
		Significance: item.Significance,
		Summary:      item.Summary,
		Processed:    item.Processed,
	}
}

func (r *itemSQL) toDomain() domain.ScoredItem {
	return domain.ScoredItem{
		Item: domain.Item{
			Source:      r.Source,
			Title:       r.Title,
			Content:     r.Content,
			URL:         r.URL,
			Published:   r.Published,
			ContentType: r.ContentType,
			Priority:    r.Priority,
		},
		Significance: r.Significance,
		Summary:      r.Summary,
		Processed:    r.Processed,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// urlHash produces the stable dedup key for a source URL
func urlHash(link string) string {
	sum := md5.Sum([]byte(link)) //nolint:gosec // see import note
	return hex.EncodeToString(sum[:])
}

// SaveItem stores a scored item keyed by the hash of its URL. The first save
// of a URL inserts and reports created=true; saving the same URL again
// refreshes the stored copy in place and reports created=false.
func (s *Store) SaveItem(ctx context.Context, item *domain.ScoredItem) (created bool, err error) {
	sqlItem := fromDomain(item)
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err = retrier.Do(ctx, func() error {
		insert := `
			INSERT INTO items (
				url_hash, source, title, content, url, published,
				content_type, priority, significance, summary, processed
			) VALUES (
				:url_hash, :source, :title, :content, :url, :published,
				:content_type, :priority, :significance, :summary, :processed
			)
			ON CONFLICT(url_hash) DO NOTHING
		`
		result, execErr := s.conn.NamedExecContext(ctx, insert, sqlItem)
		if execErr != nil {
			if isLockError(execErr) {
				return execErr // retry
			}
			return &criticalError{err: fmt.Errorf("insert item: %w", execErr)}
		}

		rows, raErr := result.RowsAffected()
		if raErr != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", raErr)}
		}
		if rows > 0 {
			created = true
			return nil
		}

		// known URL, refresh the stored copy
		update := `
			UPDATE items
			SET source = :source, title = :title, content = :content,
			    published = :published, content_type = :content_type,
			    priority = :priority, significance = :significance,
			    summary = :summary, processed = :processed,
			    updated_at = datetime('now')
			WHERE url_hash = :url_hash
		`
		if _, execErr := s.conn.NamedExecContext(ctx, update, sqlItem); execErr != nil {
			if isLockError(execErr) {
				return execErr // retry
			}
			return &criticalError{err: fmt.Errorf("update item: %w", execErr)}
		}
		created = false
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// GetRecent retrieves items published within the window, ordered by
// significance and then recency
func (s *Store) GetRecent(ctx context.Context, window time.Duration, limit int) ([]domain.ScoredItem, error) {
	if limit <= 0 {
		limit = 50
	}
	cutoff := time.Now().UTC().Add(-window)

	var rows []itemSQL
	query := `
		SELECT * FROM items
		WHERE published >= ?
		ORDER BY significance DESC, published DESC
		LIMIT ?
	`
	if err := s.conn.SelectContext(ctx, &rows, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("get recent items: %w", err)
	}

	items := make([]domain.ScoredItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toDomain()
	}
	return items, nil
}

// CountItems returns the total number of stored items
func (s *Store) CountItems(ctx context.Context) (int64, error) {
	var count int64
	err := s.conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM items`)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// DeleteOlderThan deletes items stored earlier than the given age and
// returns the number of removed rows
func (s *Store) DeleteOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := s.conn.ExecContext(ctx, `DELETE FROM items WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old items: %w", err)
	}
	return result.RowsAffected()
}
