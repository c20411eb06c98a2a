package store

import (
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

// ResolveTag finds the first tag whose name contains the pattern,
// case-insensitively. Ordering by tag_id makes "first" deterministic.
// Returns nil when nothing matches.
func (s *Store) ResolveTag(pattern string) (*model.Tag, error) {
	query := `
	SELECT
		id,
		tag_id,
		tag_name
	FROM tags
	WHERE INSTR(LOWER(tag_name), LOWER(?)) > 0
	ORDER BY tag_id
	LIMIT 1`
	args := []any{pattern}

	log.Debug("SQL query and args", zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to resolve tag", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var tag model.Tag
	if err := rows.Scan(&tag.ID, &tag.TagID, &tag.TagName); err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTagStats aggregates book_tags per tag: book_count is the number of
// books carrying the tag, total_uses the summed count field. The reported
// total is the size of the tags collection, which can exceed the number of
// aggregated rows when tags have no book_tags usage.
func (s *Store) ListTagStats(page, pageSize int) ([]*model.TagStat, int, error) {
	query := `
	SELECT
		bt.tag_id,
		COALESCE(t.tag_name, '') AS tag_name,
		COUNT(*) AS book_count,
		SUM(bt.count) AS total_uses
	FROM book_tags bt
	LEFT JOIN tags t ON t.tag_id = bt.tag_id
	GROUP BY bt.tag_id
	ORDER BY total_uses DESC
	LIMIT ? OFFSET ?`
	if page < 1 {
		page = 1
	}
	args := []any{pageSize, (page - 1) * pageSize}

	log.Debug("SQL query and args", zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to aggregate tags", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*model.TagStat, 0)
	for rows.Next() {
		var stat model.TagStat
		if err := rows.Scan(&stat.TagID, &stat.TagName, &stat.BookCount, &stat.TotalUses); err != nil {
			log.Error("Failed to scan tag stat", zap.Error(err))
			return nil, 0, err
		}
		list = append(list, &stat)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := s.CountTags()
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *Store) CountTags() (int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		log.Error("Failed to count tags", zap.Error(err))
		return 0, err
	}
	return total, nil
}

// ListBookTags returns every book_tags row of one book joined with its tag
// name, in natural storage order. Callers resolve the book's
// goodreads_book_id first; book_tags never keys on book_id.
func (s *Store) ListBookTags(goodreadsBookID int) ([]*model.BookTagRow, error) {
	query := `
	SELECT
		bt.tag_id,
		COALESCE(t.tag_name, '') AS tag_name,
		bt.count
	FROM book_tags bt
	LEFT JOIN tags t ON t.tag_id = bt.tag_id
	WHERE bt.goodreads_book_id = ?`
	args := []any{goodreadsBookID}

	log.Debug("SQL query and args", zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query book tags", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.BookTagRow, 0)
	for rows.Next() {
		var row model.BookTagRow
		if err := rows.Scan(&row.TagID, &row.TagName, &row.Count); err != nil {
			log.Error("Failed to scan book tag", zap.Error(err))
			return nil, err
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
