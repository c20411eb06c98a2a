package store

import (
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

// ListToReadBooks returns the books on a user's to-read list. The ids are
// collected first, then resolved with a single batched fetch; ids whose book
// no longer exists are omitted.
func (s *Store) ListToReadBooks(userID int) ([]*model.Book, error) {
	stmt := `
	SELECT
		book_id
	FROM to_read
	WHERE user_id = ?`
	args := []any{userID}

	log.Debug("SQL query and args", zap.String("query", stmt), zap.Any("args", args))

	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		log.Error("Failed to query to-read list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	bookIDs := make([]int, 0)
	for rows.Next() {
		var bookID int
		if err := rows.Scan(&bookID); err != nil {
			log.Error("Failed to scan to-read book id", zap.Error(err))
			return nil, err
		}
		bookIDs = append(bookIDs, bookID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return s.ListBooksByIDs(bookIDs)
}
