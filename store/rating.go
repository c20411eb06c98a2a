package store

import (
	"math"

	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

// UpsertRating atomically creates or replaces the rating keyed by
// (user_id, book_id) and reports whether an insert happened. The UPDATE's
// RowsAffected is the storage signal for the branch; both statements run in
// one transaction so concurrent upserts for the same pair cannot interleave.
func (s *Store) UpsertRating(rating *model.RatingIn) (created bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	stmt := `UPDATE ratings SET rating = ? WHERE user_id = ? AND book_id = ?`
	args := []any{rating.Rating, rating.UserID, rating.BookID}

	log.Debug("SQL query and args", zap.String("query", stmt), zap.Any("args", args))

	res, err := tx.Exec(stmt, args...)
	if err != nil {
		log.Error("Failed to update rating", zap.Error(err))
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if affected == 0 {
		// The conflict clause keeps a racing pair of first-time upserts
		// from failing on the unique constraint.
		stmt = `
		INSERT INTO ratings (user_id, book_id, rating)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, book_id) DO UPDATE
		SET rating = excluded.rating`
		args = []any{rating.UserID, rating.BookID, rating.Rating}

		log.Debug("SQL query and args", zap.String("query", stmt), zap.Any("args", args))

		if _, err := tx.Exec(stmt, args...); err != nil {
			log.Error("Failed to insert rating", zap.Error(err))
			return false, err
		}
		created = true
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return created, nil
}

// GetRatingSummary aggregates all ratings of one book into mean and
// zero-filled 1..5 histogram. Returns nil when the book has no ratings,
// which is distinct from the book itself being absent.
func (s *Store) GetRatingSummary(bookID int) (*model.RatingSummary, error) {
	query := `
	SELECT
		rating,
		COUNT(*)
	FROM ratings
	WHERE book_id = ?
	GROUP BY rating`
	args := []any{bookID}

	log.Debug("SQL query and args", zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to aggregate ratings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	histogram := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sum, count := 0, 0
	for rows.Next() {
		var score, n int
		if err := rows.Scan(&score, &n); err != nil {
			log.Error("Failed to scan rating bucket", zap.Error(err))
			return nil, err
		}
		histogram[score] = n
		sum += score * n
		count += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	avg := math.Round(float64(sum)/float64(count)*100) / 100

	return &model.RatingSummary{
		BookID:        bookID,
		AverageRating: avg,
		RatingsCount:  count,
		Histogram:     histogram,
	}, nil
}

func (s *Store) CountRatings() (int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ratings`).Scan(&total); err != nil {
		log.Error("Failed to count ratings", zap.Error(err))
		return 0, err
	}
	return total, nil
}

// GetRating is a lookup by the composite identity, used by tests and the
// ingest verifier.
func (s *Store) GetRating(userID, bookID int) (*model.Rating, error) {
	query := `
	SELECT
		id,
		user_id,
		book_id,
		rating
	FROM ratings
	WHERE user_id = ? AND book_id = ?`

	rows, err := s.db.Query(query, userID, bookID)
	if err != nil {
		log.Error("Failed to query rating", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var r model.Rating
	if err := rows.Scan(&r.ID, &r.UserID, &r.BookID, &r.Rating); err != nil {
		return nil, err
	}
	return &r, nil
}
