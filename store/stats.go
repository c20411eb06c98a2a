package store

import (
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

// GetDatasetStats reports whole-dataset counters; users_total counts the
// distinct raters, not an account table.
func (s *Store) GetDatasetStats() (*model.DatasetStats, error) {
	var stats model.DatasetStats

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&stats.BooksTotal); err != nil {
		log.Error("Failed to count books", zap.Error(err))
		return nil, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ratings`).Scan(&stats.RatingsTotal); err != nil {
		log.Error("Failed to count ratings", zap.Error(err))
		return nil, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT user_id) FROM ratings`).Scan(&stats.UsersTotal); err != nil {
		log.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	return &stats, nil
}
