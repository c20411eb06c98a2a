package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

const bookColumns = `
	id,
	book_id,
	goodreads_book_id,
	title,
	authors,
	original_publication_year,
	average_rating,
	ratings_count,
	image_url,
	small_image_url`

// buildBookFilter assembles the WHERE clause shared by the count and the page
// query, so total and items always see the same predicate.
func (s *Store) buildBookFilter(find *model.FindBook) ([]string, []any, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.Query; v != nil {
		// Case-insensitive substring over title OR authors. INSTR over
		// LOWER avoids LIKE wildcard escaping.
		where = append(where, "(INSTR(LOWER(title), LOWER(?)) > 0 OR INSTR(LOWER(authors), LOWER(?)) > 0)")
		args = append(args, *v, *v)
	}
	if v := find.Author; v != nil {
		where = append(where, "INSTR(LOWER(authors), LOWER(?)) > 0")
		args = append(args, *v)
	}
	if v := find.MinAvg; v != nil {
		where, args = append(where, "average_rating >= ?"), append(args, *v)
	}
	if v := find.YearFrom; v != nil {
		where, args = append(where, "original_publication_year >= ?"), append(args, *v)
	}
	if v := find.YearTo; v != nil {
		where, args = append(where, "original_publication_year <= ?"), append(args, *v)
	}
	if v := find.Tag; v != nil {
		tag, err := s.ResolveTag(*v)
		if err != nil {
			return nil, nil, err
		}
		if tag == nil {
			// No tag matches the pattern: degrade to an empty inclusion
			// set instead of erroring.
			where = append(where, "1 = 0")
		} else {
			where = append(where, "goodreads_book_id IN (SELECT goodreads_book_id FROM book_tags WHERE tag_id = ?)")
			args = append(args, tag.TagID)
		}
	}

	return where, args, nil
}

// ListBooks returns one page of books matching the filter plus the total
// count over the same filter.
func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, int, error) {
	where, args, err := s.buildBookFilter(find)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countBooks(where, args)
	if err != nil {
		return nil, 0, err
	}

	// Secondary sort on id keeps pages deterministic when the sort field
	// carries duplicates.
	query := `SELECT` + bookColumns + `
	FROM books
	WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT ? OFFSET ?", find.SortField(), find.SortDirection())
	args = append(args, find.PageSize, find.Offset())

	log.Debug("SQL query and args", zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, 0, err
		}
		list = append(list, book)
	}
	return list, total, rows.Err()
}

func (s *Store) countBooks(where []string, args []any) (int, error) {
	query := `SELECT COUNT(*) FROM books WHERE ` + strings.Join(where, " AND ")

	log.Debug("SQL query and args", zap.String("query", query), zap.Any("args", args))

	var total int
	if err := s.db.QueryRow(query, args...).Scan(&total); err != nil {
		log.Error("Failed to count books", zap.Error(err))
		return 0, err
	}
	return total, nil
}

// GetBook returns the book with the given book_id, or nil when absent.
func (s *Store) GetBook(bookID int) (*model.Book, error) {
	query := `SELECT` + bookColumns + `
	FROM books
	WHERE book_id = ?`
	args := []any{bookID}

	log.Debug("SQL query and args", zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query book", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanBook(rows)
}

// ListBooksByIDs fetches books for a batch of book_ids in one query. Ids
// without a matching book are silently omitted.
func (s *Store) ListBooksByIDs(bookIDs []int) ([]*model.Book, error) {
	if len(bookIDs) == 0 {
		return []*model.Book{}, nil
	}

	ids := make([]string, 0, len(bookIDs))
	for _, id := range bookIDs {
		ids = append(ids, fmt.Sprintf("%d", id))
	}

	query := `SELECT` + bookColumns + `
	FROM books
	WHERE book_id IN (` + strings.Join(ids, ",") + `)`

	log.Debug("SQL query", zap.String("query", query))

	rows, err := s.db.Query(query)
	if err != nil {
		log.Error("Failed to query books by ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, book)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*model.Book, error) {
	var book model.Book
	if err := row.Scan(
		&book.ID,
		&book.BookID,
		&book.GoodreadsBookID,
		&book.Title,
		&book.Authors,
		&book.OriginalPublicationYear,
		&book.AverageRating,
		&book.RatingsCount,
		&book.ImageURL,
		&book.SmallImageURL,
	); err != nil {
		return nil, err
	}
	return &book, nil
}
