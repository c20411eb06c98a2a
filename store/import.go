package store

import (
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
)

// Bulk loaders for the ingest command. Each one runs in a single transaction
// and replaces on conflict, so re-running an import converges.

func (s *Store) ImportBooks(books []*model.Book) error {
	stmt := `
	INSERT INTO books (
		book_id,
		goodreads_book_id,
		title,
		authors,
		original_publication_year,
		average_rating,
		ratings_count,
		image_url,
		small_image_url
	) VALUES (?,?,?,?,?,?,?,?,?)
	ON CONFLICT(book_id) DO UPDATE SET
		goodreads_book_id = excluded.goodreads_book_id,
		title = excluded.title,
		authors = excluded.authors,
		original_publication_year = excluded.original_publication_year,
		average_rating = excluded.average_rating,
		ratings_count = excluded.ratings_count,
		image_url = excluded.image_url,
		small_image_url = excluded.small_image_url`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, book := range books {
		if _, err := tx.Exec(stmt,
			book.BookID,
			book.GoodreadsBookID,
			book.Title,
			book.Authors,
			book.OriginalPublicationYear,
			book.AverageRating,
			book.RatingsCount,
			book.ImageURL,
			book.SmallImageURL,
		); err != nil {
			log.Error("Failed to import book", zap.Int("book_id", book.BookID), zap.Error(err))
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ImportRatings(ratings []*model.RatingIn) error {
	stmt := `
	INSERT INTO ratings (user_id, book_id, rating)
	VALUES (?,?,?)
	ON CONFLICT(user_id, book_id) DO UPDATE SET rating = excluded.rating`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range ratings {
		if _, err := tx.Exec(stmt, r.UserID, r.BookID, r.Rating); err != nil {
			log.Error("Failed to import rating", zap.Int("book_id", r.BookID), zap.Error(err))
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ImportTags(tags []*model.Tag) error {
	stmt := `
	INSERT INTO tags (tag_id, tag_name)
	VALUES (?,?)
	ON CONFLICT(tag_id) DO UPDATE SET tag_name = excluded.tag_name`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, tag := range tags {
		if _, err := tx.Exec(stmt, tag.TagID, tag.TagName); err != nil {
			log.Error("Failed to import tag", zap.Int("tag_id", tag.TagID), zap.Error(err))
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ImportBookTags(bookTags []*model.BookTag) error {
	stmt := `
	INSERT INTO book_tags (goodreads_book_id, tag_id, count)
	VALUES (?,?,?)
	ON CONFLICT(goodreads_book_id, tag_id) DO UPDATE SET count = excluded.count`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, bt := range bookTags {
		if _, err := tx.Exec(stmt, bt.GoodreadsBookID, bt.TagID, bt.Count); err != nil {
			log.Error("Failed to import book tag", zap.Int("tag_id", bt.TagID), zap.Error(err))
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ImportToRead(entries []*model.ToRead) error {
	stmt := `
	INSERT INTO to_read (user_id, book_id)
	VALUES (?,?)
	ON CONFLICT(user_id, book_id) DO NOTHING`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		if _, err := tx.Exec(stmt, e.UserID, e.BookID); err != nil {
			log.Error("Failed to import to-read entry", zap.Int("book_id", e.BookID), zap.Error(err))
			return err
		}
	}
	return tx.Commit()
}
