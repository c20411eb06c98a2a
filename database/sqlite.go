package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/goodbooks/goodbooks-api/config"
)

func NewDB() (*sql.DB, error) {
	if config.Opts.DSN == "" {
		return nil, errors.New("database DSN is required")
	}

	db, err := sql.Open("sqlite", config.Opts.DSN)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// schema holds the five catalog collections plus the secondary indexes the
// query paths rely on. book_id is the stable internal key; goodreads_book_id
// is the external key book_tags rows reference.
const schema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	book_id INTEGER NOT NULL UNIQUE,
	goodreads_book_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	authors TEXT NOT NULL,
	original_publication_year INTEGER,
	average_rating REAL NOT NULL DEFAULT 0,
	ratings_count INTEGER NOT NULL DEFAULT 0,
	image_url TEXT,
	small_image_url TEXT
);
CREATE INDEX IF NOT EXISTS idx_books_title_authors ON books(title, authors);
CREATE INDEX IF NOT EXISTS idx_books_average_rating ON books(average_rating DESC);
CREATE INDEX IF NOT EXISTS idx_books_goodreads ON books(goodreads_book_id);

CREATE TABLE IF NOT EXISTS ratings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	book_id INTEGER NOT NULL,
	rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	UNIQUE (user_id, book_id)
);
CREATE INDEX IF NOT EXISTS idx_ratings_book ON ratings(book_id);

CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tag_id INTEGER NOT NULL UNIQUE,
	tag_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(tag_name);

CREATE TABLE IF NOT EXISTS book_tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	goodreads_book_id INTEGER NOT NULL,
	tag_id INTEGER NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	UNIQUE (goodreads_book_id, tag_id)
);
CREATE INDEX IF NOT EXISTS idx_book_tags_tag ON book_tags(tag_id);
CREATE INDEX IF NOT EXISTS idx_book_tags_goodreads ON book_tags(goodreads_book_id);

CREATE TABLE IF NOT EXISTS to_read (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	book_id INTEGER NOT NULL,
	UNIQUE (user_id, book_id)
);
`

func Migrate(db *sql.DB, ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "unable to apply schema")
	}
	return nil
}
