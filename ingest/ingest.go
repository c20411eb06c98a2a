// Package ingest bulk-loads the goodbooks-10k CSV files into the catalog.
// Columns are resolved by header name, so extra dataset columns are ignored
// and column order does not matter.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/model"
	"github.com/goodbooks/goodbooks-api/store"
)

// Run imports books, tags, book_tags, ratings and to_read CSVs from dir.
// Each file loads in one transaction with replace-on-conflict semantics, so
// re-running an import converges.
func Run(s *store.Store, dir string) error {
	books, err := readBooks(filepath.Join(dir, "books.csv"))
	if err != nil {
		return err
	}
	if err := s.ImportBooks(books); err != nil {
		return errors.Wrap(err, "importing books")
	}
	log.Info("Imported books", zap.Int("count", len(books)))

	tags, err := readTags(filepath.Join(dir, "tags.csv"))
	if err != nil {
		return err
	}
	if err := s.ImportTags(tags); err != nil {
		return errors.Wrap(err, "importing tags")
	}
	log.Info("Imported tags", zap.Int("count", len(tags)))

	bookTags, err := readBookTags(filepath.Join(dir, "book_tags.csv"))
	if err != nil {
		return err
	}
	if err := s.ImportBookTags(bookTags); err != nil {
		return errors.Wrap(err, "importing book tags")
	}
	log.Info("Imported book tags", zap.Int("count", len(bookTags)))

	ratings, err := readRatings(filepath.Join(dir, "ratings.csv"))
	if err != nil {
		return err
	}
	if err := s.ImportRatings(ratings); err != nil {
		return errors.Wrap(err, "importing ratings")
	}
	log.Info("Imported ratings", zap.Int("count", len(ratings)))

	toRead, err := readToRead(filepath.Join(dir, "to_read.csv"))
	if err != nil {
		return err
	}
	if err := s.ImportToRead(toRead); err != nil {
		return errors.Wrap(err, "importing to-read entries")
	}
	log.Info("Imported to-read entries", zap.Int("count", len(toRead)))

	return nil
}

// record is one CSV row addressed by header name. Missing and empty cells
// read as "".
type record struct {
	columns map[string]int
	fields  []string
}

func (rec record) get(name string) string {
	idx, ok := rec.columns[name]
	if !ok || idx >= len(rec.fields) {
		return ""
	}
	return rec.fields[idx]
}

func (rec record) getInt(name string) int {
	n, err := strconv.Atoi(rec.get(name))
	if err != nil {
		return 0
	}
	return n
}

func (rec record) getFloat(name string) float64 {
	f, err := strconv.ParseFloat(rec.get(name), 64)
	if err != nil {
		return 0
	}
	return f
}

// getOptionalYear handles the dataset's float-formatted years ("2004.0") and
// blank cells.
func (rec record) getOptionalYear(name string) *int {
	value := rec.get(name)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	year := int(f)
	return &year
}

func (rec record) getOptionalString(name string) *string {
	value := rec.get(name)
	if value == "" {
		return nil
	}
	return &value
}

func readCSV(path string, each func(rec record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return errors.Wrapf(err, "unable to read header of %s", path)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "unable to read row of %s", path)
		}
		if err := each(record{columns: columns, fields: fields}); err != nil {
			return err
		}
	}
}

func readBooks(path string) ([]*model.Book, error) {
	books := make([]*model.Book, 0)
	err := readCSV(path, func(rec record) error {
		books = append(books, &model.Book{
			BookID:                  rec.getInt("book_id"),
			GoodreadsBookID:         rec.getInt("goodreads_book_id"),
			Title:                   rec.get("title"),
			Authors:                 rec.get("authors"),
			OriginalPublicationYear: rec.getOptionalYear("original_publication_year"),
			AverageRating:           rec.getFloat("average_rating"),
			RatingsCount:            rec.getInt("ratings_count"),
			ImageURL:                rec.getOptionalString("image_url"),
			SmallImageURL:           rec.getOptionalString("small_image_url"),
		})
		return nil
	})
	return books, err
}

func readTags(path string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0)
	err := readCSV(path, func(rec record) error {
		tags = append(tags, &model.Tag{
			TagID:   rec.getInt("tag_id"),
			TagName: rec.get("tag_name"),
		})
		return nil
	})
	return tags, err
}

func readBookTags(path string) ([]*model.BookTag, error) {
	bookTags := make([]*model.BookTag, 0)
	err := readCSV(path, func(rec record) error {
		bookTags = append(bookTags, &model.BookTag{
			GoodreadsBookID: rec.getInt("goodreads_book_id"),
			TagID:           rec.getInt("tag_id"),
			Count:           rec.getInt("count"),
		})
		return nil
	})
	return bookTags, err
}

func readRatings(path string) ([]*model.RatingIn, error) {
	ratings := make([]*model.RatingIn, 0)
	err := readCSV(path, func(rec record) error {
		ratings = append(ratings, &model.RatingIn{
			UserID: rec.getInt("user_id"),
			BookID: rec.getInt("book_id"),
			Rating: rec.getInt("rating"),
		})
		return nil
	})
	return ratings, err
}

func readToRead(path string) ([]*model.ToRead, error) {
	entries := make([]*model.ToRead, 0)
	err := readCSV(path, func(rec record) error {
		entries = append(entries, &model.ToRead{
			UserID: rec.getInt("user_id"),
			BookID: rec.getInt("book_id"),
		})
		return nil
	})
	return entries, err
}
