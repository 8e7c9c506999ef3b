package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/newsletter-press/internal/models"
)

// Header is the fixed column order of the persisted file
var Header = []string{"edition_id", "date", "language", "title", "content_md", "published"}

// DecodeCollection parses the persisted tabular form. Columns missing from
// the source are back-filled as null/empty for every row, never dropped.
// A malformed source yields an error; callers fall back to an empty
// collection and surface the diagnostic.
func DecodeCollection(r io.Reader) (models.Collection, error) {
	reader := csv.NewReader(r)
	// Tolerate ragged rows; absent trailing fields back-fill as empty
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return models.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var editions models.Collection
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(editions)+2, err)
		}
		editions = append(editions, models.Edition{
			EditionID: getField(record, headerMap, "edition_id"),
			Date:      models.ParseDate(getField(record, headerMap, "date")),
			Language:  getField(record, headerMap, "language"),
			Title:     getField(record, headerMap, "title"),
			ContentMD: getField(record, headerMap, "content_md"),
			Published: models.ParsePublished(getField(record, headerMap, "published")),
		})
	}
	if editions == nil {
		editions = models.Collection{}
	}
	return editions, nil
}

// EncodeCollection writes the collection in the persisted tabular form:
// fixed header, one row per edition, standard CSV quoting.
func EncodeCollection(w io.Writer, c models.Collection) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range c {
		row := []string{
			e.EditionID,
			models.FormatDate(e.Date),
			e.Language,
			e.Title,
			e.ContentMD,
			models.FormatPublished(e.Published),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", e.EditionID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func getField(record []string, headerMap map[string]int, field string) string {
	if idx, ok := headerMap[field]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
