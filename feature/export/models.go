package export

import (
	"encoding/json"

	"ebook-indexer/core/catalog"
)

// BookRow represents the 'books' table written by ToDatabase.
// Only live records are exported.
type BookRow struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Path         string  `gorm:"column:full_path;size:768;uniqueIndex"`
	URI          string  `gorm:"column:uri_path;type:text"`
	Filename     string  `gorm:"column:filename;size:255"`
	Format       string  `gorm:"column:format;size:8;index"`
	Hash         string  `gorm:"column:xxhash;size:32"` // hex, empty when unhashed
	SizeBytes    int64   `gorm:"column:size_bytes"`
	DiscoveredAt string  `gorm:"column:date_found;size:40"`
	Missing      bool    `gorm:"column:missing"`
	Title        *string `gorm:"column:title;type:text"`
	Author       *string `gorm:"column:author;type:text"`
	Description  *string `gorm:"column:description;type:text"`
	Publisher    *string `gorm:"column:publisher;type:text"`
	PublishDate  *string `gorm:"column:publish_date;size:64"`
	Chapters     string  `gorm:"column:chapters;type:text"`       // JSON array
	Extras       string  `gorm:"column:other_metadata;type:text"` // JSON object
}

// TableName overrides the table name.
func (BookRow) TableName() string {
	return "books"
}

// NewBookRow flattens a record into a row.
func NewBookRow(r catalog.Record) BookRow {
	row := BookRow{
		Path:         r.Path,
		URI:          r.URI,
		Filename:     r.Filename,
		Format:       string(r.Format),
		SizeBytes:    r.SizeBytes,
		DiscoveredAt: r.DiscoveredAt,
		Missing:      r.Missing,
		Title:        r.Title,
		Author:       r.Author,
		Description:  r.Description,
		Publisher:    r.Publisher,
		PublishDate:  r.PublishDate,
		Chapters:     mustJSON(r.Chapters, "[]"),
		Extras:       mustJSON(r.Extras, "{}"),
	}
	if r.Hash != nil {
		row.Hash = r.Hash.String()
	}
	return row
}

// Rows returns one row per live record in catalog order.
func Rows(c *catalog.Catalog) []BookRow {
	live := c.Live()
	rows := make([]BookRow, 0, len(live))
	for _, r := range live {
		rows = append(rows, NewBookRow(r))
	}
	return rows
}

func mustJSON(v any, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return fallback
	}
	return string(data)
}
