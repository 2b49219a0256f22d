package utils

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CleanString strips a leading BOM and surrounding whitespace.
func CleanString(s string) string {
	s = strings.ReplaceAll(s, "\ufeff", "")
	return strings.TrimSpace(s)
}

// Inc is the template helper for 1-based row numbers.
func Inc(i int) int {
	return i + 1
}

// GORM scope: newest rows first
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey},
		Desc:   true,
	})
}

// GORM scope: insertion order
func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey},
	})
}
