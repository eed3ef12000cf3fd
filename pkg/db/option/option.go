package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Option mutates a gorm statement before execution.
type Option interface {
	Apply(*gorm.DB) *gorm.DB
}

type sortBy struct {
	clause string
}

func (s sortBy) Apply(stmt *gorm.DB) *gorm.DB {
	if s.clause == "" {
		return stmt
	}
	return stmt.Order(s.clause)
}

// WithSortBy orders by the given clause; empty clauses are ignored.
func WithSortBy(clause string) Option {
	return sortBy{clause: clause}
}

// WithQuerySortBy validates a user-supplied sort field against the allowed
// column set and normalizes the direction. Unknown fields fall back to id.
func WithQuerySortBy(field, direction string, allowed map[string]bool) string {
	field = strings.TrimSpace(strings.ToLower(field))
	if field == "" || !allowed[field] {
		field = "id"
	}

	direction = strings.TrimSpace(strings.ToUpper(direction))
	if direction != "ASC" && direction != "DESC" {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s", field, direction)
}
