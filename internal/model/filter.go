package model

import (
	"strings"
)

// FilterBooks returns the books whose title or author contains query,
// case-insensitively. An empty query keeps every book.
func FilterBooks(books []Book, query string) []Book {
	if query == "" {
		return books
	}
	q := strings.ToLower(query)
	filtered := make([]Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
