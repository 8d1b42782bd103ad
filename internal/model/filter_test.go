package model_test

import (
	"testing"

	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/stretchr/testify/require"
)

func TestFilterBooks(t *testing.T) {
	t.Parallel()
	books := []model.Book{
		{BookID: "B1", Title: "Dune", Author: "Herbert", Category: "Fiction", Quantity: 1},
		{BookID: "B2", Title: "Dune Messiah", Author: "Herbert", Category: "Fiction", Quantity: 2},
		{BookID: "B3", Title: "Calculus", Author: "Spivak", Category: "Math", Quantity: 3},
	}

	var tests = []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "empty query keeps all", query: "", wantIDs: []string{"B1", "B2", "B3"}},
		{name: "title match case-insensitive", query: "dune", wantIDs: []string{"B1", "B2"}},
		{name: "author match", query: "spivak", wantIDs: []string{"B3"}},
		{name: "no match", query: "tolstoy", wantIDs: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := model.FilterBooks(books, tt.query)
			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.BookID)
			}
			require.Equal(t, tt.wantIDs, ids)
		})
	}
}
