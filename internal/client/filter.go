package client

import (
	"strings"

	"github.com/libraops/library-service/internal/domain"
)

// FilterBooks applies the panel's local filter over an already-fetched
// list: a case-insensitive substring match against title, author, or
// category, optionally narrowed to books published in or after minYear
// (minYear <= 0 disables the year filter). Pure function; the input slice
// is not modified.
func FilterBooks(books []domain.Book, search string, minYear int) []domain.Book {
	search = strings.ToLower(search)

	var out []domain.Book
	for _, b := range books {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(b.Title), search) ||
			strings.Contains(strings.ToLower(b.Author), search) ||
			strings.Contains(strings.ToLower(b.Category), search)

		matchesYear := minYear <= 0 || b.PublishedYear >= minYear

		if matchesSearch && matchesYear {
			out = append(out, b)
		}
	}
	return out
}

// FilterCustomers matches a case-insensitive substring against name or
// membership.
func FilterCustomers(customers []domain.Customer, search string) []domain.Customer {
	search = strings.ToLower(search)

	var out []domain.Customer
	for _, c := range customers {
		if search == "" ||
			strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(strings.ToLower(c.Membership), search) {
			out = append(out, c)
		}
	}
	return out
}
