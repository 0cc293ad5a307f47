// Package addbook implements the Add Book use case.
//
// A new book gets a system-assigned id that is not used by any book currently in the catalog.
// The catalog is bounded by a configurable capacity, and ISBNs must be well formed and unique.
// It follows the Command-Query-Decide-Append pattern: the CommandHandler does the I/O and the id
// allocation, the pure Decide function applies the business rules.
package addbook
