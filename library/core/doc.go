// Package core contains the domain of the LTU library: book and loan events, the decision result
// returned by Decide functions, and the pure rules for ISBNs, loan dates and late fees.
//
// Events describe what happened (BookAdded, BookLent, ...) rather than generic create/update
// operations. Failed business decisions are recorded as well, as *Failed events.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
