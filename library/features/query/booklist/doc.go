// Package booklist implements the Book List query use case.
//
// The query projects the catalog from the event history: every book that was added and not
// removed, with its current lending status. Books are sorted by id ascending, so the output
// is deterministic and two queries without an intervening command return the same list.
//
// The projection also serves lookups by id and ISBN, which the session uses to phrase
// its messages before a command is executed.
package booklist
