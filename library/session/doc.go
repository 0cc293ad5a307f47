// Package session implements the line-oriented operator dialog of the library.
//
// A Session prints the menu, reads the operator's choice and the prompted values from an
// io.Reader and dispatches them to the command and query handlers. Business failures are
// printed and the dialog continues, only the end of input, "q" or a canceled context end it.
package session
