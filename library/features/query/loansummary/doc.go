// Package loansummary implements the Loan Summary query use case.
//
// The summary lists every closed loan in the order the books were returned, together with
// a running count and a running total of the late fees. Open loans are not part of it.
package loansummary
