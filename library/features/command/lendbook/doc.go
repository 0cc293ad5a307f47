// Package lendbook implements the Lend Book use case: it opens a loan for an available book.
//
// Open and closed loans both count toward the ledger capacity, since loans are never deleted.
// Failed operations generate LendingBookFailed events.
package lendbook
