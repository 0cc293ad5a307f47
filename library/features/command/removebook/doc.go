// Package removebook implements the Remove Book use case.
//
// A book can only be removed while it is not loaned out. Removing it frees its id,
// its ISBN and a slot of the catalog capacity.
package removebook
