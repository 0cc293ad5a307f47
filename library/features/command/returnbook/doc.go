// Package returnbook implements the Return Book use case: it closes the open loan of a book
// and fixes its duration and late fee on the 360/30 loan calendar.
package returnbook
