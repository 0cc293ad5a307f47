package core

import (
	"fmt"
	"regexp"
)

// ErrMalformedISBN is returned for ISBNs that are not in the form 123456789-0.
var ErrMalformedISBN = fmt.Errorf("%w: isbn is malformed", ErrValidation)

// The check digit is not verified, only the shape.
var isbnPattern = regexp.MustCompile(`^\d{9}-\d$`)

// ValidISBN reports whether isbn has the form of nine digits, a hyphen and one check digit.
func ValidISBN(isbn string) bool {
	return isbnPattern.MatchString(isbn)
}

// ParseISBN returns isbn unchanged if it is valid, otherwise an error wrapping ErrMalformedISBN.
func ParseISBN(isbn string) (ISBNString, error) {
	if !ValidISBN(isbn) {
		return "", fmt.Errorf("%w: %q", ErrMalformedISBN, isbn)
	}

	return isbn, nil
}
