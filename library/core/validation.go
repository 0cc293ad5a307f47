package core

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validation tags for command fields.
const (
	// ValidationTagISBN10 accepts nine digits, a hyphen and one check digit.
	// It replaces the validator's built-in isbn10 rule, which expects no hyphen and a valid checksum.
	ValidationTagISBN10 = "isbn10"

	// ValidationTagLoanDate accepts a YYYY-MM-DD date with month 1..12 and day 1..31.
	ValidationTagLoanDate = "loandate"
)

var commandValidator = newCommandValidator()

func newCommandValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation(ValidationTagISBN10, func(fl validator.FieldLevel) bool {
		return ValidISBN(fl.Field().String())
	})
	_ = v.RegisterValidation(ValidationTagLoanDate, func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// ValidateCommand checks the validate tags of a command struct.
// The first failing field decides the error: ErrMalformedISBN, ErrMalformedDate or ErrValidation.
func ValidateCommand(command any) error {
	err := commandValidator.Struct(command)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	first := fieldErrs[0]
	switch first.Tag() {
	case ValidationTagISBN10:
		return fmt.Errorf("%w: field %s", ErrMalformedISBN, first.Field())
	case ValidationTagLoanDate:
		return fmt.Errorf("%w: field %s", ErrMalformedDate, first.Field())
	default:
		return fmt.Errorf("%w: field %s failed on %s", ErrValidation, first.Field(), first.Tag())
	}
}
