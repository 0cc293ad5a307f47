package lendbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	commandType = "LendBook"
)

// Command represents the intent to lend a book to a lender starting on StartDate.
// StartDate is the raw operator input, Decide validates it.
type Command struct {
	LoanID     uuid.UUID
	BookID     core.BookIDInt
	Lender     string
	StartDate  core.DateString `validate:"loandate"`
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a fresh LoanID.
func BuildCommand(bookID core.BookIDInt, lender string, startDate core.DateString, occurredAt time.Time) Command {
	return Command{
		LoanID:     uuid.New(),
		BookID:     bookID,
		Lender:     lender,
		StartDate:  startDate,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
