package returnbook

import (
	"time"

	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return a loaned book on ReturnDate.
// ReturnDate is the raw operator input, Decide validates it.
type Command struct {
	BookID     core.BookIDInt
	ReturnDate core.DateString `validate:"loandate"`
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID core.BookIDInt, returnDate core.DateString, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		ReturnDate: returnDate,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
