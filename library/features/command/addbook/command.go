package addbook

import (
	"time"

	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
// BookID is left empty by callers: the CommandHandler assigns it before deciding.
type Command struct {
	BookID     core.BookIDInt
	ISBN       core.ISBNString `validate:"isbn10"`
	Title      string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(isbn core.ISBNString, title string, occurredAt time.Time) Command {
	return Command{
		ISBN:       isbn,
		Title:      title,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
