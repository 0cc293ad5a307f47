package session

const (
	menuSeparator = "------------------------------------"
	menuTitle     = "-----------# LTU Library-----------"

	// Prompts ending in a newline put the answer on the next line, the others on the same line.
	promptOption       = "> Enter your option: \n"
	promptTitle        = "> Enter book title: \n"
	promptISBN         = "> Enter ISBN-10 code: \n"
	promptBookID       = "> Enter book ID number: \n"
	promptRemoveBookID = "> Enter book ID number: "
	promptLender       = "> Enter lender's name: "
	promptStartDate    = "> Enter start date of the loan (YYYY-MM-DD): "
	promptReturnDate   = "> Enter return date (YYYY-MM-DD): "

	msgCapacityReached       = "Library capacity reached. Can not add more books."
	msgLedgerCapacityReached = "Loan ledger capacity reached. Can not loan more books."
	msgInvalidISBN           = "Invalid ISBN format. Please use format: 123456789-0"
	msgISBNExists            = "ISBN %s already exists.\n"
	msgBookAdded             = "Book with title %s was assigned ID %d and added to the system."
	msgBookRemoved           = "Book %s was removed from the system."
	msgBookIsLoanedOut       = "Book with ID %d is loaned out and needs to be returned before removal."
	msgIDDoesNotExist        = "ID %d Does not exist.\n"
	msgBookDoesNotExist      = "Book with ID %d does not exist."
	msgBookAlreadyLoaned     = "Book %s is already loaned"
	msgInvalidDate           = "Invalid date format. Please use YYYY-MM-DD."
	msgBookLent              = "Book %s was loaned by %s on %s."
	msgNotCurrentlyLoaned    = "ID %d is not currently loaned.\n"
	msgInvalidMenuItem       = "Invalid menu item. Please try again."
	msgInvalidBookID         = "Invalid book ID: %s"
	msgOperationFailed       = "Operation failed: %v"
	msgGoodbye               = "Exiting LTU Library System. Goodbye!"

	receiptLender   = "Lender's name: %s"
	receiptTitle    = "Book title: %s"
	receiptISBN     = "ISBN-10: %s"
	receiptPeriod   = "Period: %s to %s"
	receiptDuration = "Duration: %d days"
	receiptCost     = "Cost: %d"

	bookListHeader  = "Book list LTU Library"
	bookListColumns = "ID    ISBN-10    Title    Status"
	bookListRow     = "%-6s %-14s %-22s %-10s"

	loanSummaryHeader  = "Loan summary LTU Library"
	loanSummaryColumns = "ID    Lender    Start Date    Return Date Cost"
	loanSummaryRow     = "%-6s %-13s %-12s %-12s %d"
	loanSummaryCount   = "Number of loans: %d"
	loanSummaryTotal   = "Total cost: %d"
)

var menuItems = []string{
	"1. Add book",
	"2. Remove book",
	"3. Loan a book",
	"4. Return a book",
	"5. Print book list",
	"6. Print lending summary",
	"q. End program",
}
