package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/features/command/addbook"
	"github.com/AntonStoeckl/ltu-library/library/features/command/lendbook"
	"github.com/AntonStoeckl/ltu-library/library/features/command/removebook"
	"github.com/AntonStoeckl/ltu-library/library/features/command/returnbook"
	"github.com/AntonStoeckl/ltu-library/library/features/query/booklist"
	"github.com/AntonStoeckl/ltu-library/library/features/query/loansummary"
	"github.com/AntonStoeckl/ltu-library/library/shell"
)

// ErrNilHandler is returned by NewSession when one of the Handlers is missing.
var ErrNilHandler = errors.New("session handler must not be nil")

// ErrInvalidBookID is the input error for a book id that is not a number.
var ErrInvalidBookID = fmt.Errorf("%w: book id is not a number", core.ErrInput)

// ErrInvalidMenuItem is the input error for an unknown menu choice.
var ErrInvalidMenuItem = fmt.Errorf("%w: unknown menu item", core.ErrInput)

// errEndOfInput signals that the input ended.
var errEndOfInput = errors.New("end of input")

// errReadInput wraps a failure of the underlying reader.
var errReadInput = errors.New("reading input failed")

const (
	logMsgOperationFailed = "session operation failed"
	logMsgInputRejected   = "session input rejected"
	logMsgSessionEnded    = "session ended"
	logAttrMenuItem       = "menu_item"
	logAttrError          = "error"
	logAttrErrorKind      = "error_kind"
)

// State is the lifecycle state of a Session.
type State int

const (
	Running State = iota
	Terminated
)

// Session is the operator dialog. It is not safe for concurrent use, one goroutine drives it.
type Session struct {
	handlers Handlers
	in       io.Reader
	reader   *lineReader
	out      io.Writer
	now      func() time.Time
	capacity int
	logger   shell.ContextualLogger
	state    State
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock for the occurred-at timestamps of commands.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCapacity sets the catalog capacity the add dialog checks before prompting. Values below 1 are ignored.
func WithCapacity(capacity int) Option {
	return func(s *Session) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithLogger sets the logger for failed operations and rejected input.
func WithLogger(logger shell.ContextualLogger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session reading operator input from in and writing the dialog to out.
func NewSession(handlers Handlers, in io.Reader, out io.Writer, opts ...Option) (*Session, error) {
	if handlers.AddBook == nil || handlers.RemoveBook == nil || handlers.LendBook == nil ||
		handlers.ReturnBook == nil || handlers.BookList == nil || handlers.LoanSummary == nil {
		return nil, ErrNilHandler
	}

	s := &Session{
		handlers: handlers,
		in:       in,
		out:      out,
		now:      time.Now,
		capacity: addbook.DefaultCapacity,
		state:    Running,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Run drives the dialog until the operator quits or the input ends.
// Business failures never end the dialog. Run returns an error only if reading the input fails
// or ctx is done, also while it waits for input. A terminated Session does not run again.
func (s *Session) Run(ctx context.Context) error {
	if s.state != Running {
		return nil
	}

	s.reader = startLineReader(s.in)
	defer s.reader.stop()

	for s.state == Running {
		if err := ctx.Err(); err != nil {
			s.state = Terminated
			return err
		}

		s.printMenu()

		choice, err := s.readLine(ctx, promptOption)
		if err != nil {
			return s.end(ctx, err)
		}

		if err := s.dispatch(ctx, choice); err != nil {
			s.state = Terminated
			return err
		}
	}

	return nil
}

// end terminates the dialog. The end of input is a regular quit.
func (s *Session) end(ctx context.Context, err error) error {
	if errors.Is(err, errEndOfInput) {
		s.quit(ctx)
		return nil
	}

	s.state = Terminated

	return err
}

func (s *Session) dispatch(ctx context.Context, choice string) error {
	var err error

	switch choice {
	case "1":
		err = s.addBook(ctx)
	case "2":
		err = s.removeBook(ctx)
	case "3":
		err = s.lendBook(ctx)
	case "4":
		err = s.returnBook(ctx)
	case "5":
		err = s.printBookList(ctx)
	case "6":
		err = s.printLoanSummary(ctx)
	case "q":
		s.quit(ctx)
	default:
		s.rejectInput(ctx, choice, ErrInvalidMenuItem)
		s.println(msgInvalidMenuItem)
	}

	if errors.Is(err, errEndOfInput) || errors.Is(err, errReadInput) {
		return s.end(ctx, err)
	}

	return s.report(ctx, choice, err)
}

func (s *Session) addBook(ctx context.Context) error {
	catalog, err := s.handlers.BookList.Handle(ctx, booklist.BuildQuery())
	if err != nil {
		return err
	}

	if catalog.Count >= s.capacity {
		s.println(msgCapacityReached)
		return nil
	}

	title, err := s.readLine(ctx, promptTitle)
	if err != nil {
		return err
	}

	isbn, err := s.readLine(ctx, promptISBN)
	if err != nil {
		return err
	}

	result, err := s.handlers.AddBook.Handle(ctx, addbook.BuildCommand(isbn, title, s.now()))

	switch {
	case err == nil:
		s.printf(msgBookAdded, title, result.BookID)
	case errors.Is(err, addbook.ErrCapacityReached):
		s.println(msgCapacityReached)
	case errors.Is(err, addbook.ErrISBNMalformed):
		s.println(msgInvalidISBN)
	case errors.Is(err, addbook.ErrISBNExists):
		s.printf(msgISBNExists, isbn)
	default:
		return err
	}

	return nil
}

func (s *Session) removeBook(ctx context.Context) error {
	bookID, err := s.readBookID(ctx, promptRemoveBookID)
	if err != nil {
		return err
	}

	result, err := s.handlers.RemoveBook.Handle(ctx, removebook.BuildCommand(bookID, s.now()))

	switch {
	case err == nil:
		s.printf(msgBookRemoved, result.Title)
	case errors.Is(err, removebook.ErrBookDoesNotExist):
		s.printf(msgIDDoesNotExist, bookID)
	case errors.Is(err, removebook.ErrBookIsLoanedOut):
		s.printf(msgBookIsLoanedOut, bookID)
	default:
		return err
	}

	return nil
}

func (s *Session) lendBook(ctx context.Context) error {
	bookID, err := s.readBookID(ctx, promptBookID)
	if err != nil {
		return err
	}

	catalog, err := s.handlers.BookList.Handle(ctx, booklist.BuildQuery())
	if err != nil {
		return err
	}

	book, found := catalog.FindByID(bookID)
	if !found {
		s.printf(msgBookDoesNotExist, bookID)
		return nil
	}

	if book.IsLoaned() {
		s.printf(msgBookAlreadyLoaned, book.Title)
		return nil
	}

	lender, err := s.readLine(ctx, promptLender)
	if err != nil {
		return err
	}

	startDate, err := s.readLine(ctx, promptStartDate)
	if err != nil {
		return err
	}

	result, err := s.handlers.LendBook.Handle(ctx, lendbook.BuildCommand(bookID, lender, startDate, s.now()))

	switch {
	case err == nil:
		s.printf(msgBookLent, result.Title, result.Lender, result.StartDate)
	case errors.Is(err, lendbook.ErrBookDoesNotExist):
		s.printf(msgBookDoesNotExist, bookID)
	case errors.Is(err, lendbook.ErrBookIsAlreadyLoaned):
		s.printf(msgBookAlreadyLoaned, book.Title)
	case errors.Is(err, lendbook.ErrLedgerCapacityReached):
		s.println(msgLedgerCapacityReached)
	case errors.Is(err, lendbook.ErrStartDateMalformed):
		s.println(msgInvalidDate)
	default:
		return err
	}

	return nil
}

func (s *Session) returnBook(ctx context.Context) error {
	bookID, err := s.readBookID(ctx, promptBookID)
	if err != nil {
		return err
	}

	catalog, err := s.handlers.BookList.Handle(ctx, booklist.BuildQuery())
	if err != nil {
		return err
	}

	if book, found := catalog.FindByID(bookID); !found || !book.IsLoaned() {
		s.printf(msgNotCurrentlyLoaned, bookID)
		return nil
	}

	returnDate, err := s.readLine(ctx, promptReturnDate)
	if err != nil {
		return err
	}

	receipt, err := s.handlers.ReturnBook.Handle(ctx, returnbook.BuildCommand(bookID, returnDate, s.now()))

	switch {
	case err == nil:
		s.printf(receiptLender, receipt.Lender)
		s.printf(receiptTitle, receipt.Title)
		s.printf(receiptISBN, receipt.ISBN)
		s.printf(receiptPeriod, receipt.StartDate, receipt.ReturnDate)
		s.printf(receiptDuration, receipt.DurationDays)
		s.printf(receiptCost, receipt.Cost)
	case errors.Is(err, returnbook.ErrBookIsNotLoaned):
		s.printf(msgNotCurrentlyLoaned, bookID)
	case errors.Is(err, returnbook.ErrReturnDateMalformed):
		s.println(msgInvalidDate)
	default:
		return err
	}

	return nil
}

func (s *Session) printBookList(ctx context.Context) error {
	catalog, err := s.handlers.BookList.Handle(ctx, booklist.BuildQuery())
	if err != nil {
		return err
	}

	s.println(bookListHeader)
	s.println(bookListColumns)

	for _, book := range catalog.Books {
		s.printf(bookListRow, strconv.Itoa(book.BookID), book.ISBN, book.Title, string(book.Status))
	}

	return nil
}

func (s *Session) printLoanSummary(ctx context.Context) error {
	summary, err := s.handlers.LoanSummary.Handle(ctx, loansummary.BuildQuery())
	if err != nil {
		return err
	}

	s.println(loanSummaryHeader)
	s.println(loanSummaryColumns)

	// The totals follow every ledger entry, open loans only get no row.
	for _, entry := range summary.Ledger {
		if entry.Closed {
			s.printf(loanSummaryRow, strconv.Itoa(entry.BookID), entry.Lender, entry.StartDate, entry.ReturnDate, entry.Cost)
		}

		s.printLoanSummaryFooter(entry.RunningCount, entry.RunningTotal)
	}

	return nil
}

func (s *Session) printLoanSummaryFooter(count, total int) {
	s.println(menuSeparator)
	s.printf(loanSummaryCount, count)
	s.printf(loanSummaryTotal, total)
}

func (s *Session) printMenu() {
	s.println(menuSeparator)
	s.println(menuTitle)
	s.println(menuSeparator)

	for _, item := range menuItems {
		s.println(item)
	}
}

func (s *Session) quit(ctx context.Context) {
	s.println(msgGoodbye)
	s.state = Terminated

	if s.logger != nil {
		s.logger.InfoContext(ctx, logMsgSessionEnded)
	}
}

// readBookID prompts for a book id. A value that is not a number is reported to the operator
// and returned as ErrInvalidBookID, which report swallows.
func (s *Session) readBookID(ctx context.Context, prompt string) (core.BookIDInt, error) {
	raw, err := s.readLine(ctx, prompt)
	if err != nil {
		return 0, err
	}

	bookID, err := strconv.Atoi(raw)
	if err != nil {
		s.rejectInput(ctx, raw, ErrInvalidBookID)
		s.printf(msgInvalidBookID, raw)

		return 0, ErrInvalidBookID
	}

	return bookID, nil
}

// readLine prints prompt and returns the next input line with surrounding whitespace trimmed.
// It returns errEndOfInput when the input is exhausted and ctx.Err() when ctx is done first.
func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	_, _ = fmt.Fprint(s.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()

	case line, ok := <-s.reader.lines:
		if ok {
			return strings.TrimSpace(line), nil
		}

		if !strings.HasSuffix(prompt, "\n") {
			_, _ = fmt.Fprintln(s.out)
		}

		if s.reader.err != nil {
			return "", fmt.Errorf("%w: %w", errReadInput, s.reader.err)
		}

		return "", errEndOfInput
	}
}

// report prints an unexpected failure and keeps the dialog going.
// Only context errors are handed back, they end the dialog.
func (s *Session) report(ctx context.Context, choice string, err error) error {
	if err == nil || errors.Is(err, ErrInvalidBookID) {
		return nil
	}

	if shell.IsCancellationError(err) || shell.IsTimeoutError(err) {
		return err
	}

	if s.logger != nil {
		s.logger.ErrorContext(ctx, logMsgOperationFailed, logAttrMenuItem, choice, logAttrError, err.Error())
	}
	s.printf(msgOperationFailed, err)

	return nil
}

func (s *Session) rejectInput(ctx context.Context, input string, err error) {
	if s.logger == nil {
		return
	}

	kind, _ := shell.BusinessErrorKind(err)
	s.logger.WarnContext(ctx, logMsgInputRejected, logAttrMenuItem, input, logAttrErrorKind, kind)
}

func (s *Session) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}
