package session_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/session"
	"github.com/AntonStoeckl/ltu-library/library/shell"
	"github.com/AntonStoeckl/ltu-library/testutil/helper"
	"github.com/AntonStoeckl/ltu-library/testutil/testdoubles"
)

func Test_Session_Run_DuneAliceRoundTrip(t *testing.T) {
	// arrange
	input := lines(
		"1", "Dune", "123456789-0",
		"3", "1000", "Alice", "2024-01-01",
		"4", "1000", "2024-01-15",
		"6",
		"q",
	)
	s, out := givenSession(t, input)

	// act
	err := s.Run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, session.Terminated, s.State())

	output := out.String()
	assert.Contains(t, output, "Book with title Dune was assigned ID 1000 and added to the system.")
	assert.Contains(t, output, "Book Dune was loaned by Alice on 2024-01-01.")
	assert.Contains(t, output, "Lender's name: Alice\n")
	assert.Contains(t, output, "Book title: Dune\n")
	assert.Contains(t, output, "ISBN-10: 123456789-0\n")
	assert.Contains(t, output, "Period: 2024-01-01 to 2024-01-15\n")
	assert.Contains(t, output, "Duration: 14 days\n")
	assert.Contains(t, output, "Cost: 60\n")
	assert.Contains(t, output, fmt.Sprintf("%-6s %-13s %-12s %-12s %d\n", "1000", "Alice", "2024-01-01", "2024-01-15", 60))
	assert.Contains(t, output, "Number of loans: 1\n")
	assert.Contains(t, output, "Total cost: 60\n")
	assert.True(t, strings.HasSuffix(output, "Exiting LTU Library System. Goodbye!\n"))
}

func Test_Session_Run_PrintsMenu(t *testing.T) {
	// arrange
	s, out := givenSession(t, lines("q"))

	// act
	require.NoError(t, s.Run(context.Background()))

	// assert
	expected := strings.Join([]string{
		"------------------------------------",
		"-----------# LTU Library-----------",
		"------------------------------------",
		"1. Add book",
		"2. Remove book",
		"3. Loan a book",
		"4. Return a book",
		"5. Print book list",
		"6. Print lending summary",
		"q. End program",
		"> Enter your option: ",
		"Exiting LTU Library System. Goodbye!",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String())
}

func Test_Session_Run_Messages(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "invalid menu item",
			input:    lines("7", "q"),
			expected: []string{"Invalid menu item. Please try again."},
		},
		{
			name:     "malformed isbn",
			input:    lines("1", "Dune", "12345"),
			expected: []string{"Invalid ISBN format. Please use format: 123456789-0"},
		},
		{
			name:     "duplicate isbn",
			input:    lines("1", "Dune", "123456789-0", "1", "Dune Messiah", "123456789-0"),
			expected: []string{"ISBN 123456789-0 already exists.\n"},
		},
		{
			name:     "remove unknown id",
			input:    lines("2", "4711"),
			expected: []string{"ID 4711 Does not exist.\n"},
		},
		{
			name:     "remove book",
			input:    lines("1", "Dune", "123456789-0", "2", "1000", "5"),
			expected: []string{"Book Dune was removed from the system.", "ID    ISBN-10    Title    Status\n------------------------------------\n"},
		},
		{
			name:     "remove loaned book",
			input:    lines("1", "Dune", "123456789-0", "3", "1000", "Alice", "2024-01-01", "2", "1000"),
			expected: []string{"Book with ID 1000 is loaned out and needs to be returned before removal."},
		},
		{
			name:     "non-numeric book id",
			input:    lines("2", "abc", "q"),
			expected: []string{"Invalid book ID: abc", "Goodbye!"},
		},
		{
			name:     "lend unknown id",
			input:    lines("3", "4711"),
			expected: []string{"Book with ID 4711 does not exist."},
		},
		{
			name:     "lend loaned book",
			input:    lines("1", "Dune", "123456789-0", "3", "1000", "Alice", "2024-01-01", "3", "1000"),
			expected: []string{"Book Dune is already loaned\n"},
		},
		{
			name:     "malformed start date",
			input:    lines("1", "Dune", "123456789-0", "3", "1000", "Alice", "2024-13-01"),
			expected: []string{"Invalid date format. Please use YYYY-MM-DD."},
		},
		{
			name:     "return book that is not loaned",
			input:    lines("1", "Dune", "123456789-0", "4", "1000"),
			expected: []string{"ID 1000 is not currently loaned.\n"},
		},
		{
			name:     "malformed return date",
			input:    lines("1", "Dune", "123456789-0", "3", "1000", "Alice", "2024-01-01", "4", "1000", "15.01.2024"),
			expected: []string{"Invalid date format. Please use YYYY-MM-DD."},
		},
		{
			name:     "empty loan summary",
			input:    lines("6"),
			expected: []string{"Loan summary LTU Library\nID    Lender    Start Date    Return Date Cost\n------------------------------------\n-----------# LTU Library"},
		},
		{
			name:     "loan summary with an open loan",
			input:    lines("1", "Dune", "123456789-0", "3", "1000", "Alice", "2024-01-01", "6"),
			expected: []string{"Return Date Cost\n------------------------------------\nNumber of loans: 0\nTotal cost: 0\n"},
		},
		{
			name:  "book list sorted by id with status",
			input: lines("1", "Dune", "123456789-0", "1", "Solaris", "987654321-0", "3", "1001", "Bob", "2024-02-01", "5"),
			expected: []string{
				"Book list LTU Library\nID    ISBN-10    Title    Status\n" +
					fmt.Sprintf("%-6s %-14s %-22s %-10s\n", "1000", "123456789-0", "Dune", "Available") +
					fmt.Sprintf("%-6s %-14s %-22s %-10s\n", "1001", "987654321-0", "Solaris", "Loaned"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			s, out := givenSession(t, tc.input)

			// act
			err := s.Run(context.Background())

			// assert
			require.NoError(t, err)
			for _, expected := range tc.expected {
				assert.Contains(t, out.String(), expected)
			}
			assert.Equal(t, session.Terminated, s.State())
		})
	}
}

func Test_Session_Run_PromptLayout(t *testing.T) {
	// arrange
	input := lines(
		"1", "Dune", "123456789-0",
		"3", "1000", "Alice", "2024-01-01",
		"4", "1000", "2024-01-15",
		"2", "1000",
		"q",
	)
	s, out := givenSession(t, input)

	// act
	require.NoError(t, s.Run(context.Background()))

	// assert
	output := out.String()
	assert.Contains(t, output, "> Enter book title: \n> Enter ISBN-10 code: \nBook with title Dune")
	assert.Contains(t, output, "> Enter book ID number: \n> Enter lender's name: > Enter start date of the loan (YYYY-MM-DD): Book Dune")
	assert.Contains(t, output, "> Enter book ID number: \n> Enter return date (YYYY-MM-DD): Lender's name: Alice")
	assert.Contains(t, output, "> Enter book ID number: Book Dune was removed from the system.")
}

func Test_Session_Run_LoanSummaryInLedgerOrder(t *testing.T) {
	// arrange
	input := lines(
		"1", "Dune", "123456789-0",
		"1", "Solaris", "987654321-0",
		"3", "1000", "Alice", "2024-01-01",
		"3", "1001", "Bob", "2024-01-02",
		"4", "1001", "2024-01-10",
		"4", "1000", "2024-01-20",
		"6",
		"q",
	)
	s, out := givenSession(t, input)

	// act
	require.NoError(t, s.Run(context.Background()))

	// assert
	expected := "Loan summary LTU Library\n" +
		"ID    Lender    Start Date    Return Date Cost\n" +
		fmt.Sprintf("%-6s %-13s %-12s %-12s %d\n", "1000", "Alice", "2024-01-01", "2024-01-20", 135) +
		"------------------------------------\nNumber of loans: 1\nTotal cost: 135\n" +
		fmt.Sprintf("%-6s %-13s %-12s %-12s %d\n", "1001", "Bob", "2024-01-02", "2024-01-10", 0) +
		"------------------------------------\nNumber of loans: 2\nTotal cost: 135\n"
	assert.Contains(t, out.String(), expected)
}

func Test_Session_Run_AcceptsLongLines(t *testing.T) {
	// arrange
	title := strings.Repeat("x", 200*1024)
	s, out := givenSession(t, lines("1", title, "123456789-0", "q"))

	// act
	err := s.Run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "was assigned ID 1000 and added to the system.")
	assert.Contains(t, out.String(), "Goodbye!")
}

func Test_Session_Run_CapacityReachedInCommand(t *testing.T) {
	// arrange
	_, es := helper.SetupTestEnvironment(t)
	handlers, err := session.NewHandlers(es, givenBookIDs(t), 1, session.Observability{})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	input := lines("1", "Dune", "123456789-0", "1", "Solaris", "987654321-0", "q")
	s, err := session.NewSession(handlers, strings.NewReader(input), out)
	require.NoError(t, err)

	// act
	require.NoError(t, s.Run(context.Background()))

	// assert
	output := out.String()
	assert.Contains(t, output, "Library capacity reached. Can not add more books.")
	assert.NotContains(t, output, "Book with title Solaris")
}

func Test_Session_Run_CapacityCheckedBeforePrompting(t *testing.T) {
	// arrange
	input := lines("1", "Dune", "123456789-0", "1", "q")
	s, out := givenSession(t, input, session.WithCapacity(1))

	// act
	require.NoError(t, s.Run(context.Background()))

	// assert
	output := out.String()
	assert.Contains(t, output, "Library capacity reached. Can not add more books.")
	assert.Equal(t, 1, strings.Count(output, "> Enter book title: "))
	assert.Contains(t, output, "Goodbye!")
}

func Test_Session_Run_ListIsIdempotent(t *testing.T) {
	// arrange
	input := lines("1", "Dune", "123456789-0", "1", "Solaris", "987654321-0", "5", "5", "6", "6")
	s, out := givenSession(t, input)

	// act
	require.NoError(t, s.Run(context.Background()))

	// assert
	output := out.String()
	bookList := between(t, output, "Book list LTU Library")
	assert.Equal(t, 2, strings.Count(output, bookList))

	loanSummary := between(t, output, "Loan summary LTU Library")
	assert.Equal(t, 2, strings.Count(output, loanSummary))
}

func Test_Session_Run_TrimsInput(t *testing.T) {
	// arrange
	s, out := givenSession(t, lines("  1 ", "  Dune  ", " 123456789-0 ", " q"))

	// act
	require.NoError(t, s.Run(context.Background()))

	// assert
	assert.Contains(t, out.String(), "Book with title Dune was assigned ID 1000 and added to the system.")
}

func Test_Session_Run_EndOfInputTerminates(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "at the menu", input: ""},
		{name: "in a dialog", input: lines("1", "Dune")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			s, out := givenSession(t, tc.input)

			// act
			err := s.Run(context.Background())

			// assert
			require.NoError(t, err)
			assert.Equal(t, session.Terminated, s.State())
			assert.True(t, strings.HasSuffix(out.String(), "Exiting LTU Library System. Goodbye!\n"))
		})
	}
}

func Test_Session_Run_CanceledContext(t *testing.T) {
	// arrange
	s, _ := givenSession(t, lines("5"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	err := s.Run(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.Terminated, s.State())
}

func Test_Session_Run_CanceledWhileWaitingForInput(t *testing.T) {
	// arrange
	in, inWriter := io.Pipe()
	t.Cleanup(func() { _ = inWriter.Close() })

	_, es := helper.SetupTestEnvironment(t)
	handlers, err := session.NewHandlers(es, givenBookIDs(t), 100, session.Observability{})
	require.NoError(t, err)
	out := newPromptWatcher("> Enter your option: ")
	s, err := session.NewSession(handlers, in, out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-out.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("the menu prompt was not written")
	}

	// act
	cancel()

	// assert
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, session.Terminated, s.State())
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the context was canceled")
	}
}

func Test_Session_Run_ReadFailureEndsSession(t *testing.T) {
	// arrange
	_, es := helper.SetupTestEnvironment(t)
	handlers, err := session.NewHandlers(es, givenBookIDs(t), 100, session.Observability{})
	require.NoError(t, err)
	in := io.MultiReader(strings.NewReader(lines("5")), iotest.ErrReader(errTerminalGone))
	s, err := session.NewSession(handlers, in, &bytes.Buffer{})
	require.NoError(t, err)

	// act
	err = s.Run(context.Background())

	// assert
	assert.ErrorIs(t, err, errTerminalGone)
	assert.Equal(t, session.Terminated, s.State())
}

func Test_Session_Run_InfrastructureFailureIsNotFatal(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy()
	handlers, err := session.NewHandlers(failingEventStore{}, givenBookIDs(t), 100, session.Observability{})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	s, err := session.NewSession(handlers, strings.NewReader(lines("5", "q")), out, session.WithLogger(logger))
	require.NoError(t, err)

	// act
	err = s.Run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Operation failed: store is down")
	assert.Contains(t, out.String(), "Goodbye!")
	assert.True(t, logger.HasErrorLog("session operation failed"))
	assert.True(t, logger.HasInfoLog("session ended"))
}

func Test_NewHandlers_WithObservability(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	logger := testdoubles.NewContextualLoggerSpy()
	metrics := testdoubles.NewMetricsCollectorSpy()
	handlers, err := session.NewHandlers(es, givenBookIDs(t), 100, session.Observability{
		Metrics:          metrics,
		ContextualLogger: logger,
	})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	s, err := session.NewSession(handlers, strings.NewReader(lines("1", "Dune", "123456789-0", "5", "q")), out)
	require.NoError(t, err)

	// act
	require.NoError(t, s.Run(ctx))

	// assert
	assert.Contains(t, out.String(), "Dune")
	assert.Positive(t, logger.GetTotalRecordCount())
}

func Test_NewSession_NilHandler(t *testing.T) {
	// act
	s, err := session.NewSession(session.Handlers{}, strings.NewReader(""), &bytes.Buffer{})

	// assert
	assert.Nil(t, s)
	assert.ErrorIs(t, err, session.ErrNilHandler)
}

func givenSession(t *testing.T, input string, opts ...session.Option) (*session.Session, *bytes.Buffer) {
	t.Helper()

	_, es := helper.SetupTestEnvironment(t)
	handlers, err := session.NewHandlers(es, givenBookIDs(t), 100, session.Observability{})
	require.NoError(t, err)

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	opts = append([]session.Option{session.WithClock(func() time.Time { return clock })}, opts...)

	out := &bytes.Buffer{}
	s, err := session.NewSession(handlers, strings.NewReader(input), out, opts...)
	require.NoError(t, err)

	return s, out
}

func givenBookIDs(t *testing.T) shell.BookIDGenerator {
	t.Helper()

	bookIDs, err := shell.NewSequentialBookIDs(1000, 10000)
	require.NoError(t, err)

	return bookIDs
}

func lines(in ...string) string {
	if len(in) == 0 {
		return ""
	}

	return strings.Join(in, "\n") + "\n"
}

// between returns the block starting with header up to the next menu.
func between(t *testing.T, output string, header string) string {
	t.Helper()

	start := strings.Index(output, header)
	require.GreaterOrEqual(t, start, 0, "header not found: "+header)

	end := strings.Index(output[start:], "------------------------------------\n-----------# LTU Library")
	require.Greater(t, end, 0)

	return output[start : start+end]
}

// promptWatcher is an io.Writer that closes seen once marker was written.
type promptWatcher struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	marker string
	seen   chan struct{}
	once   sync.Once
}

func newPromptWatcher(marker string) *promptWatcher {
	return &promptWatcher{marker: marker, seen: make(chan struct{})}
}

func (w *promptWatcher) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), w.marker) {
		w.once.Do(func() { close(w.seen) })
	}

	return n, err
}

var (
	errStoreDown    = errors.New("store is down")
	errTerminalGone = errors.New("terminal gone")
)

type failingEventStore struct{}

func (failingEventStore) Query(context.Context, eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error) {
	return nil, 0, errStoreDown
}

func (failingEventStore) Append(
	context.Context,
	eventstore.Filter,
	eventstore.MaxSequenceNumberUint,
	eventstore.StorableEvent,
	...eventstore.StorableEvent,
) error {

	return errStoreDown
}
