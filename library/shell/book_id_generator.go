package shell

import (
	"errors"
	"math/rand"
	"sync"
)

// ErrInvalidBookIDRange is returned for an empty or negative book id range.
var ErrInvalidBookIDRange = errors.New("book id range must be non-empty and non-negative")

// BookIDGenerator yields candidate ids for new books. The add book workflow draws candidates
// until one is not taken, so a generator must eventually yield every id of its range.
type BookIDGenerator interface {
	NextBookID() int
	MinBookID() int
	MaxBookID() int // exclusive
}

// RandomBookIDs draws ids uniformly from [minID, maxID).
type RandomBookIDs struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	minID int
	maxID int
}

// NewRandomBookIDs creates a RandomBookIDs generator. A nil rnd uses a randomly seeded source.
func NewRandomBookIDs(minID, maxID int, rnd *rand.Rand) (*RandomBookIDs, error) {
	if err := validateBookIDRange(minID, maxID); err != nil {
		return nil, err
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // ids are not security relevant
	}

	return &RandomBookIDs{rnd: rnd, minID: minID, maxID: maxID}, nil
}

func (g *RandomBookIDs) NextBookID() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.minID + g.rnd.Intn(g.maxID-g.minID)
}

func (g *RandomBookIDs) MinBookID() int { return g.minID }

func (g *RandomBookIDs) MaxBookID() int { return g.maxID }

// SequentialBookIDs yields minID, minID+1, ... and wraps around at maxID.
// Tests use it to get predictable ids.
type SequentialBookIDs struct {
	mu    sync.Mutex
	next  int
	minID int
	maxID int
}

// NewSequentialBookIDs creates a SequentialBookIDs generator.
func NewSequentialBookIDs(minID, maxID int) (*SequentialBookIDs, error) {
	if err := validateBookIDRange(minID, maxID); err != nil {
		return nil, err
	}

	return &SequentialBookIDs{next: minID, minID: minID, maxID: maxID}, nil
}

func (g *SequentialBookIDs) NextBookID() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.next

	g.next++
	if g.next >= g.maxID {
		g.next = g.minID
	}

	return id
}

func (g *SequentialBookIDs) MinBookID() int { return g.minID }

func (g *SequentialBookIDs) MaxBookID() int { return g.maxID }

func validateBookIDRange(minID, maxID int) error {
	if minID < 0 || maxID <= minID {
		return ErrInvalidBookIDRange
	}

	return nil
}
