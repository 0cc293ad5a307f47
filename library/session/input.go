package session

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// lineReader reads the operator input on its own goroutine, so that a blocked read
// does not keep the dialog from noticing a canceled context.
type lineReader struct {
	lines    chan string
	done     chan struct{}
	stopOnce sync.Once
	err      error // set before lines is closed
}

func startLineReader(in io.Reader) *lineReader {
	r := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}

	go r.run(bufio.NewReader(in))

	return r
}

// run has no line length limit. A last line without a trailing newline is still delivered.
func (r *lineReader) run(in *bufio.Reader) {
	defer close(r.lines)

	for {
		line, err := in.ReadString('\n')
		if line != "" || err == nil {
			select {
			case r.lines <- line:
			case <-r.done:
				return
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = err
			}

			return
		}
	}
}

// stop releases the reading goroutine once its current read returns.
func (r *lineReader) stop() {
	r.stopOnce.Do(func() { close(r.done) })
}
