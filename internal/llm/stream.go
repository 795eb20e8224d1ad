package llm

import (
	"io"
	"sync"
)

// Stream delivers a response as a finite, non-restartable sequence of text
// fragments. Fragments arrive in generation order and are never retracted:
// if the stream fails mid-flight, everything received before the failure
// stands. A consumer that is done before the end calls Close; the producer
// observes the closure and stops delivering.
type Stream struct {
	ch     chan fragment
	closed chan struct{}
	once   sync.Once

	err  error
	done bool
}

type fragment struct {
	text string
	err  error
}

func newStream() *Stream {
	return &Stream{
		ch:     make(chan fragment, 16),
		closed: make(chan struct{}),
	}
}

// Recv blocks until the next fragment is available. It returns io.EOF after
// the final fragment, or the terminal error if the stream was interrupted.
// After a non-nil error, all further calls return the same error.
func (s *Stream) Recv() (string, error) {
	if s.done {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}

	f, ok := <-s.ch
	if !ok {
		s.done = true
		return "", io.EOF
	}
	if f.err != nil {
		s.done = true
		s.err = f.err
		return "", f.err
	}
	return f.text, nil
}

// Close abandons the stream. The producer stops delivering and tears down
// whatever feeds it; fragments already received stand. The consumer must
// not call Recv after Close. Closing more than once is a no-op.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.closed) })
}

// Collect drains the stream, concatenating fragments in arrival order.
// On interruption it returns the text received so far along with the error.
func (s *Stream) Collect() (string, error) {
	var buf []byte
	for {
		text, err := s.Recv()
		if err == io.EOF {
			return string(buf), nil
		}
		if err != nil {
			return string(buf), err
		}
		buf = append(buf, text...)
	}
}

// push delivers a fragment to the consumer. Producer side only. It reports
// false once the consumer has closed the stream; the producer must stop.
func (s *Stream) push(text string) bool {
	select {
	case s.ch <- fragment{text: text}:
		return true
	case <-s.closed:
		return false
	}
}

// finish terminates the stream. A nil err means a clean end; a non-nil err
// is surfaced to the consumer after the fragments already pushed. Safe to
// call after the consumer closed the stream.
func (s *Stream) finish(err error) {
	if err != nil {
		select {
		case s.ch <- fragment{err: err}:
		case <-s.closed:
		}
	}
	close(s.ch)
}
