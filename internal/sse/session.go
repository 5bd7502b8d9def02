// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sse

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrSessionClosed is returned when writing to an evicted session.
	ErrSessionClosed = errors.New("sse: session closed")
	// ErrWriteTimeout is returned when a client does not accept a frame in time.
	ErrWriteTimeout = errors.New("sse: write timed out")
)

var heartbeatFrame = []byte(": heartbeat\n\n")

// Session is one live event-stream connection. Writes are serialized so
// heartbeats and broadcasts never interleave within a frame.
type Session struct {
	ID string
	// GenerationID, when set, limits delivery to events of that generation.
	GenerationID string

	w     io.Writer
	flush func() error

	// deadline, when set, arms the connection's write deadline before each
	// frame so a peer that stopped reading fails the write.
	deadline func(time.Time) error
	// timeout bounds a single frame write. Zero means no bound.
	timeout time.Duration

	// slot holds one token while a frame is in flight.
	slot      chan struct{}
	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession wraps a stream writer. flush may be nil when w is unbuffered.
// The ID is a ULID, so it sorts by connection time.
func NewSession(w io.Writer, flush func() error, generationID string) *Session {
	return &Session{
		ID:           ulid.Make().String(),
		GenerationID: generationID,
		w:            w,
		flush:        flush,
		slot:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
}

// Done is closed when the session has been evicted.
func (s *Session) Done() <-chan struct{} { return s.done }

// wants reports whether the session should receive ev.
func (s *Session) wants(ev Event) bool {
	return s.GenerationID == "" || ev.GenerationID == "" || ev.GenerationID == s.GenerationID
}

// write sends one frame. A write still pending after the session timeout
// returns ErrWriteTimeout; the stuck writer keeps the slot, so every later
// write on this session fails too.
func (s *Session) write(frame []byte) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	var expired <-chan time.Time
	if s.timeout > 0 {
		timer := time.NewTimer(s.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case s.slot <- struct{}{}:
	case <-expired:
		return ErrWriteTimeout
	case <-s.done:
		return ErrSessionClosed
	}
	if s.closed.Load() {
		<-s.slot
		return ErrSessionClosed
	}

	if s.deadline != nil && s.timeout > 0 {
		_ = s.deadline(time.Now().Add(s.timeout))
	}

	result := make(chan error, 1)
	go func() {
		defer func() { <-s.slot }()
		_, err := s.w.Write(frame)
		if err == nil && s.flush != nil {
			err = s.flush()
		}
		result <- err
	}()

	select {
	case err := <-result:
		return err
	case <-expired:
		return ErrWriteTimeout
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
	})
}
