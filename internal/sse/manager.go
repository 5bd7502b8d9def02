// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sse keeps the set of live event-stream clients and fans
// generation progress out to them.
package sse

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultHeartbeat is the keep-alive interval used when none is given.
	DefaultHeartbeat = 30 * time.Second
	// DefaultWriteTimeout bounds how long one client may take to accept a frame.
	DefaultWriteTimeout = 2 * time.Second
)

// Manager owns the registry of live sessions. Sessions whose stream fails
// are evicted without affecting the others.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// sendMu serializes broadcasts so every client sees events in the
	// same order.
	sendMu sync.Mutex

	heartbeat    time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger
	closed       bool
}

// NewManager creates a manager that pings each session every heartbeat.
func NewManager(heartbeat time.Duration, logger *slog.Logger) *Manager {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		heartbeat:    heartbeat,
		writeTimeout: DefaultWriteTimeout,
		logger:       logger.With("component", "sse"),
	}
}

// Register adds s to the registry and starts its heartbeat. It returns
// false if the manager is already closed.
func (m *Manager) Register(s *Session) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	if s.timeout == 0 {
		s.timeout = m.writeTimeout
	}
	m.sessions[s.ID] = s
	total := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("session registered", "session_id", s.ID, "generation_id", s.GenerationID, "sessions", total)
	go m.keepAlive(s)
	return true
}

// Unregister removes the session and stops its heartbeat. Unknown ids are
// ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	total := len(m.sessions)
	m.mu.Unlock()

	if ok {
		s.close()
		m.logger.Info("session removed", "session_id", id, "sessions", total)
	}
}

// Broadcast delivers ev to every matching session and returns how many
// received it. An event without a generation id reaches everyone. Sessions
// are written in parallel; one that fails or stalls past the write timeout
// is evicted and does not hold back the others.
func (m *Manager) Broadcast(ev Event) int {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	frame, err := ev.frame()
	if err != nil {
		m.logger.Error("encode event", "type", ev.Type, "error", err)
		return 0
	}

	m.sendMu.Lock()
	defer m.sendMu.Unlock()

	m.mu.RLock()
	targets := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if s.wants(ev) {
			targets = append(targets, s)
		}
	}
	m.mu.RUnlock()

	var (
		wg        sync.WaitGroup
		delivered atomic.Int64
	)
	for _, s := range targets {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.write(frame); err != nil {
				m.logger.Warn("dropping session after failed write", "session_id", s.ID, "error", err)
				m.Unregister(s.ID)
				return
			}
			delivered.Add(1)
		}()
	}
	wg.Wait()
	return int(delivered.Load())
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close evicts every session and rejects new ones.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
	if len(sessions) > 0 {
		m.logger.Info("closed event streams", "sessions", len(sessions))
	}
}

func (m *Manager) keepAlive(s *Session) {
	ticker := time.NewTicker(m.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-s.Done():
			return
		case <-ticker.C:
			if err := s.write(heartbeatFrame); err != nil {
				m.logger.Debug("heartbeat failed", "session_id", s.ID, "error", err)
				m.Unregister(s.ID)
				return
			}
		}
	}
}

// Serve upgrades the request to an event stream and blocks until the
// client disconnects or the session is evicted. The optional
// generationId query parameter limits delivery to one generation.
func (m *Manager) Serve(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	// Streams outlive the server's write timeout; each frame arms its own
	// deadline instead.
	_ = rc.SetWriteDeadline(time.Time{})

	w.WriteHeader(http.StatusOK)

	s := NewSession(w, rc.Flush, r.URL.Query().Get("generationId"))
	s.deadline = rc.SetWriteDeadline
	s.timeout = m.writeTimeout

	frame, err := Connected(s.ID).frame()
	if err == nil {
		err = s.write(frame)
	}
	if err != nil {
		m.logger.Warn("write connected event", "error", err)
		return
	}

	if !m.Register(s) {
		return
	}
	defer m.Unregister(s.ID)

	select {
	case <-r.Context().Done():
	case <-s.Done():
	}
}
