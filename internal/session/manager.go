package session

import (
	"context"
	"sync"
	"time"
)

// EventType represents the type of session event.
type EventType string

const (
	EventComputed EventType = "COMPUTED"
	EventFailed   EventType = "FAILED"
	EventShifted  EventType = "TRANSIT_SHIFTED"
)

// Event is one entry of the session activity log.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Manager holds the interactive session: the current request, the chart
// last computed for it and a short activity log. Every Recompute calls the
// calculator afresh; earlier charts are never reused.
type Manager struct {
	mu sync.RWMutex

	calc *Calculator

	request  Request
	current  *Chart
	lastErr  error
	lastRun  time.Time
	duration time.Duration

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// NewManager creates a session starting from req.
func NewManager(calc *Calculator, req Request, maxEvents int) *Manager {
	if maxEvents <= 0 {
		maxEvents = 20
	}
	return &Manager{
		calc:      calc,
		request:   req,
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Recompute calculates a chart for the current request and stores it.
func (m *Manager) Recompute(ctx context.Context) (*Chart, error) {
	m.mu.RLock()
	req := m.request
	m.mu.RUnlock()

	start := time.Now()
	c, err := m.calc.Compute(ctx, req)
	elapsed := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	// The request may have moved on while computing; drop stale results.
	if !sameRequest(req, m.request) {
		return c, err
	}
	m.lastRun = start
	m.duration = elapsed
	m.lastErr = err
	if err != nil {
		m.current = nil
		m.addEvent(Event{Type: EventFailed, Timestamp: start, Message: err.Error()})
		return nil, err
	}
	m.current = c
	m.addEvent(Event{
		Type:      EventComputed,
		Timestamp: start,
		Message:   "transit " + req.Transit.Format("2006-01-02 15:04"),
	})
	return c, nil
}

// ShiftTransit moves the transit moment by whole days and returns the new
// request. The stored chart is cleared; call Recompute for a new one.
func (m *Manager) ShiftTransit(days int) Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.request = m.request.ShiftTransit(days)
	m.current = nil
	m.addEvent(Event{
		Type:      EventShifted,
		Timestamp: time.Now(),
		Message:   "transit " + m.request.Transit.Format("2006-01-02"),
	})
	return m.request
}

// SetRequest replaces the current request and clears the stored chart.
func (m *Manager) SetRequest(req Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.request = req
	m.current = nil
	m.lastErr = nil
}

func sameRequest(a, b Request) bool {
	return a.Birth.Equal(b.Birth) && a.Transit.Equal(b.Transit) && a.Place == b.Place
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// Snapshot represents an immutable snapshot of the session.
type Snapshot struct {
	Request  Request
	Chart    *Chart
	LastErr  error
	LastRun  time.Time
	Duration time.Duration
	Events   []Event
}

// Snapshot returns a consistent snapshot of the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Request:  m.request,
		Chart:    m.current,
		LastErr:  m.lastErr,
		LastRun:  m.lastRun,
		Duration: m.duration,
		Events:   m.getEventsOrdered(),
	}
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
