package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/tutorgrid/core/mqtt"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// MockPublisher records rosters in memory. Tutors listed in Fail are rejected.
type MockPublisher struct {
	Messages map[string][]byte
	Fail     map[string]bool
	mu       sync.Mutex
	seq      int
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Messages: make(map[string][]byte),
		Fail:     make(map[string]bool),
	}
}

// PublishRoster records the payload or returns an error if configured to fail.
func (m *MockPublisher) PublishRoster(tutor string, payload []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail[tutor] {
		return "", fmt.Errorf("publish failed for %s", tutor)
	}
	m.Messages[tutor] = append([]byte(nil), payload...)
	m.seq++
	return fmt.Sprintf("msg-%d", m.seq), nil
}

// Published returns the payload recorded for tutor.
func (m *MockPublisher) Published(tutor string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Messages[tutor]
	return p, ok
}
