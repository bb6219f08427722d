package workflow

import (
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

type captureSender struct {
	mu     sync.Mutex
	events []NotificationEvent
	fail   bool
}

func (s *captureSender) SendToRole(role string, subject string, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.events = append(s.events, NotificationEvent{Role: role, Subject: subject, Body: body})
	return nil
}

func (s *captureSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestNotifierDeliversAsynchronously(t *testing.T) {
	sender := &captureSender{}
	n := NewNotifier(sender, testLogger())

	n.Publish(NotificationEvent{Role: RoleRawStorage, Subject: "order placed"})
	n.Publish(NotificationEvent{Role: RoleManufacturing, Subject: "transfer placed"})
	n.Close()

	if sender.count() != 2 {
		t.Fatalf("delivered %d events, want 2", sender.count())
	}
}

func TestNotifierToleratesDeliveryFailure(t *testing.T) {
	sender := &captureSender{fail: true}
	n := NewNotifier(sender, testLogger())

	// Publishing must not block or panic even when every delivery fails.
	for i := 0; i < 10; i++ {
		n.Publish(NotificationEvent{Role: RoleRawStorage, Subject: "doomed"})
	}
	n.Close()

	if sender.count() != 0 {
		t.Fatalf("failing sender recorded %d events", sender.count())
	}
}

func TestNotifierDropsWhenBufferFull(t *testing.T) {
	// A sender that blocks until released, to fill the buffer.
	release := make(chan struct{})
	blocking := &blockingSender{release: release}
	n := NewNotifier(blocking, testLogger())

	for i := 0; i < 200; i++ {
		n.Publish(NotificationEvent{Role: RoleRawStorage, Subject: "burst"})
	}
	close(release)
	n.Close()

	if blocking.count() > 200 {
		t.Fatalf("delivered more events than published: %d", blocking.count())
	}
}

type blockingSender struct {
	mu       sync.Mutex
	released bool
	release  chan struct{}
	n        int
}

func (s *blockingSender) SendToRole(role string, subject string, body string) error {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if !released {
		<-s.release
		s.mu.Lock()
		s.released = true
		s.mu.Unlock()
	}
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return nil
}

func (s *blockingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
