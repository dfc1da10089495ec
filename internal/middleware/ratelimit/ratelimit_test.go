package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMinute: 3})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("fourth request in the window should be rejected")
	}

	// Other clients have their own windows.
	if !l.Allow("5.6.7.8") {
		t.Fatal("different client should be allowed")
	}
}

func TestLimiterDefaults(t *testing.T) {
	l := NewLimiter(Config{})
	defer l.Stop()

	if l.requestsPerMinute != 60 {
		t.Fatalf("requestsPerMinute = %d", l.requestsPerMinute)
	}
	if l.cleanupInterval != 5*time.Minute {
		t.Fatalf("cleanupInterval = %v", l.cleanupInterval)
	}
}

func TestLimiterDropStale(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMinute: 10})
	defer l.Stop()

	l.Allow("1.2.3.4")
	l.mu.Lock()
	l.windows["1.2.3.4"].start = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	l.dropStale()
	if l.ActiveClients() != 0 {
		t.Fatalf("ActiveClients() = %d after cleanup", l.ActiveClients())
	}
}

func TestLimiterStopTwice(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMinute: 1})
	l.Stop()
	l.Stop()
}
