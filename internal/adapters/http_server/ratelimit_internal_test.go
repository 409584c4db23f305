package httpserver

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterSet_SweepEvictsIdleClients(t *testing.T) {
	s := newLimiterSet(1, 1)
	t0 := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		s.allow(string(rune('a'+i%26))+string(rune('A'+i/26)), t0)
	}
	s.allow("recent", t0.Add(9*time.Minute))
	if got := s.size(); got != 51 {
		t.Fatalf("size = %d, want 51", got)
	}

	s.sweep(t0.Add(11*time.Minute), limiterIdleTTL)
	if got := s.size(); got != 1 {
		t.Fatalf("after sweep size = %d, want 1", got)
	}
	// an evicted client starts with a fresh bucket
	if !s.allow("aA", t0.Add(11*time.Minute)) {
		t.Fatal("expected fresh bucket after eviction")
	}
}

func TestLimiterSet_BurstThenRefill(t *testing.T) {
	s := newLimiterSet(1, 2)
	t0 := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	if !s.allow("c", t0) || !s.allow("c", t0) {
		t.Fatal("burst of 2 should pass")
	}
	if s.allow("c", t0) {
		t.Fatal("third request in the same instant should be limited")
	}
	if !s.allow("c", t0.Add(time.Second)) {
		t.Fatal("token should refill after a second")
	}
}

func TestClientKey_UsesPeerHost(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "198.51.100.7:40000"
	r.Header.Set("X-Forwarded-For", "1.2.3.4")
	if got := clientKey(r); got != "198.51.100.7" {
		t.Fatalf("clientKey = %q", got)
	}
	r.RemoteAddr = "203.0.113.9"
	if got := clientKey(r); got != "203.0.113.9" {
		t.Fatalf("clientKey without port = %q", got)
	}
}
