package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowWithinLimit(t *testing.T) {
	l := New(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("fourth request should be blocked")
	}
}

func TestLimiter_KeysIndependent(t *testing.T) {
	l := New(1, time.Minute)
	if !l.Allow("a") {
		t.Fatal("first request for a should pass")
	}
	if !l.Allow("b") {
		t.Error("b should have its own window")
	}
	if l.Allow("a") {
		t.Error("second request for a should be blocked")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	l := New(5, time.Minute)
	if got := l.Remaining("key"); got != 5 {
		t.Errorf("Remaining before any requests = %d, want 5", got)
	}
	l.Allow("key")
	l.Allow("key")
	if got := l.Remaining("key"); got != 3 {
		t.Errorf("Remaining after 2 requests = %d, want 3", got)
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)
	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("should be blocked before reset")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Error("should be allowed after reset")
	}
}

func TestLoginLimiter_EmailLimit(t *testing.T) {
	ll := NewLoginLimiter()
	req := httptest.NewRequest("POST", "/api/login", nil)
	req.RemoteAddr = "203.0.113.1:1234"

	for i := 0; i < 5; i++ {
		ok, _ := ll.Check(req, "user@example.com")
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, reason := ll.Check(req, "user@example.com")
	if ok {
		t.Error("sixth attempt for same email should be blocked")
	}
	if reason == "" {
		t.Error("blocked attempt should carry a reason")
	}

	ll.ResetEmail("user@example.com")
	if ok, _ := ll.Check(req, "user@example.com"); !ok {
		t.Error("attempt after ResetEmail should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded-for", "198.51.100.7, 10.0.0.1", "", "10.0.0.2:80", "198.51.100.7"},
		{"real-ip", "", "198.51.100.8", "10.0.0.2:80", "198.51.100.8"},
		{"remote-addr", "", "", "203.0.113.5:4321", "203.0.113.5"},
		{"remote-addr-no-port", "", "", "203.0.113.5", "203.0.113.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
