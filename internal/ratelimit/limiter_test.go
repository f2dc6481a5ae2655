package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheckSubmit_Cooldown(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		SubmitCooldown:   10 * time.Second,
		SubmitMaxPerHour: 20,
		Clock:            clock,
	})
	defer limiter.Close()

	ip := "203.0.113.10"

	result := limiter.CheckSubmit(ip)
	if !result.Allowed {
		t.Errorf("First submit should be allowed, got blocked: %s", result.Reason)
	}
	limiter.RecordSubmit(ip)

	clock.Advance(4 * time.Second)
	result = limiter.CheckSubmit(ip)
	if result.Allowed {
		t.Error("Submit within cooldown should be blocked")
	}
	if result.Reason != "cooldown" {
		t.Errorf("Expected reason 'cooldown', got '%s'", result.Reason)
	}
	if result.RetryAfter != 6*time.Second {
		t.Errorf("Expected RetryAfter 6s, got %v", result.RetryAfter)
	}

	clock.Advance(7 * time.Second)
	if result := limiter.CheckSubmit(ip); !result.Allowed {
		t.Errorf("Submit after cooldown should be allowed, got blocked: %s", result.Reason)
	}
}

func TestCheckSubmit_HourlyLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		SubmitCooldown:   time.Millisecond,
		SubmitMaxPerHour: 3,
		Clock:            clock,
	})
	defer limiter.Close()

	ip := "203.0.113.11"
	for i := 0; i < 3; i++ {
		if result := limiter.CheckSubmit(ip); !result.Allowed {
			t.Fatalf("Submit %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		limiter.RecordSubmit(ip)
		clock.Advance(time.Second)
	}

	result := limiter.CheckSubmit(ip)
	if result.Allowed {
		t.Fatal("Fourth submit within the hour should be blocked")
	}
	if result.Reason != "hourly_limit" {
		t.Errorf("Expected reason 'hourly_limit', got '%s'", result.Reason)
	}

	clock.Advance(time.Hour)
	if result := limiter.CheckSubmit(ip); !result.Allowed {
		t.Errorf("Submit after window should be allowed, got blocked: %s", result.Reason)
	}
}

func TestCheckSubmit_SeparateIPs(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{SubmitCooldown: time.Minute, SubmitMaxPerHour: 5, Clock: clock})
	defer limiter.Close()

	limiter.RecordSubmit("203.0.113.12")
	if result := limiter.CheckSubmit("203.0.113.13"); !result.Allowed {
		t.Errorf("Other IP should not be throttled, got %s", result.Reason)
	}
}

func TestCheckAndRecord_SeparateOps(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{SubmitCooldown: time.Minute, SubmitMaxPerHour: 1, Clock: clock})
	defer limiter.Close()

	// Checks alone never consume quota
	for i := 0; i < 10; i++ {
		if result := limiter.CheckSubmit("203.0.113.14"); !result.Allowed {
			t.Errorf("Check %d should be allowed without prior Record", i+1)
		}
	}
}

func TestNilLimiterAllowsEverything(t *testing.T) {
	var limiter *Limiter
	limiter.RecordSubmit("203.0.113.15")
	if result := limiter.CheckSubmit("203.0.113.15"); !result.Allowed {
		t.Errorf("nil limiter should allow submits")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SubmitCooldown != 10*time.Second {
		t.Errorf("SubmitCooldown = %v, want 10s", cfg.SubmitCooldown)
	}
	if cfg.SubmitMaxPerHour != 20 {
		t.Errorf("SubmitMaxPerHour = %d, want 20", cfg.SubmitMaxPerHour)
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)

	// Trigger cleanup goroutine
	limiter.CheckSubmit("1.2.3.4")

	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Error("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		SubmitCooldown:   time.Millisecond,
		SubmitMaxPerHour: 1000,
		Clock:            clock,
	})
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if limiter.CheckSubmit("192.168.1.1").Allowed {
					limiter.RecordSubmit("192.168.1.1")
				}
			}
		}()
	}
	wg.Wait()
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50", // Rightmost non-private
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1", // Last one when all private
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100", // Uses RemoteAddr, ignores spoofed XFF
		},
		{
			name:       "TrustProxy=false, ignores X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "No headers, RemoteAddr only",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: true,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetClientIP_SpoofingPrevention(t *testing.T) {
	// Attacker sends fake X-Forwarded-For header
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4") // Attacker-supplied
	r.RemoteAddr = "192.168.1.100:54321"       // Real connection

	// With TrustProxy=false, the fake header is ignored
	got := GetClientIP(r, false)
	if got != "192.168.1.100" {
		t.Errorf("Should ignore X-Forwarded-For when TrustProxy=false, got %q", got)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		// IPv4 private ranges
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"192.168.255.255", true},
		{"127.0.0.1", true},
		// IPv6 private/reserved
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true}, // Link-local
		// IPv4-mapped IPv6 addresses (must match their IPv4 equivalents)
		{"::ffff:10.0.0.1", true},
		{"::ffff:192.168.1.1", true},
		{"::ffff:172.16.0.1", true},
		{"::ffff:127.0.0.1", true},
		{"::ffff:8.8.8.8", false},   // Public IP in IPv4-mapped format
		{"::ffff:1.1.1.1", false},   // Public IP in IPv4-mapped format
		// Public IPs
		{"203.0.113.50", false},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"2001:4860:4860::8888", false}, // Google DNS IPv6
		// Invalid
		{"invalid", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			got := isPrivateIP(tt.ip)
			if got != tt.expected {
				t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}
