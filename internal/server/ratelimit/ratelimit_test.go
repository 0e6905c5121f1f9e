package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(configs ...EndpointConfig) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    3,
		DefaultWindow:   time.Minute,
		Whitelist:       map[string]bool{"10.0.0.1": true},
		Blacklist:       map[string]bool{"10.0.0.2": true},
		EndpointConfigs: configs,
	}
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/variants", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("1.2.3.4", "/variants", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, 20*time.Second)

	allowed, _ = l.Allow("5.6.7.8", "/variants", "GET")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_DefaultBucketSharedAcrossPaths(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("1.2.3.4", "/sessions/a", "GET")
	l.Allow("1.2.3.4", "/sessions/b", "GET")
	l.Allow("1.2.3.4", "/sessions/c/preview", "GET")

	allowed, _ := l.Allow("1.2.3.4", "/sessions/d", "GET")
	assert.False(t, allowed)
}

func TestLimiter_EndpointConfig(t *testing.T) {
	l := NewLimiter(testConfig(EndpointConfig{Path: "/sessions/*/export", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1}))
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/sessions/abc/export", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 1, info.Limit)

	allowed, info = l.Allow("1.2.3.4", "/sessions/def/export", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, 59*time.Minute)

	allowed, _ = l.Allow("1.2.3.4", "/sessions/abc/preview", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Refill(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		l.Allow("1.2.3.4", "/variants", "GET")
	}
	allowed, _ := l.Allow("1.2.3.4", "/variants", "GET")
	require.False(t, allowed)

	now = now.Add(20 * time.Second)
	allowed, _ = l.Allow("1.2.3.4", "/variants", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/variants", "GET")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.2", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/sessions", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("1.2.3.4", "/health", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("1.2.3.4", "/variants", "GET")
	now = now.Add(30 * time.Minute)
	l.Allow("5.6.7.8", "/variants", "GET")
	now = now.Add(45 * time.Minute)

	assert.Equal(t, 1, l.cleanupBuckets())
	assert.Len(t, l.buckets, 1)
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(testConfig(EndpointConfig{Path: "/sessions", Method: "POST", Limit: 50, Window: time.Hour, Burst: 50}))
	defer l.Stop()

	var mu sync.Mutex
	allowedCount := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("1.2.3.4", "/sessions", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second, CleanupInterval: time.Millisecond})
	l.Stop()
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/sessions", Method: "POST", Limit: 1},
		{Path: "/sessions/*/export", Method: "POST", Limit: 2},
		{Path: "/sessions/", Method: "DELETE", Limit: 3},
	}

	tests := []struct {
		path   string
		method string
		want   int
		found  bool
	}{
		{"/sessions", "POST", 1, true},
		{"/sessions/abc/export", "POST", 2, true},
		{"/sessions/abc/export/x", "POST", 0, false},
		{"/sessions/abc/ops", "POST", 0, false},
		{"/sessions/abc", "DELETE", 3, true},
		{"/sessions/abc", "GET", 0, false},
		{"/health", "GET", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["2.2.2.2"])
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
