package handlers

import (
	"sync"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		attempts []string
		expected []bool
	}{
		{
			name:     "within limit",
			limit:    2,
			attempts: []string{"10.0.0.1", "10.0.0.1"},
			expected: []bool{true, true},
		},
		{
			name:     "over limit",
			limit:    1,
			attempts: []string{"10.0.0.1", "10.0.0.1"},
			expected: []bool{true, false},
		},
		{
			name:     "independent clients",
			limit:    1,
			attempts: []string{"10.0.0.1", "10.0.0.2"},
			expected: []bool{true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.limit, time.Second)
			for i, ip := range tt.attempts {
				if got := rl.Allow(ip); got != tt.expected[i] {
					t.Errorf("attempt %d for %s: expected %v, got %v", i+1, ip, tt.expected[i], got)
				}
			}
		})
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(5, 100*time.Millisecond)
	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	rl.mutex.Lock()
	if len(rl.attempts) != 2 {
		t.Errorf("expected 2 tracked clients, got %d", len(rl.attempts))
	}
	rl.mutex.Unlock()

	time.Sleep(150 * time.Millisecond)

	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	if len(rl.attempts) != 0 {
		t.Errorf("expected attempts map cleared after window, got %d entries", len(rl.attempts))
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)
	var wg sync.WaitGroup
	results := make([]bool, 5)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = rl.Allow("10.0.0.1")
		}(i)
	}
	wg.Wait()

	allowed := 0
	for _, ok := range results {
		if ok {
			allowed++
		}
	}
	if allowed > rl.limit {
		t.Errorf("expected at most %d allowed attempts, got %d", rl.limit, allowed)
	}
}
