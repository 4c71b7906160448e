package ids

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_MonotonicWithinMillisecond(t *testing.T) {
	now := time.Date(2025, 5, 14, 10, 30, 45, 0, time.UTC)

	prev := New(now)
	for i := 0; i < 100; i++ {
		next := New(now)
		assert.Greater(t, next, prev)
		prev = next
	}
	assert.True(t, Valid(prev))
	assert.False(t, Valid("not-a-ulid"))
}

func TestNew_SortsByTime(t *testing.T) {
	earlier := New(time.Date(2025, 5, 12, 11, 5, 18, 0, time.UTC))
	later := New(time.Date(2025, 5, 14, 10, 30, 45, 0, time.UTC))
	assert.Less(t, earlier, later)
}
