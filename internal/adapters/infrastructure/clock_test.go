package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_MicrosecondUTC(t *testing.T) {
	for i := 0; i < 100; i++ {
		now := SystemClock{}.Now()
		assert.Equal(t, time.UTC, now.Location())
		assert.Zero(t, now.Nanosecond()%int(time.Microsecond), "now = %v", now)
	}
}
