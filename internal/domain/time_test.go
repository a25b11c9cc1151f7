package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow_IsUTCMicroseconds(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, now, now.Truncate(time.Microsecond))
}

func TestNextUpdatedAt(t *testing.T) {
	prev := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, prev.Add(time.Second), NextUpdatedAt(prev, prev.Add(time.Second)))
	assert.Equal(t, prev.Add(time.Microsecond), NextUpdatedAt(prev, prev))
	assert.Equal(t, prev.Add(time.Microsecond), NextUpdatedAt(prev, prev.Add(-time.Hour)))
}
