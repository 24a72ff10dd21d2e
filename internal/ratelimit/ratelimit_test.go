package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinBurst(t *testing.T) {
	krl := New(1, 3)

	for i := range 3 {
		assert.True(t, krl.Allow("1.2.3.4"), "request %d should be allowed", i)
	}
	assert.False(t, krl.Allow("1.2.3.4"), "request beyond burst should be denied")
}

func TestKeysAreIndependent(t *testing.T) {
	krl := New(1, 1)

	assert.True(t, krl.Allow("1.2.3.4"))
	assert.False(t, krl.Allow("1.2.3.4"))

	// A different key has its own bucket.
	assert.True(t, krl.Allow("5.6.7.8"))
}
