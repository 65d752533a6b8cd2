package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryService(t *testing.T) {
	mem := NewMemoryService()

	// Missing key
	_, err := mem.Get("absent")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Set and get
	err = mem.Set("key", []byte("value"), 0)
	assert.NoError(t, err)

	value, err := mem.Get("key")
	assert.NoError(t, err)
	assert.Equal(t, "value", string(value))

	// Delete
	err = mem.Delete("key")
	assert.NoError(t, err)
	_, err = mem.Get("key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryServiceExpiry(t *testing.T) {
	mem := NewMemoryService()

	err := mem.Set("key", []byte("value"), 10*time.Millisecond)
	assert.NoError(t, err)

	_, err = mem.Get("key")
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = mem.Get("key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
