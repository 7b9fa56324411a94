package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectCache_PutGetInvalidate(t *testing.T) {
	cache := NewRejectCache()

	_, ok := cache.Get(1)
	assert.False(t, ok)

	cache.Put(1, "custom")
	text, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "custom", text)

	cache.Invalidate(1)
	_, ok = cache.Get(1)
	assert.False(t, ok)
}

func TestRejectCache_ConcurrentAccess(t *testing.T) {
	cache := NewRejectCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			cache.Put(id, "text")
			cache.Get(id)
			cache.Invalidate(id)
		}(int64(i % 5))
	}
	wg.Wait()
}

func TestScopedMessage_IsExcluded(t *testing.T) {
	msg := &ScopedMessage{
		Excluded: []Exclusion{{Handle: "vasya"}, {Handle: "petro"}},
	}

	assert.True(t, msg.IsExcluded("vasya"))
	assert.True(t, msg.IsExcluded("VASYA"))
	assert.False(t, msg.IsExcluded("carol"))
	assert.False(t, msg.IsExcluded(""))
}
