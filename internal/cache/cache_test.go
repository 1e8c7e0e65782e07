package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissesOnChangedContent(t *testing.T) {
	c := New[int]()
	_, ok := c.Get("a.rs", "fn a() {}")
	require.False(t, ok)

	c.Put("a.rs", "fn a() {}", 3)
	v, ok := c.Get("a.rs", "fn a() {}")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = c.Get("a.rs", "fn a() { unsafe {} }")
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestSumIsStable(t *testing.T) {
	assert.Equal(t, Sum("x"), Sum("x"))
	assert.NotEqual(t, Sum("x"), Sum("y"))
}

func TestRetain(t *testing.T) {
	c := New[string]()
	c.Put("a", "1", "a")
	c.Put("b", "2", "b")
	c.Put("c", "3", "c")
	assert.Equal(t, 2, c.Retain([]string{"b"}))
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("b", "2")
	assert.True(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := fmt.Sprintf("f%d", i%4)
			c.Put(p, p, i)
			c.Get(p, p)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, c.Len())
}
