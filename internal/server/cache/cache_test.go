package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, Key("fields", "a", "b"), Key("fields", "a", "b"))
	assert.NotEqual(t, Key("fields", "ab", ""), Key("fields", "a", "b"))
	assert.NotEqual(t, Key("suggest/fields", "x"), Key("suggest/applications", "x"))
}

func TestKeyArgumentsCannotCollide(t *testing.T) {
	tests := []struct {
		a, b []string
	}{
		{[]string{"a\x00b", ""}, []string{"a", "b\x00"}},
		{[]string{"a&b", ""}, []string{"a", "b&"}},
		{[]string{"a?b"}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		assert.NotEqual(t, Key("suggest/fields", tt.a...), Key("suggest/fields", tt.b...), "%q vs %q", tt.a, tt.b)
	}
}

func TestGetOrSet(t *testing.T) {
	c := New(time.Minute, time.Minute)

	calls := 0
	compute := func() any {
		calls++
		return []string{"Item Barcode"}
	}

	first := c.GetOrSet(Key("fields"), compute)
	second := c.GetOrSet(Key("fields"), compute)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, Stats{Items: 1, Hits: 1, Misses: 1}, c.Stats())

	c.Clear()
	_, ok := c.Get(Key("fields"))
	assert.False(t, ok)
	assert.Zero(t, c.Stats().Items)
}

func TestExpiry(t *testing.T) {
	c := New(20*time.Millisecond, time.Hour)
	c.Set("k", 1)
	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
