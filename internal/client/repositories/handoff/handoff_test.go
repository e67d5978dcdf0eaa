package handoff

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batyok32/shipyuusell-sub001/internal/common"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time         { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := New(ttl)
	s.now = c.now
	return s, c
}

func TestPutGet(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	s.Put(common.SelectedQuoteKey, "sea_freight")

	v, ok := s.Get(common.SelectedQuoteKey)
	require.True(t, ok)
	assert.Equal(t, "sea_freight", v)

	_, ok = s.Get(common.SelectedQuoteKey)
	assert.True(t, ok, "Get must not remove")
}

func TestTake_RemovesValue(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Put(common.ShipmentDataKey, 42)

	v, ok := s.Take(common.ShipmentDataKey)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = s.Take(common.ShipmentDataKey)
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	s, c := newTestStore(time.Minute)
	s.Put(common.WarehouseLabelDataKey, "label")

	c.advance(59 * time.Second)
	_, ok := s.Get(common.WarehouseLabelDataKey)
	assert.True(t, ok)

	c.advance(2 * time.Second)
	_, ok = s.Get(common.WarehouseLabelDataKey)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestPut_RestartsTTL(t *testing.T) {
	s, c := newTestStore(time.Minute)
	s.Put("k", 1)
	c.advance(50 * time.Second)
	s.Put("k", 2)
	c.advance(50 * time.Second)

	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestNew_DefaultTTL(t *testing.T) {
	s := New(0)
	assert.Equal(t, DefaultTTL, s.ttl)
}

func TestDeleteAndClear(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Put("a", 1)
	s.Put("b", 2)

	s.Delete("a")
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestTypedAccessors(t *testing.T) {
	type quoteChoice struct{ Mode string }
	s, _ := newTestStore(time.Minute)
	s.Put(common.SelectedQuoteKey, quoteChoice{Mode: "air"})

	q, ok := GetAs[quoteChoice](s, common.SelectedQuoteKey)
	require.True(t, ok)
	assert.Equal(t, "air", q.Mode)

	_, ok = GetAs[string](s, common.SelectedQuoteKey)
	assert.False(t, ok)

	_, ok = TakeAs[int](s, common.SelectedQuoteKey)
	assert.False(t, ok)
	_, ok = s.Get(common.SelectedQuoteKey)
	assert.False(t, ok, "TakeAs removes even on type mismatch")
}

func TestConcurrentAccess(t *testing.T) {
	s := New(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put("k", i)
			s.Get("k")
			s.Take("k")
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 1)
}
