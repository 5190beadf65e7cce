package cart

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogarmed/storefront/internal/domain/models"
)

func TestAddSameProductTwiceMergesIntoOneLine(t *testing.T) {
	c := &Cart{}
	c.Add(1, "Panadol", 10)
	c.Add(1, "Panadol", 10)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	c := &Cart{}
	c.Add(1, "Panadol", 10)
	c.Remove(99)

	assert.Len(t, c.Lines(), 1)
}

func TestRemoveDeletesWholeLine(t *testing.T) {
	c := &Cart{}
	c.Add(1, "Panadol", 10)
	c.Add(1, "Panadol", 10)
	c.Remove(1)

	assert.Empty(t, c.Lines())
}

func TestTotalRecomputedFromLines(t *testing.T) {
	c := &Cart{}
	c.AddLine(models.CartLine{ProductID: 1, Name: "A", Price: 10, Quantity: 2})
	c.AddLine(models.CartLine{ProductID: 2, Name: "B", Price: 5, Quantity: 3})

	assert.Equal(t, 35.0, c.Total())
}

func TestAddLineNormalizesQuantityAndMerges(t *testing.T) {
	c := &Cart{}
	c.AddLine(models.CartLine{ProductID: 1, Name: "A", Price: 10, Quantity: 0})
	c.AddLine(models.CartLine{ProductID: 1, Name: "A", Price: 10, Quantity: 4})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestBillingChange(t *testing.T) {
	c := &Cart{}
	c.Add(1, "A", 40)

	summary := c.Billing(100)
	assert.Equal(t, 40.0, summary.Total)
	assert.Equal(t, 60.0, summary.Change)
}

func TestStoreSweepEvictsIdleCarts(t *testing.T) {
	store := NewStore(time.Hour)

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Add("stale", 1, "A", 10)
	current = current.Add(2 * time.Hour)
	store.Add("fresh", 2, "B", 5)

	removed := store.Sweep()
	assert.Equal(t, 1, removed)
	assert.Empty(t, store.View("stale").Lines)
	assert.Len(t, store.View("fresh").Lines, 1)
}

func TestStoreKeepsOneCartPerSession(t *testing.T) {
	store := NewStore(time.Hour)
	store.Add("s1", 1, "A", 10)

	assert.Len(t, store.View("s1").Lines, 1)
	assert.Empty(t, store.View("s2").Lines)
}

func TestStoreSerializesConcurrentMutations(t *testing.T) {
	store := NewStore(time.Hour)

	const workers = 8
	const adds = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < adds; i++ {
				store.Add("s1", 1, "Panadol", 10)
			}
		}()
	}
	wg.Wait()

	view := store.View("s1")
	require.Len(t, view.Lines, 1)
	assert.Equal(t, workers*adds, view.Lines[0].Quantity)
	assert.Equal(t, float64(workers*adds)*10, view.Total)
}
