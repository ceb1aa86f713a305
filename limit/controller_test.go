package limit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Limit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(60))
	assert.Equal(t, int64(60), c.MemoryUsage())

	err := c.AcquireMemory(50)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, int64(60), c.MemoryUsage(), "refused reservation must not be counted")
	assert.Equal(t, int64(1), c.Refused())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(100), c.MemoryUsage())

	c.ReleaseMemory(60)
	assert.Equal(t, int64(40), c.MemoryUsage())
	require.NoError(t, c.AcquireMemory(50))

	assert.Equal(t, int64(100), c.PeakUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1<<40))
	assert.Equal(t, int64(1<<40), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())

	c.ReleaseMemory(1 << 40)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(1<<40), c.PeakUsage())
}

func TestController_NonPositive(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})

	assert.NoError(t, c.AcquireMemory(0))
	assert.NoError(t, c.AcquireMemory(-5))
	c.ReleaseMemory(0)
	c.ReleaseMemory(-5)
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_NegativeLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: -1})

	require.NoError(t, c.AcquireMemory(1<<20))
	assert.Equal(t, int64(0), c.MemoryLimit())
	assert.Equal(t, int64(1<<20), c.MemoryUsage())
	assert.Zero(t, c.Refused())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireMemory(1024))
	c.ReleaseMemory(1024)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.PeakUsage())
	assert.Equal(t, int64(0), c.Refused())
	assert.Equal(t, int64(0), c.MemoryLimit())
}

func TestController_Concurrent(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 1000})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := c.AcquireMemory(10); err == nil {
					c.ReleaseMemory(10)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.LessOrEqual(t, c.PeakUsage(), int64(1000))
}
