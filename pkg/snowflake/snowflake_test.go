package snowflake

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ID 会被 hashids 按 int64 编码进游标，不能超出 int64
func TestGenID_FitsInt64(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := GenID()
		assert.NotZero(t, id)
		assert.LessOrEqual(t, id, uint64(math.MaxInt64))
	}
}

func TestGenID_UniqueAcrossGoroutines(t *testing.T) {
	const workers, each = 8, 2000

	out := make([][]uint64, workers)
	var wg sync.WaitGroup
	for w := range out {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				out[w] = append(out[w], GenID())
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uint64]struct{}, workers*each)
	for _, ids := range out {
		for _, id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %d", id)
			seen[id] = struct{}{}
		}
	}
	assert.Len(t, seen, workers*each)
}
