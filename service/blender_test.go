package service

import (
	"Tribune/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pool(source types.FeedSource, weight int, from, n uint64) CandidatePool {
	items := make([]types.FeedCandidate, 0, n)
	for id := from; id < from+n; id++ {
		items = append(items, types.FeedCandidate{VideoID: id, Source: source, Score: int64(from + n - id)})
	}
	return CandidatePool{Source: source, Weight: weight, Items: items}
}

func countSources(items []types.FeedCandidate) map[types.FeedSource]int {
	counts := make(map[types.FeedSource]int)
	for _, c := range items {
		counts[c.Source]++
	}
	return counts
}

func TestApportion(t *testing.T) {
	cases := []struct {
		n       int
		weights []int
		want    []int
	}{
		{10, []int{4, 3, 3}, []int{4, 3, 3}},
		{20, []int{4, 3, 3}, []int{8, 6, 6}},
		{5, []int{4, 3, 3}, []int{2, 2, 1}},
		{3, []int{4, 3, 3}, []int{1, 1, 1}},
		{2, []int{4, 3, 3}, []int{1, 1, 0}},
		{1, []int{4, 3, 3}, []int{1, 0, 0}},
		{7, []int{4, 3, 3}, []int{3, 2, 2}},
		{0, []int{4, 3, 3}, []int{0, 0, 0}},
		{10, []int{0, 0, 0}, []int{0, 0, 0}},
		{4, []int{1, 1}, []int{2, 2}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Apportion(tc.n, tc.weights), "n=%d weights=%v", tc.n, tc.weights)
	}
}

func TestBlend_Proportions(t *testing.T) {
	pools := []CandidatePool{
		pool(types.SourceAffinity, 4, 1, 20),
		pool(types.SourcePopularity, 3, 100, 15),
		pool(types.SourceEngagement, 3, 200, 15),
	}
	out := Blend(pools, 10, 42)
	require.Len(t, out, 50)

	first := countSources(out[:10])
	assert.Equal(t, 4, first[types.SourceAffinity])
	assert.Equal(t, 3, first[types.SourcePopularity])
	assert.Equal(t, 3, first[types.SourceEngagement])

	// 每个来源内部保持召回顺序
	var affinity []uint64
	for _, c := range out {
		if c.Source == types.SourceAffinity {
			affinity = append(affinity, c.VideoID)
		}
	}
	assert.Equal(t, []uint64{1, 2, 3, 4}, sortedCopy(affinity[:4]))
}

func TestBlend_ShortfallRedistributedInWeightOrder(t *testing.T) {
	pools := []CandidatePool{
		pool(types.SourceAffinity, 4, 1, 1),
		pool(types.SourcePopularity, 3, 100, 15),
		pool(types.SourceEngagement, 3, 200, 15),
	}
	out := Blend(pools, 10, 7)
	counts := countSources(out[:10])
	assert.Equal(t, 1, counts[types.SourceAffinity])
	assert.Equal(t, 6, counts[types.SourcePopularity])
	assert.Equal(t, 3, counts[types.SourceEngagement])

	// 两路同时不足时依次由剩下的来源补齐
	pools = []CandidatePool{
		pool(types.SourceAffinity, 4, 1, 1),
		pool(types.SourcePopularity, 3, 100, 2),
		pool(types.SourceEngagement, 3, 200, 15),
	}
	out = Blend(pools, 10, 7)
	counts = countSources(out[:10])
	assert.Equal(t, 1, counts[types.SourceAffinity])
	assert.Equal(t, 2, counts[types.SourcePopularity])
	assert.Equal(t, 7, counts[types.SourceEngagement])
	assert.Len(t, out, 18)
}

func TestBlend_DedupeKeepsHighestWeight(t *testing.T) {
	pools := []CandidatePool{
		{Source: types.SourceEngagement, Weight: 3, Items: []types.FeedCandidate{{VideoID: 1}, {VideoID: 2}, {VideoID: 2}}},
		{Source: types.SourceAffinity, Weight: 4, Items: []types.FeedCandidate{{VideoID: 2}, {VideoID: 3}}},
		{Source: types.SourcePopularity, Weight: 3, Items: []types.FeedCandidate{{VideoID: 1}, {VideoID: 3}, {VideoID: 4}}},
	}
	out := Blend(pools, 10, 1)
	require.Len(t, out, 4)

	bySource := make(map[uint64]types.FeedSource)
	for _, c := range out {
		_, dup := bySource[c.VideoID]
		assert.False(t, dup, "video %d appears twice", c.VideoID)
		bySource[c.VideoID] = c.Source
	}
	assert.Equal(t, types.SourceAffinity, bySource[2])
	assert.Equal(t, types.SourceAffinity, bySource[3])
	// 权重相同时先出现的来源优先
	assert.Equal(t, types.SourceEngagement, bySource[1])
	assert.Equal(t, types.SourcePopularity, bySource[4])
}

func TestBlend_Deterministic(t *testing.T) {
	pools := []CandidatePool{
		pool(types.SourceAffinity, 4, 1, 20),
		pool(types.SourcePopularity, 3, 100, 15),
		pool(types.SourceEngagement, 3, 200, 15),
	}
	a := Blend(pools, 10, 99)
	b := Blend(pools, 10, 99)
	c := Blend(pools, 10, 100)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.ElementsMatch(t, a, c)
}

func TestBlend_Empty(t *testing.T) {
	out := Blend([]CandidatePool{
		{Source: types.SourceAffinity, Weight: 4},
		{Source: types.SourcePopularity, Weight: 3},
		{Source: types.SourceEngagement, Weight: 3},
	}, 10, 1)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	assert.Empty(t, Blend(nil, 10, 1))
	assert.Empty(t, Blend([]CandidatePool{pool(types.SourceAffinity, 4, 1, 3)}, 0, 1))
}

func TestBlend_SmallPageSizes(t *testing.T) {
	pools := []CandidatePool{
		pool(types.SourceAffinity, 4, 1, 20),
		pool(types.SourcePopularity, 3, 100, 15),
		pool(types.SourceEngagement, 3, 200, 15),
	}
	out := Blend(pools, 1, 5)
	require.Len(t, out, 50)
	assert.Equal(t, types.SourceAffinity, out[0].Source)

	out = Blend(pools, 5, 5)
	counts := countSources(out[:5])
	assert.Equal(t, 2, counts[types.SourceAffinity])
	assert.Equal(t, 2, counts[types.SourcePopularity])
	assert.Equal(t, 1, counts[types.SourceEngagement])
}

func TestFeedSeed(t *testing.T) {
	epoch := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, FeedSeed(1, epoch), FeedSeed(1, epoch))
	assert.NotEqual(t, FeedSeed(1, epoch), FeedSeed(2, epoch))
	assert.NotEqual(t, FeedSeed(1, epoch), FeedSeed(1, epoch.Add(5*time.Minute)))
}

func sortedCopy(ids []uint64) []uint64 {
	out := append([]uint64(nil), ids...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
