package service

import (
	"Tribune/types"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"sort"
	"time"
)

// CandidatePool 一路召回结果及其权重
type CandidatePool struct {
	Source types.FeedSource
	Weight int
	Items  []types.FeedCandidate
}

// Blend 按权重混排多路召回。
// 输出按 pageSize 分段，每段按权重最大余数法分配名额，不足的名额按权重顺序由其它来源补齐，
// 段内用 seed 打散。同一视频只保留一次，归属于权重最高的来源
func Blend(pools []CandidatePool, pageSize int, seed uint64) []types.FeedCandidate {
	if pageSize <= 0 {
		return []types.FeedCandidate{}
	}

	ordered := make([]CandidatePool, len(pools))
	copy(ordered, pools)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})

	queues, total := dedupe(ordered)
	out := make([]types.FeedCandidate, 0, total)
	if total == 0 {
		return out
	}

	weights := make([]int, len(ordered))
	for i, p := range ordered {
		weights[i] = max(p.Weight, 0)
	}
	quotas := Apportion(pageSize, weights)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	heads := make([]int, len(queues))
	for len(out) < total {
		chunk := takeChunk(queues, heads, quotas, pageSize)
		rng.Shuffle(len(chunk), func(i, j int) {
			chunk[i], chunk[j] = chunk[j], chunk[i]
		})
		out = append(out, chunk...)
	}
	return out
}

// Apportion 最大余数法把 n 个名额按权重分配，余数相同时先给靠前的来源
func Apportion(n int, weights []int) []int {
	quotas := make([]int, len(weights))
	sum := 0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 || n <= 0 {
		return quotas
	}

	remainders := make([]int, len(weights))
	assigned := 0
	for i, w := range weights {
		quotas[i] = n * w / sum
		remainders[i] = n * w % sum
		assigned += quotas[i]
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for k := 0; assigned < n; k++ {
		quotas[order[k%len(order)]]++
		assigned++
	}
	return quotas
}

func dedupe(pools []CandidatePool) ([][]types.FeedCandidate, int) {
	seen := make(map[uint64]struct{})
	queues := make([][]types.FeedCandidate, len(pools))
	total := 0
	for i, p := range pools {
		for _, c := range p.Items {
			if _, ok := seen[c.VideoID]; ok {
				continue
			}
			seen[c.VideoID] = struct{}{}
			c.Source = p.Source
			queues[i] = append(queues[i], c)
			total++
		}
	}
	return queues, total
}

// takeChunk 先按名额取，再把空出的名额按权重顺序补齐
func takeChunk(queues [][]types.FeedCandidate, heads []int, quotas []int, size int) []types.FeedCandidate {
	chunk := make([]types.FeedCandidate, 0, size)
	take := func(i, n int) {
		n = min(n, len(queues[i])-heads[i])
		if n <= 0 {
			return
		}
		chunk = append(chunk, queues[i][heads[i]:heads[i]+n]...)
		heads[i] += n
	}

	for i := range queues {
		take(i, quotas[i])
	}
	for i := range queues {
		take(i, size-len(chunk))
	}
	return chunk
}

// FeedSeed 由用户和取整后的请求时间得到打散种子
func FeedSeed(userID uint64, epoch time.Time) uint64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], userID)
	binary.BigEndian.PutUint64(buf[8:], uint64(epoch.UnixNano()))
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
