// Package ranker finds the most expensive lines of a file to type.
package ranker

import (
	"container/heap"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sam-masaki/layout-speed/internal/core/timeline"
	"github.com/sam-masaki/layout-speed/internal/util"
)

// DefaultLimit bounds how many lines a ranking retains.
const DefaultLimit = 100

// Ranked pairs a line with the timeline built for it.
type Ranked struct {
	Timeline *timeline.Timeline
	Line     string
}

// Ranker builds one timeline per line in parallel and keeps the top lines
// by total distance. Two lines with equal distance rank equal, whatever
// else differs between them.
type Ranker struct {
	builder     *timeline.Builder
	limit       int
	concurrency int
}

// New creates a Ranker retaining the top DefaultLimit lines.
func New(builder *timeline.Builder) *Ranker {
	return &Ranker{
		builder:     builder,
		limit:       DefaultLimit,
		concurrency: runtime.NumCPU(),
	}
}

// WithLimit changes the retention limit. Non-positive values are ignored.
func (r *Ranker) WithLimit(n int) *Ranker {
	if n > 0 {
		r.limit = n
	}
	return r
}

// RankFile ranks the lines of a file. Read failures are returned; no
// partial ranking comes back.
func (r *Ranker) RankFile(path string) ([]Ranked, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}
	return r.RankLines(string(data)), nil
}

// RankLines returns up to the retention limit of (timeline, line) pairs
// sorted by non-increasing total distance.
func (r *Ranker) RankLines(contents string) []Ranked {
	lines := strings.Split(contents, "\n")
	// A canonical text file ends with a newline; that terminator closes
	// the last line rather than opening an empty one.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	start := time.Now()
	util.LogDebugf("Ranking %d lines, concurrency: %d", len(lines), r.concurrency)

	results := make(chan Ranked, len(lines))
	semaphore := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup

	for _, line := range lines {
		wg.Add(1)
		go func(line string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results <- Ranked{Timeline: r.builder.Build(line, false), Line: line}
		}(line)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Bounded min-heap: once full, a new line only enters by evicting the
	// cheapest retained one.
	top := &distHeap{}
	heap.Init(top)
	for ranked := range results {
		if top.Len() < r.limit {
			heap.Push(top, ranked)
			continue
		}
		if ranked.Timeline.TotalDist > (*top)[0].Timeline.TotalDist {
			(*top)[0] = ranked
			heap.Fix(top, 0)
		}
	}

	out := make([]Ranked, top.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(top).(Ranked)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timeline.TotalDist > out[j].Timeline.TotalDist
	})

	util.LogDebugf("Ranking finished in %v, retained %d lines", time.Since(start), len(out))
	return out
}

// distHeap is a min-heap of ranked lines keyed only by total distance.
type distHeap []Ranked

func (h distHeap) Len() int { return len(h) }

func (h distHeap) Less(i, j int) bool {
	return h[i].Timeline.TotalDist < h[j].Timeline.TotalDist
}

func (h distHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *distHeap) Push(x any) {
	*h = append(*h, x.(Ranked))
}

func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
