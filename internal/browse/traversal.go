package browse

import (
	"context"
	"fmt"
	"sync"
)

// DefaultMaxDepth bounds container discovery. Directory trees are shallow in
// practice; the bound keeps a pathological or cyclic server response from
// turning into an unbounded stream of listing calls.
const DefaultMaxDepth = 5

// ProgressCallback is called during traversal to report progress.
type ProgressCallback func(current, total int, message string)

// Browser walks a snapshot's implicit object tree using only the node-scoped
// child-listing primitive: bounded-depth breadth-first discovery of every
// container, then a full enumeration pass over each one.
type Browser struct {
	lister           ChildLister
	maxDepth         int
	concurrency      int
	progressCallback ProgressCallback
}

// NewBrowser creates a browser over the given lister. Traversal is
// sequential unless SetConcurrency raises the limit.
func NewBrowser(lister ChildLister) *Browser {
	return &Browser{
		lister:      lister,
		maxDepth:    DefaultMaxDepth,
		concurrency: 1,
	}
}

// SetMaxDepth overrides the discovery depth bound.
func (b *Browser) SetMaxDepth(depth int) {
	if depth > 0 {
		b.maxDepth = depth
	}
}

// SetConcurrency bounds how many same-level listing calls run at once.
// Calls at different levels never overlap; each level depends on the last.
func (b *Browser) SetConcurrency(n int) {
	if n > 0 {
		b.concurrency = n
	}
}

// SetProgressCallback sets the progress callback function.
func (b *Browser) SetProgressCallback(callback ProgressCallback) {
	b.progressCallback = callback
}

func (b *Browser) reportProgress(current, total int, message string) {
	if b.progressCallback != nil {
		b.progressCallback(current, total, message)
	}
}

// DiscoverContainers finds every container reachable from the snapshot root
// within the depth bound, level by level. A key already discovered is never
// expanded again, which also guarantees termination if the server reports a
// cyclic structure. Any listing failure aborts discovery with no partial
// result.
func (b *Browser) DiscoverContainers(ctx context.Context, snapshot SnapshotHandle) ([]Node, error) {
	seen := make(map[NodeKey]struct{})
	var discovered []Node

	frontier := []NodeKey{RootKey}
	for level := 1; level <= b.maxDepth && len(frontier) > 0; level++ {
		results, err := b.listLevel(ctx, snapshot, frontier, true)
		if err != nil {
			return nil, fmt.Errorf("expand level %d: %w", level, err)
		}

		var next []NodeKey
		for _, children := range results {
			for _, node := range children {
				if node.Key == RootKey || !node.IsContainer() {
					continue
				}
				if _, ok := seen[node.Key]; ok {
					continue
				}
				seen[node.Key] = struct{}{}
				discovered = append(discovered, node)
				next = append(next, node.Key)
			}
		}

		b.reportProgress(level, b.maxDepth, fmt.Sprintf("Level %d: %d new containers", level, len(next)))
		frontier = next
	}

	return discovered, nil
}

// Result holds the outcome of one full browse: the discovered container set
// and the flattened leaf-object records.
type Result struct {
	Containers []Node
	Records    []ObjectRecord
}

// BrowseObjects enumerates every leaf object in the snapshot: container
// discovery followed by a full (non-containers-only) listing of each
// discovered container, deduplicated by key and projected into flat records.
func (b *Browser) BrowseObjects(ctx context.Context, snapshot SnapshotHandle, domain DomainContext) ([]ObjectRecord, error) {
	result, err := b.Browse(ctx, snapshot, domain)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// Browse is BrowseObjects plus the intermediate container set, for callers
// reporting traversal statistics.
func (b *Browser) Browse(ctx context.Context, snapshot SnapshotHandle, domain DomainContext) (*Result, error) {
	containers, err := b.DiscoverContainers(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	b.reportProgress(0, len(containers), fmt.Sprintf("Enumerating %d containers", len(containers)))

	keys := make([]NodeKey, len(containers))
	for i, c := range containers {
		keys[i] = c.Key
	}

	results, err := b.listLevel(ctx, snapshot, keys, false)
	if err != nil {
		return nil, fmt.Errorf("enumerate containers: %w", err)
	}

	// The server cannot filter to leaves, only to containers, so the full
	// listing repeats nested containers already handled by discovery.
	seen := make(map[NodeKey]struct{})
	var objects []Node
	for _, children := range results {
		for _, node := range children {
			if node.IsContainer() {
				continue
			}
			if _, ok := seen[node.Key]; ok {
				continue
			}
			seen[node.Key] = struct{}{}
			objects = append(objects, node)
		}
	}

	return &Result{
		Containers: containers,
		Records:    AssembleRecords(snapshot, domain, objects),
	}, nil
}

// listLevel lists the children of every key in one traversal level. Results
// are indexed by the key's position so output order is deterministic even
// when calls fan out. The first failure wins; no partial level is returned.
func (b *Browser) listLevel(ctx context.Context, snapshot SnapshotHandle, keys []NodeKey, containersOnly bool) ([][]Node, error) {
	results := make([][]Node, len(keys))

	if b.concurrency <= 1 {
		for i, key := range keys {
			children, err := b.lister.ListChildren(ctx, snapshot, key, containersOnly)
			if err != nil {
				return nil, err
			}
			results[i] = children
		}
		return results, nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	semaphore := make(chan struct{}, b.concurrency)

	for i, key := range keys {
		wg.Add(1)
		go func(i int, key NodeKey) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			children, err := b.lister.ListChildren(ctx, snapshot, key, containersOnly)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[i] = children
		}(i, key)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
