package crawler

import (
	"github.com/Sriram-PR/seo-audit/pkg/parse"
	"github.com/Sriram-PR/seo-audit/pkg/storage"
)

// Frontier is a FIFO work queue backed by a seen-URL store. Frontiers that
// share a store share membership: a URL enters at most one of them, once.
type Frontier struct {
	store storage.SeenStore
	queue []string
}

// NewFrontier creates an empty frontier over store
func NewFrontier(store storage.SeenStore) *Frontier {
	return &Frontier{store: store}
}

// Push enqueues rawURL (fragment removed) unless it was seen before.
// Returns true if the URL was enqueued.
func (f *Frontier) Push(rawURL string) (bool, error) {
	key := parse.StripFragment(rawURL)
	if key == "" {
		return false, nil
	}
	added, err := f.store.MarkSeen(key)
	if err != nil {
		return false, err
	}
	if added {
		f.queue = append(f.queue, key)
	}
	return added, nil
}

// PopBatch removes and returns up to n URLs from the head of the queue.
func (f *Frontier) PopBatch(n int) []string {
	if n <= 0 || len(f.queue) == 0 {
		return nil
	}
	if n > len(f.queue) {
		n = len(f.queue)
	}
	batch := make([]string, n)
	copy(batch, f.queue[:n])
	f.queue = f.queue[n:]
	return batch
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// Queued returns a copy of the queued URLs in order.
func (f *Frontier) Queued() []string {
	return append([]string(nil), f.queue...)
}
