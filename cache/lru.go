package cache

// lruNode is one entry in the recency ring. It carries its key so eviction
// can delete the owning map entry in O(1).
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList tracks recency as a circular doubly-linked list around a sentinel
// root: root.next is the most recently used node, root.prev the least. The
// ring shape removes all head/tail nil cases. Not safe for concurrent use;
// the owning shard serializes access.
type lruList[K comparable] struct {
	root lruNode[K]
	len  int
}

// newLRUList creates an empty recency ring.
func newLRUList[K comparable]() *lruList[K] {
	l := &lruList[K]{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

// Len returns the number of entries in the ring.
func (l *lruList[K]) Len() int { return l.len }

// PushFront inserts a new node as most recently used and returns it.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.attach(n)
	l.len++
	return n
}

// MoveToFront marks a node already in the ring as most recently used.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if n == nil || l.root.next == n {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	l.attach(n)
}

// Remove detaches a node from the ring.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	if n == nil || n.prev == nil {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.len--
}

// RemoveOldest evicts the least recently used entry and returns its key,
// or false if the ring is empty.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.Remove(n)
	return n.key, true
}

// Clear resets the ring to empty. Detached nodes keep their stale pointers;
// the owning shard drops its map in the same step, so nothing reaches them.
func (l *lruList[K]) Clear() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.len = 0
}

// attach links n directly behind the sentinel (most recently used slot).
func (l *lruList[K]) attach(n *lruNode[K]) {
	n.prev = &l.root
	n.next = l.root.next
	n.next.prev = n
	l.root.next = n
}
