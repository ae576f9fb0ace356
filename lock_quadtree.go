package quadtree

import (
	"sync"
)

// Locked serializes access to a Quadtree so it can be shared between goroutines.
// Inserts take the write lock; queries and walks share the read lock.
type Locked struct {
	mutex sync.RWMutex
	tree  *Quadtree
}

func NewLocked(tree *Quadtree) *Locked {
	return &Locked{tree: tree}
}

func (l *Locked) Boundary() BoundingBox {
	// the boundary never changes, no lock needed
	return l.tree.Boundary()
}

func (l *Locked) Insert(p Point) bool {
	// the root boundary can't change, so points outside it are rejected without the lock
	if !l.tree.edges.contains(p) {
		return false
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.tree.insert(p)
	return true
}

func (l *Locked) Query(r BoundingBox, found []Point) []Point {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.tree.Query(r, found)
}

func (l *Locked) QueryRange(r BoundingBox) []Point {
	return l.Query(r, nil)
}

func (l *Locked) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.tree.Len()
}

// Walk holds the read lock for the whole walk. fn must not call Insert on l.
func (l *Locked) Walk(fn WalkFunc) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.tree.Walk(fn)
}
