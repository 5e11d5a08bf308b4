package services

import (
	"fmt"
	"sync"
)

// Locks serializes mutations per entity: one key per order, per product and
// per restaurant (shift lifecycle). A lock is held for the duration of a
// single state transition, never across requests.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the named key and returns the release func.
func (l *Locks) Acquire(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func orderKey(orderID uint) string      { return fmt.Sprintf("order:%d", orderID) }
func productKey(productID uint) string  { return fmt.Sprintf("product:%d", productID) }
func shiftKey(restaurantID uint) string { return fmt.Sprintf("shift:%d", restaurantID) }

// orderSeqKey serializes order creation per restaurant so the day's
// sequential numbers never collide.
func orderSeqKey(restaurantID uint) string { return fmt.Sprintf("orderseq:%d", restaurantID) }
