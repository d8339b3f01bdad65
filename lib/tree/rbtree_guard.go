package tree

import (
	"sync"
)

// rbGuard wraps every public operation. Queries take the read lock and
// mutations take the write lock for the whole call, fix-up included.
type rbGuard interface {
	lock()
	unlock()
	rlock()
	runlock()
}

type noopGuard struct{}

func (noopGuard) lock()    {}
func (noopGuard) unlock()  {}
func (noopGuard) rlock()   {}
func (noopGuard) runlock() {}

type rwGuard struct {
	mu sync.RWMutex
}

func (g *rwGuard) lock()    { g.mu.Lock() }
func (g *rwGuard) unlock()  { g.mu.Unlock() }
func (g *rwGuard) rlock()   { g.mu.RLock() }
func (g *rwGuard) runlock() { g.mu.RUnlock() }
