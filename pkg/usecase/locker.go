package usecase

import (
	"sync"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// keyedLocker serializes write operations per company. Regeneration must
// not interleave with risk edits or approval checks of the same company;
// different companies proceed independently.
type keyedLocker struct {
	locks sync.Map // types.CompanyID -> *sync.Mutex
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{}
}

// Lock acquires the mutex for the given company and returns its unlock
// function
func (l *keyedLocker) Lock(id types.CompanyID) func() {
	v, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
