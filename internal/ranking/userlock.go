package ranking

import "sync"

// userLocks hands out one mutex per user id. Entries are reference counted and dropped
// once no goroutine holds or waits for them.
type userLocks struct {
	mu    sync.Mutex
	locks map[int]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: map[int]*userLock{},
	}
}

// Lock blocks until the user's lock is held and returns its release func.
func (l *userLocks) Lock(userID int) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &userLock{}
		l.locks[userID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
