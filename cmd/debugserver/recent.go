package main

import (
	"sync"

	"github.com/automoto/lodis-galaga/debuglog"
)

// Recent is a bounded in-memory buffer of the newest received entries.
type Recent struct {
	mu      sync.RWMutex
	entries []debuglog.Entry
	keep    int
}

func NewRecent(keep int) *Recent {
	if keep <= 0 {
		keep = 1
	}
	return &Recent{entries: make([]debuglog.Entry, 0, keep), keep: keep}
}

func (r *Recent) Add(entries ...debuglog.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	if over := len(r.entries) - r.keep; over > 0 {
		r.entries = append(r.entries[:0], r.entries[over:]...)
	}
}

// List returns the buffered entries, oldest first.
func (r *Recent) List() []debuglog.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]debuglog.Entry{}, r.entries...)
}
