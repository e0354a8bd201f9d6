// Package iocache is for caching I/O calls: the in-memory TTL entry cache
// backing analysis Tier 1 and the durable scan record store backing Tier 2.
package iocache

import (
	"sync"

	"github.com/clearlabel/clearlabel/internal/contract"
)

// StoreManagerImpl manages the entry cache and record store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	entries      contract.EntryCache
	records      contract.RecordStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetEntryCache returns the Tier-1 entry cache.
func (mgr *StoreManagerImpl) GetEntryCache() contract.EntryCache {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.entries
}

// GetRecordStore returns the Tier-2 record store.
func (mgr *StoreManagerImpl) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}
