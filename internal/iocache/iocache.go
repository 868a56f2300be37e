// Package iocache persists analysis runs and their gap scores.
package iocache

import (
	"fmt"
	"sync"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
)

// StoreManager holds the stores opened for the current process.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	analysis     contract.AnalysisStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *StoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}

// quoteTableName quotes a table name for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return fmt.Sprintf("`%s`", name)
	}
	return fmt.Sprintf("%q", name)
}
