package lgorm

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// DialectorOpener is an alias for a function that returns a gorm.Dialector for a given DSN.
type DialectorOpener = func(string) gorm.Dialector

var (
	registryMu sync.RWMutex
	providers  = make(map[string]DialectorOpener)
)

// Register adds a database provider to the registry. sqlite, postgres and
// mysql are registered out of the box.
func Register(name string, provider DialectorOpener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[name] = provider
}

// Open opens a database by registered provider name and returns an item
// store backed by it.
func Open(name string, dsn string, gormConfig *gorm.Config) (*Store, error) {
	registryMu.RLock()
	opener, ok := providers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("lgorm: unknown storage provider %q", name)
	}

	if gormConfig == nil {
		gormConfig = &gorm.Config{}
	}

	db, err := gorm.Open(opener(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	store := NewStore(db)
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}

	return store, nil
}
