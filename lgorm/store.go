// Package lgorm provides the GORM-backed item store for Loom auth.
//
// Lists are schema-driven, so items are read and written as dynamic rows
// (map[string]any) against a per-list table rather than through static
// models. The store also persists the audit trail.
package lgorm

import (
	"context"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/loomcms/loom/audit"
	"github.com/loomcms/loom/domain"
)

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

// Store implements domain.ItemStore and audit.Store on a gorm.DB.
type Store struct {
	db *gorm.DB

	mu     sync.RWMutex
	tables map[string]string // listKey -> table name overrides
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, tables: make(map[string]string)}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates the store's own tables. List tables belong to the
// schema layer and are not migrated here.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&gormAuditEvent{})
}

// RegisterList overrides the table name used for a list key. Without an
// override the lowercased, pluralised list key is used ("User" -> "users").
func (s *Store) RegisterList(listKey, tableName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[listKey] = tableName
}

func (s *Store) tableFor(listKey string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tables[listKey]; ok {
		return t
	}
	return strings.ToLower(listKey) + "s"
}

func (s *Store) FindMany(ctx context.Context, listKey string, filter map[string]any) ([]domain.Item, error) {
	var rows []map[string]any
	err := s.db.WithContext(ctx).
		Table(s.tableFor(listKey)).
		Where(filter).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, len(rows))
	for i, row := range rows {
		items[i] = domain.Item(row)
	}
	return items, nil
}

func (s *Store) UpdateOne(ctx context.Context, listKey, id string, data map[string]any) (domain.Item, error) {
	table := s.tableFor(listKey)

	tx := s.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Updates(data)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var row map[string]any
	err := s.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return domain.Item(row), nil
}

func (s *Store) SaveEvent(ctx context.Context, e *audit.Event) error {
	return s.db.WithContext(ctx).Create(fromAuditEvent(e)).Error
}
