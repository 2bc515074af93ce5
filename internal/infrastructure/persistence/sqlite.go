package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"mixology-engine/internal/core/shopping"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// SQLiteStore 將購物清單以 JSON 存入 SQLite 的 key-value 表
type SQLiteStore struct {
	db  *sql.DB
	key string
}

var _ shopping.PersistenceStore = (*SQLiteStore)(nil)

// NewSQLiteStore 開啟資料庫並初始化 schema
func NewSQLiteStore(dbPath, key string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if key == "" {
		key = DefaultKey
	}
	return &SQLiteStore{db: db, key: key}, nil
}

// LoadLists 實現 shopping.PersistenceStore
func (s *SQLiteStore) LoadLists(ctx context.Context) ([]shopping.ShoppingList, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []shopping.ShoppingList{}, nil
		}
		return nil, fmt.Errorf("load lists: %w", err)
	}
	return decodeLists(data)
}

// SaveLists 實現 shopping.PersistenceStore，單一 upsert 即為原子寫入
func (s *SQLiteStore) SaveLists(ctx context.Context, lists []shopping.ShoppingList) error {
	data, err := encodeLists(lists)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save lists: %w", err)
	}
	return nil
}

// Ping 健康檢查
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
