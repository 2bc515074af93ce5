// Package persistence 提供購物清單的整批儲存實作
package persistence

import (
	"context"
	"fmt"
	"sync"

	"mixology-engine/internal/core/shopping"
	"mixology-engine/internal/pkg/common"
)

// DefaultKey 購物清單在 key-value 儲存中的鍵
const DefaultKey = "mixology:shopping_lists"

// MemoryStore 記憶體儲存，以 JSON 序列化保存快照，讀寫互不共用底層陣列
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

var _ shopping.PersistenceStore = (*MemoryStore)(nil)

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadLists 實現 shopping.PersistenceStore
func (m *MemoryStore) LoadLists(ctx context.Context) ([]shopping.ShoppingList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeLists(m.data)
}

// SaveLists 實現 shopping.PersistenceStore
func (m *MemoryStore) SaveLists(ctx context.Context, lists []shopping.ShoppingList) error {
	data, err := encodeLists(lists)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// encodeLists 序列化清單，空集合寫成 []
func encodeLists(lists []shopping.ShoppingList) ([]byte, error) {
	if lists == nil {
		lists = []shopping.ShoppingList{}
	}
	data, err := common.MarshalJSON(lists)
	if err != nil {
		return nil, fmt.Errorf("marshal shopping lists: %w", err)
	}
	return data, nil
}

// decodeLists 反序列化清單，沒有資料時回傳空集合
func decodeLists(data []byte) ([]shopping.ShoppingList, error) {
	if len(data) == 0 {
		return []shopping.ShoppingList{}, nil
	}
	var lists []shopping.ShoppingList
	if err := common.ParseJSONBytes(data, &lists); err != nil {
		return nil, fmt.Errorf("unmarshal shopping lists: %w", err)
	}
	return lists, nil
}
