// Package profile 提供使用者偏好與吧台庫存的記憶體實作
package profile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// Document profiles 檔案格式
type Document struct {
	Profiles    map[string]cocktail.UserProfile     `json:"profiles"`
	Inventories map[string][]cocktail.BarIngredient `json:"inventories"`
}

// MemoryStore 同時實作 ProfileStore 與 InventoryStore
type MemoryStore struct {
	mu          sync.RWMutex
	profiles    map[string]cocktail.UserProfile
	inventories map[string][]cocktail.BarIngredient
}

var (
	_ cocktail.ProfileStore   = (*MemoryStore)(nil)
	_ cocktail.InventoryStore = (*MemoryStore)(nil)
)

// NewMemoryStore 創建空的記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:    make(map[string]cocktail.UserProfile),
		inventories: make(map[string][]cocktail.BarIngredient),
	}
}

// LoadFile 從 JSON 檔載入使用者資料
func LoadFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}

	var doc Document
	if err := common.ParseJSONBytes(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}

	s := NewMemoryStore()
	for id, p := range doc.Profiles {
		s.PutProfile(id, p)
	}
	for id, inv := range doc.Inventories {
		s.PutInventory(id, inv)
	}

	common.LogInfo("使用者資料已載入",
		zap.String("path", path),
		zap.Int("profiles", len(doc.Profiles)),
		zap.Int("inventories", len(doc.Inventories)),
	)
	return s, nil
}

// PutProfile 新增或覆寫使用者偏好
func (s *MemoryStore) PutProfile(userID string, p cocktail.UserProfile) {
	p.UserID = userID
	s.mu.Lock()
	s.profiles[userID] = p
	s.mu.Unlock()
}

// PutInventory 覆寫使用者的吧台庫存
func (s *MemoryStore) PutInventory(userID string, ings []cocktail.BarIngredient) {
	cp := make([]cocktail.BarIngredient, len(ings))
	copy(cp, ings)
	s.mu.Lock()
	s.inventories[userID] = cp
	s.mu.Unlock()
}

// Get 實現 cocktail.ProfileStore
func (s *MemoryStore) Get(ctx context.Context, userID string) (*cocktail.UserProfile, error) {
	s.mu.RLock()
	p, ok := s.profiles[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, common.NewNotFoundError("profile %s not found", userID)
	}
	return &p, nil
}

// GetInventory 實現 cocktail.InventoryStore，沒有庫存的使用者回傳空集合
func (s *MemoryStore) GetInventory(ctx context.Context, userID string) ([]cocktail.BarIngredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv := s.inventories[userID]
	out := make([]cocktail.BarIngredient, len(inv))
	copy(out, inv)
	return out, nil
}

// Users 已知的使用者數
func (s *MemoryStore) Users() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
