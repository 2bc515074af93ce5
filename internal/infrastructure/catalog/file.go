// Package catalog 提供酒譜目錄的來源：本機 JSON 檔、遠端 API 與記憶體快取
package catalog

import (
	"context"
	"fmt"
	"os"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/pkg/common"
)

// FileCatalog 從 JSON 檔讀取酒譜目錄，每次呼叫都重新讀檔
type FileCatalog struct {
	path string
}

var _ cocktail.RecipeCatalog = (*FileCatalog)(nil)

// NewFileCatalog 創建檔案目錄
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

// GetAll 實現 cocktail.RecipeCatalog
func (c *FileCatalog) GetAll(ctx context.Context) ([]cocktail.Recipe, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", c.path, err)
	}
	return DecodeRecipes(data)
}

// DecodeRecipes 解析酒譜 JSON，接受陣列或 {"recipes": [...]} 兩種格式
func DecodeRecipes(data []byte) ([]cocktail.Recipe, error) {
	var recipes []cocktail.Recipe
	if err := common.ParseJSONBytes(data, &recipes); err == nil {
		return validRecipes(recipes)
	}

	var wrapped struct {
		Recipes []cocktail.Recipe `json:"recipes"`
	}
	if err := common.ParseJSONBytes(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return validRecipes(wrapped.Recipes)
}

// validRecipes 檢查 ID 存在且不重複
func validRecipes(recipes []cocktail.Recipe) ([]cocktail.Recipe, error) {
	seen := make(map[string]bool, len(recipes))
	for i, r := range recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("recipe at index %d has no id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = true
	}
	if recipes == nil {
		recipes = []cocktail.Recipe{}
	}
	return recipes, nil
}
