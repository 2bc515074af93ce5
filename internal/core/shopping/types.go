// Package shopping 將酒譜食材轉為購物清單，並提供跨清單的合併檢視
package shopping

import (
	"context"
	"time"
)

// Category 食材分類
type Category string

const (
	CategorySpirits Category = "spirits_liquors"
	CategoryMixers  Category = "mixers"
	CategoryGarnish Category = "garnish"
	CategoryBitters Category = "bitters"
	CategorySyrup   Category = "syrup"
	CategoryOther   Category = "other"
)

// GroceryItem 購物項目，ID 以實例為單位，同一食材出現在不同清單會有不同 ID
type GroceryItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Size           string   `json:"size,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Checked        bool     `json:"checked"`
	IsCompleted    bool     `json:"isCompleted"`
	EstimatedPrice float64  `json:"estimatedPrice"`
}

// ShoppingList 單一酒譜的購物清單，清空時即被移除
type ShoppingList struct {
	ID          string        `json:"id"`
	RecipeName  string        `json:"recipeName"`
	RecipeID    string        `json:"recipeId,omitempty"`
	Items       []GroceryItem `json:"items"`
	IsCompleted bool          `json:"isCompleted"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ConsolidatedItem 依正規化名稱合併的項目，保留第一次出現的項目作為代表
type ConsolidatedItem struct {
	GroceryItem
	Quantity    int      `json:"quantity"`
	RecipeNames []string `json:"recipeNames"`
}

// ConsolidatedView 讀取時計算的合併檢視，不會被儲存
type ConsolidatedView struct {
	ItemsByRecipe map[string][]GroceryItem `json:"itemsByRecipe"`
	AllItems      []ConsolidatedItem       `json:"allItems"`
}

// PersistenceStore 整批讀寫所有購物清單
//
// 實作需保證 SaveLists 為原子寫入；呼叫端每次變更後都會重新讀取。
type PersistenceStore interface {
	LoadLists(ctx context.Context) ([]ShoppingList, error)
	SaveLists(ctx context.Context, lists []ShoppingList) error
}
