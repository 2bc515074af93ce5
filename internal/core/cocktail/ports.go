package cocktail

import "context"

// RecipeCatalog 提供酒譜目錄，可由檔案、遠端 API 或快取實作
type RecipeCatalog interface {
	GetAll(ctx context.Context) ([]Recipe, error)
}

// ProfileStore 提供使用者偏好
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
}

// InventoryStore 提供使用者的吧台庫存
type InventoryStore interface {
	GetInventory(ctx context.Context, userID string) ([]BarIngredient, error)
}

// FindRecipe 在目錄中依 ID 尋找酒譜
func FindRecipe(recipes []Recipe, id string) (Recipe, bool) {
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}
