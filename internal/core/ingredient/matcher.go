package ingredient

import (
	"strings"

	"mixology-engine/internal/core/cocktail"
)

// Availability 可用性比對結果
type Availability struct {
	CanMake bool     `json:"canMake"`
	Missing []string `json:"missing"`
}

// CheckAvailability 判斷所需食材能否由庫存滿足
//
// 庫存項目的正規化名稱只要包含需求、被需求包含或與需求同義即視為滿足，
// 因此 "Tito's Vodka" 可以滿足 "vodka"。空白的需求或庫存行會被忽略。
// Missing 保留原始需求字串與需求順序，結果與庫存順序無關。
func CheckAvailability(required, available []string) Availability {
	inventory := make([]string, 0, len(available))
	for _, a := range available {
		if key := Normalize(a).Key; key != "" {
			inventory = append(inventory, key)
		}
	}

	missing := make([]string, 0)
	for _, req := range required {
		key := Normalize(req).Key
		if key == "" {
			continue
		}
		if !satisfied(key, inventory) {
			missing = append(missing, req)
		}
	}

	return Availability{
		CanMake: len(missing) == 0,
		Missing: missing,
	}
}

func satisfied(required string, inventory []string) bool {
	for _, have := range inventory {
		if strings.Contains(have, required) || strings.Contains(required, have) {
			return true
		}
		if equivalentKeys(required, have) {
			return true
		}
	}
	return false
}

// CanMakeRecipe 以吧台食材名稱（含品牌）比對酒譜的食材清單
func CanMakeRecipe(recipe cocktail.Recipe, inventory []cocktail.BarIngredient) Availability {
	available := make([]string, 0, len(inventory)*2)
	for _, ing := range inventory {
		available = append(available, ing.Name)
		if ing.Subcategory != "" {
			available = append(available, ing.Subcategory)
		}
	}
	return CheckAvailability(recipe.Ingredients, available)
}
