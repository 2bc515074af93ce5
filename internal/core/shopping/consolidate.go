package shopping

import "mixology-engine/internal/core/ingredient"

// GetConsolidatedView 依酒譜列出項目，並依正規化名稱合併成 AllItems
//
// 每個名稱第一次出現的項目作為代表（ID、價格與其他欄位），之後出現時只累加
// Quantity 並記錄來源酒譜。同一酒譜名稱只記錄一次。AllItems 依第一次出現的順序排列。
func GetConsolidatedView(lists []ShoppingList) ConsolidatedView {
	view := ConsolidatedView{
		ItemsByRecipe: make(map[string][]GroceryItem, len(lists)),
		AllItems:      []ConsolidatedItem{},
	}
	index := make(map[string]int)

	for _, list := range lists {
		view.ItemsByRecipe[list.RecipeName] = append(view.ItemsByRecipe[list.RecipeName], list.Items...)

		for _, item := range list.Items {
			key := ingredient.Normalize(item.Name).Key
			i, ok := index[key]
			if !ok {
				index[key] = len(view.AllItems)
				view.AllItems = append(view.AllItems, ConsolidatedItem{
					GroceryItem: item,
					Quantity:    1,
					RecipeNames: []string{list.RecipeName},
				})
				continue
			}

			agg := &view.AllItems[i]
			agg.Quantity++
			if !containsName(agg.RecipeNames, list.RecipeName) {
				agg.RecipeNames = append(agg.RecipeNames, list.RecipeName)
			}
		}
	}
	return view
}

// Migrate 以預設分類表補齊舊資料缺少的分類與子分類，可重複執行
//
// 回傳升級後的清單副本與實際變更的項目數。
func Migrate(lists []ShoppingList) ([]ShoppingList, int) {
	return MigrateWith(Rules, lists)
}

// MigrateWith 以指定的規則表升級，分類輸入與建立項目時相同（品牌 + 名稱）
func MigrateWith(rules []Rule, lists []ShoppingList) ([]ShoppingList, int) {
	out := make([]ShoppingList, len(lists))
	changed := 0

	for i, list := range lists {
		items := make([]GroceryItem, len(list.Items))
		copy(items, list.Items)

		for j := range items {
			item := &items[j]
			if item.Subcategory != "" && item.Category != "" {
				continue
			}
			category, sub := categorizeItem(rules, item.Brand, item.Name)
			dirty := false
			if item.Category == "" {
				item.Category = category
				dirty = true
			}
			if item.Subcategory == "" && sub != "" {
				item.Subcategory = sub
				dirty = true
			}
			if dirty {
				changed++
			}
		}

		list.Items = items
		out[i] = list
	}
	return out, changed
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
