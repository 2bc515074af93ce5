// Package cocktail 定義酒譜目錄、使用者偏好與吧台庫存的資料模型
package cocktail

import (
	"strings"
	"time"
)

// Spirit 基酒類型
type Spirit string

const (
	SpiritGin     Spirit = "gin"
	SpiritVodka   Spirit = "vodka"
	SpiritWhiskey Spirit = "whiskey"
	SpiritRum     Spirit = "rum"
	SpiritTequila Spirit = "tequila"
	SpiritBrandy  Spirit = "brandy"
)

// KnownSpirits 已知基酒，順序固定
var KnownSpirits = []Spirit{SpiritGin, SpiritVodka, SpiritWhiskey, SpiritRum, SpiritTequila, SpiritBrandy}

// Flavor 風味標籤
type Flavor string

const (
	FlavorSweet   Flavor = "sweet"
	FlavorSour    Flavor = "sour"
	FlavorBitter  Flavor = "bitter"
	FlavorHerbal  Flavor = "herbal"
	FlavorFruity  Flavor = "fruity"
	FlavorSpicy   Flavor = "spicy"
	FlavorCitrusy Flavor = "citrusy"
)

// Tool 調酒器具
type Tool string

// Difficulty 難度 / 技巧等級
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
	Expert       Difficulty = "expert"
)

// difficultyOrder 由易到難
var difficultyOrder = []Difficulty{Beginner, Intermediate, Advanced, Expert}

// Level 回傳難度序位 (0..3)，未知值視為 beginner
func (d Difficulty) Level() int {
	for i, v := range difficultyOrder {
		if strings.EqualFold(string(d), string(v)) {
			return i
		}
	}
	return 0
}

// Valid 是否為已知難度
func (d Difficulty) Valid() bool {
	for _, v := range difficultyOrder {
		if strings.EqualFold(string(d), string(v)) {
			return true
		}
	}
	return false
}

// Next 回傳下一個難度；已是最高等級時 ok 為 false
func (d Difficulty) Next() (Difficulty, bool) {
	lvl := d.Level()
	if lvl >= len(difficultyOrder)-1 {
		return d, false
	}
	return difficultyOrder[lvl+1], true
}

// AlcoholPreference 酒精偏好
type AlcoholPreference string

const (
	AlcoholFull      AlcoholPreference = "full"
	AlcoholLowABV    AlcoholPreference = "low-abv"
	AlcoholZeroProof AlcoholPreference = "zero-proof"
)

// Recipe 酒譜，目錄匯入後不可變
type Recipe struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	SpiritsUsed     []Spirit   `json:"spiritsUsed"`
	BaseSpirit      Spirit     `json:"baseSpirit,omitempty"`
	FlavorProfiles  []Flavor   `json:"flavorProfiles"`
	Difficulty      Difficulty `json:"difficulty"`
	ABV             float64    `json:"abv"`
	Tools           []Tool     `json:"tools"`
	PreparationTime int        `json:"preparationTime"` // 分鐘
	Ingredients     []string   `json:"ingredients,omitempty"`
	Saves           int        `json:"saves"`
}

// ABVRange 酒精濃度區間 (含端點)
type ABVRange struct {
	Min float64 `json:"min" validate:"gte=0,lte=100"`
	Max float64 `json:"max" validate:"gte=0,lte=100,gtefield=Min"`
}

// Contains 是否落在區間內
func (r ABVRange) Contains(abv float64) bool {
	return abv >= r.Min && abv <= r.Max
}

// InventorySpirit 個人檔案中的吧台基酒
type InventorySpirit struct {
	Type Spirit `json:"type"`
}

// UserProfile 使用者偏好，對引擎唯讀
type UserProfile struct {
	UserID            string            `json:"userId,omitempty"`
	FavoriteSpirit    Spirit            `json:"favoriteSpirit"`
	SpiritPreferences []Spirit          `json:"spiritPreferences"`
	FlavorProfiles    []Flavor          `json:"flavorProfiles"`
	SkillLevel        Difficulty        `json:"skillLevel"`
	PreferredABVRange *ABVRange         `json:"preferredABVRange"`
	AlcoholPreference AlcoholPreference `json:"alcoholPreference"`
	AvailableTools    []Tool            `json:"availableTools"`
	SavedRecipes      []string          `json:"savedRecipes"`
	FavoriteRecipes   []string          `json:"favoriteRecipes"`
	DislikedRecipes   []string          `json:"dislikedRecipes"`
	BarInventory      []InventorySpirit `json:"barInventory,omitempty"`
}

// HasSaved 是否已收藏
func (p UserProfile) HasSaved(recipeID string) bool {
	return containsString(p.SavedRecipes, recipeID)
}

// HasFavorite 是否為最愛
func (p UserProfile) HasFavorite(recipeID string) bool {
	return containsString(p.FavoriteRecipes, recipeID)
}

// Dislikes 是否不喜歡
func (p UserProfile) Dislikes(recipeID string) bool {
	return containsString(p.DislikedRecipes, recipeID)
}

// BarIngredient 吧台食材，由吧台庫存管理
type BarIngredient struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	ABV         float64   `json:"abv,omitempty"`
	Volume      string    `json:"volume,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
	Tags        []string  `json:"tags,omitempty"`
}

// SpiritOf 從吧台食材推斷基酒類型
func SpiritOf(ing BarIngredient) (Spirit, bool) {
	for _, candidate := range []string{ing.Subcategory, ing.Name} {
		if s, ok := ParseSpirit(candidate); ok {
			return s, true
		}
	}
	return "", false
}

// spiritAliases 別名對應到基酒
var spiritAliases = map[string]Spirit{
	"whisky":  SpiritWhiskey,
	"bourbon": SpiritWhiskey,
	"rye":     SpiritWhiskey,
	"scotch":  SpiritWhiskey,
	"cognac":  SpiritBrandy,
	"pisco":   SpiritBrandy,
	"mezcal":  SpiritTequila,
	"cachaca": SpiritRum,
}

// ParseSpirit 在文字中尋找基酒關鍵字
func ParseSpirit(text string) (Spirit, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
	for _, w := range words {
		for _, s := range KnownSpirits {
			if w == string(s) {
				return s, true
			}
		}
		if s, ok := spiritAliases[w]; ok {
			return s, true
		}
	}
	return "", false
}

// InventoryFromBar 將吧台食材轉為個人檔案的基酒庫存，去除重複並保持順序
func InventoryFromBar(ings []BarIngredient) []InventorySpirit {
	seen := make(map[Spirit]bool)
	var out []InventorySpirit
	for _, ing := range ings {
		s, ok := SpiritOf(ing)
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, InventorySpirit{Type: s})
	}
	return out
}

// SameSpirit 不分大小寫比較基酒
func SameSpirit(a, b Spirit) bool {
	return a != "" && strings.EqualFold(string(a), string(b))
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
