// Package recommend 依使用者偏好對酒譜目錄評分、過濾與排序
package recommend

import "mixology-engine/internal/core/cocktail"

// 各因子上限，總和為 100
const (
	MaxSpiritMatch   = 30
	MaxFlavorMatch   = 25
	MaxSkillMatch    = 15
	MaxABVMatch      = 15
	MaxToolsMatch    = 10
	MaxOccasionMatch = 5

	MaxScore = 100
)

// MatchFactors 各評分因子
type MatchFactors struct {
	SpiritMatch   int `json:"spiritMatch"`
	FlavorMatch   int `json:"flavorMatch"`
	SkillMatch    int `json:"skillMatch"`
	ABVMatch      int `json:"abvMatch"`
	ToolsMatch    int `json:"toolsMatch"`
	OccasionMatch int `json:"occasionMatch"`
}

// Total 因子加總
func (f MatchFactors) Total() int {
	return f.SpiritMatch + f.FlavorMatch + f.SkillMatch + f.ABVMatch + f.ToolsMatch + f.OccasionMatch
}

// ScoredRecommendation 單一酒譜的評分結果，每次請求重新計算
type ScoredRecommendation struct {
	RecipeID     string       `json:"recipeId"`
	Score        int          `json:"score"`
	Reasons      []string     `json:"reasons"`
	MatchFactors MatchFactors `json:"matchFactors"`
}

// RankedRecommendation 排序後的推薦項目
type RankedRecommendation struct {
	ScoredRecommendation
	Recipe     cocktail.Recipe `json:"recipe"`
	IsSaved    bool            `json:"isSaved"`
	IsFavorite bool            `json:"isFavorite"`
}

// Filters 硬性過濾條件，所有條件以 AND 組合
type Filters struct {
	Spirits       []cocktail.Spirit     `json:"spirits,omitempty"`
	Flavors       []cocktail.Flavor     `json:"flavors,omitempty"`
	Difficulties  []cocktail.Difficulty `json:"difficulties,omitempty"`
	ABVRange      *cocktail.ABVRange    `json:"abvRange,omitempty"`
	MaxPrepTime   int                   `json:"maxPrepTime,omitempty" validate:"gte=0"`
	RequiredTools []cocktail.Tool       `json:"requiredTools,omitempty"`
}

// PersonalizedFeed 個人化首頁
type PersonalizedFeed struct {
	ForYou      []RankedRecommendation `json:"forYou"`
	Trending    []cocktail.Recipe      `json:"trending"`
	Challenging []RankedRecommendation `json:"challenging"`
	FromYourBar []RankedRecommendation `json:"fromYourBar,omitempty"`
}

// FeedLimits 各區塊的數量上限
type FeedLimits struct {
	ForYou      int
	Trending    int
	Challenging int
	FromYourBar int
}

// DefaultFeedLimits 預設區塊上限
func DefaultFeedLimits() FeedLimits {
	return FeedLimits{
		ForYou:      10,
		Trending:    10,
		Challenging: 5,
		FromYourBar: 10,
	}
}
