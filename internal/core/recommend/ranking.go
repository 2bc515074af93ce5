package recommend

import (
	"sort"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/pkg/common"
)

// BarSpiritThreshold spiritsUsed 中可用比例達此值即視為可調製
const BarSpiritThreshold = 0.7

// GetTopRecommendations 過濾、評分、依分數穩定排序後取前 limit 筆
//
// 同分時保留目錄順序，不使用次要排序鍵。
func GetTopRecommendations(recipes []cocktail.Recipe, profile cocktail.UserProfile, limit int, filters *Filters) ([]RankedRecommendation, error) {
	if limit <= 0 {
		return nil, common.NewValidationErrorf("limit must be positive, got %d", limit)
	}

	candidates, err := FilterRecipes(recipes, profile, filters)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedRecommendation, 0, len(candidates))
	for _, r := range candidates {
		ranked = append(ranked, RankedRecommendation{
			ScoredRecommendation: Score(r, profile),
			Recipe:               r,
			IsSaved:              profile.HasSaved(r.ID),
			IsFavorite:           profile.HasFavorite(r.ID),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// GetRecommendationsFromBarInventory 只推薦吧台基酒可調製的酒譜
//
// 沒有吧台庫存時退化為 GetTopRecommendations。
func GetRecommendationsFromBarInventory(recipes []cocktail.Recipe, profile cocktail.UserProfile, limit int) ([]RankedRecommendation, error) {
	if len(profile.BarInventory) == 0 {
		return GetTopRecommendations(recipes, profile, limit, nil)
	}

	available := make([]cocktail.Spirit, 0, len(profile.BarInventory))
	for _, inv := range profile.BarInventory {
		available = append(available, inv.Type)
	}

	candidates := make([]cocktail.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if makeableFromBar(r, available) {
			candidates = append(candidates, r)
		}
	}
	return GetTopRecommendations(candidates, profile, limit, nil)
}

func makeableFromBar(r cocktail.Recipe, available []cocktail.Spirit) bool {
	if containsSpirit(available, r.BaseSpirit) {
		return true
	}
	used := uniqueSpirits(r.SpiritsUsed)
	if len(used) == 0 {
		return false
	}
	have := 0
	for _, s := range used {
		if containsSpirit(available, s) {
			have++
		}
	}
	return float64(have)/float64(len(used)) >= BarSpiritThreshold
}

// GetChallengingRecommendations 推薦高於目前等級一級的酒譜
//
// 已是最高等級時退化為 GetTopRecommendations。
func GetChallengingRecommendations(recipes []cocktail.Recipe, profile cocktail.UserProfile, limit int) ([]RankedRecommendation, error) {
	next, ok := profile.SkillLevel.Next()
	if !ok {
		return GetTopRecommendations(recipes, profile, limit, nil)
	}
	return GetTopRecommendations(recipes, profile, limit, &Filters{
		Difficulties: []cocktail.Difficulty{next},
	})
}

// GetTrending 依收藏數排序，不評分
func GetTrending(recipes []cocktail.Recipe, profile cocktail.UserProfile, limit int) []cocktail.Recipe {
	out := make([]cocktail.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !profile.Dislikes(r.ID) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Saves > out[j].Saves
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetPersonalizedFeed 組合 forYou、trending、challenging 與 fromYourBar 四個區塊
func GetPersonalizedFeed(recipes []cocktail.Recipe, profile cocktail.UserProfile, limits FeedLimits) (*PersonalizedFeed, error) {
	forYou, err := GetTopRecommendations(recipes, profile, limits.ForYou, nil)
	if err != nil {
		return nil, err
	}
	challenging, err := GetChallengingRecommendations(recipes, profile, limits.Challenging)
	if err != nil {
		return nil, err
	}

	feed := &PersonalizedFeed{
		ForYou:      forYou,
		Trending:    GetTrending(recipes, profile, limits.Trending),
		Challenging: challenging,
	}

	if len(profile.BarInventory) > 0 {
		fromBar, err := GetRecommendationsFromBarInventory(recipes, profile, limits.FromYourBar)
		if err != nil {
			return nil, err
		}
		feed.FromYourBar = fromBar
	}
	return feed, nil
}
