package recommend

import (
	"fmt"
	"strings"

	"mixology-engine/internal/core/cocktail"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	favoriteSpiritPoints  = 20
	preferredSpiritPoints = 15
	spiritOverlapPoints   = 5
	spiritOverlapCap      = 10

	flavorPointsEach = 8
	neutralFlavor    = 10

	neutralABV    = 10
	nearABV       = 8
	abvNearMargin = 5.0

	occasionBaseline = 3
)

// implied ABV 區間，僅在沒有設定偏好區間時由酒精偏好推得
var (
	lowABVRange    = cocktail.ABVRange{Min: 0, Max: 15}
	zeroProofRange = cocktail.ABVRange{Min: 0, Max: 0.5}
)

// Score 計算單一 (酒譜, 使用者) 的加權分數與理由
//
// 六個因子彼此獨立、各自封頂，理由依 spirit、flavor、skill、ABV、tools、occasion
// 的順序附加，不影響分數。相同輸入永遠得到相同的分數與理由順序。
func Score(recipe cocktail.Recipe, profile cocktail.UserProfile) ScoredRecommendation {
	var reasons []string
	var f MatchFactors

	f.SpiritMatch, reasons = scoreSpirit(recipe, profile, reasons)
	f.FlavorMatch, reasons = scoreFlavor(recipe, profile, reasons)
	f.SkillMatch, reasons = scoreSkill(recipe, profile, reasons)
	f.ABVMatch, reasons = scoreABV(recipe, profile, reasons)
	f.ToolsMatch, reasons = scoreTools(recipe, profile, reasons)
	f.OccasionMatch, reasons = scoreOccasion(recipe, profile, reasons)

	if reasons == nil {
		reasons = []string{}
	}

	return ScoredRecommendation{
		RecipeID:     recipe.ID,
		Score:        clamp(f.Total(), 0, MaxScore),
		Reasons:      reasons,
		MatchFactors: f,
	}
}

func scoreSpirit(recipe cocktail.Recipe, profile cocktail.UserProfile, reasons []string) (int, []string) {
	points := 0
	switch {
	case cocktail.SameSpirit(recipe.BaseSpirit, profile.FavoriteSpirit):
		points += favoriteSpiritPoints
		reasons = append(reasons, fmt.Sprintf("Made with your favorite spirit, %s", titleCase(string(recipe.BaseSpirit))))
	case containsSpirit(profile.SpiritPreferences, recipe.BaseSpirit):
		points += preferredSpiritPoints
		reasons = append(reasons, fmt.Sprintf("Built on %s, one of your preferred spirits", titleCase(string(recipe.BaseSpirit))))
	}

	overlap := 0
	for _, s := range uniqueSpirits(recipe.SpiritsUsed) {
		if containsSpirit(profile.SpiritPreferences, s) {
			overlap++
		}
	}
	if bonus := min(overlap*spiritOverlapPoints, spiritOverlapCap); bonus > 0 {
		points += bonus
		reasons = append(reasons, fmt.Sprintf("Uses %d of your preferred spirits", overlap))
	}

	return min(points, MaxSpiritMatch), reasons
}

func scoreFlavor(recipe cocktail.Recipe, profile cocktail.UserProfile, reasons []string) (int, []string) {
	if len(profile.FlavorProfiles) == 0 {
		return neutralFlavor, reasons
	}

	var matched []string
	seen := make(map[string]bool)
	for _, fl := range recipe.FlavorProfiles {
		key := strings.ToLower(string(fl))
		if seen[key] {
			continue
		}
		seen[key] = true
		for _, want := range profile.FlavorProfiles {
			if strings.EqualFold(string(want), key) {
				matched = append(matched, key)
				break
			}
		}
	}
	if len(matched) == 0 {
		return 0, reasons
	}

	reasons = append(reasons, fmt.Sprintf("Matches your taste for %s", strings.Join(matched, " and ")))
	return min(len(matched)*flavorPointsEach, MaxFlavorMatch), reasons
}

func scoreSkill(recipe cocktail.Recipe, profile cocktail.UserProfile, reasons []string) (int, []string) {
	diff := recipe.Difficulty.Level() - profile.SkillLevel.Level()
	switch diff {
	case 0:
		return 15, append(reasons, "Perfect for your skill level")
	case -1:
		return 12, append(reasons, "An easy make at your skill level")
	case 1:
		return 10, append(reasons, "A good challenge to level up your skills")
	case -2, 2:
		return 5, reasons
	default:
		return 0, reasons
	}
}

func scoreABV(recipe cocktail.Recipe, profile cocktail.UserProfile, reasons []string) (int, []string) {
	rng, ok := preferredRange(profile)
	if !ok {
		return neutralABV, reasons
	}
	switch {
	case rng.Contains(recipe.ABV):
		return MaxABVMatch, append(reasons, "Fits your preferred strength")
	case recipe.ABV >= rng.Min-abvNearMargin && recipe.ABV <= rng.Max+abvNearMargin:
		return nearABV, append(reasons, "Close to your preferred strength")
	default:
		return 0, reasons
	}
}

// preferredRange 取得有效的 ABV 偏好區間
func preferredRange(profile cocktail.UserProfile) (cocktail.ABVRange, bool) {
	if profile.PreferredABVRange != nil {
		return *profile.PreferredABVRange, true
	}
	switch profile.AlcoholPreference {
	case cocktail.AlcoholLowABV:
		return lowABVRange, true
	case cocktail.AlcoholZeroProof:
		return zeroProofRange, true
	}
	return cocktail.ABVRange{}, false
}

func scoreTools(recipe cocktail.Recipe, profile cocktail.UserProfile, reasons []string) (int, []string) {
	if len(profile.AvailableTools) == 0 {
		if len(recipe.Tools) == 0 {
			return MaxToolsMatch, append(reasons, "No special tools needed")
		}
		return 2, reasons
	}

	var missing []string
	for _, t := range recipe.Tools {
		if !containsTool(profile.AvailableTools, t) {
			missing = append(missing, string(t))
		}
	}
	switch len(missing) {
	case 0:
		return MaxToolsMatch, append(reasons, "You have all the tools you need")
	case 1:
		return 5, append(reasons, fmt.Sprintf("You're only missing a %s", missing[0]))
	default:
		return 2, reasons
	}
}

// scoreOccasion 保留給時段/季節權重，目前固定為基準值
func scoreOccasion(_ cocktail.Recipe, _ cocktail.UserProfile, reasons []string) (int, []string) {
	return occasionBaseline, reasons
}

func containsSpirit(list []cocktail.Spirit, s cocktail.Spirit) bool {
	for _, v := range list {
		if cocktail.SameSpirit(v, s) {
			return true
		}
	}
	return false
}

func uniqueSpirits(list []cocktail.Spirit) []cocktail.Spirit {
	seen := make(map[string]bool, len(list))
	out := make([]cocktail.Spirit, 0, len(list))
	for _, s := range list {
		key := strings.ToLower(string(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func containsTool(list []cocktail.Tool, t cocktail.Tool) bool {
	for _, v := range list {
		if strings.EqualFold(string(v), string(t)) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
