package recommend

import (
	"errors"
	"strings"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/pkg/common"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateFilters 驗證過濾條件，格式錯誤回傳 InvalidInput
func ValidateFilters(filters *Filters) error {
	if filters == nil {
		return nil
	}
	if err := validate.Struct(filters); err != nil {
		return translateValidation("filters", err)
	}
	for _, d := range filters.Difficulties {
		if !d.Valid() {
			return common.NewValidationErrorf("unknown difficulty %q", d)
		}
	}
	return nil
}

// translateValidation 將 validator 錯誤轉為 ValidationError
func translateValidation(scope string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return common.NewValidationErrorf("invalid %s.%s: failed %q", scope, fe.Field(), fe.Tag())
	}
	return common.NewValidationErrorf("invalid %s: %v", scope, err)
}

// FilterRecipes 移除不喜歡的酒譜，再套用所有硬性條件
//
// 保持目錄順序，且為冪等：對結果再次過濾得到相同結果。
func FilterRecipes(recipes []cocktail.Recipe, profile cocktail.UserProfile, filters *Filters) ([]cocktail.Recipe, error) {
	if err := ValidateFilters(filters); err != nil {
		return nil, err
	}

	out := make([]cocktail.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if profile.Dislikes(r.ID) {
			continue
		}
		if filters != nil && !matchesFilters(r, filters) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func matchesFilters(r cocktail.Recipe, f *Filters) bool {
	if len(f.Spirits) > 0 && !matchesSpirit(r, f.Spirits) {
		return false
	}
	if len(f.Flavors) > 0 && !matchesFlavor(r, f.Flavors) {
		return false
	}
	if len(f.Difficulties) > 0 && !matchesDifficulty(r, f.Difficulties) {
		return false
	}
	if f.ABVRange != nil && !f.ABVRange.Contains(r.ABV) {
		return false
	}
	if f.MaxPrepTime > 0 && r.PreparationTime > f.MaxPrepTime {
		return false
	}
	if f.RequiredTools != nil && !toolsSubset(r.Tools, f.RequiredTools) {
		return false
	}
	return true
}

// matchesSpirit 基酒或任一使用的烈酒落在集合內
func matchesSpirit(r cocktail.Recipe, spirits []cocktail.Spirit) bool {
	if containsSpirit(spirits, r.BaseSpirit) {
		return true
	}
	for _, s := range r.SpiritsUsed {
		if containsSpirit(spirits, s) {
			return true
		}
	}
	return false
}

func matchesFlavor(r cocktail.Recipe, flavors []cocktail.Flavor) bool {
	for _, have := range r.FlavorProfiles {
		for _, want := range flavors {
			if strings.EqualFold(string(have), string(want)) {
				return true
			}
		}
	}
	return false
}

func matchesDifficulty(r cocktail.Recipe, difficulties []cocktail.Difficulty) bool {
	for _, d := range difficulties {
		if strings.EqualFold(string(d), string(r.Difficulty)) {
			return true
		}
	}
	return false
}

// toolsSubset 酒譜所需器具皆在可用器具中
func toolsSubset(needed, available []cocktail.Tool) bool {
	for _, t := range needed {
		if !containsTool(available, t) {
			return false
		}
	}
	return true
}
