package shopping

import (
	"regexp"
	"strings"
)

// Rule 名稱比對規則，依序比對，第一個命中者勝出
type Rule struct {
	Pattern     *regexp.Regexp
	Category    Category
	Subcategory string
}

func rule(pattern string, category Category, sub string) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)\b(?:` + pattern + `)\b`), Category: category, Subcategory: sub}
}

// Rules 預設分類表
//
// 順序即優先序：bitters 與 syrup 先於烈酒，烈酒先於 mixers，mixers 先於裝飾，
// 因此 "orange bitters" 歸 bitters，"orange liqueur" 歸烈酒，"lime juice" 歸 mixers。
var Rules = []Rule{
	rule(`angostura|aromatic bitters`, CategoryBitters, "aromatic"),
	rule(`peychaud'?s?`, CategoryBitters, "anise"),
	rule(`orange bitters`, CategoryBitters, "orange"),
	rule(`bitters`, CategoryBitters, "bitters"),

	rule(`simple syrup|sugar syrup|rich syrup`, CategorySyrup, "simple"),
	rule(`grenadine|pomegranate syrup`, CategorySyrup, "grenadine"),
	rule(`orgeat`, CategorySyrup, "orgeat"),
	rule(`honey syrup|honey`, CategorySyrup, "honey"),
	rule(`agave(?: nectar| syrup)?`, CategorySyrup, "agave"),
	rule(`maple syrup`, CategorySyrup, "maple"),
	rule(`syrup`, CategorySyrup, "syrup"),

	rule(`dry vermouth|white vermouth|blanc vermouth`, CategorySpirits, "dry vermouth"),
	rule(`sweet vermouth|red vermouth|rosso vermouth`, CategorySpirits, "sweet vermouth"),
	rule(`vermouth|lillet|cocchi`, CategorySpirits, "vermouth"),
	rule(`triple sec|cointreau|curacao|orange liqueur|grand marnier`, CategorySpirits, "orange liqueur"),
	rule(`campari|aperol|amaro|fernet|chartreuse|maraschino|amaretto|kahlua|coffee liqueur|liqueur|cr[eè]me de \w+|absinthe`, CategorySpirits, "liqueur"),
	rule(`gin|genever`, CategorySpirits, "gin"),
	rule(`vodka`, CategorySpirits, "vodka"),
	rule(`tequila|mezcal`, CategorySpirits, "tequila"),
	rule(`rum|cacha[cç]a`, CategorySpirits, "rum"),
	rule(`whiskey|whisky|bourbon|rye|scotch`, CategorySpirits, "whiskey"),
	rule(`brandy|cognac|pisco|armagnac|calvados`, CategorySpirits, "brandy"),
	rule(`prosecco|champagne|cava|sparkling wine|wine|sherry|port`, CategorySpirits, "wine"),

	rule(`(?:lime|lemon|orange|grapefruit|pineapple|cranberry|apple|tomato) juice|juice`, CategoryMixers, "juice"),
	rule(`tonic(?: water)?`, CategoryMixers, "tonic"),
	rule(`club soda|soda water|sparkling water|seltzer`, CategoryMixers, "soda"),
	rule(`ginger beer|ginger ale|cola|lemonade|\w+ soda`, CategoryMixers, "soft drink"),
	rule(`cream|milk|egg white|egg|coconut cream`, CategoryMixers, "dairy & egg"),
	rule(`coffee|espresso`, CategoryMixers, "coffee"),

	rule(`lime|lemon|orange|grapefruit`, CategoryGarnish, "citrus"),
	rule(`mint|basil|rosemary|thyme|sage`, CategoryGarnish, "herb"),
	rule(`cherr(?:y|ies)|olives?|onions?`, CategoryGarnish, "garnish"),
	rule(`salt|sugar|nutmeg|cinnamon`, CategoryGarnish, "rim & spice"),
}

// Categorize 依預設分類表判斷分類，沒有命中時回傳 other
func Categorize(name string) (Category, string) {
	return CategorizeWith(Rules, name)
}

// CategorizeWith 以指定的規則表判斷分類
func CategorizeWith(rules []Rule, name string) (Category, string) {
	for _, r := range rules {
		if r.Pattern.MatchString(name) {
			return r.Category, r.Subcategory
		}
	}
	return CategoryOther, ""
}

// categorizeItem 以品牌與名稱一起分類
func categorizeItem(rules []Rule, brand, name string) (Category, string) {
	return CategorizeWith(rules, strings.TrimSpace(brand+" "+name))
}
