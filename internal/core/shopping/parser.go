package shopping

import (
	"regexp"
	"strings"
	"unicode"

	"mixology-engine/internal/core/ingredient"
)

// ParsedIngredient 從一行食材文字拆出的欄位
type ParsedIngredient struct {
	Name  string `json:"name"`
	Brand string `json:"brand,omitempty"`
	Size  string `json:"size,omitempty"`
	Notes string `json:"notes,omitempty"`
}

var (
	// measurePattern 開頭的數量與單位，第一個群組為 Size
	measurePattern = regexp.MustCompile(`(?i)^\s*((?:` + ingredient.Amount + `)` +
		`(?:\s*(?:oz|ml|cl|tsp|tbsp|dash(?:es)?|drops?|splash(?:es)?|bottles?|cans?|parts?)\b\.?)?)(?:\s+(?:of\s+)?|$)`)

	parenPattern = regexp.MustCompile(`\(([^)]*)\)`)
)

// spiritKeywords 品牌推斷用的烈酒關鍵字
var spiritKeywords = map[string]bool{
	"gin": true, "vodka": true, "rum": true, "tequila": true, "mezcal": true,
	"whiskey": true, "whisky": true, "bourbon": true, "rye": true, "scotch": true,
	"brandy": true, "cognac": true, "pisco": true, "vermouth": true, "liqueur": true,
}

// descriptors 出現在烈酒關鍵字前但不是品牌的大寫字
var descriptors = map[string]bool{
	"dry": true, "sweet": true, "white": true, "red": true, "dark": true, "light": true,
	"gold": true, "golden": true, "spiced": true, "aged": true, "overproof": true,
	"blanco": true, "silver": true, "reposado": true, "anejo": true, "añejo": true,
	"london": true, "old": true, "tom": true, "navy": true, "strength": true,
	"irish": true, "japanese": true, "canadian": true, "american": true, "blended": true,
	"single": true, "malt": true, "orange": true, "coffee": true, "cherry": true,
	"premium": true, "good": true, "quality": true, "your": true, "favorite": true,
}

// ParseIngredient 解析一行食材文字
//
// 開頭的數量與單位成為 Size，括號與逗號後的說明成為 Notes，
// 烈酒關鍵字前的連續大寫字（排除描述詞）視為品牌。
func ParseIngredient(raw string) ParsedIngredient {
	var p ParsedIngredient
	s := strings.TrimSpace(raw)

	if m := measurePattern.FindStringSubmatch(s); m != nil {
		p.Size = strings.TrimSpace(m[1])
		s = s[len(m[0]):]
	}

	var notes []string
	for _, m := range parenPattern.FindAllStringSubmatch(s, -1) {
		if n := strings.TrimSpace(m[1]); n != "" {
			notes = append(notes, n)
		}
	}
	s = parenPattern.ReplaceAllString(s, " ")

	if i := strings.Index(s, ","); i >= 0 {
		if n := strings.TrimSpace(s[i+1:]); n != "" {
			notes = append([]string{n}, notes...)
		}
		s = s[:i]
	}
	p.Notes = strings.Join(notes, "; ")

	words := strings.Fields(s)
	brandLen := brandPrefix(words)
	if brandLen > 0 {
		p.Brand = strings.Join(words[:brandLen], " ")
		words = words[brandLen:]
	}

	rest := strings.Join(words, " ")
	p.Name = ingredient.Normalize(rest).Display
	if p.Name == "" {
		p.Name = strings.TrimSpace(raw)
	}
	return p
}

// brandPrefix 回傳品牌所佔的字數，沒有品牌時為 0
func brandPrefix(words []string) int {
	keyword := -1
	for i, w := range words {
		if spiritKeywords[bareWord(w)] {
			keyword = i
			break
		}
	}
	if keyword <= 0 {
		return 0
	}

	n := 0
	for n < keyword && isCapitalized(words[n]) && !descriptors[bareWord(words[n])] {
		n++
	}
	return n
}

func bareWord(w string) string {
	return strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
}

func isCapitalized(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}
