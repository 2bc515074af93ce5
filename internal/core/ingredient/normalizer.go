// Package ingredient 負責食材名稱正規化與吧台可用性比對
package ingredient

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizedName 正規化後的食材名稱
type NormalizedName struct {
	Key     string `json:"key"`     // 小寫比對鍵
	Display string `json:"display"` // 顯示用 Title Case
}

// Units 可被剝除的計量單位
var Units = []string{"oz", "ml", "cl", "tsp", "tbsp", "dash", "drop", "splash", "bottle", "can"}

// qualifiers 描述性修飾詞，正規化時移除
var qualifiers = map[string]bool{
	"fresh":    true,
	"freshly":  true,
	"squeezed": true,
	"homemade": true,
}

// Amount 數量寫法：帶分數、分數、Unicode 分數、整數與小數
const Amount = `\d+\s+\d+/\d+|\d+/\d+|\d+\s*[½¼¾⅓⅔⅛]|[½¼¾⅓⅔⅛]|\d+(?:\.\d+)?|\.\d+`

// quantityPattern 開頭的數量與單位，例如 "1 1/2 oz"、"1½ oz"、"2 dashes of"、"3/4oz"
//
// 只有數量與單位的一行（"2 oz"）會被整行剝除。
var quantityPattern = regexp.MustCompile(`(?i)^\s*(?:` + Amount + `)` +
	`(?:\s*(?:oz|ml|cl|tsp|tbsp|dash(?:es)?|drops?|splash(?:es)?|bottles?|cans?)\b\.?)?(?:\s+(?:of\s+)?|$)`)

// Normalize 將自由文字的食材名稱轉為可比較的形式
func Normalize(raw string) NormalizedName {
	s := strings.TrimSpace(raw)
	s = quantityPattern.ReplaceAllString(s, "")
	s = strings.ToLower(s)

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == '\n'
	})
	kept := words[:0]
	for _, w := range words {
		if qualifiers[w] {
			continue
		}
		kept = append(kept, w)
	}
	key := strings.Join(kept, " ")

	return NormalizedName{
		Key:     key,
		Display: cases.Title(language.English).String(key), // Caser 不可跨 goroutine 共用
	}
}

// synonymGroups 固定的同義詞群組，群組之間不得重疊
var synonymGroups = [][]string{
	{"simple syrup", "sugar syrup", "syrup"},
	{"lime juice", "fresh lime", "lime"},
	{"lemon juice", "fresh lemon", "lemon"},
	{"dry vermouth", "white vermouth"},
	{"sweet vermouth", "red vermouth"},
	{"triple sec", "cointreau", "orange liqueur"},
	{"club soda", "soda water", "sparkling water"},
	{"angostura bitters", "aromatic bitters"},
	{"grenadine", "pomegranate syrup"},
}

// synonymIndex 正規化鍵 -> 群組序號
var synonymIndex = buildSynonymIndex(synonymGroups)

func buildSynonymIndex(groups [][]string) map[string]int {
	idx := make(map[string]int)
	for i, group := range groups {
		for _, name := range group {
			key := Normalize(name).Key
			if prev, ok := idx[key]; ok && prev != i {
				panic("ingredient: synonym " + key + " declared in two groups")
			}
			idx[key] = i
		}
	}
	return idx
}

// AreEquivalent 依同義詞表判斷兩個名稱是否等價
func AreEquivalent(a, b string) bool {
	return equivalentKeys(Normalize(a).Key, Normalize(b).Key)
}

func equivalentKeys(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	ga, okA := synonymIndex[a]
	gb, okB := synonymIndex[b]
	return okA && okB && ga == gb
}

// SynonymGroup 回傳名稱所屬的同義詞群組（已正規化）
func SynonymGroup(name string) []string {
	g, ok := synonymIndex[Normalize(name).Key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(synonymGroups[g]))
	seen := make(map[string]bool)
	for _, n := range synonymGroups[g] {
		key := Normalize(n).Key
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
