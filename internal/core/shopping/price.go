package shopping

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// PriceEstimator 估算購物項目價格，僅供參考
type PriceEstimator interface {
	Estimate(category Category, subcategory, name string) float64
}

type priceRange struct {
	min, max float64
}

// categoryPrices 各分類的價格區間 (USD)
var categoryPrices = map[Category]priceRange{
	CategorySpirits: {25, 55},
	CategoryMixers:  {3, 8},
	CategoryGarnish: {1, 5},
	CategoryBitters: {8, 15},
	CategorySyrup:   {5, 12},
	CategoryOther:   {3, 10},
}

// vermouthPrices 苦艾酒固定價格表，依名稱關鍵字查詢
var vermouthPrices = []struct {
	keyword string
	price   float64
}{
	{"carpano", 34.99},
	{"cocchi", 22.99},
	{"dolin", 16.99},
	{"noilly", 14.99},
	{"martini", 11.99},
	{"dry", 15.99},
	{"sweet", 17.99},
	{"", 16.49},
}

func vermouthPrice(subcategory, name string) (float64, bool) {
	if !strings.Contains(subcategory, "vermouth") {
		return 0, false
	}
	lower := strings.ToLower(name)
	for _, v := range vermouthPrices {
		if strings.Contains(lower, v.keyword) {
			return v.price, true
		}
	}
	return 0, false
}

func rangeFor(category Category) priceRange {
	if r, ok := categoryPrices[category]; ok {
		return r
	}
	return categoryPrices[CategoryOther]
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// RandomPriceEstimator 在分類區間內隨機取價，可指定種子以重現結果
type RandomPriceEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPriceEstimator 創建隨機估價器，seed 為 0 時以目前時間為種子
func NewRandomPriceEstimator(seed int64) *RandomPriceEstimator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPriceEstimator{rng: rand.New(rand.NewSource(seed))}
}

// Estimate 實現 PriceEstimator
func (e *RandomPriceEstimator) Estimate(category Category, subcategory, name string) float64 {
	if p, ok := vermouthPrice(subcategory, name); ok {
		return p
	}
	r := rangeFor(category)

	e.mu.Lock()
	f := e.rng.Float64()
	e.mu.Unlock()

	return roundCents(r.min + f*(r.max-r.min))
}

// TablePriceEstimator 固定取區間中點，測試用
type TablePriceEstimator struct{}

// Estimate 實現 PriceEstimator
func (TablePriceEstimator) Estimate(category Category, subcategory, name string) float64 {
	if p, ok := vermouthPrice(subcategory, name); ok {
		return p
	}
	r := rangeFor(category)
	return roundCents((r.min + r.max) / 2)
}
