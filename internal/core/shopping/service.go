package shopping

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/core/ingredient"
	"mixology-engine/internal/metrics"
	"mixology-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 購物清單服務
//
// 每次操作都是 load-all、修改、save-all。項目的勾選與刪除以 ID 為範圍，
// 不會影響其他清單中同名的項目；合併檢視則依正規化名稱分組。
type Service struct {
	mu      sync.Mutex // 序列化同一行程內的讀-改-寫
	store   PersistenceStore
	catalog cocktail.RecipeCatalog
	prices  PriceEstimator
	rules   []Rule
	now     func() time.Time
	newID   func() string
}

// Option 服務選項
type Option func(*Service)

// WithCatalog 設定酒譜目錄，CreateListFromRecipe 需要
func WithCatalog(c cocktail.RecipeCatalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithPriceEstimator 設定估價器
func WithPriceEstimator(p PriceEstimator) Option {
	return func(s *Service) { s.prices = p }
}

// WithRules 替換分類規則表
func WithRules(rules []Rule) Option {
	return func(s *Service) { s.rules = rules }
}

// WithClock 設定時間來源
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator 設定 ID 產生器
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService 創建購物清單服務
func NewService(store PersistenceStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		prices: NewRandomPriceEstimator(0),
		rules:  Rules,
		now:    time.Now,
		newID:  common.GenerateUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) load(ctx context.Context) ([]ShoppingList, error) {
	lists, err := s.store.LoadLists(ctx)
	if err != nil {
		return nil, common.NewPersistenceError("load shopping lists", err)
	}
	return lists, nil
}

func (s *Service) save(ctx context.Context, lists []ShoppingList) error {
	if err := s.store.SaveLists(ctx, lists); err != nil {
		return common.NewPersistenceError("save shopping lists", err)
	}
	return nil
}

// newItem 解析、分類並估價一行食材
func (s *Service) newItem(raw string) GroceryItem {
	parsed := ParseIngredient(raw)
	category, sub := categorizeItem(s.rules, parsed.Brand, parsed.Name)
	return GroceryItem{
		ID:             s.newID(),
		Name:           parsed.Name,
		Category:       category,
		Subcategory:    sub,
		Brand:          parsed.Brand,
		Size:           parsed.Size,
		Notes:          parsed.Notes,
		EstimatedPrice: s.prices.Estimate(category, sub, parsed.Brand+" "+parsed.Name),
	}
}

// CreateList 由酒譜食材建立購物清單，recipeID 可為空
func (s *Service) CreateList(ctx context.Context, recipeName string, ingredients []string, recipeID string) (list *ShoppingList, err error) {
	defer func() { metrics.RecordShoppingMutation("create", err) }()

	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return nil, common.NewValidationError("recipe name is required")
	}

	var items []GroceryItem
	for _, raw := range ingredients {
		// 空白或只有數量單位的行（"2 oz"）略過
		if ingredient.Normalize(raw).Key == "" {
			continue
		}
		items = append(items, s.newItem(raw))
	}
	if len(items) == 0 {
		return nil, common.NewValidationError("ingredient list is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created := ShoppingList{
		ID:         s.newID(),
		RecipeName: recipeName,
		RecipeID:   recipeID,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	lists = append(lists, created)

	if err := s.save(ctx, lists); err != nil {
		return nil, err
	}

	common.LogInfo("清單已建立",
		zap.String("list_id", created.ID),
		zap.String("recipe_name", recipeName),
		zap.Int("items", len(items)),
	)
	return &created, nil
}

// CreateListFromRecipe 以目錄中酒譜的食材建立清單
func (s *Service) CreateListFromRecipe(ctx context.Context, recipeID string) (*ShoppingList, error) {
	if s.catalog == nil {
		return nil, common.NewError(common.ErrCodeServiceUnavailable, "recipe catalog not configured", http.StatusServiceUnavailable, nil)
	}
	recipes, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	recipe, ok := cocktail.FindRecipe(recipes, recipeID)
	if !ok {
		return nil, common.NewNotFoundError("recipe %s not found", recipeID)
	}
	return s.CreateList(ctx, recipe.Name, recipe.Ingredients, recipe.ID)
}

// ListLists 取得所有清單
func (s *Service) ListLists(ctx context.Context) ([]ShoppingList, error) {
	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []ShoppingList{}
	}
	return lists, nil
}

// DeleteItem 從所屬清單移除項目，清單因此變空時一併移除
func (s *Service) DeleteItem(ctx context.Context, itemID string) (err error) {
	defer func() { metrics.RecordShoppingMutation("delete", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return err
	}

	li, ii := locate(lists, itemID)
	if li < 0 {
		return common.NewNotFoundError("item %s not found", itemID)
	}

	list := lists[li]
	items := make([]GroceryItem, 0, len(list.Items)-1)
	items = append(items, list.Items[:ii]...)
	items = append(items, list.Items[ii+1:]...)

	pruned := len(items) == 0
	if pruned {
		lists = append(lists[:li:li], lists[li+1:]...)
	} else {
		list.Items = items
		list.IsCompleted = allChecked(items)
		list.UpdatedAt = s.now()
		lists[li] = list
	}

	if err := s.save(ctx, lists); err != nil {
		return err
	}

	common.LogInfo("項目已刪除",
		zap.String("item_id", itemID),
		zap.String("list_id", list.ID),
		zap.Bool("list_pruned", pruned),
	)
	return nil
}

// SetChecked 設定單一項目的勾選狀態，不會同步到其他清單的同名項目
func (s *Service) SetChecked(ctx context.Context, itemID string, checked bool) (item *GroceryItem, err error) {
	defer func() { metrics.RecordShoppingMutation("check", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	li, ii := locate(lists, itemID)
	if li < 0 {
		return nil, common.NewNotFoundError("item %s not found", itemID)
	}

	list := &lists[li]
	items := make([]GroceryItem, len(list.Items))
	copy(items, list.Items)
	items[ii].Checked = checked
	items[ii].IsCompleted = checked
	list.Items = items
	list.IsCompleted = allChecked(items)
	list.UpdatedAt = s.now()

	if err := s.save(ctx, lists); err != nil {
		return nil, err
	}

	common.LogDebug("項目狀態已更新",
		zap.String("item_id", itemID),
		zap.Bool("checked", checked),
	)
	updated := items[ii]
	return &updated, nil
}

// ConsolidatedView 重新讀取所有清單後計算合併檢視
func (s *Service) ConsolidatedView(ctx context.Context) (*ConsolidatedView, error) {
	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	view := GetConsolidatedView(lists)
	return &view, nil
}

// Migrate 升級既有資料，沒有變更時不寫回
func (s *Service) Migrate(ctx context.Context) (changed int, err error) {
	defer func() { metrics.RecordShoppingMutation("migrate", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	upgraded, changed := MigrateWith(s.rules, lists)
	if changed == 0 {
		return 0, nil
	}
	if err := s.save(ctx, upgraded); err != nil {
		return 0, err
	}

	common.LogInfo("購物清單資料已升級", zap.Int("items_changed", changed))
	return changed, nil
}

// locate 回傳擁有該 ID 的清單與項目索引，找不到時為 -1
func locate(lists []ShoppingList, itemID string) (int, int) {
	for li, list := range lists {
		for ii, item := range list.Items {
			if item.ID == itemID {
				return li, ii
			}
		}
	}
	return -1, -1
}

func allChecked(items []GroceryItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if !it.Checked {
			return false
		}
	}
	return true
}
