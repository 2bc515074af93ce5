package recommend

import (
	"context"
	"fmt"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/core/ingredient"
	"mixology-engine/internal/metrics"
	"mixology-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 推薦服務，串接目錄、使用者偏好與吧台庫存
type Service struct {
	catalog   cocktail.RecipeCatalog
	profiles  cocktail.ProfileStore
	inventory cocktail.InventoryStore
	limits    FeedLimits
}

// NewService 創建推薦服務，inventory 可為 nil
func NewService(catalog cocktail.RecipeCatalog, profiles cocktail.ProfileStore, inventory cocktail.InventoryStore, limits FeedLimits) *Service {
	return &Service{
		catalog:   catalog,
		profiles:  profiles,
		inventory: inventory,
		limits:    limits,
	}
}

// load 載入目錄與使用者偏好
func (s *Service) load(ctx context.Context, userID string) ([]cocktail.Recipe, *cocktail.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	recipes, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	// 個人檔案沒有吧台庫存時，由吧台食材推導
	if len(profile.BarInventory) == 0 && s.inventory != nil {
		ings, err := s.inventory.GetInventory(ctx, userID)
		if err != nil && !common.IsNotFound(err) {
			return nil, nil, fmt.Errorf("load inventory: %w", err)
		}
		if derived := cocktail.InventoryFromBar(ings); len(derived) > 0 {
			p := *profile
			p.BarInventory = derived
			profile = &p
		}
	}

	return recipes, profile, nil
}

// TopRecommendations 取得使用者的前 N 筆推薦
func (s *Service) TopRecommendations(ctx context.Context, userID string, limit int, filters *Filters) ([]RankedRecommendation, error) {
	recipes, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked, err := GetTopRecommendations(recipes, *profile, limit, filters)
	if err != nil {
		return nil, err
	}

	metrics.RecordRecommendation("top", len(recipes))
	common.LogDebug("推薦計算完成",
		zap.String("user_id", userID),
		zap.Int("catalog_size", len(recipes)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}

// ChallengingRecommendations 取得進階挑戰推薦
func (s *Service) ChallengingRecommendations(ctx context.Context, userID string, limit int) ([]RankedRecommendation, error) {
	recipes, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ranked, err := GetChallengingRecommendations(recipes, *profile, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation("challenging", len(recipes))
	return ranked, nil
}

// BarRecommendations 取得吧台庫存可調製的推薦
func (s *Service) BarRecommendations(ctx context.Context, userID string, limit int) ([]RankedRecommendation, error) {
	recipes, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ranked, err := GetRecommendationsFromBarInventory(recipes, *profile, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation("bar", len(recipes))
	return ranked, nil
}

// PersonalizedFeed 取得個人化首頁
func (s *Service) PersonalizedFeed(ctx context.Context, userID string) (*PersonalizedFeed, error) {
	recipes, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	feed, err := GetPersonalizedFeed(recipes, *profile, s.limits)
	if err != nil {
		return nil, err
	}

	metrics.RecordRecommendation("feed", len(recipes))
	common.LogInfo("個人化首頁已產生",
		zap.String("user_id", userID),
		zap.Int("for_you", len(feed.ForYou)),
		zap.Int("trending", len(feed.Trending)),
		zap.Int("challenging", len(feed.Challenging)),
		zap.Int("from_your_bar", len(feed.FromYourBar)),
	)
	return feed, nil
}

// ScoreRecipe 對單一酒譜評分
func (s *Service) ScoreRecipe(ctx context.Context, userID, recipeID string) (*ScoredRecommendation, error) {
	recipes, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	recipe, ok := cocktail.FindRecipe(recipes, recipeID)
	if !ok {
		return nil, common.NewNotFoundError("recipe %s not found", recipeID)
	}
	scored := Score(recipe, *profile)
	return &scored, nil
}

// RecipeAvailability 比對使用者吧台庫存與酒譜食材
func (s *Service) RecipeAvailability(ctx context.Context, userID, recipeID string) (*ingredient.Availability, error) {
	if s.inventory == nil {
		return nil, common.NewValidationError("inventory store not configured")
	}
	recipes, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	recipe, ok := cocktail.FindRecipe(recipes, recipeID)
	if !ok {
		return nil, common.NewNotFoundError("recipe %s not found", recipeID)
	}
	ings, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := ingredient.CanMakeRecipe(recipe, ings)
	return &result, nil
}
