package recommend

import (
	"net/http"
	"strconv"
	"strings"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/core/ingredient"
	recommendService "mixology-engine/internal/core/recommend"
	"mixology-engine/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limits 各端點預設回傳數量
type Limits struct {
	Default     int
	Challenging int
	Bar         int
}

// Handler 推薦處理程序
type Handler struct {
	service *recommendService.Service
	limits  Limits
}

// NewHandler 創建新的推薦處理程序
func NewHandler(service *recommendService.Service, limits Limits) *Handler {
	return &Handler{service: service, limits: limits}
}

// AvailabilityRequest 食材可用性比對請求
type AvailabilityRequest struct {
	Required  []string `json:"required" binding:"required"`
	Available []string `json:"available"`
}

// HandleTopRecommendations GET /users/:userId/recommendations
//
// 查詢參數：limit、spirits、flavors、difficulties、tools（逗號分隔或重複）、
// abvMin、abvMax、maxPrepTime。
func (h *Handler) HandleTopRecommendations(c *gin.Context) {
	userID := c.Param("userId")

	limit, err := queryInt(c, "limit", h.limits.Default)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	filters, err := filtersFromQuery(c)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	ranked, err := h.service.TopRecommendations(c.Request.Context(), userID, limit, filters)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	common.LogInfo("推薦請求完成",
		zap.String("request_id", requestid.Get(c)),
		zap.String("user_id", userID),
		zap.Int("returned", len(ranked)),
	)
	c.JSON(http.StatusOK, gin.H{"recommendations": ranked})
}

// HandleChallenging GET /users/:userId/recommendations/challenging
func (h *Handler) HandleChallenging(c *gin.Context) {
	limit, err := queryInt(c, "limit", h.limits.Challenging)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	ranked, err := h.service.ChallengingRecommendations(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": ranked})
}

// HandleFromBar GET /users/:userId/recommendations/bar
func (h *Handler) HandleFromBar(c *gin.Context) {
	limit, err := queryInt(c, "limit", h.limits.Bar)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	ranked, err := h.service.BarRecommendations(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": ranked})
}

// HandleFeed GET /users/:userId/feed
func (h *Handler) HandleFeed(c *gin.Context) {
	feed, err := h.service.PersonalizedFeed(c.Request.Context(), c.Param("userId"))
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// HandleScore GET /users/:userId/recipes/:recipeId/score
func (h *Handler) HandleScore(c *gin.Context) {
	scored, err := h.service.ScoreRecipe(c.Request.Context(), c.Param("userId"), c.Param("recipeId"))
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, scored)
}

// HandleRecipeAvailability GET /users/:userId/recipes/:recipeId/availability
func (h *Handler) HandleRecipeAvailability(c *gin.Context) {
	result, err := h.service.RecipeAvailability(c.Request.Context(), c.Param("userId"), c.Param("recipeId"))
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleAvailability POST /availability
func (h *Handler) HandleAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, common.NewValidationErrorf("invalid request: %v", err))
		return
	}
	c.JSON(http.StatusOK, ingredient.CheckAvailability(req.Required, req.Available))
}

// queryInt 讀取整數查詢參數，未提供時回傳預設值
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewValidationErrorf("%s must be an integer", key)
	}
	return v, nil
}

func queryFloat(c *gin.Context, key string) (float64, bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, common.NewValidationErrorf("%s must be a number", key)
	}
	return v, true, nil
}

// queryList 支援 ?a=x,y 與 ?a=x&a=y 兩種寫法
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// filtersFromQuery 由查詢參數組出過濾條件，沒有任何條件時回傳 nil
func filtersFromQuery(c *gin.Context) (*recommendService.Filters, error) {
	var f recommendService.Filters
	set := false

	for _, s := range queryList(c, "spirits") {
		f.Spirits = append(f.Spirits, cocktail.Spirit(strings.ToLower(s)))
		set = true
	}
	for _, s := range queryList(c, "flavors") {
		f.Flavors = append(f.Flavors, cocktail.Flavor(strings.ToLower(s)))
		set = true
	}
	for _, s := range queryList(c, "difficulties") {
		f.Difficulties = append(f.Difficulties, cocktail.Difficulty(strings.ToLower(s)))
		set = true
	}
	if _, ok := c.GetQuery("tools"); ok {
		f.RequiredTools = []cocktail.Tool{}
		for _, s := range queryList(c, "tools") {
			f.RequiredTools = append(f.RequiredTools, cocktail.Tool(s))
		}
		set = true
	}

	minABV, hasMin, err := queryFloat(c, "abvMin")
	if err != nil {
		return nil, err
	}
	maxABV, hasMax, err := queryFloat(c, "abvMax")
	if err != nil {
		return nil, err
	}
	if hasMin || hasMax {
		if !hasMax {
			maxABV = 100
		}
		f.ABVRange = &cocktail.ABVRange{Min: minABV, Max: maxABV}
		set = true
	}

	maxPrep, err := queryInt(c, "maxPrepTime", 0)
	if err != nil {
		return nil, err
	}
	if maxPrep != 0 {
		f.MaxPrepTime = maxPrep
		set = true
	}

	if !set {
		return nil, nil
	}
	return &f, nil
}
