package shopping

import (
	"net/http"
	"strings"

	shoppingService "mixology-engine/internal/core/shopping"
	"mixology-engine/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 購物清單處理程序
type Handler struct {
	service *shoppingService.Service
}

// NewHandler 創建新的購物清單處理程序
func NewHandler(service *shoppingService.Service) *Handler {
	return &Handler{service: service}
}

// CreateListRequest 建立清單請求
//
// 只帶 recipeId 時從目錄取得酒譜名稱與食材。
type CreateListRequest struct {
	RecipeName  string   `json:"recipeName"`
	RecipeID    string   `json:"recipeId"`
	Ingredients []string `json:"ingredients"`
}

// SetCheckedRequest 勾選項目請求
type SetCheckedRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// HandleCreateList POST /shopping/lists
func (h *Handler) HandleCreateList(c *gin.Context) {
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, common.NewValidationErrorf("invalid request: %v", err))
		return
	}

	var (
		list *shoppingService.ShoppingList
		err  error
	)
	if len(req.Ingredients) == 0 && strings.TrimSpace(req.RecipeName) == "" && req.RecipeID != "" {
		list, err = h.service.CreateListFromRecipe(c.Request.Context(), req.RecipeID)
	} else {
		list, err = h.service.CreateList(c.Request.Context(), req.RecipeName, req.Ingredients, req.RecipeID)
	}
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// HandleListLists GET /shopping/lists
func (h *Handler) HandleListLists(c *gin.Context) {
	lists, err := h.service.ListLists(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// HandleConsolidated GET /shopping/consolidated
func (h *Handler) HandleConsolidated(c *gin.Context) {
	view, err := h.service.ConsolidatedView(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleDeleteItem DELETE /shopping/items/:itemId
func (h *Handler) HandleDeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("itemId")); err != nil {
		common.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSetChecked PATCH /shopping/items/:itemId
func (h *Handler) HandleSetChecked(c *gin.Context) {
	var req SetCheckedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.NewValidationErrorf("invalid request: %v", err))
		return
	}

	item, err := h.service.SetChecked(c.Request.Context(), c.Param("itemId"), *req.Checked)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// HandleMigrate POST /shopping/migrate
func (h *Handler) HandleMigrate(c *gin.Context) {
	changed, err := h.service.Migrate(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"migrated": changed})
}
