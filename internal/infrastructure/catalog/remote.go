package catalog

import (
	"context"
	"fmt"
	"time"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RemoteCatalog 透過 HTTP 取得酒譜目錄
type RemoteCatalog struct {
	client *resty.Client
	path   string
}

var _ cocktail.RecipeCatalog = (*RemoteCatalog)(nil)

// NewRemoteCatalog 創建遠端目錄，baseURL 例如 https://recipes.example.com/api
func NewRemoteCatalog(baseURL string, timeout time.Duration) *RemoteCatalog {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Accept", "application/json")

	return &RemoteCatalog{client: client, path: "/recipes"}
}

// GetAll 實現 cocktail.RecipeCatalog
func (c *RemoteCatalog) GetAll(ctx context.Context) ([]cocktail.Recipe, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.path)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	if resp.IsError() {
		common.LogError("遠端目錄回應錯誤",
			zap.Int("status", resp.StatusCode()),
			zap.String("url", resp.Request.URL),
		)
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode())
	}

	recipes, err := DecodeRecipes(resp.Body())
	if err != nil {
		return nil, err
	}

	common.LogDebug("遠端目錄已載入", zap.Int("recipes", len(recipes)))
	return recipes, nil
}
