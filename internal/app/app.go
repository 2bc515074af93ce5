// Package app 依設定組裝目錄、使用者資料、購物清單儲存與服務
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"mixology-engine/internal/api/handlers/health"
	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/core/recommend"
	"mixology-engine/internal/core/shopping"
	"mixology-engine/internal/infrastructure/catalog"
	"mixology-engine/internal/infrastructure/config"
	"mixology-engine/internal/infrastructure/persistence"
	"mixology-engine/internal/infrastructure/profile"
	"mixology-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// App 組裝完成的服務與其依賴
type App struct {
	Catalog   *catalog.CachedCatalog
	Profiles  *profile.MemoryStore
	Store     shopping.PersistenceStore
	Recommend *recommend.Service
	Shopping  *shopping.Service
	Checks    map[string]health.Checker

	closers []io.Closer
}

// New 依設定建立所有依賴
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Checks: make(map[string]health.Checker)}

	a.Catalog = catalog.NewCachedCatalog(newCatalogSource(cfg.Catalog), cfg.Catalog.CacheTTL)
	a.Checks["catalog"] = catalogCheck{a.Catalog}

	profiles, err := loadProfiles(cfg.Profiles.Path)
	if err != nil {
		return nil, err
	}
	a.Profiles = profiles

	store, err := a.openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	a.Store = store

	a.Recommend = recommend.NewService(a.Catalog, a.Profiles, a.Profiles, recommend.FeedLimits{
		ForYou:      cfg.Recommend.ForYouLimit,
		Trending:    cfg.Recommend.TrendingLimit,
		Challenging: cfg.Recommend.ChallengingLimit,
		FromYourBar: cfg.Recommend.BarLimit,
	})
	a.Shopping = shopping.NewService(store,
		shopping.WithCatalog(a.Catalog),
		shopping.WithPriceEstimator(shopping.NewRandomPriceEstimator(cfg.Shopping.PriceSeed)),
	)

	common.LogInfo("服務已初始化",
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Int("profiles", a.Profiles.Users()),
	)
	return a, nil
}

// Close 關閉所有外部連線
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// catalogCheck 目錄能載入即視為就緒
type catalogCheck struct {
	catalog cocktail.RecipeCatalog
}

func (c catalogCheck) Ping(ctx context.Context) error {
	_, err := c.catalog.GetAll(ctx)
	return err
}

func newCatalogSource(cfg config.CatalogConfig) cocktail.RecipeCatalog {
	if cfg.Source == "remote" {
		return catalog.NewRemoteCatalog(cfg.URL, cfg.Timeout)
	}
	return catalog.NewFileCatalog(cfg.Path)
}

// loadProfiles 檔案不存在時以空的儲存啟動
func loadProfiles(path string) (*profile.MemoryStore, error) {
	if path == "" {
		return profile.NewMemoryStore(), nil
	}
	store, err := profile.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		common.LogWarn("找不到使用者資料檔，以空資料啟動", zap.String("path", path))
		return profile.NewMemoryStore(), nil
	}
	return store, err
}

func (a *App) openStore(ctx context.Context, cfg config.StoreConfig) (shopping.PersistenceStore, error) {
	switch cfg.Driver {
	case "redis":
		store, err := persistence.NewRedisStore(ctx, persistence.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.Key,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		a.Checks["redis"] = store
		return store, nil
	case "sqlite":
		store, err := persistence.NewSQLiteStore(cfg.SQLitePath, cfg.Key)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		a.Checks["sqlite"] = store
		return store, nil
	case "memory", "":
		return persistence.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
