package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mixology-engine/internal/api"
	"mixology-engine/internal/app"
	"mixology-engine/internal/infrastructure/config"
	"mixology-engine/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	application, err := app.New(initCtx, cfg)
	initCancel()
	if err != nil {
		common.LogFatal("Failed to initialize services", zap.Error(err))
	}
	defer application.Close()

	// 升級舊版購物清單資料
	if changed, err := application.Shopping.Migrate(context.Background()); err != nil {
		common.LogWarn("Shopping list migration failed", zap.Error(err))
	} else if changed > 0 {
		common.LogInfo("Shopping lists migrated", zap.Int("items", changed))
	}

	router := api.SetupRouter(cfg, api.Dependencies{
		Recommend: application.Recommend,
		Shopping:  application.Shopping,
		Checks:    application.Checks,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
