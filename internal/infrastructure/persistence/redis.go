package persistence

import (
	"context"
	"errors"
	"fmt"

	"mixology-engine/internal/core/shopping"
	"mixology-engine/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisOptions Redis 連線設定
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStore 以單一 Redis key 保存所有購物清單
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ shopping.PersistenceStore = (*RedisStore)(nil)

// NewRedisStore 創建 Redis 儲存並測試連線
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 儲存已連線",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB),
	)
	return NewRedisStoreWithClient(client, opts.Key), nil
}

// NewRedisStoreWithClient 以既有 client 創建儲存
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

// LoadLists 實現 shopping.PersistenceStore，key 不存在時回傳空集合
func (s *RedisStore) LoadLists(ctx context.Context) ([]shopping.ShoppingList, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []shopping.ShoppingList{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decodeLists(data)
}

// SaveLists 實現 shopping.PersistenceStore，整批覆寫且不設過期時間
func (s *RedisStore) SaveLists(ctx context.Context, lists []shopping.ShoppingList) error {
	data, err := encodeLists(lists)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Ping 健康檢查
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
