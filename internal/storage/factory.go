package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// New builds a Storage backend from config.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case StorageTypeMemory, "":
		return NewMemoryStorage(), nil

	case StorageTypeLocal:
		basePath := cfg.LocalPath
		if basePath == "" {
			basePath = "./data"
		}
		return NewLocalStorage(basePath)

	case StorageTypeRedis:
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis configuration is required for redis storage type")
		}
		return NewRedisStorage(*cfg.Redis), nil

	case StorageTypeS3:
		if cfg.S3 == nil {
			return nil, fmt.Errorf("S3 configuration is required for S3 storage type")
		}
		return NewS3Storage(ctx, *cfg.S3)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewFromEnv builds a Storage backend from environment variables.
func NewFromEnv(ctx context.Context) (Storage, error) {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = "local"
	}

	cfg := Config{Type: StorageType(storageType)}

	switch cfg.Type {
	case StorageTypeMemory:

	case StorageTypeLocal:
		cfg.LocalPath = os.Getenv("STORAGE_LOCAL_PATH")
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./data"
		}

	case StorageTypeRedis:
		addr := os.Getenv("STORAGE_REDIS_ADDR")
		if addr == "" {
			return nil, fmt.Errorf("redis storage requires STORAGE_REDIS_ADDR")
		}
		db, _ := strconv.Atoi(os.Getenv("STORAGE_REDIS_DB"))
		cfg.Redis = &RedisConfig{
			Addr:     addr,
			Password: os.Getenv("STORAGE_REDIS_PASSWORD"),
			DB:       db,
		}

	case StorageTypeS3:
		bucket := os.Getenv("STORAGE_S3_BUCKET")
		region := os.Getenv("STORAGE_S3_REGION")
		if bucket == "" || region == "" {
			return nil, fmt.Errorf("S3 storage requires STORAGE_S3_BUCKET and STORAGE_S3_REGION")
		}
		cfg.S3 = &S3Config{
			Bucket: bucket,
			Region: region,
			Prefix: os.Getenv("STORAGE_S3_PREFIX"),
		}

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}

	return New(ctx, cfg)
}
