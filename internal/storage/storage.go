package storage

import (
	"context"
	"errors"
)

// Collection keys. Each store serializes its whole collection as one JSON
// value under a fixed key; the key names match the original data set so a
// snapshot from a prior run loads unchanged.
const (
	KeySession   = "pmerj_user"
	KeyAccounts  = "pmerj_users"
	KeyDocuments = "pmerj_documents"
	KeyMissions  = "pmerj_missions"
)

var ErrKeyNotFound = errors.New("storage: key not found")

// Storage is the persistence port behind the stores: one opaque JSON blob
// per key, loaded and saved whole. Implementations must treat Save as a
// full replacement of the previous value.
type Storage interface {
	// Load returns the value stored under key, or ErrKeyNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the value stored under key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error
}

type StorageType string

const (
	StorageTypeMemory StorageType = "memory"
	StorageTypeLocal  StorageType = "local"
	StorageTypeRedis  StorageType = "redis"
	StorageTypeS3     StorageType = "s3"
)

type Config struct {
	Type      StorageType
	LocalPath string
	Redis     *RedisConfig
	S3        *S3Config
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type S3Config struct {
	Bucket string
	Region string
	Prefix string
}
