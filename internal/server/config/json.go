package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/blogcore/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Duration fields
// use timex.Duration so both "15m" and integer nanoseconds are accepted.
// Keys absent from the file leave the current value untouched.
type JsonConfig struct {
	DatabaseDriver               string         `json:"database_driver"`
	DatabaseDSN                  string         `json:"database_dsn"`
	MaxOpenConns                 int            `json:"max_open_conns"`
	MaxIdleConns                 int            `json:"max_idle_conns"`
	ConnMaxLifetime              timex.Duration `json:"conn_max_lifetime"`
	MigrateOnStart               bool           `json:"migrate_on_start"`
	LogBackend                   string         `json:"log_backend"`
	LogLevel                     string         `json:"log_level"`
	BcryptCost                   int            `json:"bcrypt_cost"`
	BlockCategoryDeleteWithPosts bool           `json:"block_category_delete_with_posts"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	S3AccessKey                  string         `json:"s3_access_key"`
	S3SecretKey                  string         `json:"s3_secret_key"`
	S3PublicBaseURL              string         `json:"s3_public_base_url"`
	PresignExpiry                timex.Duration `json:"presign_expiry"`
}

// parseJSON overlays the JSON file at path onto config. An empty path loads
// nothing.
func parseJSON(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{
		DatabaseDriver:               config.DatabaseDriver,
		DatabaseDSN:                  config.DatabaseDSN,
		MaxOpenConns:                 config.MaxOpenConns,
		MaxIdleConns:                 config.MaxIdleConns,
		ConnMaxLifetime:              timex.Duration{Duration: config.ConnMaxLifetime},
		MigrateOnStart:               config.MigrateOnStart,
		LogBackend:                   config.LogBackend,
		LogLevel:                     config.LogLevel,
		BcryptCost:                   config.BcryptCost,
		BlockCategoryDeleteWithPosts: config.BlockCategoryDeleteWithPosts,
		S3Bucket:                     config.S3Bucket,
		S3Region:                     config.S3Region,
		S3BaseEndpoint:               config.S3BaseEndpoint,
		S3AccessKey:                  config.S3AccessKey,
		S3SecretKey:                  config.S3SecretKey,
		S3PublicBaseURL:              config.S3PublicBaseURL,
		PresignExpiry:                timex.Duration{Duration: config.PresignExpiry},
	}

	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	config.DatabaseDriver = c.DatabaseDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.MaxOpenConns = c.MaxOpenConns
	config.MaxIdleConns = c.MaxIdleConns
	config.ConnMaxLifetime = c.ConnMaxLifetime.Duration
	config.MigrateOnStart = c.MigrateOnStart
	config.LogBackend = c.LogBackend
	config.LogLevel = c.LogLevel
	config.BcryptCost = c.BcryptCost
	config.BlockCategoryDeleteWithPosts = c.BlockCategoryDeleteWithPosts
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3PublicBaseURL = c.S3PublicBaseURL
	config.PresignExpiry = c.PresignExpiry.Duration
	return nil
}
