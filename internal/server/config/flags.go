package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig                       = "config"
	FlagDatabaseDriver               = "db-driver"
	FlagDatabaseDSN                  = "dsn"
	FlagMaxOpenConns                 = "max-open-conns"
	FlagMaxIdleConns                 = "max-idle-conns"
	FlagConnMaxLifetime              = "conn-max-lifetime"
	FlagMigrateOnStart               = "migrate"
	FlagLogBackend                   = "log-backend"
	FlagLogLevel                     = "log-level"
	FlagBcryptCost                   = "bcrypt-cost"
	FlagBlockCategoryDeleteWithPosts = "block-category-delete-with-posts"
	FlagS3Bucket                     = "s3-bucket"
	FlagS3Region                     = "s3-region"
	FlagS3BaseEndpoint               = "s3-endpoint"
	FlagS3AccessKey                  = "s3-access-key"
	FlagS3SecretKey                  = "s3-secret-key"
	FlagS3PublicBaseURL              = "s3-public-url"
	FlagPresignExpiry                = "presign-expiry"
)

// BindFlags registers every configuration flag on fs. Defaults shown in help
// come from LoadDefaults; only flags the user sets override other sources.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to JSON config file")
	fs.String(FlagDatabaseDriver, d.DatabaseDriver, "database driver (pgx or sqlite)")
	fs.StringP(FlagDatabaseDSN, "d", d.DatabaseDSN, "database DSN")
	fs.Int(FlagMaxOpenConns, d.MaxOpenConns, "maximum open connections in the pool")
	fs.Int(FlagMaxIdleConns, d.MaxIdleConns, "maximum idle connections in the pool")
	fs.Duration(FlagConnMaxLifetime, d.ConnMaxLifetime, "maximum connection lifetime")
	fs.Bool(FlagMigrateOnStart, d.MigrateOnStart, "apply migrations on start")
	fs.String(FlagLogBackend, d.LogBackend, "log backend (slog or zap)")
	fs.String(FlagLogLevel, d.LogLevel, "log level")
	fs.Int(FlagBcryptCost, d.BcryptCost, "bcrypt cost for password hashes")
	fs.Bool(FlagBlockCategoryDeleteWithPosts, d.BlockCategoryDeleteWithPosts, "refuse to delete categories that still have posts")
	fs.StringP(FlagS3Bucket, "b", d.S3Bucket, "S3 bucket")
	fs.StringP(FlagS3Region, "g", d.S3Region, "S3 region")
	fs.StringP(FlagS3BaseEndpoint, "e", d.S3BaseEndpoint, "S3 base endpoint")
	fs.StringP(FlagS3AccessKey, "u", d.S3AccessKey, "S3 access key")
	fs.StringP(FlagS3SecretKey, "p", d.S3SecretKey, "S3 secret key")
	fs.String(FlagS3PublicBaseURL, d.S3PublicBaseURL, "public base URL of uploaded objects")
	fs.Duration(FlagPresignExpiry, d.PresignExpiry, "lifetime of presigned upload URLs")
}

// parseFlags copies the flags that were set explicitly into config.
func parseFlags(config *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagDatabaseDriver:
			config.DatabaseDriver, err = fs.GetString(f.Name)
		case FlagDatabaseDSN:
			config.DatabaseDSN, err = fs.GetString(f.Name)
		case FlagMaxOpenConns:
			config.MaxOpenConns, err = fs.GetInt(f.Name)
		case FlagMaxIdleConns:
			config.MaxIdleConns, err = fs.GetInt(f.Name)
		case FlagConnMaxLifetime:
			config.ConnMaxLifetime, err = fs.GetDuration(f.Name)
		case FlagMigrateOnStart:
			config.MigrateOnStart, err = fs.GetBool(f.Name)
		case FlagLogBackend:
			config.LogBackend, err = fs.GetString(f.Name)
		case FlagLogLevel:
			config.LogLevel, err = fs.GetString(f.Name)
		case FlagBcryptCost:
			config.BcryptCost, err = fs.GetInt(f.Name)
		case FlagBlockCategoryDeleteWithPosts:
			config.BlockCategoryDeleteWithPosts, err = fs.GetBool(f.Name)
		case FlagS3Bucket:
			config.S3Bucket, err = fs.GetString(f.Name)
		case FlagS3Region:
			config.S3Region, err = fs.GetString(f.Name)
		case FlagS3BaseEndpoint:
			config.S3BaseEndpoint, err = fs.GetString(f.Name)
		case FlagS3AccessKey:
			config.S3AccessKey, err = fs.GetString(f.Name)
		case FlagS3SecretKey:
			config.S3SecretKey, err = fs.GetString(f.Name)
		case FlagS3PublicBaseURL:
			config.S3PublicBaseURL, err = fs.GetString(f.Name)
		case FlagPresignExpiry:
			config.PresignExpiry, err = fs.GetDuration(f.Name)
		}
	})
	return err
}
