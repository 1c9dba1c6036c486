// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers      = []string{"sqlite", "postgres"}
	validStorageTypes = []string{"cloudinary", "s3"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors_origins", "host_cors_origins")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("session.secret", "session_secret")
	v.BindEnv("session.ttl_hours", "session_ttl_hours")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("storage.type", "storage_type")

	v.BindEnv("cloudinary.cloud_name", "cloudinary_cloud_name")
	v.BindEnv("cloudinary.upload_preset", "cloudinary_upload_preset")

	v.BindEnv("cloudflare.account_id", "cloudflare_account_id")
	v.BindEnv("cloudflare.access_key_id", "cloudflare_access_key_id")
	v.BindEnv("cloudflare.secret_access_key", "cloudflare_secret_access_key")
	v.BindEnv("cloudflare.bucket", "cloudflare_bucket")
	v.BindEnv("cloudflare.public_base_url", "cloudflare_public_base_url")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("session.ttl_hours", 24*30)

	v.SetDefault("upload.max_size", 10)

	v.SetDefault("storage.type", "cloudinary")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database.dsn can't be empty")
	}

	if v.GetString("session.secret") == "" {
		fmt.Println("WARNING: You haven't set a session secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random session secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("session.ttl_hours") <= 0 {
		return errors.New("session.ttl_hours must be bigger than 0")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	switch v.GetString("storage.type") {
	case "cloudinary":
		{
			if v.GetString("cloudinary.cloud_name") == "" {
				return errors.New("cloudinary cloud name can't be empty")
			}
			if v.GetString("cloudinary.upload_preset") == "" {
				return errors.New("cloudinary upload preset can't be empty")
			}
		}
	case "s3":
		{
			if v.GetString("cloudflare.account_id") == "" {
				return errors.New("account id can't be empty")
			}
			if v.GetString("cloudflare.access_key_id") == "" {
				return errors.New("account access id can't be empty")
			}
			if v.GetString("cloudflare.secret_access_key") == "" {
				return errors.New("secret access key can't be empty")
			}
			if v.GetString("cloudflare.bucket") == "" {
				return errors.New("bucket can't be empty")
			}
			if v.GetString("cloudflare.public_base_url") == "" {
				return errors.New("public base url can't be empty")
			}
		}
	default:
		return fmt.Errorf("invalid storage type provided, must be one of %v", validStorageTypes)
	}

	// Config stores MiB, the rest of the app wants bytes
	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
