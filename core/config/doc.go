// Package config provides configuration management for the List Reconciler.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file loaded with godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit, shutdown timeout)
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and the archive bucket
//   - Log: Logging level and format
//   - Lists: snapshot cache TTL, history limit, archive prefix and identity mode
//
// Every key maps to an upper-case environment variable with dots replaced by
// underscores, e.g. lists.cache_ttl_seconds is read from LISTS_CACHE_TTL_SECONDS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
