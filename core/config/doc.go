// Package config provides configuration management for the indexer.
//
// It uses Viper to read environment variables, optionally seeded from a .env
// file, with defaults taken from `default` struct tags on each section.
//
// # Configuration Structure
//
//   - Catalog: catalog file path and locking (CATALOG_PATH, CATALOG_LOCK)
//   - Scan: symlink following and exclude globs (SCAN_EXCLUDE="drafts,**/*.tmp.pdf")
//   - Engine: worker count and hashing (ENGINE_THREADS, ENGINE_NO_HASH)
//   - Storage: S3/MinIO credentials and backup bucket
//   - Database: export database (sqlite or mysql)
//   - Log: level and format
//
// Command-line flags override these values when given explicitly.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Catalog.Path)
package config
