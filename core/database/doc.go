// Package database opens the SQL database used for catalog exports.
//
// It wraps GORM with either the SQLite driver (a local file, the default) or
// the MySQL driver, configured from Config.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("failed to connect to database: %w", err)
//	}
package database
