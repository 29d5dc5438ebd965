// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and
// tests) connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and verifies the
// connection with a ping bounded by the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns reads the live column definitions of a table. The integrity
// feature compares them with the GORM models of the lists feature.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "list_revisions")
package database
