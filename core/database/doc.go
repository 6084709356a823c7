// Package database opens the gorm connection and inspects the live schema.
//
// Connect supports the mysql and sqlite drivers. SQLite connections are capped at
// one open connection so concurrent inventory transactions queue instead of
// failing with "database is locked".
//
// GetTableColumns reads a table's columns (SHOW COLUMNS on MySQL, PRAGMA
// table_info on SQLite) for the integrity feature, which compares them with the
// gorm models of the inventory schema. A table without columns is reported as
// ErrTableNotFound.
//
//	db, err := database.Connect(cfg.Database)
//	columns, err := database.GetTableColumns(db, "inventory_items")
package database
