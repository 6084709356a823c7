package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrTableNotFound is returned when a table has no columns to inspect.
var ErrTableNotFound = errors.New("table not found")

// ColumnInfo is one column as the server reports it. Field and Type are lower-cased.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string
	Extra   string
}

// sqliteColumn is a row of PRAGMA table_info.
type sqliteColumn struct {
	Cid       int
	Name      string
	Type      string
	Notnull   int
	DfltValue *string
	Pk        int
}

// GetTableColumns retrieves the column definitions of a table from the live schema.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	switch db.Dialector.Name() {
	case DriverSQLite:
		var rows []sqliteColumn
		query := fmt.Sprintf("PRAGMA table_info(%s)", quoteSQLite(tableName))
		if err := db.Raw(query).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, row := range rows {
			col := ColumnInfo{Field: row.Name, Type: row.Type, Default: row.DfltValue}
			if row.Pk > 0 {
				col.Key = "PRI"
			}
			if row.Notnull == 1 {
				col.Null = "NO"
			} else {
				col.Null = "YES"
			}
			columns = append(columns, col)
		}
	default:
		if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

func quoteSQLite(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
