package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of a live table.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    bool
	Key     bool
	Default *string // nil when the column has no default
}

// GetTableColumns retrieves the column definitions for a given table.
// Names and types are lower-cased. A missing table yields no columns and no error.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	migrator := db.Migrator()
	if !migrator.HasTable(tableName) {
		return nil, nil
	}

	types, err := migrator.ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(types))
	for _, ct := range types {
		typ, ok := ct.ColumnType()
		if !ok || typ == "" {
			typ = ct.DatabaseTypeName()
		}

		col := ColumnInfo{
			Field: strings.ToLower(ct.Name()),
			Type:  strings.ToLower(typ),
		}
		if nullable, ok := ct.Nullable(); ok {
			col.Null = nullable
		}
		if pk, ok := ct.PrimaryKey(); ok {
			col.Key = pk
		}
		if def, ok := ct.DefaultValue(); ok {
			col.Default = &def
		}
		columns = append(columns, col)
	}

	return columns, nil
}
