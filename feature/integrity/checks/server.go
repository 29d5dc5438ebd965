package checks

import (
	"fmt"
	"reflect"
	"strings"

	"list-reconciler/core/database"
	"list-reconciler/feature/lists/models"

	"gorm.io/gorm"
)

// Models are the gorm models whose tables are verified by CheckServerIntegrity.
var Models = []any{models.Revision{}}

// ServerReport strictly types the result of a server integrity check.
type ServerReport struct {
	Dialect string                 `json:"dialect"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckServerIntegrity verifies the database schema using GORM models as the source of truth.
func CheckServerIntegrity(db *gorm.DB) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ServerReport{
		Dialect: db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	for _, model := range Models {
		val := reflect.TypeOf(model)
		tabler, ok := reflect.New(val).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", val.Name())
		}
		tableName := tabler.TableName()

		tblReport := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}
		if len(actualCols) == 0 {
			tblReport.Status = "missing"
			report.Tables[tableName] = tblReport
			report.Matched = false
			continue
		}

		actualMap := make(map[string]database.ColumnInfo)
		for _, col := range actualCols {
			actualMap[col.Field] = col
		}

		for i := 0; i < val.NumField(); i++ {
			gormTag := val.Field(i).Tag.Get("gorm")

			colName := parseGormColumn(gormTag)
			if colName == "" {
				continue
			}
			expType := parseGormType(gormTag)

			actCol, exists := actualMap[colName]
			if !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, colName)
				tblReport.Status = "error"
				report.Matched = false
				continue
			}

			// Only columns with an explicit type are compared, and loosely:
			// int(11) satisfies int, varchar(191) satisfies varchar.
			if expType != "" && !typeMatches(expType, actCol.Type) {
				mismatch := fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type)
				tblReport.TypeMismatches = append(tblReport.TypeMismatches, mismatch)
				tblReport.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[tableName] = tblReport
	}

	return report, nil
}

func typeMatches(expected, actual string) bool {
	expected = strings.ToLower(expected)
	if strings.Contains(actual, expected) {
		return true
	}
	base := expected
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	return strings.HasPrefix(actual, base)
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
