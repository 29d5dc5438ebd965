package checks

import (
	"context"
	"testing"

	"list-reconciler/core/database"
	"list-reconciler/feature/lists"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckServerIntegrity_NilDB(t *testing.T) {
	report, err := CheckServerIntegrity(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckServerIntegrity_Migrated(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, lists.NewRepository(db).Migrate(context.Background()))

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", report.Dialect)

	tbl := report.Tables["list_revisions"]
	assert.Empty(t, tbl.MissingColumns)
	assert.Empty(t, tbl.TypeMismatches)
	assert.Equal(t, "ok", tbl.Status)
	assert.True(t, report.Matched)
}

func TestCheckServerIntegrity_Drifted(t *testing.T) {
	db := setupSQLite(t)
	err := db.Exec(`CREATE TABLE list_revisions (
		id INTEGER PRIMARY KEY,
		list_name VARCHAR(191) NOT NULL,
		revision INT NOT NULL,
		items TEXT,
		size TEXT
	)`).Error
	require.NoError(t, err)

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["list_revisions"]
	assert.Equal(t, "error", tbl.Status)
	assert.ElementsMatch(t,
		[]string{"inserts", "removes", "moves", "changes", "archive_key", "created_at"},
		tbl.MissingColumns)
	assert.ElementsMatch(t,
		[]string{"items: expected longtext, got text", "size: expected int, got text"},
		tbl.TypeMismatches)
}

func TestCheckServerIntegrity_MissingTable(t *testing.T) {
	db, _ := setupMockDB(t)

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.Equal(t, "mysql", report.Dialect)
	assert.False(t, report.Matched)
	assert.Equal(t, "missing", report.Tables["list_revisions"].Status)
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, typeMatches("int", "int(11)"))
	assert.True(t, typeMatches("varchar(191)", "varchar(191)"))
	assert.True(t, typeMatches("varchar(191)", "varchar(255)"))
	assert.True(t, typeMatches("datetime", "datetime(3)"))
	assert.False(t, typeMatches("int", "text"))
	assert.False(t, typeMatches("longtext", "text"))
}

func TestParseGormTags(t *testing.T) {
	tag := "column:list_name;type:varchar(191);not null"
	assert.Equal(t, "list_name", parseGormColumn(tag))
	assert.Equal(t, "varchar(191)", parseGormType(tag))
	assert.Equal(t, "", parseGormColumn("primaryKey"))
}
