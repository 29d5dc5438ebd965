package integrity

import (
	"context"
	"testing"

	"list-reconciler/core/database"
	"list-reconciler/core/reconcile"
	"list-reconciler/core/storage/mocks"
	"list-reconciler/feature/lists"
	"list-reconciler/feature/lists/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func emptyObjects() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

// setupDB returns a migrated in-memory database holding one unarchived revision.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	repo := lists.NewRepository(db)
	require.NoError(t, repo.Migrate(ctx))
	rev, err := models.NewRevision("holidays", 1, []models.Item{{ID: "a"}}, reconcile.Summary{Inserts: 1})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, rev))
	return db
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	svc := NewService(mockClient, "test-bucket", "lists", logger, nil)

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyObjects())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"lists"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", "lists/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"lists"})
		assert.NoError(t, err)
	})
}

func TestService_WithoutDatabase(t *testing.T) {
	svc := NewService(new(mocks.Client), "test-bucket", "lists", zap.NewNop(), nil)

	_, err := svc.CheckArchive(context.Background())
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = svc.FixArchive(context.Background())
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = svc.CheckServer()
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestService_Archive(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("PutObject", mock.Anything, "test-bucket", "lists/holidays/1.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(func() <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "lists/holidays/1.json"}
		close(ch)
		return ch
	}())

	svc := NewService(mockClient, "test-bucket", "lists", zap.NewNop(), db)

	before, err := svc.CheckArchive(ctx)
	require.NoError(t, err)
	assert.False(t, before.Matched)
	assert.Equal(t, []string{"holidays@1"}, before.Unarchived)

	fixed, err := svc.FixArchive(ctx)
	require.NoError(t, err)
	assert.False(t, fixed.Matched)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)

	after, err := svc.CheckArchive(ctx)
	require.NoError(t, err)
	assert.True(t, after.Matched)
	assert.Empty(t, after.Unarchived)
	assert.Empty(t, after.Missing)
}

func TestService_Server(t *testing.T) {
	svc := NewService(new(mocks.Client), "test-bucket", "lists", zap.NewNop(), setupDB(t))

	report, err := svc.CheckServer()
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Contains(t, report.Tables, "list_revisions")
}
