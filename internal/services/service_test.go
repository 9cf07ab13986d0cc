package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cottageplayer/internal/database"
	"cottageplayer/internal/models"
	"cottageplayer/internal/repository"
	"cottageplayer/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func newTestStore(t *testing.T) *storage.DiskStore {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	return store
}

func seedMedia(t *testing.T, db *gorm.DB, filename, mimeType string) *models.Media {
	t.Helper()
	m := &models.Media{
		Filename:  filename,
		MediaType: models.MediaTypeFromMIME(mimeType),
		MimeType:  mimeType,
		URL:       "/media/" + filename,
		Tags:      []string{},
	}
	require.NoError(t, repository.NewMediaRepo(db).Create(context.Background(), m))
	return m
}
