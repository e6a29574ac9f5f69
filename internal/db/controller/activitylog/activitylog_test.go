package activitylog

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.ActivityLog{}))

	return db
}

func record(t *testing.T, db *gorm.DB, userID uint64, entityType string) {
	t.Helper()

	require.NoError(t, Record(db, &models.ActivityLog{
		UserID:     userID,
		Username:   "operator",
		Action:     models.ActionCreate,
		EntityType: entityType,
		Method:     "POST",
		Path:       "/api/v1/transaksi",
		StatusCode: 201,
	}))
}

func TestRecordAndList(t *testing.T) {
	db := setupTestDB(t)

	record(t, db, 1, "TRANSAKSI")
	record(t, db, 1, "TRANSAKSI")
	record(t, db, 2, "USER")

	entries, total, err := List(db, ListFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)

	// newest first
	assert.Equal(t, "USER", entries[0].EntityType)
}

func TestListFilters(t *testing.T) {
	db := setupTestDB(t)

	record(t, db, 1, "TRANSAKSI")
	record(t, db, 2, "USER")

	_, total, err := List(db, ListFilter{EntityType: "USER"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	userID := uint64(1)
	entries, total, err := List(db, ListFilter{UserID: &userID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, "TRANSAKSI", entries[0].EntityType)
}

func TestNilDB(t *testing.T) {
	assert.ErrorIs(t, Record(nil, &models.ActivityLog{}), ErrDBNil)

	_, _, err := List(nil, ListFilter{}, 1, 10)
	assert.ErrorIs(t, err, ErrDBNil)
}
