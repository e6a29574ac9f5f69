package setting

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

	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	return db
}

func TestGetCreatesDefaults(t *testing.T) {
	db := setupTestDB(t)

	setting, err := Get(db)
	require.NoError(t, err)

	assert.Equal(t, models.SettingSingletonID, setting.ID)
	assert.True(t, setting.IsRegistrationAllowed)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetDoesNotDuplicate(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db)
	require.NoError(t, err)

	_, err = Get(db)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetRegistrationAllowed(t *testing.T) {
	db := setupTestDB(t)

	setting, err := SetRegistrationAllowed(db, false)
	require.NoError(t, err)
	assert.False(t, setting.IsRegistrationAllowed)

	setting, err = Get(db)
	require.NoError(t, err)
	assert.False(t, setting.IsRegistrationAllowed)

	setting, err = SetRegistrationAllowed(db, true)
	require.NoError(t, err)
	assert.True(t, setting.IsRegistrationAllowed)
}

func TestSetRegistrationAllowedCreatesRow(t *testing.T) {
	db := setupTestDB(t)

	// no prior Get, the update path must create the row itself
	setting, err := SetRegistrationAllowed(db, false)
	require.NoError(t, err)
	assert.Equal(t, models.SettingSingletonID, setting.ID)
	assert.False(t, setting.IsRegistrationAllowed)
}

func TestNilDB(t *testing.T) {
	_, err := Get(nil)
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = SetRegistrationAllowed(nil, true)
	assert.ErrorIs(t, err, ErrDBNil)
}
