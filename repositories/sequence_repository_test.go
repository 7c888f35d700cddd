package repositories

import (
	"fmt"
	"testing"
	"time"

	"warehouse-app/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSequenceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.DocumentSequence{}))
	return db
}

func TestNextDocumentNumberFormatAndIncrement(t *testing.T) {
	db := setupSequenceDB(t)
	repo := NewSequenceRepository(db)
	today := time.Now().Format("20060102")

	first, err := repo.NextDocumentNumber(OrderPrefix)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%s-00001", today), first)

	second, err := repo.NextDocumentNumber(OrderPrefix)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%s-00002", today), second)
}

func TestNextDocumentNumberPrefixesAreIndependent(t *testing.T) {
	db := setupSequenceDB(t)
	repo := NewSequenceRepository(db)
	today := time.Now().Format("20060102")

	_, err := repo.NextDocumentNumber(OrderPrefix)
	require.NoError(t, err)

	receiving, err := repo.NextDocumentNumber(ReceivingPrefix)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RCV-%s-00001", today), receiving)
}

func TestNextDocumentNumberResetsDaily(t *testing.T) {
	db := setupSequenceDB(t)
	repo := NewSequenceRepository(db)
	today := time.Now().Format("20060102")

	// A counter left over from yesterday must not leak into today.
	yesterday := time.Now().AddDate(0, 0, -1).Format("20060102")
	require.NoError(t, db.Create(&models.DocumentSequence{
		Prefix: OrderPrefix, Date: yesterday, LastNumber: 41,
	}).Error)

	number, err := repo.NextDocumentNumber(OrderPrefix)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%s-00001", today), number)
}
