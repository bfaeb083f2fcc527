package store

import (
	"path/filepath"
	"testing"

	"luka_backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway SQLite database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.UserProfile{}, &domain.Source{}))
	return db
}

// newTestUser inserts a user and returns its ID
func newTestUser(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	user := domain.User{Email: email, Name: "Test User", Password: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func subtypePtr(s domain.SourceSubtype) *domain.SourceSubtype {
	return &s
}

func bankAccountInput(name string, balance int64) CreateSourceInput {
	return CreateSourceInput{
		Name:    name,
		Type:    domain.SourceBankAccount,
		Subtype: subtypePtr(domain.SubtypeSavings),
		Balance: decimal.NewFromInt(balance),
		Color:   "#f5a623",
	}
}
