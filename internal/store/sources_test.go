package store

import (
	"testing"
	"time"

	"luka_backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSource(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "create@luka.test")
	sources := NewSources(db)

	created, err := sources.Create(userID, bankAccountInput("Bancolombia Ahorros", 8900000))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.True(t, created.Active)
	assert.Nil(t, created.DeletedAt)
	assert.True(t, created.Balance.Equal(decimal.NewFromInt(8900000)))

	t.Run("rejects incompatible subtype", func(t *testing.T) {
		in := bankAccountInput("Efectivo", 1000)
		in.Type = domain.SourceCash // keeps the savings subtype: invalid
		_, err := sources.Create(userID, in)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		in := bankAccountInput("Nequi", 0)
		in.Balance = decimal.NewFromInt(-1)
		_, err := sources.Create(userID, in)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("allows zero balance", func(t *testing.T) {
		_, err := sources.Create(userID, bankAccountInput("Cuenta nueva", 0))
		assert.NoError(t, err)
	})
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "list@luka.test")
	sources := NewSources(db)

	first, err := sources.Create(userID, bankAccountInput("Primera", 100))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond) // Distinct creation times for a stable order
	second, err := sources.Create(userID, bankAccountInput("Segunda", 200))
	require.NoError(t, err)

	// limit=1 over two sources: one item and a continuation cursor
	page, err := sources.List(userID, ListQuery{Limit: 1, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, second.ID, page.Items[0].ID, "newest first")
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, second.ID, *page.NextCursor)
	assert.EqualValues(t, 2, page.Total)

	// Following the cursor returns the remaining item and no cursor
	page, err = sources.List(userID, ListQuery{Limit: 1, Cursor: *page.NextCursor, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, first.ID, page.Items[0].ID)
	assert.Nil(t, page.NextCursor)

	t.Run("unknown cursor", func(t *testing.T) {
		_, err := sources.List(userID, ListQuery{Cursor: "nope", ActiveOnly: true})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("active only excludes soft-deleted", func(t *testing.T) {
		_, err := sources.SoftDelete(userID, first.ID)
		require.NoError(t, err)

		page, err := sources.List(userID, ListQuery{ActiveOnly: true})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.EqualValues(t, 1, page.Total)

		page, err = sources.List(userID, ListQuery{ActiveOnly: false})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.EqualValues(t, 2, page.Total)
	})

	t.Run("limit is capped", func(t *testing.T) {
		page, err := sources.List(userID, ListQuery{Limit: 100000, ActiveOnly: false})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "get@luka.test")
	otherID := newTestUser(t, db, "other@luka.test")
	sources := NewSources(db)

	created, err := sources.Create(userID, bankAccountInput("Nequi", 500000))
	require.NoError(t, err)

	got, err := sources.GetByID(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = sources.GetByID(otherID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "other users cannot see the source")

	_, err = sources.SoftDelete(userID, created.ID)
	require.NoError(t, err)
	_, err = sources.GetByID(userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "soft-deleted sources are invisible to GetByID")
}

func TestGetByType(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "bytype@luka.test")
	sources := NewSources(db)

	_, err := sources.Create(userID, bankAccountInput("Bancolombia", 100))
	require.NoError(t, err)
	_, err = sources.Create(userID, CreateSourceInput{
		Name: "Efectivo", Type: domain.SourceCash, Balance: decimal.NewFromInt(200), Color: "#4a90e2",
	})
	require.NoError(t, err)

	cash, err := sources.GetByType(userID, domain.SourceCash)
	require.NoError(t, err)
	require.Len(t, cash, 1)
	assert.Equal(t, "Efectivo", cash[0].Name)

	cards, err := sources.GetByType(userID, domain.SourceCard)
	require.NoError(t, err)
	assert.Empty(t, cards)

	_, err = sources.GetByType(userID, "CRYPTO")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestTotalBalance(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "balance@luka.test")
	sources := NewSources(db)

	total, err := sources.TotalBalance(userID)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "no sources means zero, got %s", total)

	_, err = sources.Create(userID, bankAccountInput("Activa", 1000000))
	require.NoError(t, err)
	inactive, err := sources.Create(userID, bankAccountInput("Inactiva", 500000))
	require.NoError(t, err)
	_, err = sources.SoftDelete(userID, inactive.ID)
	require.NoError(t, err)

	total, err = sources.TotalBalance(userID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1000000)), "inactive sources excluded, got %s", total)
}

func TestUpdateSource(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "update@luka.test")
	sources := NewSources(db)

	created, err := sources.Create(userID, bankAccountInput("Nequi", 500000))
	require.NoError(t, err)

	name := "Nequi Principal"
	balance := decimal.NewFromInt(750000)
	updated, err := sources.Update(userID, UpdateSourceInput{ID: created.ID, Name: &name, Balance: &balance})
	require.NoError(t, err)
	assert.Equal(t, "Nequi Principal", updated.Name)
	assert.True(t, updated.Balance.Equal(balance))
	assert.Equal(t, created.Color, updated.Color, "untouched fields keep their values")

	t.Run("changing type to cash clears subtype", func(t *testing.T) {
		cash := domain.SourceCash
		updated, err := sources.Update(userID, UpdateSourceInput{ID: created.ID, Type: &cash})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceCash, updated.Type)
		assert.Nil(t, updated.Subtype)
	})

	t.Run("rejects incompatible subtype", func(t *testing.T) {
		_, err := sources.Update(userID, UpdateSourceInput{ID: created.ID, Subtype: subtypePtr(domain.SubtypeCreditCard)})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("soft-deleted source cannot be updated", func(t *testing.T) {
		_, err := sources.SoftDelete(userID, created.ID)
		require.NoError(t, err)
		other := "Renombrada"
		_, err = sources.Update(userID, UpdateSourceInput{ID: created.ID, Name: &other})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSoftDeleteRestoreHardDelete(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "lifecycle@luka.test")
	sources := NewSources(db)

	created, err := sources.Create(userID, bankAccountInput("Davivienda", 100))
	require.NoError(t, err)

	deleted, err := sources.SoftDelete(userID, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted.Active)
	require.NotNil(t, deleted.DeletedAt)

	restored, err := sources.Restore(userID, created.ID)
	require.NoError(t, err)
	assert.True(t, restored.Active)
	assert.Nil(t, restored.DeletedAt)

	got, err := sources.GetByID(userID, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Nil(t, got.DeletedAt)

	// Hard delete works even when soft-deleted
	_, err = sources.SoftDelete(userID, created.ID)
	require.NoError(t, err)
	require.NoError(t, sources.HardDelete(userID, created.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Source{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count, "row physically removed")
}

func TestOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@luka.test")
	intruder := newTestUser(t, db, "intruder@luka.test")
	sources := NewSources(db)

	created, err := sources.Create(owner, bankAccountInput("Privada", 100))
	require.NoError(t, err)

	name := "hacked"
	_, err = sources.Update(intruder, UpdateSourceInput{ID: created.ID, Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = sources.SoftDelete(intruder, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = sources.Restore(intruder, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = sources.HardDelete(intruder, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The owner's row is untouched by all of the above
	got, err := sources.GetByID(owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Privada", got.Name)
	assert.True(t, got.Active)
}
