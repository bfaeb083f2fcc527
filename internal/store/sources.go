// Package store implements the data-access layer over GORM. Every operation
// is scoped to the owning user and re-verifies ownership itself; rows that
// are missing or owned by someone else surface as domain.ErrNotFound.
package store

import (
	"errors"
	"time"

	"luka_backend/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pagination bounds for listing sources
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Sources provides user-scoped persistence for money sources
type Sources struct {
	db *gorm.DB
}

// NewSources returns a Sources store over db, which may be a transaction handle
func NewSources(db *gorm.DB) *Sources {
	return &Sources{db: db}
}

// CreateSourceInput holds the fields for a new source
type CreateSourceInput struct {
	Name         string
	Type         domain.SourceType
	Subtype      *domain.SourceSubtype
	Balance      decimal.Decimal
	Color        string
	SourceNumber *string
}

// UpdateSourceInput holds partial updates; nil fields are left unchanged.
// Changing the type to cash clears the subtype.
type UpdateSourceInput struct {
	ID           string
	Name         *string
	Type         *domain.SourceType
	Subtype      *domain.SourceSubtype
	Balance      *decimal.Decimal
	Color        *string
	SourceNumber *string
	Active       *bool
}

// ListQuery controls pagination and filtering for List
type ListQuery struct {
	Cursor     string // ID of the last source of the previous page; "" for the first page
	Limit      int    // Page size, capped at MaxListLimit; DefaultListLimit when zero
	ActiveOnly bool   // Exclude inactive and soft-deleted sources
}

// ListResult is one page of sources plus the continuation cursor
type ListResult struct {
	Items      []domain.Source `json:"items"`
	NextCursor *string         `json:"nextCursor"`
	Total      int64           `json:"total"`
}

// filtered starts a query scoped to the user, optionally restricted to
// active, non-deleted sources
func (s *Sources) filtered(userID string, activeOnly bool) *gorm.DB {
	q := s.db.Model(&domain.Source{}).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("active = ? AND deleted_at IS NULL", true)
	}
	return q
}

// validateFields checks the domain invariants shared by create and update
func validateFields(name string, t domain.SourceType, subtype *domain.SourceSubtype, balance decimal.Decimal, color string) error {
	if name == "" {
		return &domain.ValidationError{Field: "name", Message: "El nombre es requerido"}
	}
	if len(name) > 100 {
		return &domain.ValidationError{Field: "name", Message: "El nombre es demasiado largo"}
	}
	if !domain.ValidSourceType(t) {
		return &domain.ValidationError{Field: "type", Message: "Tipo de fuente inválido"}
	}
	if !domain.SubtypeCompatible(t, subtype) {
		return &domain.ValidationError{Field: "subtype", Message: "Subtipo de fuente inválido"}
	}
	if balance.IsNegative() {
		return &domain.ValidationError{Field: "balance", Message: "El saldo no puede ser negativo"}
	}
	if color == "" {
		return &domain.ValidationError{Field: "color", Message: "El color es requerido"}
	}
	return nil
}

// List returns one page of the user's sources ordered by creation time
// descending, with a keyset cursor and the total count under the same filter
func (s *Sources) List(userID string, q ListQuery) (*ListResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var total int64
	if err := s.filtered(userID, q.ActiveOnly).Count(&total).Error; err != nil {
		return nil, err
	}

	query := s.filtered(userID, q.ActiveOnly).Order("created_at DESC, id DESC")
	if q.Cursor != "" {
		// Position strictly after the cursor row in the sort order
		var after domain.Source
		if err := s.db.Where("id = ? AND user_id = ?", q.Cursor, userID).First(&after).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", after.CreatedAt, after.CreatedAt, after.ID)
	}

	// Fetch one extra row to know whether a next page exists
	var items []domain.Source
	if err := query.Limit(limit + 1).Find(&items).Error; err != nil {
		return nil, err
	}

	var nextCursor *string
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1].ID
		nextCursor = &last
	}
	return &ListResult{Items: items, NextCursor: nextCursor, Total: total}, nil
}

// GetByID returns the source iff it is owned by the user and not soft-deleted
func (s *Sources) GetByID(userID, id string) (*domain.Source, error) {
	var source domain.Source
	err := s.db.Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, userID).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

// GetByType returns the user's active, non-deleted sources of the given type
func (s *Sources) GetByType(userID string, t domain.SourceType) ([]domain.Source, error) {
	if !domain.ValidSourceType(t) {
		return nil, &domain.ValidationError{Field: "type", Message: "Tipo de fuente inválido"}
	}
	var sources []domain.Source
	err := s.filtered(userID, true).Where("type = ?", t).Order("created_at DESC, id DESC").Find(&sources).Error
	if err != nil {
		return nil, err
	}
	return sources, nil
}

// TotalBalance sums the balances of the user's active, non-deleted sources;
// zero when there are none
func (s *Sources) TotalBalance(userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.filtered(userID, true).Select("COALESCE(SUM(balance), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Create inserts a new active source for the user
func (s *Sources) Create(userID string, in CreateSourceInput) (*domain.Source, error) {
	if err := validateFields(in.Name, in.Type, in.Subtype, in.Balance, in.Color); err != nil {
		return nil, err
	}
	source := domain.Source{
		UserID:       userID,
		Name:         in.Name,
		Type:         in.Type,
		Subtype:      in.Subtype,
		Balance:      in.Balance,
		Color:        in.Color,
		SourceNumber: in.SourceNumber,
		Active:       true,
	}
	if err := s.db.Create(&source).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

// Update applies partial field updates to a source the user owns and has not
// soft-deleted
func (s *Sources) Update(userID string, in UpdateSourceInput) (*domain.Source, error) {
	source, err := s.GetByID(userID, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		source.Name = *in.Name
	}
	if in.Type != nil {
		source.Type = *in.Type
		if *in.Type == domain.SourceCash {
			source.Subtype = nil
		}
	}
	if in.Subtype != nil {
		source.Subtype = in.Subtype
	}
	if in.Balance != nil {
		source.Balance = *in.Balance
	}
	if in.Color != nil {
		source.Color = *in.Color
	}
	if in.SourceNumber != nil {
		source.SourceNumber = in.SourceNumber
	}
	if in.Active != nil {
		source.Active = *in.Active
	}
	if err := validateFields(source.Name, source.Type, source.Subtype, source.Balance, source.Color); err != nil {
		return nil, err
	}
	if err := s.db.Save(source).Error; err != nil {
		return nil, err
	}
	return source, nil
}

// SoftDelete marks a source inactive and records the deletion timestamp
func (s *Sources) SoftDelete(userID, id string) (*domain.Source, error) {
	source, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	source.Active = false
	source.DeletedAt = &now
	if err := s.db.Save(source).Error; err != nil {
		return nil, err
	}
	return source, nil
}

// getAnyState fetches an owned source regardless of its soft-delete state,
// for restore and hard delete
func (s *Sources) getAnyState(userID, id string) (*domain.Source, error) {
	var source domain.Source
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

// HardDelete physically removes an owned source row
func (s *Sources) HardDelete(userID, id string) error {
	source, err := s.getAnyState(userID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(&domain.Source{}, "id = ?", source.ID).Error
}

// Restore reactivates a soft-deleted source and clears its deletion timestamp
func (s *Sources) Restore(userID, id string) (*domain.Source, error) {
	source, err := s.getAnyState(userID, id)
	if err != nil {
		return nil, err
	}
	source.Active = true
	source.DeletedAt = nil
	if err := s.db.Save(source).Error; err != nil {
		return nil, err
	}
	return source, nil
}
