package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SourceType identifies where money is held
type SourceType string

// Source types
const (
	SourceCash        SourceType = "CASH"
	SourceBankAccount SourceType = "BANK_ACCOUNT"
	SourceCard        SourceType = "CARD"
)

// SourceSubtype refines a source type (nullable in storage)
type SourceSubtype string

// Source subtypes
const (
	SubtypeSavings    SourceSubtype = "SAVINGS"
	SubtypeChecking   SourceSubtype = "CHECKING"
	SubtypeDebitCard  SourceSubtype = "DEBIT_CARD"
	SubtypeCreditCard SourceSubtype = "CREDIT_CARD"
)

// subtypesByType lists the subtypes each type admits; cash admits none
var subtypesByType = map[SourceType][]SourceSubtype{
	SourceCash:        nil,
	SourceBankAccount: {SubtypeSavings, SubtypeChecking},
	SourceCard:        {SubtypeDebitCard, SubtypeCreditCard},
}

// ValidSourceType reports whether t is one of the known source types
func ValidSourceType(t SourceType) bool {
	_, ok := subtypesByType[t]
	return ok
}

// SubtypeCompatible reports whether subtype may be combined with t.
// A nil subtype is only valid for cash; every other type requires one of its own subtypes.
func SubtypeCompatible(t SourceType, subtype *SourceSubtype) bool {
	allowed, ok := subtypesByType[t]
	if !ok {
		return false
	}
	if subtype == nil {
		return t == SourceCash
	}
	for _, s := range allowed {
		if s == *subtype {
			return true
		}
	}
	return false
}

// Source Model: a user-owned record of a place money is held.
// DeletedAt is managed by hand rather than with gorm.DeletedAt so that
// restore and hard delete can still see soft-deleted rows.
type Source struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string          `gorm:"type:varchar(36);index;not null" json:"userId"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Type         SourceType      `gorm:"size:20;not null" json:"type"`
	Subtype      *SourceSubtype  `gorm:"size:20" json:"subtype"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance"`
	Color        string          `gorm:"size:20;not null" json:"color"`
	SourceNumber *string         `gorm:"size:30" json:"sourceNumber"` // Masked reference number (last digits)
	Active       bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    *time.Time      `gorm:"index" json:"deletedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided
func (s *Source) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
