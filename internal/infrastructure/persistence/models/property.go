package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propflow/backend/internal/domain/property"
)

// PermitApplicationModel is the persistence model for the PermitApplication
// aggregate root. IDs are allocated from the counters table, never by the
// database, so autoincrement is disabled.
type PermitApplicationModel struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement:false"`
	Owner           uuid.UUID       `gorm:"type:uuid;not null;index"`
	PropertyAddress string          `gorm:"type:varchar(500);not null"`
	Document        string          `gorm:"type:varchar(255);not null"`
	LicenceNumber   string          `gorm:"type:varchar(100);not null"`
	Status          property.Status `gorm:"type:varchar(20);not null;index"`
	Version         int             `gorm:"not null;default:1"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PermitApplicationModel) TableName() string {
	return "permit_applications"
}

// ToDomain converts the persistence model to a domain PermitApplication
func (m *PermitApplicationModel) ToDomain() *property.PermitApplication {
	return &property.PermitApplication{
		ID:              m.ID,
		Owner:           m.Owner,
		PropertyAddress: m.PropertyAddress,
		Document:        m.Document,
		LicenceNumber:   m.LicenceNumber,
		Status:          m.Status,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain PermitApplication
func (m *PermitApplicationModel) FromDomain(p *property.PermitApplication) {
	m.ID = p.ID
	m.Owner = p.Owner
	m.PropertyAddress = p.PropertyAddress
	m.Document = p.Document
	m.LicenceNumber = p.LicenceNumber
	m.Status = p.Status
	m.Version = p.Version
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// PermitApplicationModelFromDomain creates a new persistence model from a domain PermitApplication
func PermitApplicationModelFromDomain(p *property.PermitApplication) *PermitApplicationModel {
	m := &PermitApplicationModel{}
	m.FromDomain(p)
	return m
}

// LoanApplicationModel is the persistence model for the LoanApplication aggregate root
type LoanApplicationModel struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement:false"`
	Owner           uuid.UUID       `gorm:"type:uuid;not null;index"`
	FullName        string          `gorm:"type:varchar(200);not null"`
	PropertyAddress string          `gorm:"type:varchar(500);not null"`
	AnnualIncome    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LoanAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status          property.Status `gorm:"type:varchar(20);not null;index"`
	Version         int             `gorm:"not null;default:1"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LoanApplicationModel) TableName() string {
	return "loan_applications"
}

// ToDomain converts the persistence model to a domain LoanApplication
func (m *LoanApplicationModel) ToDomain() *property.LoanApplication {
	return &property.LoanApplication{
		ID:              m.ID,
		Owner:           m.Owner,
		FullName:        m.FullName,
		PropertyAddress: m.PropertyAddress,
		AnnualIncome:    m.AnnualIncome,
		LoanAmount:      m.LoanAmount,
		Status:          m.Status,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain LoanApplication
func (m *LoanApplicationModel) FromDomain(l *property.LoanApplication) {
	m.ID = l.ID
	m.Owner = l.Owner
	m.FullName = l.FullName
	m.PropertyAddress = l.PropertyAddress
	m.AnnualIncome = l.AnnualIncome
	m.LoanAmount = l.LoanAmount
	m.Status = l.Status
	m.Version = l.Version
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// LoanApplicationModelFromDomain creates a new persistence model from a domain LoanApplication
func LoanApplicationModelFromDomain(l *property.LoanApplication) *LoanApplicationModel {
	m := &LoanApplicationModel{}
	m.FromDomain(l)
	return m
}
