package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/identity"
	"github.com/propflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLoan(t *testing.T) *LoanApplication {
	loan, err := NewLoanApplication(uuid.New(), "John Test", "123 Test St, Testville, Vic",
		decimal.NewFromInt(80000), decimal.NewFromInt(500000), StatusApplied)
	require.NoError(t, err)
	require.NoError(t, loan.AssignID(1))
	loan.ClearDomainEvents()
	return loan
}

func TestNewLoanApplication(t *testing.T) {
	owner := uuid.New()
	loan, err := NewLoanApplication(owner, "John Test", "123 Test St, Testville, Vic",
		decimal.NewFromInt(80000), decimal.NewFromInt(500000), StatusApplied)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), loan.ID)
	assert.Equal(t, owner, loan.Owner)
	assert.Equal(t, "John Test", loan.FullName)
	assert.Equal(t, "123 Test St, Testville, Vic", loan.PropertyAddress)
	assert.True(t, loan.AnnualIncome.Equal(decimal.NewFromInt(80000)))
	assert.True(t, loan.LoanAmount.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, StatusApplied, loan.Status)
}

func TestNewLoanApplication_Validation(t *testing.T) {
	owner := uuid.New()
	income := decimal.NewFromInt(80000)
	amount := decimal.NewFromInt(500000)

	tests := []struct {
		name            string
		owner           uuid.UUID
		fullName        string
		propertyAddress string
		annualIncome    decimal.Decimal
		loanAmount      decimal.Decimal
		status          Status
	}{
		{"empty owner", uuid.Nil, "John Test", "123 Test St", income, amount, StatusApplied},
		{"empty name", owner, "", "123 Test St", income, amount, StatusApplied},
		{"blank name", owner, "  ", "123 Test St", income, amount, StatusApplied},
		{"empty address", owner, "John Test", "", income, amount, StatusApplied},
		{"zero income", owner, "John Test", "123 Test St", decimal.Zero, amount, StatusApplied},
		{"negative income", owner, "John Test", "123 Test St", decimal.NewFromInt(-1), amount, StatusApplied},
		{"zero amount", owner, "John Test", "123 Test St", income, decimal.Zero, StatusApplied},
		{"negative amount", owner, "John Test", "123 Test St", income, decimal.NewFromInt(-500), StatusApplied},
		{"initial approved", owner, "John Test", "123 Test St", income, amount, StatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoanApplication(tt.owner, tt.fullName, tt.propertyAddress, tt.annualIncome, tt.loanAmount, tt.status)
			assertDomainErrorCode(t, err, shared.CodeValidation)
		})
	}
}

func TestLoanApplication_AssignID(t *testing.T) {
	loan, err := NewLoanApplication(uuid.New(), "John Test", "123 Test St",
		decimal.NewFromInt(80000), decimal.NewFromInt(500000), StatusApplied)
	require.NoError(t, err)

	require.NoError(t, loan.AssignID(1))
	assert.Equal(t, uint64(1), loan.ID)

	events := loan.GetDomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*LoanCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(1), created.LoanID)
	assert.Equal(t, "John Test", created.FullName)
	assert.True(t, created.LoanAmount.Equal(decimal.NewFromInt(500000)))

	assert.Error(t, loan.AssignID(2))
}

func TestLoanApplication_ChangeStatus(t *testing.T) {
	loan := createTestLoan(t)
	bank := uuid.New()

	err := loan.ChangeStatus(bank, identity.RoleBank, StatusApproved, StrictPolicy())
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, loan.Status)

	events := loan.GetDomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*LoanStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, StatusApplied, changed.PreviousStatus)
	assert.Equal(t, StatusApproved, changed.NewStatus)
	assert.Equal(t, bank, changed.AuthorizedBy)
}

func TestLoanApplication_ChangeStatus_Rejections(t *testing.T) {
	bank := uuid.New()

	tests := []struct {
		name      string
		actor     func(l *LoanApplication) uuid.UUID
		actorRole identity.Role
		newStatus Status
		code      string
	}{
		{"same status", func(*LoanApplication) uuid.UUID { return bank }, identity.RoleBank, StatusApplied, shared.CodeNoOp},
		{"self approval", func(l *LoanApplication) uuid.UUID { return l.Owner }, identity.RoleBank, StatusApproved, shared.CodeForbidden},
		{"wrong role buyer", func(*LoanApplication) uuid.UUID { return bank }, identity.RoleBuyer, StatusApproved, shared.CodeForbidden},
		{"wrong role authority", func(*LoanApplication) uuid.UUID { return bank }, identity.RoleAuthority, StatusApproved, shared.CodeForbidden},
		{"unknown status", func(*LoanApplication) uuid.UUID { return bank }, identity.RoleBank, Status("FUNDED"), shared.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := createTestLoan(t)
			err := loan.ChangeStatus(tt.actor(loan), tt.actorRole, tt.newStatus, StrictPolicy())
			assertDomainErrorCode(t, err, tt.code)
			assert.Equal(t, StatusApplied, loan.Status)
			assert.Empty(t, loan.GetDomainEvents())
		})
	}
}

func TestLoanApplication_ChangeStatus_PolicyVariants(t *testing.T) {
	bank := uuid.New()

	loan := createTestLoan(t)
	require.NoError(t, loan.ChangeStatus(bank, identity.RoleBank, StatusApproved, StrictPolicy()))
	err := loan.ChangeStatus(bank, identity.RoleBank, StatusPurchased, StrictPolicy())
	assertDomainErrorCode(t, err, shared.CodeNoOp)

	loan = createTestLoan(t)
	require.NoError(t, loan.ChangeStatus(bank, identity.RoleBank, StatusApproved, ExtendedPolicy()))
	require.NoError(t, loan.ChangeStatus(bank, identity.RoleBank, StatusPurchased, ExtendedPolicy()))
	assert.Equal(t, StatusPurchased, loan.Status)
}
