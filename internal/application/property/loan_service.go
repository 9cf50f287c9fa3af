package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/identity"
	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/domain/shared"
)

// LoanService is the transition engine for loan applications, symmetric to
// PermitService with buyer as creator and bank as approver.
type LoanService struct {
	loanRepo property.LoanRepository
	roles    identity.Resolver
	policy   property.TransitionPolicy
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo property.LoanRepository, roles identity.Resolver, policy property.TransitionPolicy) *LoanService {
	return &LoanService{
		loanRepo: loanRepo,
		roles:    roles,
		policy:   policy,
	}
}

// Create creates a new loan application owned by the caller
func (s *LoanService) Create(ctx context.Context, caller uuid.UUID, req CreateLoanRequest) (*LoanResponse, error) {
	status, err := property.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	loan, err := property.NewLoanApplication(caller, req.FullName, req.PropertyAddress, req.AnnualIncome, req.LoanAmount, status)
	if err != nil {
		return nil, err
	}

	if role := s.roles.Resolve(caller); role != identity.RoleBuyer {
		return nil, shared.NewAuthorizationError("Only buyers may create loan applications")
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	response := ToLoanResponse(loan)
	return &response, nil
}

// UpdateStatus transitions a loan application to a new status on behalf of the caller
func (s *LoanService) UpdateStatus(ctx context.Context, caller uuid.UUID, id uint64, rawStatus string) (*LoanResponse, error) {
	newStatus, err := property.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := loan.ChangeStatus(caller, s.roles.Resolve(caller), newStatus, s.policy); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}

	response := ToLoanResponse(loan)
	return &response, nil
}

// Get retrieves a loan application by ID
func (s *LoanService) Get(ctx context.Context, id uint64) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLoanResponse(loan)
	return &response, nil
}

// Count returns the loan counter, which equals the highest valid loan ID
func (s *LoanService) Count(ctx context.Context) (uint64, error) {
	return s.loanRepo.Count(ctx)
}

// List retrieves loan applications in ID order with optional status filtering
func (s *LoanService) List(ctx context.Context, filter ListFilter) ([]LoanResponse, int64, error) {
	loans, total, err := s.loanRepo.FindAll(ctx, filter.toDomainFilter())
	if err != nil {
		return nil, 0, err
	}
	return ToLoanResponses(loans), total, nil
}
