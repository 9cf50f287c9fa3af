package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/identity"
	"github.com/propflow/backend/internal/domain/property"
	"github.com/propflow/backend/internal/domain/shared"
)

// PermitService is the transition engine for permit applications. Every
// mutation is all-or-nothing: the repository commits the record change and
// the event log entries in one transaction, or neither.
type PermitService struct {
	permitRepo property.PermitRepository
	roles      identity.Resolver
	policy     property.TransitionPolicy
}

// NewPermitService creates a new PermitService
func NewPermitService(permitRepo property.PermitRepository, roles identity.Resolver, policy property.TransitionPolicy) *PermitService {
	return &PermitService{
		permitRepo: permitRepo,
		roles:      roles,
		policy:     policy,
	}
}

// Create creates a new permit application owned by the caller.
// Shape and content checks run before authorization so malformed requests
// fail with a validation error regardless of the caller's role.
func (s *PermitService) Create(ctx context.Context, caller uuid.UUID, req CreatePermitRequest) (*PermitResponse, error) {
	status, err := property.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	permit, err := property.NewPermitApplication(caller, req.PropertyAddress, req.Document, req.LicenceNumber, status)
	if err != nil {
		return nil, err
	}

	if role := s.roles.Resolve(caller); role != identity.RoleSeller {
		return nil, shared.NewAuthorizationError("Only sellers may create permit applications")
	}

	if err := s.permitRepo.Create(ctx, permit); err != nil {
		return nil, err
	}

	response := ToPermitResponse(permit)
	return &response, nil
}

// UpdateStatus transitions a permit application to a new status on behalf of
// the caller. Rejections leave the store and event log untouched.
func (s *PermitService) UpdateStatus(ctx context.Context, caller uuid.UUID, id uint64, rawStatus string) (*PermitResponse, error) {
	newStatus, err := property.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	permit, err := s.permitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permit.ChangeStatus(caller, s.roles.Resolve(caller), newStatus, s.policy); err != nil {
		return nil, err
	}

	if err := s.permitRepo.Save(ctx, permit); err != nil {
		return nil, err
	}

	response := ToPermitResponse(permit)
	return &response, nil
}

// Get retrieves a permit application by ID
func (s *PermitService) Get(ctx context.Context, id uint64) (*PermitResponse, error) {
	permit, err := s.permitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPermitResponse(permit)
	return &response, nil
}

// Count returns the permit counter, which equals the highest valid permit ID
func (s *PermitService) Count(ctx context.Context) (uint64, error) {
	return s.permitRepo.Count(ctx)
}

// List retrieves permit applications in ID order with optional status filtering
func (s *PermitService) List(ctx context.Context, filter ListFilter) ([]PermitResponse, int64, error) {
	permits, total, err := s.permitRepo.FindAll(ctx, filter.toDomainFilter())
	if err != nil {
		return nil, 0, err
	}
	return ToPermitResponses(permits), total, nil
}
