package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/propflow/backend/internal/domain/shared"
)

// Role represents a fixed category of caller identity with exclusive rights
// to specific workflow operations. Roles are assigned out-of-band at system
// configuration; they are never self-service.
type Role string

const (
	RoleSeller    Role = "seller"    // creates permit applications
	RoleAuthority Role = "authority" // approves permit applications
	RoleBuyer     Role = "buyer"     // creates loan applications
	RoleBank      Role = "bank"      // approves loan applications
	RoleOther     Role = "other"     // authorized for nothing
)

// IsValid checks if the role is a valid assignable Role.
// RoleOther is the fail-closed default and cannot be assigned explicitly.
func (r Role) IsValid() bool {
	switch r {
	case RoleSeller, RoleAuthority, RoleBuyer, RoleBank:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a role name into a Role
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return RoleOther, shared.NewValidationError("Unknown role: " + s)
	}
	return role, nil
}

// Resolver maps a caller identity to its role
type Resolver interface {
	// Resolve returns the role assigned to the identity. Unrecognized
	// identities resolve to RoleOther, which is authorized for nothing.
	Resolve(identity uuid.UUID) Role
}

// RoleTable is an externally supplied role-assignment table. It is a pure
// lookup: no mutation after construction, and it fails closed.
type RoleTable struct {
	assignments map[uuid.UUID]Role
}

// NewRoleTable builds a role table from per-role identity lists.
// An identity may hold at most one role.
func NewRoleTable(assignments map[Role][]uuid.UUID) (*RoleTable, error) {
	table := make(map[uuid.UUID]Role)
	for role, identities := range assignments {
		if !role.IsValid() {
			return nil, shared.NewValidationError("Unknown role: " + role.String())
		}
		for _, id := range identities {
			if id == uuid.Nil {
				return nil, shared.NewValidationError("Role assignment requires a non-nil identity")
			}
			if existing, ok := table[id]; ok && existing != role {
				return nil, shared.NewValidationError("Identity " + id.String() + " is assigned to more than one role")
			}
			table[id] = role
		}
	}
	return &RoleTable{assignments: table}, nil
}

// NewRoleTableFromStrings builds a role table from string role names and
// string identity UUIDs, as loaded from configuration.
func NewRoleTableFromStrings(assignments map[string][]string) (*RoleTable, error) {
	parsed := make(map[Role][]uuid.UUID, len(assignments))
	for name, identities := range assignments {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		for _, raw := range identities {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return nil, shared.NewValidationError("Invalid identity in role assignment: " + raw)
			}
			parsed[role] = append(parsed[role], id)
		}
	}
	return NewRoleTable(parsed)
}

// Resolve returns the role assigned to the identity, or RoleOther when the
// identity is unrecognized
func (t *RoleTable) Resolve(identity uuid.UUID) Role {
	if role, ok := t.assignments[identity]; ok {
		return role
	}
	return RoleOther
}

// Size returns the number of assigned identities
func (t *RoleTable) Size() int {
	return len(t.assignments)
}

var _ Resolver = (*RoleTable)(nil)
