package property

import (
	"strings"

	"github.com/propflow/backend/internal/domain/shared"
)

// Status represents the lifecycle stage of a permit or loan application
type Status string

const (
	StatusApplied   Status = "APPLIED"
	StatusApproved  Status = "APPROVED"
	StatusDenied    Status = "DENIED"
	StatusPurchased Status = "PURCHASED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusApproved, StatusDenied, StatusPurchased:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a status name into a Status
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", shared.NewValidationError("Unknown status: " + raw)
	}
	return status, nil
}

// PolicyName identifies a transition policy variant
type PolicyName string

const (
	// PolicyStrict treats every advanced status as terminal
	PolicyStrict PolicyName = "strict"
	// PolicyExtended additionally allows an approved application to be purchased
	PolicyExtended PolicyName = "extended"
)

// TransitionPolicy is an explicit transition table: which target statuses are
// reachable from each status. APPLIED is set only at creation and appears in
// no target list, so reversion is impossible under every policy.
type TransitionPolicy struct {
	name    PolicyName
	allowed map[Status][]Status
}

// StrictPolicy returns the policy where APPROVED, DENIED and PURCHASED are terminal
func StrictPolicy() TransitionPolicy {
	return TransitionPolicy{
		name: PolicyStrict,
		allowed: map[Status][]Status{
			StatusApplied: {StatusApproved, StatusDenied, StatusPurchased},
		},
	}
}

// ExtendedPolicy returns the policy that also allows APPROVED -> PURCHASED
func ExtendedPolicy() TransitionPolicy {
	return TransitionPolicy{
		name: PolicyExtended,
		allowed: map[Status][]Status{
			StatusApplied:  {StatusApproved, StatusDenied, StatusPurchased},
			StatusApproved: {StatusPurchased},
		},
	}
}

// ParsePolicy resolves a policy by name
func ParsePolicy(raw string) (TransitionPolicy, error) {
	switch PolicyName(strings.ToLower(strings.TrimSpace(raw))) {
	case PolicyStrict, "":
		return StrictPolicy(), nil
	case PolicyExtended:
		return ExtendedPolicy(), nil
	}
	return TransitionPolicy{}, shared.NewValidationError("Unknown transition policy: " + raw)
}

// Name returns the policy name
func (p TransitionPolicy) Name() PolicyName {
	return p.name
}

// CanTransition checks if the policy table allows moving from one status to another
func (p TransitionPolicy) CanTransition(from, to Status) bool {
	for _, target := range p.allowed[from] {
		if target == to {
			return true
		}
	}
	return false
}
