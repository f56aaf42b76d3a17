package users

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/google/uuid"
)

// ProfileAccessor reads and writes the role-specific profile for a user.
// Resolving the accessor once at the call boundary replaces per-query
// switching on the role string.
type ProfileAccessor interface {
	// Fetch returns the role profile as a JSON-serializable value.
	Fetch(ctx context.Context, repo Repository, userID uuid.UUID) (any, error)
	// Apply writes a partial update onto the role profile.
	Apply(ctx context.Context, repo Repository, userID uuid.UUID, updates map[string]any) error
}

type agentAccessor struct{}

func (agentAccessor) Fetch(ctx context.Context, repo Repository, userID uuid.UUID) (any, error) {
	return repo.FindAgentProfileByUser(ctx, userID)
}

func (agentAccessor) Apply(ctx context.Context, repo Repository, userID uuid.UUID, updates map[string]any) error {
	return repo.UpdateAgentProfile(ctx, userID, updates)
}

type ppoAccessor struct{}

func (ppoAccessor) Fetch(ctx context.Context, repo Repository, userID uuid.UUID) (any, error) {
	return repo.FindPpoProfileByUser(ctx, userID)
}

func (ppoAccessor) Apply(ctx context.Context, repo Repository, userID uuid.UUID, updates map[string]any) error {
	return repo.UpdatePpoProfile(ctx, userID, updates)
}

type clientAccessor struct{}

func (clientAccessor) Fetch(ctx context.Context, repo Repository, userID uuid.UUID) (any, error) {
	return repo.FindClientProfileByUser(ctx, userID)
}

func (clientAccessor) Apply(ctx context.Context, repo Repository, userID uuid.UUID, updates map[string]any) error {
	return repo.UpdateClientProfile(ctx, userID, updates)
}

var accessorsByRole = map[enums.UserRole]ProfileAccessor{
	enums.UserRoleAgent:  agentAccessor{},
	enums.UserRolePPO:    ppoAccessor{},
	enums.UserRoleClient: clientAccessor{},
}

// AccessorForRole resolves the profile accessor for a role. Admin users carry
// no role profile.
func AccessorForRole(role enums.UserRole) (ProfileAccessor, error) {
	accessor, ok := accessorsByRole[role]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role has no profile")
	}
	return accessor, nil
}
