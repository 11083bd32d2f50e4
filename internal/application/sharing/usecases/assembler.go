package usecases

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/dto"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
)

// buildAuthorizationResponse assembles the external view of a grant. Missing
// referenced rows degrade to empty strings instead of failing the caller;
// the grant itself is the payload.
func buildAuthorizationResponse(
	ctx context.Context,
	principalRepo domainPrincipal.Repository,
	recipientRepo domainRecipient.Repository,
	auth *domainSharing.SharedAuthorization,
) *dto.AuthorizationResponse {
	resp := &dto.AuthorizationResponse{
		ID:              auth.SID(),
		PermissionLevel: auth.PermissionLevel().String(),
		Status:          auth.Status().String(),
		CreatedAt:       auth.CreatedAt(),
		UpdatedAt:       auth.UpdatedAt(),
		LastUsedAt:      auth.LastUsedAt(),
	}

	if owner, err := principalRepo.GetByID(ctx, auth.OwnerPrincipalID()); err == nil {
		resp.OwnerHandle = owner.Handle()
	}
	if grantee, err := principalRepo.GetByID(ctx, auth.GranteePrincipalID()); err == nil {
		resp.GranteeHandle = grantee.Handle()
	}
	if rcp, err := recipientRepo.GetByID(ctx, auth.OwnerRecipientID()); err == nil {
		resp.RecipientID = rcp.SID()
		resp.RecipientName = rcp.Name()
		resp.Platform = rcp.PlatformType().String()
	}

	return resp
}
