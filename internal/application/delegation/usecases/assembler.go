package usecases

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/dto"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
)

// buildAuthRequestResponse assembles the external view of an auth request.
// The recipient repository may be nil when the caller knows no completion
// has happened yet.
func buildAuthRequestResponse(
	ctx context.Context,
	principalRepo domainPrincipal.Repository,
	recipientRepo domainRecipient.Repository,
	req *domainDelegation.AuthRequest,
) *dto.AuthRequestResponse {
	resp := &dto.AuthRequestResponse{
		ID:            req.SID(),
		Platform:      req.PlatformType().String(),
		RecipientName: req.RecipientName(),
		Status:        req.Status().String(),
		ExpiresAt:     req.ExpiresAt(),
		CreatedAt:     req.CreatedAt(),
	}

	if requester, err := principalRepo.GetByID(ctx, req.RequesterPrincipalID()); err == nil {
		resp.RequesterHandle = requester.Handle()
	}
	if target, err := principalRepo.GetByID(ctx, req.TargetPrincipalID()); err == nil {
		resp.TargetHandle = target.Handle()
	}
	if recipientRepo != nil && req.CompletedRecipientID() != nil {
		if rcp, err := recipientRepo.GetByID(ctx, *req.CompletedRecipientID()); err == nil {
			resp.CompletedRecipientID = rcp.SID()
		}
	}

	return resp
}
