package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/db"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// AuthRequestModel is the GORM model for the auth_requests table
type AuthRequestModel struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement"`
	SID                  string    `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	RequesterPrincipalID uint      `gorm:"column:requester_principal_id;not null;index"`
	TargetPrincipalID    uint      `gorm:"column:target_principal_id;not null;index"`
	PlatformType         string    `gorm:"column:platform_type;type:varchar(50);not null"`
	RecipientName        string    `gorm:"column:recipient_name;type:varchar(200);not null"`
	Status               string    `gorm:"column:status;type:varchar(20);not null;index"`
	ExpiresAt            time.Time `gorm:"column:expires_at;not null;index"`
	CompletedRecipientID *uint     `gorm:"column:completed_recipient_id"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (AuthRequestModel) TableName() string {
	return "auth_requests"
}

// AuthRequestRepository implements delegation.Repository
type AuthRequestRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAuthRequestRepository creates a new AuthRequestRepository
func NewAuthRequestRepository(gdb *gorm.DB, logger logger.Interface) *AuthRequestRepository {
	return &AuthRequestRepository{db: gdb, logger: logger}
}

func (r *AuthRequestRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

// Create persists a new auth request
func (r *AuthRequestRepository) Create(ctx context.Context, q *delegation.AuthRequest) error {
	model := r.toModel(q)
	if err := r.conn(ctx).Create(model).Error; err != nil {
		return err
	}
	q.SetID(model.ID)
	return nil
}

// GetByID retrieves an auth request by ID
func (r *AuthRequestRepository) GetByID(ctx context.Context, id uint) (*delegation.AuthRequest, error) {
	var model AuthRequestModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, delegation.ErrRequestNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// GetBySID retrieves an auth request by SID
func (r *AuthRequestRepository) GetBySID(ctx context.Context, sid string) (*delegation.AuthRequest, error) {
	var model AuthRequestModel
	if err := r.conn(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, delegation.ErrRequestNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// ListByRequester retrieves auth requests created by a principal
func (r *AuthRequestRepository) ListByRequester(ctx context.Context, requesterPrincipalID uint) ([]*delegation.AuthRequest, error) {
	return r.list(ctx, "requester_principal_id = ?", requesterPrincipalID)
}

// ListByTarget retrieves auth requests addressed to a principal
func (r *AuthRequestRepository) ListByTarget(ctx context.Context, targetPrincipalID uint) ([]*delegation.AuthRequest, error) {
	return r.list(ctx, "target_principal_id = ?", targetPrincipalID)
}

func (r *AuthRequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]*delegation.AuthRequest, error) {
	var models []AuthRequestModel
	if err := r.conn(ctx).Where(query, args...).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	requests := make([]*delegation.AuthRequest, 0, len(models))
	for i := range models {
		requests = append(requests, r.toDomain(&models[i]))
	}
	return requests, nil
}

// CompleteIf atomically flips pending -> completed, guarded on the current
// status so a racing sweep and a racing complete cannot both win.
func (r *AuthRequestRepository) CompleteIf(ctx context.Context, id uint, completedRecipientID uint) error {
	result := r.conn(ctx).Model(&AuthRequestModel{}).
		Where("id = ? AND status = ?", id, delegation.StatusPending.String()).
		Updates(map[string]interface{}{
			"status":                 delegation.StatusCompleted.String(),
			"completed_recipient_id": completedRecipientID,
			"updated_at":             biztime.NowUTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.guardFailure(ctx, id)
	}
	return nil
}

// UpdateStatusIf atomically flips the status guarded by the expected current
// status
func (r *AuthRequestRepository) UpdateStatusIf(ctx context.Context, id uint, from, to delegation.Status) error {
	result := r.conn(ctx).Model(&AuthRequestModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(map[string]interface{}{
			"status":     to.String(),
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.guardFailure(ctx, id)
	}
	return nil
}

// guardFailure disambiguates a failed conditional update between a missing
// row and a row that already moved.
func (r *AuthRequestRepository) guardFailure(ctx context.Context, id uint) error {
	var count int64
	if err := r.conn(ctx).Model(&AuthRequestModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return delegation.ErrRequestNotFound
	}
	return delegation.ErrInvalidStateTransition
}

// SweepExpired flips every pending row past its TTL to expired
func (r *AuthRequestRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.conn(ctx).Model(&AuthRequestModel{}).
		Where("status = ? AND expires_at < ?", delegation.StatusPending.String(), now.UTC()).
		Updates(map[string]interface{}{
			"status":     delegation.StatusExpired.String(),
			"updated_at": now.UTC(),
		})
	return result.RowsAffected, result.Error
}

// CancelPendingByPrincipal cancels all pending requests involving a principal
func (r *AuthRequestRepository) CancelPendingByPrincipal(ctx context.Context, principalID uint) (int64, error) {
	result := r.conn(ctx).Model(&AuthRequestModel{}).
		Where("status = ? AND (requester_principal_id = ? OR target_principal_id = ?)",
			delegation.StatusPending.String(), principalID, principalID).
		Updates(map[string]interface{}{
			"status":     delegation.StatusCancelled.String(),
			"updated_at": biztime.NowUTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *AuthRequestRepository) toModel(q *delegation.AuthRequest) *AuthRequestModel {
	return &AuthRequestModel{
		ID:                   q.ID(),
		SID:                  q.SID(),
		RequesterPrincipalID: q.RequesterPrincipalID(),
		TargetPrincipalID:    q.TargetPrincipalID(),
		PlatformType:         q.PlatformType().String(),
		RecipientName:        q.RecipientName(),
		Status:               q.Status().String(),
		ExpiresAt:            q.ExpiresAt(),
		CompletedRecipientID: q.CompletedRecipientID(),
		CreatedAt:            q.CreatedAt(),
		UpdatedAt:            q.UpdatedAt(),
	}
}

func (r *AuthRequestRepository) toDomain(model *AuthRequestModel) *delegation.AuthRequest {
	return delegation.ReconstructAuthRequest(
		model.ID,
		model.SID,
		model.RequesterPrincipalID,
		model.TargetPrincipalID,
		recipient.PlatformType(model.PlatformType),
		model.RecipientName,
		delegation.Status(model.Status),
		model.ExpiresAt,
		model.CompletedRecipientID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
