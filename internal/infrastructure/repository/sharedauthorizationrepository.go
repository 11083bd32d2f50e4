package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/db"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// SharedAuthorizationModel is the GORM model for the shared_authorizations
// table.
//
// Active mirrors the status: true for pending/accepted rows, NULL for
// terminal ones. It exists only so the composite unique index enforces "at
// most one active grant per triple" while allowing any number of terminal
// rows (NULLs never collide in a unique index).
type SharedAuthorizationModel struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement"`
	SID                string     `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	OwnerPrincipalID   uint       `gorm:"column:owner_principal_id;not null;index;uniqueIndex:idx_active_grant_triple"`
	GranteePrincipalID uint       `gorm:"column:grantee_principal_id;not null;index;uniqueIndex:idx_active_grant_triple"`
	OwnerRecipientID   uint       `gorm:"column:owner_recipient_id;not null;index;uniqueIndex:idx_active_grant_triple"`
	PermissionLevel    string     `gorm:"column:permission_level;type:varchar(20);not null"`
	Status             string     `gorm:"column:status;type:varchar(20);not null"`
	Active             *bool      `gorm:"column:active;uniqueIndex:idx_active_grant_triple"`
	LastUsedAt         *time.Time `gorm:"column:last_used_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (SharedAuthorizationModel) TableName() string {
	return "shared_authorizations"
}

// activeFlag maps a status to the nullable uniqueness marker.
func activeFlag(status sharing.Status) *bool {
	if status.IsActive() {
		v := true
		return &v
	}
	return nil
}

// SharedAuthorizationRepository implements sharing.Repository
type SharedAuthorizationRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSharedAuthorizationRepository creates a new SharedAuthorizationRepository
func NewSharedAuthorizationRepository(gdb *gorm.DB, logger logger.Interface) *SharedAuthorizationRepository {
	return &SharedAuthorizationRepository{db: gdb, logger: logger}
}

func (r *SharedAuthorizationRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

// Create persists a pending grant. Uniqueness races surface as
// sharing.ErrDuplicateAuthorization via the idx_active_grant_triple index,
// not as an application-level check.
func (r *SharedAuthorizationRepository) Create(ctx context.Context, a *sharing.SharedAuthorization) error {
	model := r.toModel(a)
	if err := r.conn(ctx).Create(model).Error; err != nil {
		if appErrors.IsDuplicateError(err) {
			return sharing.ErrDuplicateAuthorization
		}
		return err
	}
	a.SetID(model.ID)
	return nil
}

// GetByID retrieves an authorization by ID
func (r *SharedAuthorizationRepository) GetByID(ctx context.Context, id uint) (*sharing.SharedAuthorization, error) {
	var model SharedAuthorizationModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sharing.ErrAuthorizationNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// GetBySID retrieves an authorization by SID
func (r *SharedAuthorizationRepository) GetBySID(ctx context.Context, sid string) (*sharing.SharedAuthorization, error) {
	var model SharedAuthorizationModel
	if err := r.conn(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sharing.ErrAuthorizationNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// ListByOwner retrieves authorizations granted by a principal
func (r *SharedAuthorizationRepository) ListByOwner(ctx context.Context, ownerPrincipalID uint) ([]*sharing.SharedAuthorization, error) {
	return r.list(ctx, "owner_principal_id = ?", ownerPrincipalID)
}

// ListByGrantee retrieves authorizations granted to a principal
func (r *SharedAuthorizationRepository) ListByGrantee(ctx context.Context, granteePrincipalID uint) ([]*sharing.SharedAuthorization, error) {
	return r.list(ctx, "grantee_principal_id = ?", granteePrincipalID)
}

// ListByOwnerRecipientID retrieves authorizations referencing an owner recipient
func (r *SharedAuthorizationRepository) ListByOwnerRecipientID(ctx context.Context, recipientID uint) ([]*sharing.SharedAuthorization, error) {
	return r.list(ctx, "owner_recipient_id = ?", recipientID)
}

// ListActiveByPrincipal retrieves active grants where the principal is owner or grantee
func (r *SharedAuthorizationRepository) ListActiveByPrincipal(ctx context.Context, principalID uint) ([]*sharing.SharedAuthorization, error) {
	return r.list(ctx, "active = ? AND (owner_principal_id = ? OR grantee_principal_id = ?)", true, principalID, principalID)
}

func (r *SharedAuthorizationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*sharing.SharedAuthorization, error) {
	var models []SharedAuthorizationModel
	if err := r.conn(ctx).Where(query, args...).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	auths := make([]*sharing.SharedAuthorization, 0, len(models))
	for i := range models {
		auths = append(auths, r.toDomain(&models[i]))
	}
	return auths, nil
}

// UpdateStatusIf performs the atomic conditional status update. The
// expected-status guard makes concurrent transitions race safely: exactly
// one caller wins, the rest get ErrInvalidStateTransition.
func (r *SharedAuthorizationRepository) UpdateStatusIf(ctx context.Context, id uint, from []sharing.Status, to sharing.Status) error {
	fromStrs := make([]string, 0, len(from))
	for _, s := range from {
		fromStrs = append(fromStrs, s.String())
	}

	result := r.conn(ctx).Model(&SharedAuthorizationModel{}).
		Where("id = ? AND status IN ?", id, fromStrs).
		Updates(map[string]interface{}{
			"status":     to.String(),
			"active":     activeFlag(to),
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Guard failed: either the row is gone or it already moved.
		var count int64
		if err := r.conn(ctx).Model(&SharedAuthorizationModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return sharing.ErrAuthorizationNotFound
		}
		return sharing.ErrInvalidStateTransition
	}
	return nil
}

// TouchLastUsed updates last_used_at only
func (r *SharedAuthorizationRepository) TouchLastUsed(ctx context.Context, id uint) error {
	return r.conn(ctx).Model(&SharedAuthorizationModel{}).
		Where("id = ?", id).
		Update("last_used_at", biztime.NowUTC()).Error
}

// DeleteByOwnerRecipientID removes all grants referencing an owner recipient
func (r *SharedAuthorizationRepository) DeleteByOwnerRecipientID(ctx context.Context, recipientID uint) error {
	return r.conn(ctx).
		Where("owner_recipient_id = ?", recipientID).
		Delete(&SharedAuthorizationModel{}).Error
}

func (r *SharedAuthorizationRepository) toModel(a *sharing.SharedAuthorization) *SharedAuthorizationModel {
	return &SharedAuthorizationModel{
		ID:                 a.ID(),
		SID:                a.SID(),
		OwnerPrincipalID:   a.OwnerPrincipalID(),
		GranteePrincipalID: a.GranteePrincipalID(),
		OwnerRecipientID:   a.OwnerRecipientID(),
		PermissionLevel:    a.PermissionLevel().String(),
		Status:             a.Status().String(),
		Active:             activeFlag(a.Status()),
		LastUsedAt:         a.LastUsedAt(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
}

func (r *SharedAuthorizationRepository) toDomain(model *SharedAuthorizationModel) *sharing.SharedAuthorization {
	return sharing.ReconstructSharedAuthorization(
		model.ID,
		model.SID,
		model.OwnerPrincipalID,
		model.GranteePrincipalID,
		model.OwnerRecipientID,
		sharing.PermissionLevel(model.PermissionLevel),
		sharing.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
		model.LastUsedAt,
	)
}
