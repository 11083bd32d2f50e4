package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/db"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// RecipientModel is the GORM model for the recipients table
type RecipientModel struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement"`
	SID                   string    `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	OwnerPrincipalID      uint      `gorm:"column:owner_principal_id;not null;index"`
	Name                  string    `gorm:"column:name;type:varchar(200);not null"`
	PlatformType          string    `gorm:"column:platform_type;type:varchar(50);not null"`
	Credential            string    `gorm:"column:credential;type:text"`
	PlatformConfig        string    `gorm:"column:platform_config;type:text"`
	IsPersonal            bool      `gorm:"column:is_personal;not null"`
	Enabled               bool      `gorm:"column:enabled;not null;default:true"`
	SharedAuthorizationID *uint     `gorm:"column:shared_authorization_id;index"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (RecipientModel) TableName() string {
	return "recipients"
}

// RecipientRepository implements recipient.Repository
type RecipientRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewRecipientRepository creates a new RecipientRepository
func NewRecipientRepository(gdb *gorm.DB, logger logger.Interface) *RecipientRepository {
	return &RecipientRepository{db: gdb, logger: logger}
}

// conn returns the transaction from context if one is active.
func (r *RecipientRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

// Create persists a new recipient
func (r *RecipientRepository) Create(ctx context.Context, rec *recipient.Recipient) error {
	model := r.toModel(rec)
	if err := r.conn(ctx).Create(model).Error; err != nil {
		return err
	}
	rec.SetID(model.ID)
	return nil
}

// GetByID retrieves a recipient by ID
func (r *RecipientRepository) GetByID(ctx context.Context, id uint) (*recipient.Recipient, error) {
	var model RecipientModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipient.ErrRecipientNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// GetBySID retrieves a recipient by SID
func (r *RecipientRepository) GetBySID(ctx context.Context, sid string) (*recipient.Recipient, error) {
	var model RecipientModel
	if err := r.conn(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipient.ErrRecipientNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// ListByOwner retrieves all recipients owned by a principal
func (r *RecipientRepository) ListByOwner(ctx context.Context, ownerPrincipalID uint) ([]*recipient.Recipient, error) {
	var models []RecipientModel
	err := r.conn(ctx).
		Where("owner_principal_id = ?", ownerPrincipalID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	recipients := make([]*recipient.Recipient, 0, len(models))
	for i := range models {
		recipients = append(recipients, r.toDomain(&models[i]))
	}
	return recipients, nil
}

// Update persists recipient changes
func (r *RecipientRepository) Update(ctx context.Context, rec *recipient.Recipient) error {
	return r.conn(ctx).Save(r.toModel(rec)).Error
}

// UpdateCredential writes only the credential column
func (r *RecipientRepository) UpdateCredential(ctx context.Context, id uint, credential string) error {
	result := r.conn(ctx).Model(&RecipientModel{}).
		Where("id = ? AND is_personal = ?", id, true).
		Updates(map[string]interface{}{
			"credential": credential,
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipient.ErrRecipientNotFound
	}
	return nil
}

// Delete removes a recipient by ID
func (r *RecipientRepository) Delete(ctx context.Context, id uint) error {
	return r.conn(ctx).Delete(&RecipientModel{}, id).Error
}

// FindBySharedAuthorizationID returns shared recipients derived from an authorization
func (r *RecipientRepository) FindBySharedAuthorizationID(ctx context.Context, authorizationID uint) ([]*recipient.Recipient, error) {
	var models []RecipientModel
	err := r.conn(ctx).
		Where("shared_authorization_id = ?", authorizationID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	recipients := make([]*recipient.Recipient, 0, len(models))
	for i := range models {
		recipients = append(recipients, r.toDomain(&models[i]))
	}
	return recipients, nil
}

// DeleteBySharedAuthorizationID removes all shared recipients derived from an authorization
func (r *RecipientRepository) DeleteBySharedAuthorizationID(ctx context.Context, authorizationID uint) error {
	return r.conn(ctx).
		Where("shared_authorization_id = ?", authorizationID).
		Delete(&RecipientModel{}).Error
}

func (r *RecipientRepository) toModel(rec *recipient.Recipient) *RecipientModel {
	return &RecipientModel{
		ID:                    rec.ID(),
		SID:                   rec.SID(),
		OwnerPrincipalID:      rec.OwnerPrincipalID(),
		Name:                  rec.Name(),
		PlatformType:          rec.PlatformType().String(),
		Credential:            rec.Credential(),
		PlatformConfig:        rec.PlatformConfig(),
		IsPersonal:            rec.IsPersonal(),
		Enabled:               rec.Enabled(),
		SharedAuthorizationID: rec.SharedAuthorizationID(),
		CreatedAt:             rec.CreatedAt(),
		UpdatedAt:             rec.UpdatedAt(),
	}
}

func (r *RecipientRepository) toDomain(model *RecipientModel) *recipient.Recipient {
	return recipient.ReconstructRecipient(
		model.ID,
		model.SID,
		model.OwnerPrincipalID,
		model.Name,
		recipient.PlatformType(model.PlatformType),
		model.Credential,
		model.PlatformConfig,
		model.IsPersonal,
		model.Enabled,
		model.SharedAuthorizationID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
