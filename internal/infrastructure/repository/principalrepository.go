package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// PrincipalModel is the GORM model for the principals table
type PrincipalModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	Handle         string    `gorm:"column:handle;type:varchar(100);not null;uniqueIndex"`
	DisplayName    string    `gorm:"column:display_name;type:varchar(200)"`
	Email          string    `gorm:"column:email;type:varchar(255)"`
	TelegramChatID int64     `gorm:"column:telegram_chat_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (PrincipalModel) TableName() string {
	return "principals"
}

// PrincipalRepository implements principal.Repository
type PrincipalRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPrincipalRepository creates a new PrincipalRepository
func NewPrincipalRepository(db *gorm.DB, logger logger.Interface) *PrincipalRepository {
	return &PrincipalRepository{db: db, logger: logger}
}

// Create persists a new principal
func (r *PrincipalRepository) Create(ctx context.Context, p *principal.Principal) error {
	model := r.toModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if appErrors.IsDuplicateError(err) {
			return principal.ErrHandleTaken
		}
		return err
	}
	p.SetID(model.ID)
	return nil
}

// GetByID retrieves a principal by internal ID
func (r *PrincipalRepository) GetByID(ctx context.Context, id uint) (*principal.Principal, error) {
	var model PrincipalModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// GetByHandle retrieves a principal by its normalized external handle
func (r *PrincipalRepository) GetByHandle(ctx context.Context, handle string) (*principal.Principal, error) {
	var model PrincipalModel
	err := r.db.WithContext(ctx).Where("handle = ?", principal.NormalizeHandle(handle)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrPrincipalNotFound
		}
		return nil, err
	}
	return r.toDomain(&model), nil
}

// Update persists principal changes
func (r *PrincipalRepository) Update(ctx context.Context, p *principal.Principal) error {
	return r.db.WithContext(ctx).Save(r.toModel(p)).Error
}

// Delete removes a principal by ID
func (r *PrincipalRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&PrincipalModel{}, id).Error
}

func (r *PrincipalRepository) toModel(p *principal.Principal) *PrincipalModel {
	return &PrincipalModel{
		ID:             p.ID(),
		Handle:         p.Handle(),
		DisplayName:    p.DisplayName(),
		Email:          p.Email(),
		TelegramChatID: p.TelegramChatID(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func (r *PrincipalRepository) toDomain(model *PrincipalModel) *principal.Principal {
	return principal.ReconstructPrincipal(
		model.ID,
		model.Handle,
		model.DisplayName,
		model.Email,
		model.TelegramChatID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
