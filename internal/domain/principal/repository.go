package principal

import "context"

// Repository defines the persistence interface for principals.
type Repository interface {
	Create(ctx context.Context, p *Principal) error
	GetByID(ctx context.Context, id uint) (*Principal, error)
	GetByHandle(ctx context.Context, handle string) (*Principal, error)
	Update(ctx context.Context, p *Principal) error
	Delete(ctx context.Context, id uint) error
}
