package person

import (
	"context"
)

// Service is what the HTTP handlers talk to. Raw path values go in,
// the service parses ids and applies the fixed update values.
type Service interface {
	// Create validates and stores one person
	// Errors: ErrValidation
	Create(ctx context.Context, req *CreatePersonRequest) (*Person, error)

	// CreateMany validates the whole batch before writing anything
	// Errors: ErrValidation (details keyed by batch index)
	CreateMany(ctx context.Context, reqs []CreatePersonRequest) ([]*Person, error)

	// GetByID - Errors: ErrInvalidID, ErrPersonNotFound
	GetByID(ctx context.Context, rawID string) (*Person, error)

	// GetByFavoriteFood - Errors: ErrPersonNotFound
	GetByFavoriteFood(ctx context.Context, food string) (*Person, error)

	// AddDefaultFood appends DefaultAddedFood to the person's favorite foods
	// Errors: ErrInvalidID, ErrPersonNotFound
	AddDefaultFood(ctx context.Context, rawID string) (*Person, error)

	// SetDefaultAgeByName sets DefaultAgeOnUpdate on the first person named name
	// Errors: ErrPersonNotFound
	SetDefaultAgeByName(ctx context.Context, name string) (*Person, error)

	// Delete - Errors: ErrInvalidID, ErrPersonNotFound
	Delete(ctx context.Context, rawID string) (*Person, error)

	// DeleteByName returns how many people were removed
	DeleteByName(ctx context.Context, name string) (int64, error)
}
