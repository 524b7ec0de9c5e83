package person

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the Record Store client for the people collection.
// Implementations: in-memory, Postgres (jsonb) and SQLite (json1),
// plus a Redis read-through decorator.
//
// Lookups that match nothing return ErrPersonNotFound, never (nil, nil).
type Repository interface {
	// ========================================
	// WRITES
	// ========================================

	// InsertOne assigns an id when missing, defaults favoriteFoods to empty
	// and persists the person.
	// Errors: ErrValidation if name is empty
	InsertOne(ctx context.Context, p *Person) (*Person, error)

	// InsertMany persists every person or none of them.
	// Errors: ErrValidation if any name is empty (nothing is written)
	InsertMany(ctx context.Context, people []*Person) ([]*Person, error)

	// AppendFood appends food to favoriteFoods as one atomic write.
	// Errors: ErrPersonNotFound
	AppendFood(ctx context.Context, id uuid.UUID, food string) (*Person, error)

	// UpdateAgeByName sets age on the first person (insertion order) named name.
	// Errors: ErrPersonNotFound
	UpdateAgeByName(ctx context.Context, name string, age int) (*Person, error)

	// DeleteByID removes the person and returns what was removed.
	// Errors: ErrPersonNotFound
	DeleteByID(ctx context.Context, id uuid.UUID) (*Person, error)

	// DeleteAllByName removes every person named name. Zero is a valid count.
	DeleteAllByName(ctx context.Context, name string) (int64, error)

	// ========================================
	// READS
	// ========================================

	// FindByID - Errors: ErrPersonNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Person, error)

	// FindOneByFood returns the first person (insertion order) whose
	// favoriteFoods contains food.
	// Errors: ErrPersonNotFound
	FindOneByFood(ctx context.Context, food string) (*Person, error)

	// ========================================
	// LIFECYCLE
	// ========================================

	Ping(ctx context.Context) error
	Close() error
}
