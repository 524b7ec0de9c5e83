package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"people-service/internal/domains/person"
)

// memoryRepository keeps people in insertion order. Data is lost on restart.
// Safe for concurrent use; every read returns a copy.
type memoryRepository struct {
	mu     sync.RWMutex
	people []*person.Person
	index  map[uuid.UUID]int
}

// NewMemoryRepository creates an empty in-process store
func NewMemoryRepository() person.Repository {
	return &memoryRepository{
		index: make(map[uuid.UUID]int),
	}
}

func (r *memoryRepository) InsertOne(ctx context.Context, p *person.Person) (*person.Person, error) {
	prepared, err := prepareInsert(p)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[prepared.ID]; exists {
		return nil, person.NewValidationError(errDuplicateID(prepared.ID))
	}
	r.append(prepared)

	return prepared.Clone(), nil
}

func (r *memoryRepository) InsertMany(ctx context.Context, people []*person.Person) ([]*person.Person, error) {
	prepared, err := prepareBatch(people)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Check every id before appending anything so the batch is all-or-nothing
	seen := make(map[uuid.UUID]struct{}, len(prepared))
	for _, p := range prepared {
		if _, exists := r.index[p.ID]; exists {
			return nil, person.NewValidationError(errDuplicateID(p.ID))
		}
		if _, dup := seen[p.ID]; dup {
			return nil, person.NewValidationError(errDuplicateID(p.ID))
		}
		seen[p.ID] = struct{}{}
	}

	out := make([]*person.Person, 0, len(prepared))
	for _, p := range prepared {
		r.append(p)
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, person.ErrPersonNotFound
	}
	return r.people[i].Clone(), nil
}

func (r *memoryRepository) FindOneByFood(ctx context.Context, food string) (*person.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.people {
		if p.HasFood(food) {
			return p.Clone(), nil
		}
	}
	return nil, person.ErrPersonNotFound
}

func (r *memoryRepository) AppendFood(ctx context.Context, id uuid.UUID, food string) (*person.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, person.ErrPersonNotFound
	}
	p := r.people[i]
	p.FavoriteFoods = append(p.FavoriteFoods, food)

	return p.Clone(), nil
}

func (r *memoryRepository) UpdateAgeByName(ctx context.Context, name string, age int) (*person.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.people {
		if p.Name == name {
			v := age
			p.Age = &v
			return p.Clone(), nil
		}
	}
	return nil, person.ErrPersonNotFound
}

func (r *memoryRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, person.ErrPersonNotFound
	}
	removed := r.people[i]

	r.people = append(r.people[:i], r.people[i+1:]...)
	r.reindex()

	return removed, nil
}

func (r *memoryRepository) DeleteAllByName(ctx context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.people[:0]
	var deleted int64
	for _, p := range r.people {
		if p.Name == name {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	// Drop references held past the new length
	for i := len(kept); i < len(r.people); i++ {
		r.people[i] = nil
	}
	r.people = kept
	r.reindex()

	return deleted, nil
}

func (r *memoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *memoryRepository) Close() error {
	return nil
}

// append and reindex require r.mu held for writing
func (r *memoryRepository) append(p *person.Person) {
	r.index[p.ID] = len(r.people)
	r.people = append(r.people, p)
}

func (r *memoryRepository) reindex() {
	r.index = make(map[uuid.UUID]int, len(r.people))
	for i, p := range r.people {
		r.index[p.ID] = i
	}
}
